/*
Package mongoex contains a variety of tools for working safely with MongoDB.

There are tools for:
- connecting without leaking credentials
- observability (both for queries and connection pool info)
- health checks
*/
package mongoex
