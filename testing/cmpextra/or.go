// Package cmpextra adds comparisons missing from gotest.tools.
package cmpextra

import (
	"fmt"
	"strings"

	"gotest.tools/v3/assert/cmp"
)

// Or succeeds when any of the comparisons succeeds. The failure message lists every
// comparison that failed.
func Or(compares ...cmp.Comparison) cmp.Comparison {
	return func() cmp.Result {
		if len(compares) < 2 {
			return cmp.ResultFailure("Or needs at least 2 comparisons")
		}

		var msgs []string
		for _, compare := range compares {
			res := compare()
			if res.Success() {
				return res
			}
			msgs = append(msgs, failureMessage(res))
		}
		return cmp.ResultFailure("no comparisons passed:\n" + strings.Join(msgs, "\n"))
	}
}

func failureMessage(res cmp.Result) string {
	if fr, ok := res.(interface{ FailureMessage() string }); ok {
		return fr.FailureMessage()
	}
	return fmt.Sprintf("%v", res)
}
