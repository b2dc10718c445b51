// Package kongtest renders the help of a kong CLI struct so tests can check it.
package kongtest

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

// Help parses --help against cli and returns what kong printed. Defaults are applied
// to cli as a side effect.
func Help(t *testing.T, cli interface{}, options ...kong.Option) string {
	t.Helper()

	w := bytes.NewBuffer(nil)
	rc := -1
	options = append([]kong.Option{
		kong.Name("test-app"),
		kong.Writers(w, w),
		kong.Exit(func(i int) {
			rc = i
		}),
	}, options...)

	app, err := kong.New(cli, options...)
	assert.Assert(t, err)

	_, err = app.Parse([]string{"--help"})
	assert.Check(t, err)
	assert.Check(t, cmp.Equal(0, rc))

	return w.String()
}
