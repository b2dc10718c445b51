package cmpextra

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"
)

func TestOr(t *testing.T) {
	err := errors.New("server selection error: context deadline exceeded")

	t.Run("one passes", func(t *testing.T) {
		res := Or(
			cmp.ErrorContains(err, "connection refused"),
			cmp.ErrorContains(err, "server selection"),
		)()
		assert.Check(t, res.Success())
	})

	t.Run("none pass", func(t *testing.T) {
		res := Or(
			cmp.ErrorContains(err, "connection refused"),
			cmp.ErrorContains(err, "no reachable servers"),
		)()
		assert.Assert(t, !res.Success())
		msg := failureMessage(res)
		assert.Check(t, cmp.Contains(msg, "connection refused"))
		assert.Check(t, cmp.Contains(msg, "no reachable servers"))
	})

	t.Run("too few", func(t *testing.T) {
		res := Or(cmp.Equal(1, 1))()
		assert.Check(t, !res.Success())
	})
}
