package introspectmiddleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgate/go-introspection-middleware/introspection"
)

func Test_ResultContext(t *testing.T) {
	t.Run("round trips a result", func(t *testing.T) {
		want := &introspection.Result{Active: true, Scope: "read"}

		ctx := SetResult(context.Background(), want)

		assert.True(t, HasResult(ctx))

		got, err := ResultFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing result", func(t *testing.T) {
		ctx := context.Background()

		assert.False(t, HasResult(ctx))

		got, err := ResultFromContext(ctx)
		assert.ErrorIs(t, err, ErrResultNotFound)
		assert.Nil(t, got)
	})

	t.Run("nil result counts as missing", func(t *testing.T) {
		ctx := SetResult(context.Background(), nil)

		assert.False(t, HasResult(ctx))

		_, err := ResultFromContext(ctx)
		assert.ErrorIs(t, err, ErrResultNotFound)
	})
}
