package schemas_test

import (
	"testing"

	"tracker/src/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageParams(t *testing.T) {
	t.Run("translates 1-based pages to skip and limit", func(t *testing.T) {
		params, err := schemas.NewPageParams(3, 25)
		require.NoError(t, err)
		assert.Equal(t, 50, params.Skip())
		assert.Equal(t, 25, params.Limit())
	})

	t.Run("the first page skips nothing", func(t *testing.T) {
		params, err := schemas.NewPageParams(1, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, params.Skip())
	})

	t.Run("zero or negative values are rejected", func(t *testing.T) {
		_, err := schemas.NewPageParams(0, 10)
		assert.Error(t, err)

		_, err = schemas.NewPageParams(1, 0)
		assert.Error(t, err)

		_, err = schemas.NewPageParams(-1, -5)
		assert.Error(t, err)
	})
}

func TestNewPage(t *testing.T) {
	params, err := schemas.NewPageParams(2, 10)
	require.NoError(t, err)

	t.Run("carries the request's page and the repository's total", func(t *testing.T) {
		page := schemas.NewPage([]string{"a", "b"}, params, 42)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 10, page.PageSize)
		assert.Equal(t, int64(42), page.Total)
		assert.Equal(t, []string{"a", "b"}, page.Items)
	})

	t.Run("a nil item slice serializes as an empty list", func(t *testing.T) {
		page := schemas.NewPage[string](nil, params, 0)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
	})
}
