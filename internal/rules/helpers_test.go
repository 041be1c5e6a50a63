package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suderio/bloodline/internal/data"
)

func mustCatalog(t *testing.T) *data.Catalog {
	t.Helper()
	cat, err := data.Default()
	require.NoError(t, err)
	return cat
}
