package cli

import (
	"testing"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsRepeatable(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, Migrate(db, "", false))
	gifts := testutil.Count(t, db, &models.Gift{}, "")
	assert.Positive(t, gifts)

	require.NoError(t, Migrate(db, "", false))
	assert.Equal(t, gifts, testutil.Count(t, db, &models.Gift{}, ""))
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"serve", "migrate"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
