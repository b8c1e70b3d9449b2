package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tasks primary key is a uuid column, but ids reach the repository
// as raw path strings. An ill-formed id must read as "no rows" so the
// service reports not-found; it must never reach the uuid codec. The
// repository is constructed without a pool here: if the guard ever
// regresses, these calls panic instead of returning cleanly.

func TestGetByIDRejectsNonUUID(t *testing.T) {
	repo := NewTaskRepository(nil)

	for _, id := range []string{"", "no-such-id", "bulk", "123", "c56a4180-65aa-42ec-a945-5fd21dec"} {
		task, err := repo.GetByID(id)
		require.NoError(t, err, "id %q", id)
		assert.Nil(t, task, "id %q", id)
	}
}

func TestDeleteRejectsNonUUID(t *testing.T) {
	repo := NewTaskRepository(nil)

	assert.NoError(t, repo.Delete("no-such-id"))
}
