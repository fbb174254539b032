package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProjectStoreContract runs a suite of tests to verify that a ProjectStore
// implementation adheres to the interface contract.
func RunProjectStoreContract(t *testing.T, store ProjectStore) {
	ctx := context.Background()
	projectID := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		project := domain.NewStarterProject("Contract")
		project.SelectedNodeID = project.Tree.Children[1].ID

		require.NoError(t, store.Save(ctx, projectID, project), "Save should not return error")

		loaded, err := store.Load(ctx, projectID)
		require.NoError(t, err, "Load should not return error")
		assert.Empty(t, cmp.Diff(project, loaded, cmpopts.EquateEmpty()))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		project := domain.NewStarterProject("First")
		require.NoError(t, store.Save(ctx, projectID, project))
		project.Name = "Second"
		require.NoError(t, store.Save(ctx, projectID, project))

		loaded, err := store.Load(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, "Second", loaded.Name)
	})

	t.Run("Copies Are Independent", func(t *testing.T) {
		project := domain.NewStarterProject("Isolated")
		require.NoError(t, store.Save(ctx, projectID, project))
		project.Tree.Children[0].SetProp("value", "changed after save")

		loaded, err := store.Load(ctx, projectID)
		require.NoError(t, err)
		assert.Equal(t, "Welcome", loaded.Tree.Children[0].Props["value"])

		loaded.Tree.Children = nil
		again, err := store.Load(ctx, projectID)
		require.NoError(t, err)
		assert.Len(t, again.Tree.Children, 4)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+projectID)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, projectID, domain.NewStarterProject("Doomed")))

		require.NoError(t, store.Delete(ctx, projectID), "Delete should not return error")

		_, err := store.Load(ctx, projectID)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound, "Load after Delete should return ErrProjectNotFound")

		assert.NoError(t, store.Delete(ctx, projectID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := projectID + "-1"
		id2 := projectID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewStarterProject("One")))
		require.NoError(t, store.Save(ctx, id2, domain.NewStarterProject("Two")))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
