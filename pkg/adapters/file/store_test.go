package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/wireframe/pkg/adapters/file"
	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunProjectStoreContract(t, file.New(t.TempDir()))
}

func TestSaveFile_WritesPrettyJSONAndBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app"+file.Extension)

	first := domain.NewStarterProject("First")
	require.NoError(t, file.SaveFile(path, first))
	_, err := os.Stat(path + file.BackupSuffix)
	assert.True(t, os.IsNotExist(err), "no backup on first save")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"deviceFrame\": \"desktop\",\n")

	second := first.Clone()
	second.Name = "Second"
	require.NoError(t, file.SaveFile(path, second))

	bak, err := file.LoadFile(path + file.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "First", bak.Name)

	current, err := file.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Second", current.Name)
}

func TestLoadFile_MigratesLegacyDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy"+file.Extension)
	legacy := `{
  "name": "Old",
  "selected_node_id": "t1",
  "tree": {"id": "root", "type": "Column", "children": [
    {"id": "t1", "type": "Text", "props": {"value": "hi"}, "parent_id": "root", "order": 0, "slot": "controls"}
  ]}
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	p, err := file.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, document.SchemaVersion, document.Version(document.FromProject(p)))
	assert.Equal(t, "light", p.Theme)
	assert.Equal(t, "desktop", p.DeviceFrame)
	assert.Equal(t, "t1", p.SelectedNodeID)
	require.Len(t, p.Tree.Children, 1)
	assert.Equal(t, "controls", p.Tree.Children[0].Slot)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := file.LoadFile(filepath.Join(dir, "missing"+file.Extension))
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	bad := filepath.Join(dir, "bad"+file.Extension)
	require.NoError(t, os.WriteFile(bad, []byte("{oops"), 0644))
	_, err = file.LoadFile(bad)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, document.ErrMalformed)
}

func TestFileStore_InvalidID(t *testing.T) {
	store := file.New(t.TempDir())
	err := store.Save(context.Background(), "../escape", domain.NewStarterProject("x"))
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestFileStore_ListIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "b", domain.NewStarterProject("b")))
	require.NoError(t, store.Save(ctx, "a", domain.NewStarterProject("a")))
	require.NoError(t, store.Save(ctx, "a", domain.NewStarterProject("a2")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, store.Delete(ctx, "a"))
	_, err = os.Stat(filepath.Join(dir, "a"+file.Extension+file.BackupSuffix))
	assert.True(t, os.IsNotExist(err), "backup removed with project")
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "never-created"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
