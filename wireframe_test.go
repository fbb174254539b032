package wireframe_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/wireframe"
	"github.com/aretw0/wireframe/pkg/adapters/memory"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/hittest"
	"github.com/aretw0/wireframe/pkg/schema"
	"github.com/aretw0/wireframe/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T, opts ...wireframe.Option) *wireframe.Editor {
	t.Helper()
	return wireframe.New(domain.NewStarterProject("Test"), opts...)
}

func childIDs(n *domain.WidgetNode) []string {
	ids := make([]string, len(n.Children))
	for i, c := range n.Children {
		ids[i] = c.ID
	}
	return ids
}

func requireConsistent(t *testing.T, e *wireframe.Editor) {
	t.Helper()
	require.NoError(t, tree.Check(e.Root()))
}

func TestAddWidget_NoSelectionAppendsToRoot(t *testing.T) {
	e := newEditor(t)

	id, err := e.AddWidget("Row")
	require.NoError(t, err)

	root := e.Root()
	require.Len(t, root.Children, 5)
	last := root.Children[4]
	assert.Equal(t, id, last.ID)
	assert.True(t, strings.HasPrefix(id, "row-"))
	assert.Equal(t, "controls", last.Slot)
	assert.Equal(t, "start", last.Props["alignment"], "props are seeded from registry defaults")
	assert.Equal(t, id, e.Project().SelectedNodeID)
	requireConsistent(t, e)
}

func TestAddWidget_IntoSelectedContainer(t *testing.T) {
	e := newEditor(t)
	rowID, err := e.AddWidget("Row")
	require.NoError(t, err)

	id, err := e.AddWidget("Text")
	require.NoError(t, err)

	row := tree.FindNode(e.Root(), rowID)
	require.Len(t, row.Children, 1)
	assert.Equal(t, id, row.Children[0].ID)
	assert.Equal(t, "controls", row.Children[0].Slot)
}

func TestAddWidget_AfterSelectedLeaf(t *testing.T) {
	e := newEditor(t)
	first := e.Root().Children[0].ID
	require.NoError(t, e.Select(first))

	id, err := e.AddWidget("ElevatedButton")
	require.NoError(t, err)

	assert.Equal(t, id, e.Root().Children[1].ID)
	assert.Len(t, e.Root().Children, 5)
	requireConsistent(t, e)
}

func TestAddWidget_UnknownType(t *testing.T) {
	e := newEditor(t)

	_, err := e.AddWidget("Slider")
	assert.ErrorIs(t, err, schema.ErrUnknownWidgetType)
	assert.False(t, e.CanUndo())
}

func TestSelect_NotRecordedInHistory(t *testing.T) {
	e := newEditor(t)
	var notified int
	unsubscribe := e.Subscribe(func(*domain.Project) { notified++ })

	require.NoError(t, e.Select(e.Root().Children[1].ID))
	assert.False(t, e.CanUndo())
	assert.Equal(t, 1, notified)

	assert.ErrorIs(t, e.Select("missing"), wireframe.ErrNodeNotFound)

	require.NoError(t, e.Select(""))
	assert.Empty(t, e.Project().SelectedNodeID)
	assert.Nil(t, e.Selected())
	assert.Equal(t, 2, notified)

	unsubscribe()
	require.NoError(t, e.Select(e.Root().ID))
	assert.Equal(t, 2, notified)
}

func TestDeleteSelected(t *testing.T) {
	e := newEditor(t)

	assert.ErrorIs(t, e.DeleteSelected(), wireframe.ErrNoSelection)

	require.NoError(t, e.Select(e.Root().ID))
	assert.ErrorIs(t, e.DeleteSelected(), wireframe.ErrRootImmutable)

	victim := e.Root().Children[1].ID
	require.NoError(t, e.Select(victim))
	require.NoError(t, e.DeleteSelected())

	assert.Len(t, e.Root().Children, 3)
	assert.False(t, tree.Contains(e.Root(), victim))
	assert.Equal(t, e.Root().ID, e.Project().SelectedNodeID)
	requireConsistent(t, e)

	require.True(t, e.Undo())
	assert.True(t, tree.Contains(e.Root(), victim))
}

func TestMoveSelected(t *testing.T) {
	e := newEditor(t)
	ids := childIDs(e.Root())

	require.NoError(t, e.Select(ids[0]))
	err := e.MoveSelected(-1)
	assert.ErrorIs(t, err, wireframe.ErrOperationFailed)
	assert.Equal(t, ids, childIDs(e.Root()), "first child moved up is a no-op")
	assert.False(t, e.CanUndo(), "failed commands leave no history entry")

	require.NoError(t, e.MoveSelected(2))
	assert.Equal(t, []string{ids[1], ids[2], ids[0], ids[3]}, childIDs(e.Root()))
	requireConsistent(t, e)
}

func TestWrapSelected(t *testing.T) {
	e := newEditor(t)
	target := e.Root().Children[2].ID
	require.NoError(t, e.Select(target))

	wrapperID, err := e.WrapSelected("Container")
	require.NoError(t, err)

	wrapper := e.Root().Children[2]
	assert.Equal(t, wrapperID, wrapper.ID)
	assert.Equal(t, "Container", wrapper.Type)
	assert.Equal(t, "controls", wrapper.Slot)
	require.Len(t, wrapper.Children, 1)
	assert.Equal(t, target, wrapper.Children[0].ID)
	assert.Equal(t, "content", wrapper.Children[0].Slot)
	assert.Equal(t, wrapperID, e.Project().SelectedNodeID)
	requireConsistent(t, e)

	require.NoError(t, e.Select(target))
	_, err = e.WrapSelected("Row")
	require.NoError(t, err)
	assert.Equal(t, "controls", tree.FindNode(e.Root(), target).Slot)
}

func TestSetProperty_HistoryScenario(t *testing.T) {
	e := newEditor(t)
	text := e.Root().Children[0].ID
	require.NoError(t, e.Select(text))

	for _, v := range []string{"one", "two", "three"} {
		require.NoError(t, e.SetProperty("value", v))
	}
	require.True(t, e.Undo())
	require.True(t, e.Undo())
	require.True(t, e.Redo())

	assert.Equal(t, "two", tree.FindNode(e.Root(), text).Props["value"])
	undo, redo := e.Depth()
	assert.Equal(t, 2, undo)
	assert.Equal(t, 1, redo)

	require.NoError(t, e.Select(""))
	assert.ErrorIs(t, e.SetProperty("value", "x"), wireframe.ErrNoSelection)
}

func TestMoveNode(t *testing.T) {
	e := newEditor(t)
	containerID, err := e.AddWidget("Container")
	require.NoError(t, err)
	text := e.Root().Children[0].ID

	require.NoError(t, e.MoveNode(text, containerID, -1, ""))
	container := tree.FindNode(e.Root(), containerID)
	require.Len(t, container.Children, 1)
	assert.Equal(t, "content", container.Children[0].Slot)
	requireConsistent(t, e)

	assert.ErrorIs(t, e.MoveNode(containerID, text, -1, ""), wireframe.ErrOperationFailed, "cycle")
	assert.ErrorIs(t, e.MoveNode(text, e.Root().ID, 99, ""), wireframe.ErrOperationFailed)
	assert.ErrorIs(t, e.MoveNode(e.Root().ID, containerID, -1, ""), wireframe.ErrRootImmutable)
	assert.ErrorIs(t, e.MoveNode("missing", containerID, -1, ""), wireframe.ErrNodeNotFound)
}

// layout registers the root box and one 100-unit-tall box per child.
func layout(e *wireframe.Editor) *hittest.Engine {
	engine := hittest.NewEngine()
	root := e.Root()
	engine.Register(hittest.Box{NodeID: root.ID, W: 400, H: float64(100 * len(root.Children)), AcceptsChildren: true})
	for i, c := range root.Children {
		accepts, _ := schema.AcceptsChildren(c.Type)
		engine.Register(hittest.Box{NodeID: c.ID, Slot: c.Slot, Y: float64(100 * i), W: 400, H: 100, AcceptsChildren: accepts})
	}
	return engine
}

func TestDropAt(t *testing.T) {
	e := newEditor(t)
	ids := childIDs(e.Root())

	// Button dropped on the top of the first child lands before it.
	require.NoError(t, e.DropAt(layout(e), ids[3], 10, 10))
	assert.Equal(t, []string{ids[3], ids[0], ids[1], ids[2]}, childIDs(e.Root()))

	// Button dropped on the bottom of the password field lands after it.
	require.NoError(t, e.DropAt(layout(e), ids[3], 10, 390))
	assert.Equal(t, ids, childIDs(e.Root()))

	// A leaf's middle counts as after.
	require.NoError(t, e.DropAt(layout(e), ids[0], 10, 150))
	assert.Equal(t, []string{ids[1], ids[0], ids[2], ids[3]}, childIDs(e.Root()))
	requireConsistent(t, e)

	assert.ErrorIs(t, e.DropAt(layout(e), ids[0], 1000, 1000), wireframe.ErrNoDropTarget)
	assert.ErrorIs(t, e.DropAt(layout(e), ids[0], 10, 150), wireframe.ErrOperationFailed)
}

func TestDropAt_InsideContainer(t *testing.T) {
	e := newEditor(t)
	rowID, err := e.AddWidget("Row")
	require.NoError(t, err)
	text := e.Root().Children[0].ID

	// The row is the fifth box, spanning y 400..500.
	require.NoError(t, e.DropAt(layout(e), text, 10, 450))

	row := tree.FindNode(e.Root(), rowID)
	require.Len(t, row.Children, 1)
	assert.Equal(t, text, row.Children[0].ID)
	assert.Equal(t, "controls", row.Children[0].Slot)
	requireConsistent(t, e)
}

func TestDropAt_InsideNestedContainer(t *testing.T) {
	e := newEditor(t)
	containerID, err := e.AddWidget("Container")
	require.NoError(t, err)
	button := e.Root().Children[3].ID

	engine := layout(e)
	hit, ok := engine.Hit(10, 450)
	require.True(t, ok)
	require.Equal(t, containerID, hit.Box.NodeID)
	require.Equal(t, "controls", hit.Box.Slot)

	require.NoError(t, e.DropAt(engine, button, 10, 450))

	container := tree.FindNode(e.Root(), containerID)
	require.Len(t, container.Children, 1)
	assert.Equal(t, button, container.Children[0].ID)
	assert.Equal(t, "content", container.Children[0].Slot)
	assert.Empty(t, e.Validate())

	code, err := e.GenerateCode()
	require.NoError(t, err)
	assert.Contains(t, code, `text="Login"`)
	requireConsistent(t, e)
}

func TestValidateAndGenerate(t *testing.T) {
	e := newEditor(t)
	assert.Empty(t, e.Validate())

	code, err := e.GenerateCode()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(code, "def on_login(e: ft.ControlEvent):"))
	assert.Less(t, strings.Index(code, "def on_login"), strings.Index(code, "def main"))

	require.NoError(t, e.Select(e.Root().Children[0].ID))
	require.NoError(t, e.SetProperty("weight", "heavy"))
	errs := e.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "invalid value")
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	var saved, loaded int
	hooks := domain.LifecycleHooks{
		OnSave: func(*domain.HistoryEvent) { saved++ },
		OnLoad: func(*domain.HistoryEvent) { loaded++ },
	}
	e := newEditor(t, wireframe.WithStore(store), wireframe.WithLifecycleHooks(hooks))

	require.NoError(t, e.Select(e.Root().Children[0].ID))
	require.NoError(t, e.SetProperty("value", "Saved"))
	require.NoError(t, e.Save(ctx, "app"))
	assert.Equal(t, 1, saved)

	require.NoError(t, e.SetProperty("value", "Unsaved"))

	err := e.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.Equal(t, "Unsaved", e.Root().Children[0].Props["value"], "failed load leaves state untouched")
	assert.True(t, e.CanUndo())

	require.NoError(t, e.Load(ctx, "app"))
	assert.Equal(t, 1, loaded)
	assert.Equal(t, "Saved", e.Root().Children[0].Props["value"])
	assert.False(t, e.CanUndo())
	assert.False(t, e.CanRedo())
}

func TestSaveLoad_NoStore(t *testing.T) {
	e := newEditor(t)
	assert.ErrorIs(t, e.Save(context.Background(), "x"), wireframe.ErrNoStore)
	assert.ErrorIs(t, e.Load(context.Background(), "x"), wireframe.ErrNoStore)
}

func TestApply(t *testing.T) {
	e := newEditor(t)
	text := e.Root().Children[0].ID

	res, err := e.Apply(wireframe.Command{Op: wireframe.OpSet, ID: text, Name: "value", Value: "Hi"})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "Hi", e.Root().Children[0].Props["value"])

	res, err = e.Apply(wireframe.Command{Op: wireframe.OpWrap, ID: text, Type: "Container"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.NodeID)

	res, err = e.Apply(wireframe.Command{Op: wireframe.OpUndo})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, text, e.Root().Children[0].ID)

	zero := 0
	_, err = e.Apply(wireframe.Command{Op: wireframe.OpMoveNode, ID: text, Parent: e.Root().ID, Index: &zero})
	require.NoError(t, err)

	_, err = e.Apply(wireframe.Command{Op: "explode"})
	assert.ErrorIs(t, err, wireframe.ErrUnknownCommand)

	_, err = e.Apply(wireframe.Command{Op: wireframe.OpDelete, ID: "missing"})
	assert.ErrorIs(t, err, wireframe.ErrNodeNotFound)
}

func TestNew_NilProject(t *testing.T) {
	e := wireframe.New(nil)
	assert.Equal(t, domain.DefaultProjectName, e.Project().Name)
	assert.Len(t, e.Root().Children, 4)
}
