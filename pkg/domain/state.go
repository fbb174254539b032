package domain

// SchemaVersion is the document schema version written by this build.
const SchemaVersion = "0.2"

// Project is the aggregate root of an editing session.
type Project struct {
	Name          string
	SchemaVersion string
	Theme         string
	DeviceFrame   string

	// SelectedNodeID is the currently selected node, empty when nothing is selected.
	SelectedNodeID string

	Tree *WidgetNode
}

// NewProject creates a project around the given tree with default settings.
func NewProject(name string, tree *WidgetNode) *Project {
	if name == "" {
		name = DefaultProjectName
	}
	return &Project{
		Name:          name,
		SchemaVersion: SchemaVersion,
		Theme:         DefaultTheme,
		DeviceFrame:   DefaultDeviceFrame,
		Tree:          tree,
	}
}

// NewStarterProject creates a project holding a sample login screen.
func NewStarterProject(name string) *Project {
	root := NewNode(RootNodeID, "Column", map[string]any{
		"alignment":            "center",
		"horizontal_alignment": "center",
	})
	root.Children = []*WidgetNode{
		NewNode(NewID("text"), "Text", map[string]any{
			"value":  "Welcome",
			"size":   28.0,
			"weight": "bold",
		}),
		NewNode(NewID("field"), "TextField", map[string]any{
			"label":     "Username",
			"hint_text": "Enter your username",
		}),
		NewNode(NewID("field"), "TextField", map[string]any{
			"label":    "Password",
			"password": true,
		}),
		NewNode(NewID("btn"), "ElevatedButton", map[string]any{
			"text":     "Login",
			"on_click": "on_login",
		}),
	}
	for i, c := range root.Children {
		c.ParentID = root.ID
		c.Order = i
		c.Slot = "controls"
	}
	return NewProject(name, root)
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Tree = p.Tree.Clone()
	return &c
}
