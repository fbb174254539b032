package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/tree"
	"github.com/mitchellh/mapstructure"
)

// SchemaVersion is the version stamped on documents produced by FromProject.
const SchemaVersion = domain.SchemaVersion

// ErrMalformed is matched by every decoding failure.
var ErrMalformed = errors.New("malformed document")

// Document is the persisted form of a project.
type Document map[string]any

// Top-level keys of the current schema.
const (
	KeyName           = "name"
	KeySchemaVersion  = "schemaVersion"
	KeyTheme          = "theme"
	KeyDeviceFrame    = "deviceFrame"
	KeySelectedNodeID = "selectedNodeId"
	KeyTree           = "tree"
)

type projectDoc struct {
	Name           string   `mapstructure:"name"`
	SchemaVersion  string   `mapstructure:"schemaVersion"`
	Theme          *string  `mapstructure:"theme"`
	DeviceFrame    *string  `mapstructure:"deviceFrame"`
	SelectedNodeID *string  `mapstructure:"selectedNodeId"`
	Tree           *nodeDoc `mapstructure:"tree"`
}

type nodeDoc struct {
	ID       string         `mapstructure:"id"`
	Type     string         `mapstructure:"type"`
	Props    map[string]any `mapstructure:"props"`
	Children []nodeDoc      `mapstructure:"children"`
	ParentID *string        `mapstructure:"parent_id"`
	Order    int            `mapstructure:"order"`
	Slot     *string        `mapstructure:"slot"`
}

// FromProject returns the document form of p.
func FromProject(p *domain.Project) Document {
	return Document{
		KeyName:           p.Name,
		KeySchemaVersion:  SchemaVersion,
		KeyTheme:          p.Theme,
		KeyDeviceFrame:    p.DeviceFrame,
		KeySelectedNodeID: nullable(p.SelectedNodeID),
		KeyTree:           FromNode(p.Tree),
	}
}

// FromNode returns the document form of the subtree rooted at n.
func FromNode(n *domain.WidgetNode) map[string]any {
	if n == nil {
		return nil
	}
	props := domain.CopyProps(n.Props)
	if props == nil {
		props = map[string]any{}
	}
	children := make([]any, len(n.Children))
	for i, c := range n.Children {
		children[i] = FromNode(c)
	}
	return map[string]any{
		"id":        n.ID,
		"type":      n.Type,
		"props":     props,
		"children":  children,
		"parent_id": nullable(n.ParentID),
		"order":     n.Order,
		"slot":      nullable(n.Slot),
	}
}

// ToProject migrates doc to the current schema and decodes it.
// The input document is not modified.
func ToProject(doc Document) (*domain.Project, error) {
	migrated, err := Migrate(doc)
	if err != nil {
		return nil, err
	}
	var pd projectDoc
	if err := decode(map[string]any(migrated), &pd); err != nil {
		return nil, err
	}
	if pd.Tree == nil {
		return nil, fmt.Errorf("%w: missing tree", ErrMalformed)
	}
	root, err := pd.Tree.toNode()
	if err != nil {
		return nil, err
	}
	domain.ReserveIDs(tree.IDs(root)...)

	p := &domain.Project{
		Name:          pd.Name,
		SchemaVersion: pd.SchemaVersion,
		Theme:         deref(pd.Theme, domain.DefaultTheme),
		DeviceFrame:   deref(pd.DeviceFrame, domain.DefaultDeviceFrame),
		Tree:          root,
	}
	if pd.SelectedNodeID != nil {
		p.SelectedNodeID = *pd.SelectedNodeID
	}
	return p, nil
}

// ToNode decodes the document form of a single subtree.
func ToNode(data map[string]any) (*domain.WidgetNode, error) {
	var nd nodeDoc
	if err := decode(data, &nd); err != nil {
		return nil, err
	}
	return nd.toNode()
}

func (nd *nodeDoc) toNode() (*domain.WidgetNode, error) {
	if nd.ID == "" || nd.Type == "" {
		return nil, fmt.Errorf("%w: node requires id and type", ErrMalformed)
	}
	n := &domain.WidgetNode{
		ID:       nd.ID,
		Type:     nd.Type,
		Props:    domain.CopyProps(nd.Props),
		ParentID: deref(nd.ParentID, ""),
		Order:    nd.Order,
		Slot:     deref(nd.Slot, ""),
	}
	if n.Props == nil {
		n.Props = map[string]any{}
	}
	for i := range nd.Children {
		c, err := nd.Children[i].toNode()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}

func decode(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// Marshal encodes doc as pretty-printed JSON terminated by a newline.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal parses JSON data into a document without migrating it.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrMalformed)
	}
	return doc, nil
}

// Decode parses, migrates and decodes JSON data into a project.
func Decode(data []byte) (*domain.Project, error) {
	doc, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return ToProject(doc)
}

// Encode returns the pretty-printed JSON form of p.
func Encode(p *domain.Project) ([]byte, error) {
	return Marshal(FromProject(p))
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
