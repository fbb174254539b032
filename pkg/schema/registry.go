package schema

import "sort"

// Unbounded marks a slot that accepts any number of children.
const Unbounded = -1

// PropSpec declares one property of a widget type.
type PropSpec struct {
	Name    string   `json:"name" yaml:"name"`
	Kind    Kind     `json:"kind" yaml:"kind"`
	Default any      `json:"default" yaml:"default"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
	// EnumKey overrides the property name when resolving enum aliases.
	EnumKey string `json:"enum_key,omitempty" yaml:"enum_key,omitempty"`
}

// SlotSpec declares a named child attachment point.
type SlotSpec struct {
	Name string `json:"name" yaml:"name"`
	Max  int    `json:"max" yaml:"max"` // 1 or Unbounded
}

// WidgetSpec is the registry entry of a widget type.
type WidgetSpec struct {
	Type     string     `json:"type" yaml:"type"`
	Category string     `json:"category" yaml:"category"`
	Icon     string     `json:"icon" yaml:"icon"`
	Props    []PropSpec `json:"props" yaml:"props"`
	Slots    []SlotSpec `json:"slots" yaml:"slots"`
}

// Prop returns the declared property with the given name.
func (w *WidgetSpec) Prop(name string) (PropSpec, bool) {
	for _, p := range w.Props {
		if p.Name == name {
			return p, true
		}
	}
	return PropSpec{}, false
}

// Slot returns the declared slot with the given name.
func (w *WidgetSpec) Slot(name string) (SlotSpec, bool) {
	for _, s := range w.Slots {
		if s.Name == name {
			return s, true
		}
	}
	return SlotSpec{}, false
}

func (w *WidgetSpec) clone() *WidgetSpec {
	c := *w
	c.Props = make([]PropSpec, len(w.Props))
	for i, p := range w.Props {
		p.Options = append([]string(nil), p.Options...)
		c.Props[i] = p
	}
	c.Slots = append([]SlotSpec(nil), w.Slots...)
	return &c
}

var alignmentOptions = []string{"start", "center", "end", "spaceBetween", "spaceAround", "spaceEvenly"}
var crossAlignmentOptions = []string{"start", "center", "end", "stretch"}

// catalog is kept in palette order.
var catalog = []*WidgetSpec{
	{
		Type:     "Text",
		Category: "Basic",
		Icon:     "text_fields",
		Props: []PropSpec{
			{Name: "value", Kind: KindString, Default: "Text"},
			{Name: "size", Kind: KindFloat, Default: 14.0},
			{Name: "weight", Kind: KindEnum, Default: "normal", Options: []string{
				"normal", "bold", "w100", "w200", "w300", "w400", "w500", "w600", "w700", "w800", "w900",
			}},
			{Name: "color", Kind: KindColor, Default: nil},
			{Name: "text_align", Kind: KindEnum, Default: "left", Options: []string{"left", "center", "right", "justify"}},
		},
	},
	{
		Type:     "Container",
		Category: "Layout",
		Icon:     "crop_square",
		Props: []PropSpec{
			{Name: "width", Kind: KindFloat, Default: nil},
			{Name: "height", Kind: KindFloat, Default: nil},
			{Name: "padding", Kind: KindPadding, Default: 10.0},
			{Name: "bgcolor", Kind: KindColor, Default: nil},
			{Name: "border_radius", Kind: KindFloat, Default: 0.0},
			{Name: "alignment", Kind: KindEnum, EnumKey: "container_alignment", Default: "center", Options: []string{
				"center", "topLeft", "topCenter", "topRight", "centerLeft", "centerRight", "bottomLeft", "bottomCenter", "bottomRight",
			}},
		},
		Slots: []SlotSpec{{Name: "content", Max: 1}},
	},
	{
		Type:     "Column",
		Category: "Layout",
		Icon:     "view_agenda",
		Props: []PropSpec{
			{Name: "alignment", Kind: KindEnum, Default: "start", Options: alignmentOptions},
			{Name: "horizontal_alignment", Kind: KindEnum, Default: "start", Options: crossAlignmentOptions},
			{Name: "spacing", Kind: KindFloat, Default: 10.0},
			{Name: "tight", Kind: KindBool, Default: false},
		},
		Slots: []SlotSpec{{Name: "controls", Max: Unbounded}},
	},
	{
		Type:     "Row",
		Category: "Layout",
		Icon:     "view_week",
		Props: []PropSpec{
			{Name: "alignment", Kind: KindEnum, Default: "start", Options: alignmentOptions},
			{Name: "vertical_alignment", Kind: KindEnum, Default: "start", Options: crossAlignmentOptions},
			{Name: "spacing", Kind: KindFloat, Default: 10.0},
			{Name: "wrap", Kind: KindBool, Default: false},
		},
		Slots: []SlotSpec{{Name: "controls", Max: Unbounded}},
	},
	{
		Type:     "ElevatedButton",
		Category: "Buttons",
		Icon:     "smart_button",
		Props: []PropSpec{
			{Name: "text", Kind: KindString, Default: "Button"},
			{Name: "icon", Kind: KindString, Default: nil},
			{Name: "color", Kind: KindColor, Default: nil},
			{Name: "bgcolor", Kind: KindColor, Default: nil},
			{Name: "on_click", Kind: KindEvent, Default: nil},
		},
	},
	{
		Type:     "TextField",
		Category: "Input",
		Icon:     "input",
		Props: []PropSpec{
			{Name: "label", Kind: KindString, Default: ""},
			{Name: "hint_text", Kind: KindString, Default: ""},
			{Name: "value", Kind: KindString, Default: ""},
			{Name: "password", Kind: KindBool, Default: false},
			{Name: "multiline", Kind: KindBool, Default: false},
			{Name: "read_only", Kind: KindBool, Default: false},
			{Name: "on_change", Kind: KindEvent, Default: nil},
		},
	},
}

var byType = func() map[string]*WidgetSpec {
	m := make(map[string]*WidgetSpec, len(catalog))
	for _, w := range catalog {
		m[w.Type] = w
	}
	return m
}()

func lookup(widgetType string) (*WidgetSpec, error) {
	w, ok := byType[widgetType]
	if !ok {
		return nil, &UnknownWidgetTypeError{Type: widgetType}
	}
	return w, nil
}

// Lookup returns a copy of the registry entry for widgetType.
func Lookup(widgetType string) (*WidgetSpec, error) {
	w, err := lookup(widgetType)
	if err != nil {
		return nil, err
	}
	return w.clone(), nil
}

// Known reports whether widgetType is registered.
func Known(widgetType string) bool {
	_, ok := byType[widgetType]
	return ok
}

// Types returns the registered type names, sorted.
func Types() []string {
	names := make([]string, 0, len(catalog))
	for _, w := range catalog {
		names = append(names, w.Type)
	}
	sort.Strings(names)
	return names
}

// Registry returns copies of every entry in palette order.
func Registry() []*WidgetSpec {
	out := make([]*WidgetSpec, len(catalog))
	for i, w := range catalog {
		out[i] = w.clone()
	}
	return out
}

// Prop returns the declaration of a property of widgetType.
// The boolean is false when the type does not declare it.
func Prop(widgetType, name string) (PropSpec, bool, error) {
	w, err := lookup(widgetType)
	if err != nil {
		return PropSpec{}, false, err
	}
	p, ok := w.Prop(name)
	if ok {
		p.Options = append([]string(nil), p.Options...)
	}
	return p, ok, nil
}

// DefaultsFor returns a fresh map of property name to default value.
func DefaultsFor(widgetType string) (map[string]any, error) {
	w, err := lookup(widgetType)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(w.Props))
	for _, p := range w.Props {
		out[p.Name] = p.Default
	}
	return out, nil
}

// AcceptsChildren reports whether widgetType declares at least one slot.
func AcceptsChildren(widgetType string) (bool, error) {
	w, err := lookup(widgetType)
	if err != nil {
		return false, err
	}
	return len(w.Slots) > 0, nil
}

// DefaultSlot returns the single declared slot of widgetType, or "" when the
// type declares none or several.
func DefaultSlot(widgetType string) (string, error) {
	w, err := lookup(widgetType)
	if err != nil {
		return "", err
	}
	if len(w.Slots) != 1 {
		return "", nil
	}
	return w.Slots[0].Name, nil
}

// EnumKeyFor returns the key used to resolve enum aliases for a property.
func EnumKeyFor(widgetType, prop string) (string, error) {
	w, err := lookup(widgetType)
	if err != nil {
		return "", err
	}
	if p, ok := w.Prop(prop); ok && p.EnumKey != "" {
		return p.EnumKey, nil
	}
	return prop, nil
}
