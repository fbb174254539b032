/*
Package domain contains the core document model of the wireframe engine.

It defines the widget tree and the project aggregate that owns it. The package is
kept pure: no I/O, no persistence and no knowledge of the widget catalog, which
lives in package schema.

# Key Entities

  - WidgetNode: a node of the widget tree (type, props, owned children, back-reference).
  - Project: the aggregate root (name, schema version, theme, device frame, selection, tree).
  - ChangeSet: the node-level difference between two project states.
  - LifecycleHooks: callbacks fired by the history manager and stores.
*/
package domain
