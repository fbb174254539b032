// Package document converts projects to and from their persisted form.
//
// A Document is a nested JSON-safe map. Every node field is written
// explicitly, including parent_id, order and slot, and restored verbatim on
// load. Documents written by older builds are brought up to SchemaVersion by
// Migrate before decoding.
package document
