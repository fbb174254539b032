package document

import (
	"fmt"

	"github.com/aretw0/wireframe/pkg/domain"
)

// migration upgrades a document by one version and stamps the new version.
type migration func(Document) Document

// migrations is keyed by the version a step upgrades from.
var migrations = map[string]migration{
	"0.0": migrate00to01,
	"0.1": migrate01to02,
}

// legacy snake_case keys used up to 0.1.
const (
	legacySchemaVersion  = "schema_version"
	legacyDeviceFrame    = "device_frame"
	legacySelectedNodeID = "selected_node_id"
)

// Version returns the schema version of doc. Documents without a version
// key are "0.0".
func Version(doc Document) string {
	for _, key := range []string{KeySchemaVersion, legacySchemaVersion} {
		if v, ok := doc[key].(string); ok && v != "" {
			return v
		}
	}
	return "0.0"
}

// Migrate applies registered migrations until none matches the document's
// version. The input is copied, never modified. A step that leads back to an
// already visited version is an error.
func Migrate(doc Document) (Document, error) {
	out := Document(domain.CopyProps(doc))
	if out == nil {
		return nil, fmt.Errorf("%w: document is null", ErrMalformed)
	}
	visited := make(map[string]bool)
	for {
		version := Version(out)
		step, ok := migrations[version]
		if !ok {
			return out, nil
		}
		if visited[version] {
			return nil, fmt.Errorf("migration cycle at schema version %s", version)
		}
		visited[version] = true
		out = step(out)
	}
}

func migrate00to01(doc Document) Document {
	doc[legacySchemaVersion] = "0.1"
	setDefault(doc, KeyTheme, domain.DefaultTheme)
	setDefault(doc, legacyDeviceFrame, domain.DefaultDeviceFrame)
	return doc
}

// migrate01to02 renames the snake_case top-level keys to camelCase. Existing
// camelCase keys win.
func migrate01to02(doc Document) Document {
	rename(doc, legacyDeviceFrame, KeyDeviceFrame)
	rename(doc, legacySelectedNodeID, KeySelectedNodeID)
	delete(doc, legacySchemaVersion)
	doc[KeySchemaVersion] = "0.2"
	return doc
}

func setDefault(doc Document, key string, value any) {
	if _, ok := doc[key]; !ok {
		doc[key] = value
	}
}

func rename(doc Document, from, to string) {
	v, ok := doc[from]
	if !ok {
		return
	}
	delete(doc, from)
	setDefault(doc, to, v)
}
