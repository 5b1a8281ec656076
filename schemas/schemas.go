// Package schemas embeds the JSON schemas used by skillgate.
package schemas

import _ "embed"

// FrontmatterSchemaJSON describes the value types of SKILL.md header keys.
//
//go:embed frontmatter.schema.json
var FrontmatterSchemaJSON string

// ReportSchemaJSON describes the JSON encoding of a validation report.
//
//go:embed report.schema.json
var ReportSchemaJSON string
