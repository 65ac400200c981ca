// Package schemas embeds the JSON Schemas of the artifacts the agent writes.
package schemas

import _ "embed"

// RoadmapOutput validates the pipeline output written by the exporter.
//
//go:embed roadmap_output.schema.json
var RoadmapOutput string

// Careers validates a careers.json reference corpus.
//
//go:embed careers.schema.json
var Careers string
