// Package schemas embeds the JSON Schemas for documents read from disk.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// ResumeDocument is the file name of the resume document schema.
const ResumeDocument = "resume_document.schema.json"
