// Package confsift classifies Confluence pages as useful or gibberish
// for training-data curation. It converts Confluence storage-format
// XHTML to markdown, analyzes the tables and prose of the result, and
// applies an ordered set of deterministic rules to decide whether a
// page carries real content or is boilerplate.
//
// The root package defines domain types and service interfaces.
// Implementations live in subpackages named after their primary
// dependency (goquery, sqlite, slog) or their role (markdown, analyze,
// decide, pipeline, batch, eval, labelstudio).
package confsift
