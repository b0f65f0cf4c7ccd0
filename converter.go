package confsift

// Converter converts Confluence storage-format XHTML to Markdown.
//
// Conversion is total: any input produces some markdown output, with
// unrenderable structures degraded to bracketed placeholders rather
// than dropped. Formatting nested inside other inline formatting is
// flattened to the outermost marker.
type Converter interface {
	// Convert transforms a storage-format page body into Markdown.
	// An empty or whitespace-only body converts to "".
	Convert(body string) (string, error)
}
