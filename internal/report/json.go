package report

import (
	"encoding/json"
	"io"

	"github.com/25smoking/bamparse/internal/forensics"
)

// WriteJSON writes result as a 4-space indented JSON array. Object keys come
// out sorted because the record types declare their fields alphabetically.
// Non-ASCII and HTML characters are written as-is.
func WriteJSON(w io.Writer, result forensics.BamResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(normalize(result))
}

// normalize guarantees [] instead of null for empty lists.
func normalize(result forensics.BamResult) forensics.BamResult {
	out := make(forensics.BamResult, len(result))
	for i, e := range result {
		if e.Executable == nil {
			e.Executable = []forensics.ExecutableRecord{}
		}
		out[i] = e
	}
	return out
}
