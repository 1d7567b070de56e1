package engine

import (
	"strings"

	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
)

// matches reports whether query is a case-insensitive substring of the display
// name or the identifier.
func matches(query, name, id string) bool {
	q := content.Fold(query)
	return strings.Contains(content.Fold(name), q) || strings.Contains(content.Fold(id), q)
}
