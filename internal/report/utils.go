package report

import (
	"strings"

	"golang.org/x/text/language"
)

// sanitizeFilename replaces dots and special characters for safe filenames
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		".", "_",
		":", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	)
	return replacer.Replace(s)
}

// baseLanguage returns the base subtag used to key catalog location labels
func baseLanguage(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
