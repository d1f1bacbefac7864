package bundle

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label returns a human readable label, e.g. "Worker Offline".
func (s State) Label() string {
	// Casers are stateful, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "_", " "))
}

// Label returns a human readable label for the lineage.
func (l Lineage) Label() string {
	return cases.Title(language.English).String(string(l))
}
