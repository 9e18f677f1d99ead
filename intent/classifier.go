package intent

import (
	"strings"
	"unicode"
)

// Intent is the search mode inferred from a query.
type Intent string

// Search modes.
const (
	// Exact queries name a specific command (git.commit) and bypass
	// hybrid fusion for a direct catalog lookup.
	Exact Intent = "exact"

	// Hybrid queries are free text routed through score fusion.
	Hybrid Intent = "hybrid"
)

// CategoryFileDiscovery biases retrieval toward file-discovery commands.
const CategoryFileDiscovery = "file_discovery"

// Classification is the result of intent classification.
type Classification struct {
	Intent Intent `json:"intent"`

	// CategoryFilter narrows hybrid retrieval to a catalog category.
	// Empty means no filter.
	CategoryFilter string `json:"category_filter"`
}

// exact-intent bounds on the raw query length.
const (
	minExactLen = 3
	maxExactLen = 80
)

// fileVerbs and fileObjects together signal file-discovery vocabulary;
// toolWords override it, since "find capability" style queries are about
// the catalog itself.
var (
	fileVerbs = map[string]bool{
		"find": true, "list": true, "search": true, "glob": true,
	}
	fileObjects = map[string]bool{
		"file": true, "files": true, "directory": true, "directories": true,
		"folder": true, "folders": true, "dir": true, "dirs": true,
		"pattern": true, "patterns": true, "extension": true, "extensions": true,
	}
	toolWords = map[string]bool{
		"tool": true, "tools": true, "command": true, "commands": true,
		"capability": true, "capabilities": true,
	}
)

// Classifier decides the search mode and optional category filter for a
// query using deterministic rules. It is stateless and safe for
// concurrent use.
type Classifier struct{}

// NewClassifier creates a rule-based classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns "exact" for identifier-shaped queries (length 3-80,
// no whitespace, at most one dot, identifier tokens on both sides) and
// "hybrid" for everything else. Hybrid queries containing
// file-discovery vocabulary without tool vocabulary get the
// file_discovery category filter.
func (c *Classifier) Classify(query string) Classification {
	if strings.TrimSpace(query) == "" {
		return Classification{Intent: Hybrid}
	}

	if isExactQuery(query) {
		return Classification{Intent: Exact}
	}

	return Classification{
		Intent:         Hybrid,
		CategoryFilter: categoryFilter(query),
	}
}

func isExactQuery(query string) bool {
	if len(query) < minExactLen || len(query) > maxExactLen {
		return false
	}
	if strings.ContainsFunc(query, unicode.IsSpace) {
		return false
	}
	if strings.Count(query, ".") > 1 {
		return false
	}

	for _, side := range strings.Split(query, ".") {
		if !isIdentifier(side) {
			return false
		}
	}
	return true
}

// isIdentifier reports whether s is a command-name token: a letter or
// underscore followed by letters, digits, underscores, or hyphens.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-'):
		default:
			return false
		}
	}
	return true
}

func categoryFilter(query string) string {
	hasVerb := false
	hasObject := false
	hasToolWord := false

	for _, token := range strings.Fields(strings.ToLower(query)) {
		trimmed := strings.Trim(token, ".,!?;:()[]{}'\"")
		if fileVerbs[trimmed] {
			hasVerb = true
		}
		if fileObjects[trimmed] {
			hasObject = true
		}
		if toolWords[trimmed] {
			hasToolWord = true
		}
		// Glob-shaped tokens (*.py) count as file objects.
		if strings.Contains(trimmed, "*.") {
			hasObject = true
		}
	}

	if hasVerb && hasObject && !hasToolWord {
		return CategoryFileDiscovery
	}
	return ""
}
