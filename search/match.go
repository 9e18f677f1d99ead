package search

// Match is a fused search result. The combined score reflects the
// weights in effect at fusion time.
type Match struct {
	// ID is the canonical command ID (skill.command).
	ID string

	// Content is the indexed text the match was scored against.
	Content string

	// SemanticScore is the semantic backend's score in [0,1].
	SemanticScore float64

	// KeywordScore is the normalized keyword backend score in [0,1].
	// Zero when no keyword backend is configured.
	KeywordScore float64

	// CombinedScore is semanticWeight*SemanticScore + keywordWeight*KeywordScore
	// with the engine weights at the moment of fusion.
	CombinedScore float64

	// Metadata carries backend payload fields (category, skill, ...).
	Metadata map[string]any
}

// Matches is a slice of Match with helper methods.
type Matches []Match

// IDs returns just the command IDs from the matches.
func (m Matches) IDs() []string {
	ids := make([]string, len(m))
	for i, match := range m {
		ids[i] = match.ID
	}
	return ids
}

// FilterByMinScore returns matches with CombinedScore >= minScore.
func (m Matches) FilterByMinScore(minScore float64) Matches {
	var filtered Matches
	for _, match := range m {
		if match.CombinedScore >= minScore {
			filtered = append(filtered, match)
		}
	}
	return filtered
}
