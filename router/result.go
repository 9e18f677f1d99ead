package router

import (
	"strings"

	"github.com/jonwraymond/toolrouter/confidence"
)

// Target identifies the command a query was routed to.
type Target struct {
	// Skill is the skill namespace (the part before the dot in
	// "git.commit").
	Skill string `json:"skill"`

	// Command is the command name within the skill.
	Command string `json:"command"`
}

// String returns the canonical "skill.command" form.
func (t Target) String() string {
	if t.Skill == "" {
		return t.Command
	}
	return t.Skill + "." + t.Command
}

// parseTarget splits a candidate ID into its skill and command parts.
// IDs without a dot become a bare command.
func parseTarget(id string) Target {
	skill, command, found := strings.Cut(id, ".")
	if !found {
		return Target{Command: id}
	}
	return Target{Skill: skill, Command: command}
}

// RouteResult is the outcome of a routing decision. Route never returns
// nil: when retrieval fails the result carries the persona fallback
// target with low confidence.
type RouteResult struct {
	Target Target `json:"target"`

	// Score is the calibrated relevance score in [0,1].
	Score float64 `json:"score"`

	// Confidence is the calibrated band for Score.
	Confidence confidence.Level `json:"confidence"`

	// FromCache reports whether the result was served from the result
	// cache rather than live retrieval.
	FromCache bool `json:"from_cache"`

	// Reasoning is a short human-readable explanation of how the
	// target was chosen.
	Reasoning string `json:"reasoning"`
}
