// Package intent classifies routing queries into search modes.
//
// The rule-based [Classifier] distinguishes identifier-shaped queries
// ("git.commit", routed as exact catalog lookups) from free-text
// queries (routed through hybrid retrieval), and tags file-discovery
// phrasing with a category filter so retrieval can bias toward
// filesystem commands.
//
// An optional model-assisted override refines ambiguous queries through
// a [Provider]; any failure in the override path degrades silently to
// the rule-based result, so classification never blocks routing.
package intent
