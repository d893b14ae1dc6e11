// Package classify determines the regulatory status of Title 21 sections.
//
// A Classifier combines two strategies:
//
//   - An optional LLM classifier (ai.StatusClassifier) consulted first.
//     Its verdict is used whenever it returns a definite status.
//   - A deterministic rule table over the regulation's description and page
//     content, applied when the LLM is absent, fails, or is undecided.
//
// The rule table is ordered by priority with a catch-all final rule, so
// classification is total: every regulation receives a status and a
// human-readable reason, and identical inputs always produce identical
// results.
package classify
