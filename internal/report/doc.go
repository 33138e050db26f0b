// Package report renders audit judgments for the operator.
//
// The Printer streams one colored line per probe outcome as results
// arrive, followed by a single aggregate verdict line, and never
// mutates the data it renders. The color contract: green for outcomes
// that match policy, yellow for informational misses, red for security
// warnings. WriteMarkdown additionally renders the collected judgments
// as a Markdown document for sharing.
package report
