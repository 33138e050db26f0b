// Package dialect defines the SMB protocol dialect identifiers and the
// ordered policy matrix that drives the audit. The matrix pairs each
// dialect with the outcome a securely configured server should produce,
// and can be overridden from a YAML policy file.
package dialect
