// Package log provides the structured logger for smbaudit. Every
// handler is wrapped so that credential-bearing attributes are masked
// before they reach the output: this tool holds a live password for the
// duration of a run, and no debug flag may ever print it.
package log
