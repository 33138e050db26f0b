package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/smbaudit/smbaudit/internal/probe"
	"github.com/smbaudit/smbaudit/internal/verdict"
)

var (
	colorOK   = color.New(color.FgGreen).SprintFunc()
	colorInfo = color.New(color.FgYellow).SprintFunc()
	colorWarn = color.New(color.FgRed).SprintFunc()
)

// Row pairs one probe result with its two judgments. It is the unit
// both renderers consume.
type Row struct {
	Result   probe.Result
	Hardened verdict.Judgment
	Weakened verdict.Judgment
}

// Printer renders colored audit output line by line.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Header announces the run.
func (p *Printer) Header(host string) {
	fmt.Fprintf(p.out, "Probing SMB dialects on %s\n\n", host)
}

// GuestAccess renders the outcome of the anonymous probe. Guest
// acceptance under the hardened posture is always a warning.
func (p *Printer) GuestAccess(accepted bool) {
	if accepted {
		fmt.Fprintf(p.out, "%s\n\n", colorWarn("WARNING: server accepts guest access with hardened client settings"))
		return
	}
	fmt.Fprintf(p.out, "%s\n\n", colorOK("guest access refused, credentials required"))
}

// Row renders the hardened-posture line and the weakened-posture line
// for one matrix entry.
func (p *Printer) Row(row Row) {
	d := row.Result.Entry.Dialect
	fmt.Fprintf(p.out, "%-8s  hardened  %s\n", d, hardenedVerdictText(row))
	fmt.Fprintf(p.out, "%-8s  weakened  %s\n", d, weakenedVerdictText(row))
}

// Summary renders the aggregate verdict line after the full matrix.
func (p *Printer) Summary(hadWarnings bool) {
	if hadWarnings {
		fmt.Fprintf(p.out, "\n%s\n", colorWarn("WARNING: issues found"))
		return
	}
	fmt.Fprintf(p.out, "\n%s\n", colorOK("no issues found"))
}

// hardenedVerdictText maps a hardened judgment to its colored line text.
func hardenedVerdictText(row Row) string {
	switch row.Hardened {
	case verdict.JudgeWarn:
		return colorWarn("WARNING: insecure dialect accepted")
	case verdict.JudgeInfo:
		return colorInfo("note: expected dialect was refused")
	default:
		if row.Result.Hardened.Connected {
			return colorOK("ok: dialect accepted")
		}
		return colorOK("ok: dialect refused")
	}
}

// weakenedVerdictText maps a weakened judgment to its colored line text.
func weakenedVerdictText(row Row) string {
	if row.Weakened == verdict.JudgeWarn {
		return colorWarn("WARNING: server accepts legacy authentication")
	}
	return colorOK("ok: legacy authentication refused")
}
