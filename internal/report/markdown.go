package report

import (
	"io"

	"github.com/nao1215/markdown"

	"github.com/smbaudit/smbaudit/internal/verdict"
)

// WriteMarkdown renders the collected judgments as a Markdown document.
// It is a pure rendering of the same rows the Printer streamed; it
// never re-probes and never touches verdict state.
func WriteMarkdown(w io.Writer, host string, guestAccepted bool, rows []Row, hadWarnings bool) error {
	md := markdown.NewMarkdown(w)

	md.H1("SMB Security Posture Audit")
	md.PlainText("")
	md.BulletList(
		"Target: `"+host+"`",
		"Guest access: "+guestAccessText(guestAccepted),
	)
	md.PlainText("")

	tableRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, []string{
			row.Result.Entry.Dialect.String(),
			expectationText(row.Result.Entry.ExpectSupported),
			judgmentCell(row.Hardened, row.Result.Hardened.Connected),
			judgmentCell(row.Weakened, row.Result.Weakened.Connected),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Dialect", "Policy", "Hardened", "Weakened"},
		Rows:   tableRows,
	})
	md.PlainText("")

	md.H2("Verdict")
	if hadWarnings {
		md.PlainText("⚠️ issues found")
	} else {
		md.PlainText("✅ no issues found")
	}

	return md.Build()
}

// guestAccessText describes the anonymous-probe outcome.
func guestAccessText(accepted bool) string {
	if accepted {
		return "⚠️ accepted (warning)"
	}
	return "refused"
}

// expectationText describes the policy tag of a matrix entry.
func expectationText(expectSupported bool) string {
	if expectSupported {
		return "should support"
	}
	return "should refuse"
}

// judgmentCell renders one outcome cell.
func judgmentCell(j verdict.Judgment, connected bool) string {
	connText := "refused"
	if connected {
		connText = "connected"
	}
	switch j {
	case verdict.JudgeWarn:
		return "⚠️ " + connText
	case verdict.JudgeInfo:
		return "ℹ️ " + connText
	default:
		return "✅ " + connText
	}
}
