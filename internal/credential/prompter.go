package credential

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter collects interactive input from the operator.
//
// Design decision: The resolver talks to an interface rather than the
// terminal directly so tests can script the dialogue. Only the terminal
// implementation below knows about echo suppression.
type Prompter interface {
	// Line prompts for one line of input. An empty answer yields def.
	Line(prompt, def string) (string, error)

	// Secret prompts for one line of input without echoing it.
	Secret(prompt string) (string, error)
}

// TerminalPrompter reads prompts from an input stream and writes them
// to an output stream. Secrets are read through the terminal driver
// with echo disabled when the input is a real terminal.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewTerminalPrompter creates a Prompter over stdin/stdout.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		fd:  int(os.Stdin.Fd()),
	}
}

// Line implements Prompter.
func (p *TerminalPrompter) Line(prompt, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Secret implements Prompter. When the input is not a terminal (for
// example when piped), it falls back to a plain line read; there is no
// echo to suppress in that case.
func (p *TerminalPrompter) Secret(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", prompt)

	if !term.IsTerminal(p.fd) {
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
