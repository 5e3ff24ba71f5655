package cli

import (
	"bufio"
	"context"
	"io"
)

// getSimpleText, getMultiline, and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// TerminalPrompter collects credentials, confirmations, and messages on the
// terminal. It satisfies both the session gate's prompter capability and the
// pipeline's confirmer capability.
type TerminalPrompter struct {
	reader *bufio.Reader
	w      io.Writer
}

func NewTerminalPrompter(reader *bufio.Reader, w io.Writer) *TerminalPrompter {
	return &TerminalPrompter{reader: reader, w: w}
}

func (p *TerminalPrompter) Credentials(ctx context.Context) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	username, err := getSimpleText(p.reader, "Enter username", p.w)
	if err != nil {
		return "", "", err
	}

	password, err := getPassword(p.w)
	if err != nil {
		return "", "", err
	}

	return username, password, nil
}

func (p *TerminalPrompter) Notify(msg string) {
	printlnFn(msg)
}

func (p *TerminalPrompter) Retry(question string) bool {
	return GetYesNo(p.reader, question, p.w)
}

// Confirm gates destructive actions behind the same yes/no prompt.
func (p *TerminalPrompter) Confirm(question string) bool {
	return GetYesNo(p.reader, question, p.w)
}
