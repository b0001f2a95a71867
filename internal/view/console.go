// Package view renders human-facing output for the CLI. The services
// only ever hand it final strings; nothing in the core branches on what
// the view does with them.
package view

import (
	"fmt"
	"io"
	"os"
)

// Console satisfies the View interface each domain service declares.
// Informational messages go to stdout, errors to stderr.
type Console struct {
	out io.Writer
	err io.Writer
}

func NewConsole() *Console {
	return &Console{out: os.Stdout, err: os.Stderr}
}

// NewConsoleWriter builds a console over arbitrary writers, used by
// tests to capture output.
func NewConsoleWriter(out, err io.Writer) *Console {
	return &Console{out: out, err: err}
}

func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.err, msg)
}
