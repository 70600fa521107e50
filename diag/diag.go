// Package diag defines where the pipeline stages send their error messages.
package diag

import (
	"fmt"
	"io"

	"github.com/lagerfeuer/golox/token"
)

// Reporter receives static errors with a source location and runtime errors
// with the token they were raised at. Reporting never stops the caller.
type Reporter interface {
	Error(file string, line int, message string)
	RuntimeError(tok token.Token, message string)
}

// Writer formats every error as a single line on W.
type Writer struct {
	W io.Writer
}

func (w Writer) Error(file string, line int, message string) {
	fmt.Fprintf(w.W, "[Error] %v:%v\t%v\n", file, line, message)
}

func (w Writer) RuntimeError(tok token.Token, message string) {
	fmt.Fprintf(w.W, "[RuntimeError] %v:%v\t%v\n", tok.File, tok.Line, message)
}

// Diagnostic is a reported error as kept by Collector.
type Diagnostic struct {
	File    string
	Line    int
	Message string
	Runtime bool
}

// Collector keeps reported errors in order.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Error(file string, line int, message string) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{File: file, Line: line, Message: message})
}

func (c *Collector) RuntimeError(tok token.Token, message string) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{
		File: tok.File, Line: tok.Line, Message: message, Runtime: true,
	})
}

// Messages returns only the messages, handy for comparing in tests.
func (c *Collector) Messages() []string {
	ret := make([]string, len(c.Diagnostics))
	for i, d := range c.Diagnostics {
		ret[i] = d.Message
	}
	return ret
}

func (c *Collector) Reset() {
	c.Diagnostics = nil
}

// Discard drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Error(string, int, string)        {}
func (discard) RuntimeError(token.Token, string) {}
