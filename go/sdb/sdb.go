// Package sdb is the simple debugger: a command shell for inspecting and
// stepping the guest, whose numeric arguments are expressions evaluated by the
// expr package.
package sdb

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/GaryCAICHI/ysyx-workbench/go/cpu"
	"github.com/GaryCAICHI/ysyx-workbench/go/expr"
	"github.com/GaryCAICHI/ysyx-workbench/go/pmem"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
)

// LineReader supplies command lines. Prompt returns io.EOF when there is no
// more input.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
}

// errQuit is returned by a command handler to end the main loop.
var errQuit = errors.New("quit")

// Sdb is the debugger shell.
type Sdb struct {
	engine *expr.Engine
	mem    *pmem.Memory
	cpu    *cpu.Machine
	out    io.Writer
	prompt string
	batch  bool

	cmds []command
}

// New returns a shell writing its output to out.
func New(engine *expr.Engine, mem *pmem.Memory, machine *cpu.Machine, out io.Writer, prompt string, batch bool) *Sdb {
	s := &Sdb{
		engine: engine,
		mem:    mem,
		cpu:    machine,
		out:    out,
		prompt: prompt,
		batch:  batch,
	}
	s.cmds = s.commands()
	return s
}

// Mainloop reads and runs commands until input ends or q is entered. In
// batch mode the guest is run to completion and no input is read.
func (s *Sdb) Mainloop(lr LineReader) error {
	if s.batch {
		return s.cmdContinue("")
	}
	for {
		line, err := lr.Prompt(s.prompt)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lr.AppendHistory(line)
		if err := s.Execute(line); err == errQuit {
			return nil
		}
	}
}

// Execute runs a single command line. It returns errQuit for q, and nil
// otherwise; command failures are reported on the output.
func (s *Sdb) Execute(line string) error {
	name, args := splitCommand(line)
	if name == "" {
		return nil
	}
	for _, c := range s.cmds {
		if c.name != name {
			continue
		}
		err := c.handler(args)
		if err == errQuit {
			return err
		}
		if err != nil {
			sklog.Debugf("Command %q failed: %s", line, err)
			s.printf("%s\n", err)
		}
		return nil
	}
	s.printf("Unknown command '%s'\n", name)
	return nil
}

// splitCommand returns the first word of line and the rest, trimmed.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

func (s *Sdb) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

var (
	errorColor = color.New(color.FgRed, color.Bold)
	caretColor = color.New(color.FgGreen)
)

// evaluate runs text through the expression engine. On failure it prints a
// diagnostic pointing at the offending offset and the value must not be
// used.
func (s *Sdb) evaluate(text string) (expr.Word, bool) {
	v, err := s.engine.Evaluate(text)
	if err == nil {
		return v, true
	}
	_, _ = errorColor.Fprintf(s.out, "Illegal expression: %s\n", err)
	if off := expr.OffsetOf(err); off >= 0 {
		s.printf("%s\n", text)
		_, _ = caretColor.Fprintf(s.out, "%s^\n", caretPadding(text, off))
	}
	return 0, false
}

// caretPadding returns the whitespace that puts a caret under byte offset off
// of text: a tab for each tab and a space for every other rune.
func caretPadding(text string, off int) string {
	if off > len(text) {
		off = len(text)
	}
	var b strings.Builder
	for _, r := range text[:off] {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
