package sdb

import (
	"io"
	"os"

	"github.com/peterh/liner"

	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
	"github.com/GaryCAICHI/ysyx-workbench/go/util"
)

// Terminal is a LineReader with line editing and history.
type Terminal struct {
	state       *liner.State
	historyFile string
}

// NewTerminal takes over the terminal. If historyFile is not empty, the
// history is loaded from it and saved back by Close.
func NewTerminal(historyFile string) *Terminal {
	t := &Terminal{
		state:       liner.NewLiner(),
		historyFile: historyFile,
	}
	t.state.SetCtrlCAborts(true)
	if historyFile != "" {
		err := util.WithReadFile(historyFile, func(r io.Reader) error {
			_, err := t.state.ReadHistory(r)
			return err
		})
		if err != nil && !os.IsNotExist(err) {
			sklog.Warningf("Failed to load history from %s: %s", historyFile, err)
		}
	}
	return t
}

// Prompt implements LineReader. Ctrl-C discards the current line.
func (t *Terminal) Prompt(prompt string) (string, error) {
	line, err := t.state.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", nil
	}
	return line, err
}

// AppendHistory implements LineReader.
func (t *Terminal) AppendHistory(line string) {
	t.state.AppendHistory(line)
}

// Close saves the history and gives the terminal back.
func (t *Terminal) Close() error {
	if t.historyFile != "" {
		err := util.WithWriteFile(t.historyFile, func(w io.Writer) error {
			_, err := t.state.WriteHistory(w)
			return err
		})
		if err != nil {
			sklog.Warningf("Failed to save history to %s: %s", t.historyFile, err)
		}
	}
	return t.state.Close()
}
