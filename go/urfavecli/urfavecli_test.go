package urfavecli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog/sklogimpl"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog/stdlogging"
)

type bufferLogger struct {
	lines []string
}

func (b *bufferLogger) Log(_ int, _ sklogimpl.Severity, format string, args ...interface{}) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

func (b *bufferLogger) Flush() {}

func TestLogFlags(t *testing.T) {
	logs := &bufferLogger{}
	sklog.SetLogger(logs)
	defer sklog.SetLogger(stdlogging.New(os.Stderr))

	app := &cli.App{
		Name: "testapp",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
		},
		Commands: []*cli.Command{
			{
				Name: "my-command",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "boolNotPassedIn"},
					&cli.BoolFlag{Name: "bool"},
					&cli.IntFlag{Name: "int"},
					&cli.StringFlag{Name: "string", Value: "default"},
				},
				Action: func(c *cli.Context) error {
					LogFlags(c)
					return nil
				},
			},
		},
	}
	// Don't print anything on stderr/stdout.
	oldHelpPrinter := cli.HelpPrinter
	cli.HelpPrinter = func(_ io.Writer, _ string, _ interface{}) {}
	defer func() {
		cli.HelpPrinter = oldHelpPrinter
	}()

	err := app.Run([]string{
		"testapp",
		"--config=sdb.json5",
		"my-command",
		"--bool",
		"--int=65",
	})
	require.NoError(t, err)

	flagLines := map[string]bool{}
	for _, line := range logs.lines {
		if strings.HasPrefix(line, "Flags:") {
			flagLines[strings.TrimPrefix(line, "Flags:")] = true
		}
	}
	for _, want := range []string{
		" --config=sdb.json5",
		" --boolNotPassedIn=false",
		" --bool=true",
		" --int=65",
		" --string=default",
	} {
		require.True(t, flagLines[want], "missing %q in %v", want, logs.lines)
	}
}
