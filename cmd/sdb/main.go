// sdb is a simple debugger for a riscv32 guest. Its commands take arithmetic
// expressions wherever they take numbers.
package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/GaryCAICHI/ysyx-workbench/go/config"
	"github.com/GaryCAICHI/ysyx-workbench/go/cpu"
	"github.com/GaryCAICHI/ysyx-workbench/go/expr"
	"github.com/GaryCAICHI/ysyx-workbench/go/metrics2"
	"github.com/GaryCAICHI/ysyx-workbench/go/pmem"
	"github.com/GaryCAICHI/ysyx-workbench/go/sdb"
	"github.com/GaryCAICHI/ysyx-workbench/go/skerr"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
	"github.com/GaryCAICHI/ysyx-workbench/go/urfavecli"
	"github.com/GaryCAICHI/ysyx-workbench/go/util"
)

// flag names
const (
	configFlagName   = "config"
	batchFlagName    = "batch"
	imageFlagName    = "image"
	logLevelFlagName = "log_level"
	promPortFlagName = "prom_port"
)

// builtinImage runs when no --image is given.
var builtinImage = []uint32{
	0x800002b7, // lui t0, 0x80000
	0x00000513, // addi a0, zero, 0
	0x00100073, // ebreak
}

func main() {
	exit(newApp(os.Stdout, os.Stderr).Run(os.Args))
}

// exit flushes the logs and ends the process with the code carried by err.
func exit(err error) {
	sklog.Flush()
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(ec.ExitCode())
	}
	if err != nil {
		sklog.Fatal(err)
	}
}

// newApp returns the sdb command line app. Errors, including exit codes, are
// returned from Run instead of ending the process.
func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:           "sdb",
		Usage:          "sdb is a simple debugger for a riscv32 guest.",
		Writer:         stdout,
		ErrWriter:      stderr,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configFlagName,
				Usage: "JSON5 config file, defaults are used if empty.",
			},
			&cli.BoolFlag{
				Name:  batchFlagName,
				Usage: "Run the guest to completion without reading commands.",
			},
			&cli.StringFlag{
				Name:  imageFlagName,
				Usage: "Raw binary image loaded at the memory base. A built-in image is used if empty.",
			},
			&cli.StringFlag{
				Name:  logLevelFlagName,
				Value: "info",
				Usage: "One of debug, info, warning, error.",
			},
			&cli.StringFlag{
				Name:  promPortFlagName,
				Usage: "Metrics service address (e.g., ':20000'), overrides the config file.",
			},
		},
		Before: func(c *cli.Context) error {
			if err := sklog.SetLevel(c.String(logLevelFlagName)); err != nil {
				return err
			}
			urfavecli.LogFlags(c)
			return nil
		},
		Action: runShell,
		Commands: []*cli.Command{
			{
				Name:      "eval",
				Usage:     "Evaluate each argument as an expression and print its value.",
				ArgsUsage: "EXPR...",
				Action:    runEval,
			},
		},
	}
}

func loadConfig(c *cli.Context) (*config.SdbConfig, error) {
	cfg, err := config.Load(c.String(configFlagName))
	if err != nil {
		return nil, err
	}
	if c.IsSet(batchFlagName) {
		cfg.Batch = c.Bool(batchFlagName)
	}
	if c.IsSet(promPortFlagName) {
		cfg.PromPort = c.String(promPortFlagName)
	}
	return cfg, nil
}

func newEngine(cfg *config.SdbConfig) (*expr.Engine, error) {
	opts := cfg.ExprOptions()
	if cfg.PromPort != "" {
		opts.Metrics = metrics2.DefaultClient()
	}
	return expr.New(opts)
}

func loadImage(mem *pmem.Memory, path string) error {
	if path == "" {
		var buf bytes.Buffer
		if err := binary.Write(&buf, binary.LittleEndian, builtinImage); err != nil {
			return skerr.Wrap(err)
		}
		_, err := mem.Load(&buf)
		return err
	}
	return util.WithReadFile(path, func(r io.Reader) error {
		n, err := mem.Load(r)
		if err != nil {
			return skerr.Wrapf(err, "loading %s", path)
		}
		sklog.Infof("Image %s is %s", path, humanize.IBytes(uint64(n)))
		return nil
	})
}

func runShell(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.PromPort != "" {
		srv, err := metrics2.Serve(cfg.PromPort)
		if err != nil {
			return err
		}
		defer func() {
			_ = srv.Shutdown(context.Background())
		}()
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	mem, err := pmem.New(cfg.MemBase, cfg.MemSize)
	if err != nil {
		return err
	}
	if err := loadImage(mem, c.String(imageFlagName)); err != nil {
		return err
	}
	machine := cpu.New(mem)
	shell := sdb.New(engine, mem, machine, c.App.Writer, cfg.Prompt, cfg.Batch)

	if cfg.Batch {
		if err := shell.Mainloop(nil); err != nil {
			return err
		}
	} else {
		term := sdb.NewTerminal(cfg.HistoryFile)
		err := shell.Mainloop(term)
		util.Close(term)
		if err != nil {
			return err
		}
	}
	if machine.ExitStatusBad() {
		return cli.Exit("", 1)
	}
	return nil
}

func runEval(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	failed := 0
	for _, text := range c.Args().Slice() {
		v, err := engine.Evaluate(text)
		if err != nil {
			failed++
			fmt.Fprintf(c.App.ErrWriter, "%q: %s\n", text, err)
			continue
		}
		fmt.Fprintln(c.App.Writer, v)
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d expressions are illegal", failed, c.Args().Len()), 1)
	}
	return nil
}
