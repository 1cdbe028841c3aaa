// gen-expr prints random arithmetic expressions, one "value expr" per line,
// for testing the expression evaluator. With --check it evaluates them itself.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	"github.com/GaryCAICHI/ysyx-workbench/go/expr"
	"github.com/GaryCAICHI/ysyx-workbench/go/genexpr"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
	"github.com/GaryCAICHI/ysyx-workbench/go/timer"
	"github.com/GaryCAICHI/ysyx-workbench/go/urfavecli"
)

// flag names
const (
	seedFlagName    = "seed"
	checkFlagName   = "check"
	workersFlagName = "workers"
)

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

// newApp returns the gen-expr command line app. Errors, including exit codes,
// are returned from Run instead of ending the process.
func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:           "gen-expr",
		Usage:          "Generate random expressions together with their values.",
		ArgsUsage:      "[LOOP]",
		Writer:         stdout,
		ErrWriter:      stderr,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  seedFlagName,
				Value: time.Now().UnixNano(),
				Usage: "Seed for the random generator.",
			},
			&cli.BoolFlag{
				Name:  checkFlagName,
				Usage: "Evaluate the expressions instead of printing them and report every mismatch.",
			},
			&cli.IntFlag{
				Name:  workersFlagName,
				Value: runtime.NumCPU(),
				Usage: "Number of goroutines used by --check.",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	urfavecli.LogFlags(c)
	loop := 1
	if c.Args().Present() {
		n, err := strconv.Atoi(c.Args().First())
		if err != nil || n < 0 {
			return cli.Exit(fmt.Sprintf("LOOP must be a non-negative integer, got %q", c.Args().First()), 2)
		}
		loop = n
	}

	g := genexpr.New(genexpr.DefaultOptions(c.Int64(seedFlagName)))
	t := timer.New("generating expressions")
	cases := make([]genexpr.Case, 0, loop)
	for i := 0; i < loop; i++ {
		cases = append(cases, g.Generate())
	}
	t.Stop()

	if !c.Bool(checkFlagName) {
		w := bufio.NewWriter(c.App.Writer)
		for _, tc := range cases {
			fmt.Fprintf(w, "%d %s\n", tc.Want, tc.Expr)
		}
		return w.Flush()
	}

	e, err := expr.New(expr.DefaultOptions())
	if err != nil {
		return err
	}
	defer timer.New("checking expressions").Stop()
	if err := genexpr.Check(c.Context, e, cases, c.Int(workersFlagName)); err != nil {
		if merr, ok := err.(*multierror.Error); ok {
			for _, m := range merr.Errors {
				fmt.Fprintln(c.App.ErrWriter, m)
			}
			return cli.Exit(fmt.Sprintf("%d of %d expressions evaluated wrongly", merr.Len(), len(cases)), 1)
		}
		return err
	}
	fmt.Fprintf(c.App.Writer, "All %d expressions evaluated correctly.\n", len(cases))
	return nil
}
