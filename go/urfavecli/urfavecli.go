// Package urfavecli contains helpers for programs built on
// github.com/urfave/cli/v2.
package urfavecli

import (
	"github.com/urfave/cli/v2"

	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
)

// LogFlags logs the value of every flag of the app and of the running
// command, one "Flags: --name=value" line each.
func LogFlags(c *cli.Context) {
	flags := append([]cli.Flag{}, c.App.Flags...)
	if c.Command != nil {
		flags = append(flags, c.Command.Flags...)
	}
	seen := map[string]bool{}
	for _, f := range flags {
		name := f.Names()[0]
		if seen[name] {
			continue
		}
		seen[name] = true
		sklog.Infof("Flags: --%s=%v", name, c.Value(name))
	}
}
