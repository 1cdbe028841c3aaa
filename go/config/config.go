// Package config holds the configuration of the sdb debugger shell, read from
// a JSON5 file.
package config

import (
	"io"
	"reflect"

	"github.com/GaryCAICHI/ysyx-workbench/go/expr"
	"github.com/GaryCAICHI/ysyx-workbench/go/skerr"
	"github.com/GaryCAICHI/ysyx-workbench/go/util"
	"github.com/flynn/json5"
)

const (
	// DefaultMemBase is where guest physical memory starts, as on riscv32 NEMU.
	DefaultMemBase = 0x80000000

	// DefaultMemSize is the size of guest physical memory.
	DefaultMemSize = 0x8000000

	// MaxLiteralLength is the upper bound for SdbConfig.MaxLiteralLength.
	MaxLiteralLength = 31
)

// SdbConfig is the configuration of the sdb shell.
type SdbConfig struct {
	// Prompt printed before every line, e.g. "(nemu) ".
	Prompt string `json:"prompt"`

	// MemBase is the guest physical address of the first byte of memory.
	MemBase uint32 `json:"mem_base"`

	// MemSize is the number of bytes of guest memory.
	MemSize uint32 `json:"mem_size"`

	// MaxLiteralLength is the longest number literal, in digits, expressions
	// may contain.
	MaxLiteralLength int `json:"max_literal_length"`

	// MaxNestingDepth is the deepest parenthesis nesting expressions may use.
	MaxNestingDepth int `json:"max_nesting_depth"`

	// CacheSize is the number of evaluated expressions to remember. 0 turns
	// the cache off.
	CacheSize int `json:"cache_size" optional:"true"`

	// HistoryFile, if set, is where the line history is loaded from at start
	// up and saved to at exit.
	HistoryFile string `json:"history_file" optional:"true"`

	// PromPort, if set (e.g. ":20000"), serves Prometheus metrics.
	PromPort string `json:"prom_port" optional:"true"`

	// Batch runs the guest to completion without reading any commands.
	Batch bool `json:"batch"`
}

// Default returns the configuration used when no file is given.
func Default() *SdbConfig {
	return &SdbConfig{
		Prompt:           "(nemu) ",
		MemBase:          DefaultMemBase,
		MemSize:          DefaultMemSize,
		MaxLiteralLength: expr.DefaultMaxLiteralLength,
		MaxNestingDepth:  expr.DefaultMaxNestingDepth,
		CacheSize:        128,
	}
}

// Load returns the default configuration overlaid with the JSON5 file at
// path. An empty path returns the defaults.
func Load(path string) (*SdbConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	err := util.WithReadFile(path, func(r io.Reader) error {
		return json5.NewDecoder(r).Decode(cfg)
	})
	if err != nil {
		return nil, skerr.Wrapf(err, "reading config at %s", path)
	}
	if err := checkRequired(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, skerr.Wrapf(err, "config at %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, skerr.Wrapf(err, "config at %s", path)
	}
	return cfg, nil
}

// checkRequired returns an error if any non-bool field of the given value has
// a zero value *unless* it has an optional tag with value true.
func checkRequired(rValue reflect.Value) error {
	rType := rValue.Type()
	for i := 0; i < rValue.NumField(); i++ {
		field := rType.Field(i)
		if field.Type.Kind() == reflect.Bool {
			// For ease of use, booleans aren't compared against their zero value, since that would
			// effectively make them required to be true always.
			continue
		}
		if field.Tag.Get("optional") == "true" {
			continue
		}
		if rValue.Field(i).IsZero() {
			return skerr.Fmt("required field %s (%q) is zero", field.Name, field.Tag.Get("json"))
		}
	}
	return nil
}

// Validate returns an error if the values can not be used.
func (c *SdbConfig) Validate() error {
	if c.MemSize == 0 {
		return skerr.Fmt("mem_size must not be 0")
	}
	if uint64(c.MemBase)+uint64(c.MemSize) > 1<<32 {
		return skerr.Fmt("memory [0x%08x, +0x%x) does not fit in a 32 bit address space", c.MemBase, c.MemSize)
	}
	if c.MaxLiteralLength < 1 || c.MaxLiteralLength > MaxLiteralLength {
		return skerr.Fmt("max_literal_length must be in [1, %d], got %d", MaxLiteralLength, c.MaxLiteralLength)
	}
	if c.MaxNestingDepth < 1 {
		return skerr.Fmt("max_nesting_depth must be at least 1, got %d", c.MaxNestingDepth)
	}
	if c.CacheSize < 0 {
		return skerr.Fmt("cache_size must not be negative, got %d", c.CacheSize)
	}
	return nil
}

// ExprOptions returns the expression engine options described by c.
func (c *SdbConfig) ExprOptions() expr.Options {
	return expr.Options{
		MaxLiteralLength: c.MaxLiteralLength,
		MaxNestingDepth:  c.MaxNestingDepth,
		CacheSize:        c.CacheSize,
	}
}
