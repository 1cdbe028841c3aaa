package sdb

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/GaryCAICHI/ysyx-workbench/go/cpu"
)

type command struct {
	name        string
	description string
	handler     func(args string) error
}

func (s *Sdb) commands() []command {
	return []command{
		{"help", "Display information about all supported commands", s.cmdHelp},
		{"c", "Continue the execution of the program", s.cmdContinue},
		{"q", "Exit NEMU", s.cmdQuit},
		{"si", "Step N instructions, N is an expression and defaults to 1", s.cmdStep},
		{"info", "r: Print register status; m: Print memory layout", s.cmdInfo},
		{"x", "x N EXPR: Print N 4-byte words of memory starting at address EXPR", s.cmdExamine},
		{"p", "p EXPR: Print the value of the expression EXPR", s.cmdPrint},
	}
}

func (s *Sdb) cmdHelp(args string) error {
	name, _ := splitCommand(args)
	if name == "" {
		table := tablewriter.NewWriter(s.out)
		table.SetHeader([]string{"Command", "Description"})
		table.SetAutoWrapText(false)
		table.SetBorder(false)
		for _, c := range s.cmds {
			table.Append([]string{c.name, c.description})
		}
		table.Render()
		return nil
	}
	for _, c := range s.cmds {
		if c.name == name {
			s.printf("%s - %s\n", c.name, c.description)
			return nil
		}
	}
	s.printf("Unknown command '%s'\n", name)
	return nil
}

func (s *Sdb) cmdContinue(string) error {
	return s.exec(cpu.Continue)
}

func (s *Sdb) cmdQuit(string) error {
	s.cpu.SetState(cpu.Quit)
	return errQuit
}

func (s *Sdb) cmdStep(args string) error {
	n := uint64(1)
	if args != "" {
		v, ok := s.evaluate(args)
		if !ok {
			return nil
		}
		n = uint64(v)
	}
	return s.exec(n)
}

// exec runs the guest and reports how it ended, if it did.
func (s *Sdb) exec(n uint64) error {
	err := s.cpu.Exec(n)
	if errors.Is(err, cpu.ErrFinished) {
		s.printf("Program execution has ended. To restart the program, exit NEMU and run again.\n")
		return nil
	}
	if trap := s.cpu.Trap(); trap != "" {
		s.printf("nemu: %s\n", trap)
		s.printf("nemu: total guest instructions = %s\n", humanize.Comma(int64(s.cpu.InstructionCount())))
	}
	return err
}

func (s *Sdb) cmdInfo(args string) error {
	switch args {
	case "r":
		table := tablewriter.NewWriter(s.out)
		table.SetBorder(false)
		table.SetAutoWrapText(false)
		for _, r := range s.cpu.Registers() {
			table.Append([]string{r.Name, hex32(r.Value), humanize.Comma(int64(r.Value))})
		}
		table.Render()
	case "m":
		s.printf("pmem: [0x%08x, 0x%08x] %s\n", s.mem.Left(), s.mem.Right(), humanize.IBytes(s.mem.Size()))
	default:
		s.printf("Invalid argument!\n")
	}
	return nil
}

func (s *Sdb) cmdExamine(args string) error {
	count, rest := splitCommand(args)
	if count == "" || rest == "" {
		s.printf("Missing argument(s)!\n")
		return nil
	}
	n, ok := s.evaluate(count)
	if !ok {
		return nil
	}
	addr, ok := s.evaluate(rest)
	if !ok {
		return nil
	}
	if !s.mem.InRange(uint32(addr), 4*uint64(n)) {
		s.printf("Address range 0x%08x + %d words is outside of pmem [0x%08x, 0x%08x]!\n", uint32(addr), n, s.mem.Left(), s.mem.Right())
		return nil
	}
	b, err := s.mem.Bytes(uint32(addr), 4*uint64(n))
	if err != nil {
		return err
	}
	for i := 0; i < len(b); i += 4 {
		s.printf("0x%08X: %02X %02X %02X %02X\n", uint32(addr)+uint32(i), b[i+3], b[i+2], b[i+1], b[i])
	}
	return nil
}

func (s *Sdb) cmdPrint(args string) error {
	if args == "" {
		s.printf("Missing argument(s)!\n")
		return nil
	}
	v, ok := s.evaluate(args)
	if !ok {
		return nil
	}
	s.printf("%d (%s)\n", v, hex32(uint32(v)))
	return nil
}

func hex32(v uint32) string {
	return fmt.Sprintf("0x%08x", v)
}
