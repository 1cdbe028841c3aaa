// Package cpu is a minimal riscv32 fetch and execute loop over pmem. It only
// knows enough instructions to run trivial guest programs and to stop on
// ebreak; it exists so the debugger shell has something to step.
package cpu

import (
	"errors"
	"fmt"
	"math"

	"github.com/GaryCAICHI/ysyx-workbench/go/pmem"
	"github.com/GaryCAICHI/ysyx-workbench/go/skerr"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
)

// State of a Machine.
type State int

const (
	Stop State = iota
	Running
	End
	Abort
	Quit
)

var stateNames = []string{"stop", "running", "end", "abort", "quit"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Continue passed to Exec runs until the guest stops by itself.
const Continue = math.MaxUint64

const (
	opOpImm = 0x13
	opLui   = 0x37
	opAuipc = 0x17
	opJal   = 0x6f

	instEbreak = 0x00100073
)

// ErrFinished is returned by Exec when the guest already ended or aborted.
var ErrFinished = errors.New("program execution has ended, to restart the program, exit and run again")

var regNames = [32]string{
	"$0", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// Register is a named register value.
type Register struct {
	Name  string
	Value uint32
}

// Machine is a single hart attached to a pmem.Memory.
type Machine struct {
	mem   *pmem.Memory
	pc    uint32
	gpr   [32]uint32
	state State

	// Set once the machine stops for good.
	haltPC  uint32
	haltRet uint32

	count uint64
}

// New returns a Machine whose pc points at the start of mem.
func New(mem *pmem.Memory) *Machine {
	return &Machine{
		mem:   mem,
		pc:    mem.Left(),
		state: Stop,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// SetState is used by the shell to mark the machine as quit.
func (m *Machine) SetState(s State) {
	m.state = s
}

// PC returns the program counter.
func (m *Machine) PC() uint32 {
	return m.pc
}

// InstructionCount is the number of instructions executed so far.
func (m *Machine) InstructionCount() uint64 {
	return m.count
}

// Registers returns pc followed by the general purpose registers.
func (m *Machine) Registers() []Register {
	ret := make([]Register, 0, len(regNames)+1)
	ret = append(ret, Register{Name: "pc", Value: m.pc})
	for i, name := range regNames {
		ret = append(ret, Register{Name: name, Value: m.gpr[i]})
	}
	return ret
}

// Exec executes up to n instructions. It stops early when the guest hits
// ebreak or an instruction it can't execute.
func (m *Machine) Exec(n uint64) error {
	switch m.state {
	case End, Abort, Quit:
		return ErrFinished
	}
	m.state = Running
	for ; n > 0 && m.state == Running; n-- {
		if err := m.step(); err != nil {
			m.state = Abort
			m.haltPC = m.pc
			return skerr.Wrapf(err, "aborted at pc = 0x%08x", m.pc)
		}
		m.count++
	}
	if m.state == Running {
		m.state = Stop
	}
	if m.state == End {
		sklog.Infof("Guest ended at pc = 0x%08x after %d instructions with code %d", m.haltPC, m.count, m.haltRet)
	}
	return nil
}

// Trap describes how the guest ended, e.g. "HIT GOOD TRAP at pc = 0x80000010".
// It is empty while the guest can still run.
func (m *Machine) Trap() string {
	switch m.state {
	case End:
		if m.haltRet == 0 {
			return fmt.Sprintf("HIT GOOD TRAP at pc = 0x%08x", m.haltPC)
		}
		return fmt.Sprintf("HIT BAD TRAP at pc = 0x%08x", m.haltPC)
	case Abort:
		return fmt.Sprintf("ABORT at pc = 0x%08x", m.haltPC)
	}
	return ""
}

// ExitStatusBad reports whether the guest ended any other way than a good
// trap or the user quitting.
func (m *Machine) ExitStatusBad() bool {
	switch m.state {
	case End:
		return m.haltRet != 0
	case Quit:
		return false
	}
	return true
}

func (m *Machine) step() error {
	inst, err := m.mem.Read(m.pc, 4)
	if err != nil {
		return skerr.Wrapf(err, "fetching instruction")
	}
	rd := (inst >> 7) & 0x1f
	rs1 := (inst >> 15) & 0x1f
	funct3 := (inst >> 12) & 0x7
	immI := uint32(int32(inst) >> 20)
	next := m.pc + 4

	switch {
	case inst == instEbreak:
		m.state = End
		m.haltPC = m.pc
		m.haltRet = m.gpr[10]
	case inst&0x7f == opLui:
		m.gpr[rd] = inst & 0xfffff000
	case inst&0x7f == opAuipc:
		m.gpr[rd] = m.pc + inst&0xfffff000
	case inst&0x7f == opJal:
		m.gpr[rd] = next
		next = m.pc + jalOffset(inst)
	case inst&0x7f == opOpImm && funct3 == 0: // addi
		m.gpr[rd] = m.gpr[rs1] + immI
	case inst&0x7f == opOpImm && funct3 == 4: // xori
		m.gpr[rd] = m.gpr[rs1] ^ immI
	case inst&0x7f == opOpImm && funct3 == 6: // ori
		m.gpr[rd] = m.gpr[rs1] | immI
	case inst&0x7f == opOpImm && funct3 == 7: // andi
		m.gpr[rd] = m.gpr[rs1] & immI
	default:
		return skerr.Fmt("invalid instruction 0x%08x", inst)
	}
	m.gpr[0] = 0
	m.pc = next
	return nil
}

// jalOffset decodes the sign extended J-type immediate.
func jalOffset(inst uint32) uint32 {
	imm := (inst>>31)&1<<20 |
		(inst>>12)&0xff<<12 |
		(inst>>20)&1<<11 |
		(inst>>21)&0x3ff<<1
	return uint32(int32(imm<<11) >> 11)
}
