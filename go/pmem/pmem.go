// Package pmem models the guest's physical memory: a contiguous little-endian
// byte array mapped at a base address.
package pmem

import (
	"encoding/binary"
	"io"

	"github.com/GaryCAICHI/ysyx-workbench/go/skerr"
	"github.com/GaryCAICHI/ysyx-workbench/go/sklog"
)

// Memory is guest physical memory covering [Left(), Right()].
type Memory struct {
	base uint32
	data []byte
}

// New returns zeroed memory of size bytes starting at base.
func New(base, size uint32) (*Memory, error) {
	if size == 0 {
		return nil, skerr.Fmt("memory size must not be 0")
	}
	if uint64(base)+uint64(size) > 1<<32 {
		return nil, skerr.Fmt("memory [0x%08x, +0x%x) does not fit in 32 bits", base, size)
	}
	return &Memory{
		base: base,
		data: make([]byte, size),
	}, nil
}

// Left is the lowest valid address.
func (m *Memory) Left() uint32 {
	return m.base
}

// Right is the highest valid address.
func (m *Memory) Right() uint32 {
	return m.base + uint32(len(m.data)) - 1
}

// Size in bytes.
func (m *Memory) Size() uint64 {
	return uint64(len(m.data))
}

// InRange reports whether [addr, addr+n) lies inside the memory.
func (m *Memory) InRange(addr uint32, n uint64) bool {
	if addr < m.base {
		return false
	}
	return uint64(addr-m.base)+n <= m.Size()
}

func (m *Memory) check(addr uint32, n uint64) error {
	if !m.InRange(addr, n) {
		return skerr.Fmt("address range [0x%08x, +%d) is outside of pmem [0x%08x, 0x%08x]", addr, n, m.Left(), m.Right())
	}
	return nil
}

// Load copies an image into memory starting at the base address and returns
// the number of bytes read. Images larger than memory are an error.
func (m *Memory) Load(r io.Reader) (int, error) {
	n, err := io.ReadFull(r, m.data)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		sklog.Infof("Loaded %d byte image at 0x%08x", n, m.base)
		return n, nil
	}
	if err != nil {
		return n, skerr.Wrapf(err, "loading image")
	}
	// Memory is full, make sure the image is not larger.
	var extra [1]byte
	if k, _ := r.Read(extra[:]); k > 0 {
		return n, skerr.Fmt("image is larger than the %d bytes of memory", len(m.data))
	}
	sklog.Infof("Loaded %d byte image at 0x%08x", n, m.base)
	return n, nil
}

// Read returns the little-endian value of size bytes at addr. size must be 1, 2 or 4.
func (m *Memory) Read(addr uint32, size int) (uint32, error) {
	if err := m.check(addr, uint64(size)); err != nil {
		return 0, err
	}
	off := addr - m.base
	switch size {
	case 1:
		return uint32(m.data[off]), nil
	case 2:
		return uint32(binary.LittleEndian.Uint16(m.data[off:])), nil
	case 4:
		return binary.LittleEndian.Uint32(m.data[off:]), nil
	}
	return 0, skerr.Fmt("unsupported read size %d", size)
}

// Write stores the low size bytes of v at addr, little-endian. size must be 1, 2 or 4.
func (m *Memory) Write(addr uint32, size int, v uint32) error {
	if err := m.check(addr, uint64(size)); err != nil {
		return err
	}
	off := addr - m.base
	switch size {
	case 1:
		m.data[off] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(m.data[off:], uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(m.data[off:], v)
	default:
		return skerr.Fmt("unsupported write size %d", size)
	}
	return nil
}

// Bytes returns a copy of n bytes starting at addr.
func (m *Memory) Bytes(addr uint32, n uint64) ([]byte, error) {
	if err := m.check(addr, n); err != nil {
		return nil, err
	}
	off := uint64(addr - m.base)
	ret := make([]byte, n)
	copy(ret, m.data[off:off+n])
	return ret, nil
}
