package nes

// Memory is anything the CPU can read and write a byte at a time by
// 16-bit address. Go interfaces carry no default method bodies, so the
// little-endian 16-bit helpers below are free functions built on top of
// Read/Write rather than interface methods, same trick the Rust original
// plays with a default trait method.
type Memory interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

// ReadU16 reads a little-endian 16-bit value at addr and addr+1.
func ReadU16(m Memory, addr uint16) uint16 {
	lo := uint16(m.Read(addr))
	hi := uint16(m.Read(addr + 1))
	return hi<<8 | lo
}

// WriteU16 writes data as a little-endian 16-bit value at addr and addr+1.
func WriteU16(m Memory, addr uint16, data uint16) {
	lo := byte(data & 0xFF)
	hi := byte(data >> 8)
	m.Write(addr, lo)
	m.Write(addr+1, hi)
}

// FlatMemory is a trivial 64 KiB address space with no mirroring or
// device windows. It backs the CPU's own unit tests so instruction
// semantics can be verified without wiring up a full Bus/Cartridge, and
// is exported for hosts (cmd/nestrace) that want to single-step a raw
// program with the same no-frills address space.
type FlatMemory struct {
	data [0x10000]byte
}

func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

func (m *FlatMemory) Read(addr uint16) byte {
	return m.data[addr]
}

func (m *FlatMemory) Write(addr uint16, value byte) {
	m.data[addr] = value
}
