package nes

import "log"

// Bus implements the CPU's memory-access contract over a real console
// layout: internal RAM, the PPU register window, the APU/IO and
// cartridge-expansion windows (both unimplemented placeholders), and
// cartridge PRG-ROM.
//
//	0x0000-0x1FFF  2 KiB RAM, mirrored four times
//	0x2000-0x3FFF  PPU registers, mirrored every 8 bytes
//	0x4000-0x401F  APU / IO registers (unimplemented: read 0, write ignored)
//	0x4020-0x7FFF  cartridge expansion / SRAM (unimplemented)
//	0x8000-0xFFFF  PRG-ROM, mirrored when only one 16 KiB bank is present
type Bus struct {
	RAM       *RAM
	Cartridge *Cartridge
	PPU       PPURegisters
}

// NewBus wires RAM and a Cartridge into a Bus. ppu may be nil; a Bus
// without a PPU collaborator faults if the CPU ever touches its window,
// the same as flga-vnes's SysBus panicking on an address nothing claims.
func NewBus(cart *Cartridge, ppu PPURegisters) *Bus {
	return &Bus{
		RAM:       NewRAM(),
		Cartridge: cart,
		PPU:       ppu,
	}
}

func (b *Bus) Read(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.RAM.Read(address & 0x07FF)

	case address < 0x4000:
		if b.PPU == nil {
			panic("nes: PPU register read with no PPU attached")
		}
		return b.PPU.ReadRegister(byte(address & 0x2007))

	case address < 0x4020:
		log.Printf("nes: read from unimplemented APU/IO register 0x%04X", address)
		return 0

	case address < 0x8000:
		log.Printf("nes: read from unimplemented cartridge expansion/SRAM at 0x%04X", address)
		return 0

	default:
		return b.Cartridge.Read(address)
	}
}

func (b *Bus) Write(address uint16, value byte) {
	switch {
	case address < 0x2000:
		b.RAM.Write(address&0x07FF, value)

	case address < 0x4000:
		if b.PPU == nil {
			panic("nes: PPU register write with no PPU attached")
		}
		b.PPU.WriteRegister(byte(address&0x2007), value)

	case address < 0x4020:
		log.Printf("nes: write to unimplemented APU/IO register 0x%04X", address)

	case address < 0x8000:
		log.Printf("nes: write to unimplemented cartridge expansion/SRAM at 0x%04X", address)

	default:
		panic("nes: write to read-only PRG-ROM space")
	}
}
