package nes

// PPURegisters is the picture processing unit's register-window
// collaborator: the eight PPU-visible registers mirrored across
// 0x2000-0x3FFF. The PPU itself is out of scope for this core; a Bus
// built without one treats that window as unimplemented and faults on
// access, same as the teacher's own APU/controller ports do for
// addresses it never wired up.
type PPURegisters interface {
	ReadRegister(reg byte) byte
	WriteRegister(reg byte, value byte)
}
