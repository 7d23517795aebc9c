package nes

import (
	"errors"
	"testing"
)

func baseHeader() []byte {
	return []byte{'N', 'E', 'S', 0x1A, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
}

func withPRGRoM(h []byte) []byte {
	return append(append([]byte{}, h...), make([]byte, prgUnit)...)
}

func TestParseCartridge_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		rom     []byte
		wantErr error
	}{
		{"empty", nil, ErrTruncated},
		{"truncated header", []byte{'N', 'E', 'S', 0x1A, 1, 0}, ErrTruncated},
		{"bad magic", []byte{'N', 'O', 'S', 0x1A, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, ErrInvalidMagic},
		{"nes 2.0 version bits set", func() []byte {
			h := baseHeader()
			h[7] = 0x08
			return withPRGRoM(h)
		}(), ErrUnsupportedVersion},
		{"zero PRG units", func() []byte {
			h := baseHeader()
			h[4] = 0
			return h
		}(), ErrTruncated},
		{"PRG declared but missing", func() []byte {
			return baseHeader()
		}(), ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCartridge(tt.rom)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseCartridge() error = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseCartridge_Mirroring(t *testing.T) {
	tests := []struct {
		name   string
		flags6 byte
		want   Mirroring
	}{
		{"horizontal by default", 0x00, Horizontal},
		{"vertical bit", 0x01, Vertical},
		{"four-screen overrides mirroring bit", 0x09, FourScreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := baseHeader()
			h[6] = tt.flags6
			rom := withPRGRoM(h)

			c, err := ParseCartridge(rom)
			if err != nil {
				t.Fatalf("ParseCartridge() error = %v", err)
			}
			if c.Mirror != tt.want {
				t.Errorf("Mirror = %v, want %v", c.Mirror, tt.want)
			}
		})
	}
}

func TestParseCartridge_MapperAcrossNibbles(t *testing.T) {
	for _, mapper := range []byte{0, 1, 4, 42, 255} {
		h := baseHeader()
		h[6] = (h[6] & 0x0F) | (mapper << 4)
		h[7] = (h[7] & 0x0F) | (mapper & 0xF0)
		rom := withPRGRoM(h)

		c, err := ParseCartridge(rom)
		if err != nil {
			t.Fatalf("ParseCartridge() error = %v", err)
		}
		if c.Mapper != mapper {
			t.Errorf("Mapper = %d, want %d", c.Mapper, mapper)
		}
	}
}

func TestParseCartridge_TrainerAndBattery(t *testing.T) {
	h := baseHeader()
	h[6] = 0x04 | 0x02 // trainer + battery
	rom := append(append([]byte{}, h...), make([]byte, trainerLen)...)
	rom = append(rom, make([]byte, prgUnit)...)

	c, err := ParseCartridge(rom)
	if err != nil {
		t.Fatalf("ParseCartridge() error = %v", err)
	}
	if !c.HasTrainer || len(c.Trainer) != trainerLen {
		t.Errorf("HasTrainer = %v, len(Trainer) = %d, want true, %d", c.HasTrainer, len(c.Trainer), trainerLen)
	}
	if !c.HasBattery {
		t.Errorf("HasBattery = false, want true")
	}
}

func TestParseCartridge_SizesAndRead(t *testing.T) {
	h := baseHeader()
	h[4] = 2 // 32 KiB PRG
	h[5] = 1 // 8 KiB CHR
	rom := append(append([]byte{}, h...), make([]byte, 2*prgUnit+chrUnit)...)

	c, err := ParseCartridge(rom)
	if err != nil {
		t.Fatalf("ParseCartridge() error = %v", err)
	}
	if len(c.PRG) != 2*prgUnit {
		t.Errorf("len(PRG) = %d, want %d", len(c.PRG), 2*prgUnit)
	}
	if len(c.CHR) != chrUnit {
		t.Errorf("len(CHR) = %d, want %d", len(c.CHR), chrUnit)
	}
}

func TestCartridge_PRGMirroringFor16KiB(t *testing.T) {
	h := baseHeader()
	rom := withPRGRoM(h)
	c, err := ParseCartridge(rom)
	if err != nil {
		t.Fatalf("ParseCartridge() error = %v", err)
	}

	c.PRG[0x10] = 0x42
	for i := 0; i <= 0x3FFF; i++ {
		if c.Read(0x8000+uint16(i)) != c.Read(0xC000+uint16(i)) {
			t.Fatalf("PRG mirror mismatch at offset 0x%04X", i)
		}
	}
	if got := c.Read(0xC010); got != 0x42 {
		t.Errorf("Read(0xC010) = 0x%02X, want 0x42", got)
	}
}

func TestCartridge_WriteIsRejected(t *testing.T) {
	h := baseHeader()
	rom := withPRGRoM(h)
	c, err := ParseCartridge(rom)
	if err != nil {
		t.Fatalf("ParseCartridge() error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Write to PRG-ROM did not panic")
		}
	}()
	c.Write(0x8000, 0xFF)
}
