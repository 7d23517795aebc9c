// Command nesinfo loads an iNES file and prints its parsed cartridge
// header, the way master-g-childhood's dumper/chr2png tools report on a
// ROM before doing anything else with it.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/mtravis/nes6502/nes"
)

func main() {
	app := &cli.App{
		Name:  "nesinfo",
		Usage: "print the parsed iNES header of a cartridge file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "rom",
				Aliases:  []string{"r"},
				Usage:    "path to an .nes file",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			return dump(c.String("rom"))
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "nesinfo:", err)
		os.Exit(1)
	}
}

func dump(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cart, err := nes.ParseCartridge(data)
	if err != nil {
		return err
	}

	fmt.Printf("mapper:      %d\n", cart.Mapper)
	fmt.Printf("mirroring:   %s\n", cart.Mirror)
	fmt.Printf("PRG-ROM:     %d KiB (%d bank(s))\n", len(cart.PRG)/1024, len(cart.PRG)/(16*1024))
	fmt.Printf("CHR-ROM:     %d KiB (%d bank(s))\n", len(cart.CHR)/1024, len(cart.CHR)/(8*1024))
	fmt.Printf("trainer:     %t\n", cart.HasTrainer)
	fmt.Printf("battery:     %t\n", cart.HasBattery)

	return nil
}
