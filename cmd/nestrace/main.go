// Command nestrace is a terminal debugger that drives a CPU with
// RunWithCallback and renders the register file and last-executed
// mnemonic live, the same role hejops-gone's cpu/debugger.go plays for
// its own CPU package, rebuilt here as a host on top of the public
// RunWithCallback trace hook rather than a method on the CPU itself.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/mtravis/nes6502/nes"
)

func main() {
	app := &cli.App{
		Name:  "nestrace",
		Usage: "step a 6502 program one instruction at a time in a TUI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "program",
				Aliases: []string{"p"},
				Usage:   "path to a raw 6502 binary, loaded at 0x8000",
			},
			&cli.StringFlag{
				Name:    "rom",
				Aliases: []string{"r"},
				Usage:   "path to an .nes cartridge (runs from its reset vector)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "nestrace:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cpu, err := loadCPU(c.String("program"), c.String("rom"))
	if err != nil {
		return err
	}

	m := newModel(cpu)
	_, err = tea.NewProgram(m).Run()
	return err
}

func loadCPU(programPath, romPath string) (*nes.CPU, error) {
	switch {
	case programPath != "":
		data, err := os.ReadFile(programPath)
		if err != nil {
			return nil, err
		}
		cpu := nes.NewCPU(nes.NewFlatMemory())
		cpu.Load(data)
		cpu.Reset()
		return cpu, nil

	case romPath != "":
		data, err := os.ReadFile(romPath)
		if err != nil {
			return nil, err
		}
		cart, err := nes.ParseCartridge(data)
		if err != nil {
			return nil, err
		}
		bus := nes.NewBus(cart, nil)
		cpu := nes.NewCPU(bus)
		cpu.Reset()
		return cpu, nil

	default:
		return nil, fmt.Errorf("one of --program or --rom is required")
	}
}

// The model's requests channel and stepResult shuttle single steps
// between the RunWithCallback goroutine and the TUI's Update loop: the
// callback blocks after every instruction until the model asks for the
// next one.
type stepResult struct {
	entry  nes.TraceEntry
	halted bool
	err    error
}

type model struct {
	cpu      *nes.CPU
	requests chan struct{}
	results  chan stepResult

	last    nes.TraceEntry
	history []string
	done    bool
	errMsg  string
}

func newModel(cpu *nes.CPU) *model {
	m := &model{
		cpu:      cpu,
		requests: make(chan struct{}),
		results:  make(chan stepResult, 1),
	}
	go m.drive()
	return m
}

// drive runs the CPU to completion on its own goroutine, pausing after
// every instruction to wait for a request from the TUI.
func (m *model) drive() {
	defer func() {
		if r := recover(); r != nil {
			m.results <- stepResult{err: fmt.Errorf("%v", r)}
		}
	}()

	<-m.requests
	m.cpu.RunWithCallback(func(cpu *nes.CPU, e nes.TraceEntry) {
		m.results <- stepResult{entry: e}
		<-m.requests
	})
	m.results <- stepResult{halted: true}
}

func waitForResult(results <-chan stepResult) tea.Cmd {
	return func() tea.Msg {
		return <-results
	}
}

func (m *model) Init() tea.Cmd {
	m.requests <- struct{}{}
	return waitForResult(m.results)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "n":
			if m.done {
				return m, nil
			}
			m.requests <- struct{}{}
			return m, waitForResult(m.results)
		}

	case stepResult:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.done = true
			return m, nil
		}
		if msg.halted {
			m.done = true
			return m, nil
		}
		m.last = msg.entry
		m.history = append(m.history, fmt.Sprintf("%04X  %-4s", msg.entry.PC, msg.entry.Mnemonic))
		if len(m.history) > 20 {
			m.history = m.history[len(m.history)-20:]
		}
	}
	return m, nil
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m *model) registers() string {
	p := m.last.P
	flagBit := func(mask nes.Flags, ch string) string {
		if p&mask != 0 {
			return ch
		}
		return "-"
	}
	flags := flagBit(nes.Negative, "N") + flagBit(nes.Overflow, "V") +
		flagBit(nes.Unused, "U") + flagBit(nes.Break, "B") +
		flagBit(nes.Decimal, "D") + flagBit(nes.InterruptDisable, "I") +
		flagBit(nes.Zero, "Z") + flagBit(nes.Carry, "C")

	return boxStyle.Render(fmt.Sprintf(
		"%s\nPC: %04X\n A: %02X\n X: %02X\n Y: %02X\nSP: %02X\n P: %s\nCycles: %d",
		labelStyle.Render("registers"),
		m.last.PC, m.last.A, m.last.X, m.last.Y, m.last.SP, flags, m.last.Cycles,
	))
}

func (m *model) trace() string {
	return boxStyle.Render(labelStyle.Render("trace") + "\n" + strings.Join(m.history, "\n"))
}

func (m *model) View() string {
	if m.errMsg != "" {
		return fmt.Sprintf("fault: %s\n\npress q to quit\n", m.errMsg)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.registers(), m.trace())
	footer := "space/n: step    q: quit"
	if m.done {
		footer = "halted    q: quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}
