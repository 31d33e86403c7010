package driver

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"invaders8080/cpu"
)

// model is the bubbletea model backing Debug: a single-step 8080 inspector
// that renders registers, flags, the arcade I/O ports, and a fixed page of
// memory after every step. The page starts at the program counter Debug was
// entered with and does not follow PC; the byte at PC is highlighted when PC
// lies inside it.
type model struct {
	m      *cpu.Machine
	offset uint16 // first address shown by pageTable
	prevPC uint16
	err    error
	lastOp string
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.m.PC
			trace := func(state *cpu.Machine, format string, args ...any) {
				m.lastOp = fmt.Sprintf(format, args...)
			}
			if _, err := cpu.Step(m.m, trace); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders one 16-byte row of memory, highlighting the byte at PC.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	for i := uint16(0); i < 16; i++ {
		b := m.m.Mem.Read(start + i)
		if start+i == m.m.PC {
			s += fmt.Sprintf("[%02X] ", b)
		} else {
			s += fmt.Sprintf(" %02X  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "addr | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01X  ", b)
	}
	rows := []string{header}
	base := m.offset &^ 0x0F
	for row := uint16(0); row < 8; row++ {
		rows = append(rows, m.renderPage(base+row*16))
	}
	return strings.Join(rows, "\n")
}

func (m model) status() string {
	f := m.m.Flags
	flagLine := fmt.Sprintf("S=%s Z=%s P=%s Y=%s", onOff(f.S), onOff(f.Z), onOff(f.P), onOff(f.Y))
	return fmt.Sprintf(`
PC: %04X (was %04X)
SP: %04X
A=%02X B=%02X C=%02X D=%02X E=%02X HL=%04X
%s
icount=%d cycle=%d IE=%v
shifter hi=%02X lo=%02X off=%d
port3=%02X port5=%02X
%s
`,
		m.m.PC, m.prevPC, m.m.SP,
		m.m.A, m.m.B, m.m.C, m.m.D, m.m.E, m.m.HL(),
		flagLine,
		m.m.ICount, m.m.Cycle, m.m.InterruptsEnabled,
		m.m.Shifter.Hi, m.m.Shifter.Lo, m.m.Shifter.Offset,
		m.m.Port3, m.m.Port5,
		m.lastOp,
	)
}

func onOff(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (m model) View() string {
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
	)
	if m.err != nil {
		return body + "\n" + spew.Sdump(m.err)
	}
	return body
}

// Debug starts an interactive single-step TUI over an already-loaded
// Machine. Space or j retires one instruction; q quits. It blocks until the
// user quits or the machine halts.
func Debug(m *cpu.Machine) error {
	p := tea.NewProgram(model{m: m, offset: m.PC})
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
