//go:build !tinygo

// Package hostterm shows the simulated display in a terminal using half-block
// cells, and feeds mouse clicks to the simulated panel.
package hostterm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tapmenu/hal"
)

const (
	// each terminal column covers CellWidth display pixels and each row two
	// half-block cells of CellHeight pixels
	CellWidth  = 6
	CellHeight = 6

	frameInterval = 50 * time.Millisecond
)

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
)

// Run draws h in the terminal and runs loop on its own goroutine. footer, if
// not nil, is rendered under the display every frame. It blocks until the
// user quits (q, esc, ctrl+c) or loop fails.
func Run(h *hal.Host, loop func(ctx context.Context) error, footer func() string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- loop(ctx)
	}()

	p := tea.NewProgram(newModel(h, done, footer), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok {
		return m.err
	}
	return nil
}

type frameMsg struct{}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

type model struct {
	h      *hal.Host
	done   <-chan error
	footer func() string

	pix  []byte
	down bool
	err  error
}

func newModel(h *hal.Host, done <-chan error, footer func() string) model {
	w, ht := h.DisplaySize()
	return model{
		h:      h,
		done:   done,
		footer: footer,
		pix:    make([]byte, w*ht*4),
	}
}

func (m model) Init() tea.Cmd {
	return frameCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		select {
		case err := <-m.done:
			if err != nil && !errors.Is(err, context.Canceled) {
				m.err = err
				return m, tea.Quit
			}
		default:
		}
		return m, frameCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.MouseMsg:
		x, y := CellToPixel(msg.X, msg.Y)
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.down = true
		case msg.Action == tea.MouseActionRelease:
			m.down = false
		case msg.Action == tea.MouseActionMotion && m.down:
		default:
			return m, nil
		}
		m.h.SetPointer(x, y, m.down)
	}
	return m, nil
}

// CellToPixel returns the display pixel under the centre of a terminal cell.
func CellToPixel(col, row int) (int, int) {
	return col*CellWidth + CellWidth/2, row*2*CellHeight + CellHeight
}

// GridSize is the number of terminal columns and rows the display needs.
func GridSize(w, h int) (int, int) {
	rowPx := 2 * CellHeight
	return (w + CellWidth - 1) / CellWidth, (h + rowPx - 1) / rowPx
}

func (m model) View() string {
	w, h := m.h.DisplaySize()
	m.h.SnapshotRGBA(m.pix)
	cols, rows := GridSize(w, h)

	var b strings.Builder
	for r := 0; r < rows; r++ {
		var run strings.Builder
		var cur lipgloss.Style
		var curKey string
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(cur.Render(run.String()))
				run.Reset()
			}
		}
		for c := 0; c < cols; c++ {
			px := c*CellWidth + CellWidth/2
			top := m.hex(px, r*2*CellHeight+CellHeight/2, w, h)
			bot := m.hex(px, r*2*CellHeight+CellHeight+CellHeight/2, w, h)
			key := top + bot
			if key != curKey {
				flush()
				curKey = key
				cur = lipgloss.NewStyle().
					Foreground(lipgloss.Color(top)).
					Background(lipgloss.Color(bot))
			}
			run.WriteString("▀")
		}
		flush()
		b.WriteByte('\n')
	}

	if m.footer != nil {
		b.WriteString(footerStyle.Render(m.footer()))
		b.WriteByte('\n')
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteByte('\n')
	}
	b.WriteString(footerStyle.Render("click to touch, q to quit"))
	return b.String()
}

func (m model) hex(x, y, w, h int) string {
	if x < 0 || y < 0 || x >= w || y >= h {
		return "#000000"
	}
	i := (y*w + x) * 4
	return fmt.Sprintf("#%02x%02x%02x", m.pix[i], m.pix[i+1], m.pix[i+2])
}
