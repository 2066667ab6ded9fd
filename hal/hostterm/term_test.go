//go:build !tinygo

package hostterm

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"tapmenu/hal"
)

func newTestModel(t *testing.T) (model, *hal.Host, chan error) {
	t.Helper()
	h := hal.NewHost(hal.HostConfig{Virtual: true, Out: &bytes.Buffer{}})
	done := make(chan error, 1)
	return newModel(h, done, func() string { return "status: Ready" }), h, done
}

func TestCellToPixel(t *testing.T) {
	x, y := CellToPixel(0, 0)
	if x != 3 || y != 6 {
		t.Fatalf("CellToPixel(0,0) = (%d,%d), want (3,6)", x, y)
	}
	x, y = CellToPixel(10, 6)
	if x != 63 || y != 78 {
		t.Fatalf("CellToPixel(10,6) = (%d,%d), want (63,78)", x, y)
	}
}

func TestGridSize(t *testing.T) {
	cols, rows := GridSize(480, 320)
	if cols != 80 || rows != 27 {
		t.Fatalf("GridSize(480,320) = (%d,%d), want (80,27)", cols, rows)
	}
}

func TestMousePressAndRelease(t *testing.T) {
	m, h, _ := newTestModel(t)

	next, _ := m.Update(tea.MouseMsg{X: 10, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(model)
	require.True(t, h.Touch().Touched())

	next, _ = m.Update(tea.MouseMsg{X: 10, Y: 6, Action: tea.MouseActionRelease})
	m = next.(model)
	require.False(t, h.Touch().Touched())

	// motion without a button held is not a touch
	next, _ = m.Update(tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionMotion})
	require.False(t, next.(model).down)
	require.False(t, h.Touch().Touched())
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestLoopErrorQuits(t *testing.T) {
	m, _, done := newTestModel(t)
	boom := errors.New("boom")
	done <- boom

	next, cmd := m.Update(frameMsg{})
	require.ErrorIs(t, next.(model).err, boom)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestViewCoversDisplay(t *testing.T) {
	m, h, _ := newTestModel(t)
	w, ht := h.DisplaySize()
	require.NoError(t, h.Display().FillRectangle(0, 0, int16(w), int16(ht), color.RGBA{R: 0xFF, A: 0xFF}))

	cols, rows := GridSize(w, ht)
	v := m.View()
	require.Equal(t, cols*rows, strings.Count(v, "▀"))
	require.Contains(t, v, "status: Ready")
}

func TestLogTail(t *testing.T) {
	tail := NewLogTail(2)
	_, _ = tail.Write([]byte("one\ntwo\nthr"))
	require.Equal(t, []string{"one", "two"}, tail.Lines())

	_, _ = tail.Write([]byte("ee\n"))
	require.Equal(t, []string{"two", "three"}, tail.Lines())
}
