package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/danmaku/internal/core"
	"github.com/vovakirdan/danmaku/internal/storage"
)

// recordingGame remembers the inputs and deltas it was stepped with.
type recordingGame struct {
	frames []core.InputFrame
	deltas []time.Duration
}

func (g *recordingGame) ID() string { return "recording" }
func (g *recordingGame) Title() string { return "Recording" }
func (g *recordingGame) Reset(core.RuntimeConfig) error { return nil }
func (g *recordingGame) State() core.GameState { return core.GameState{} }
func (g *recordingGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "frame") }

func (g *recordingGame) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	copied := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			copied.Set(a)
		}
	}
	g.frames = append(g.frames, copied)
	g.deltas = append(g.deltas, dt)
	return core.StepResult{}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key      string
		expected core.Action
		quit     bool
	}{
		{"up", core.ActionUp, false},
		{"w", core.ActionUp, false},
		{"s", core.ActionDown, false},
		{"left", core.ActionLeft, false},
		{"d", core.ActionRight, false},
		{"enter", core.ActionConfirm, false},
		{"r", core.ActionRestart, false},
		{"p", core.ActionPause, false},
		{"esc", core.ActionPause, false},
		{"f2", core.ActionDebug, false},
		{"i", core.ActionInvincible, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tc.key))
			if action != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.key, action, tc.expected)
			}
			if quit != tc.quit {
				t.Errorf("MapKey(%q) quit = %v, expected %v", tc.key, quit, tc.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key      string
		expected MenuAction
	}{
		{"up", MenuActionUp},
		{"j", MenuActionDown},
		{"enter", MenuActionSelect},
		{"esc", MenuActionBack},
		{"tab", MenuActionRecords},
		{"q", MenuActionQuit},
		{"x", MenuActionNone},
	}

	for _, tc := range tests {
		msg := keyMsg(tc.key)
		if tc.key == "tab" {
			msg = tea.KeyMsg{Type: tea.KeyTab}
		}
		if result := km.MapKeyToMenuAction(msg); result != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.key, result, tc.expected)
		}
	}
}

func newTestModel() (Model, *recordingGame) {
	g := &recordingGame{}
	return NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60}), g
}

func TestHeldDirectionDecays(t *testing.T) {
	m, g := newTestModel()
	t0 := time.Unix(1000, 0)

	next, _ := m.handleKey(keyMsg("left"), t0)
	m = next.(Model)

	next, _ = m.handleTick(t0.Add(100 * time.Millisecond))
	m = next.(Model)
	next, _ = m.handleTick(t0.Add(holdWindow + 50*time.Millisecond))
	m = next.(Model)

	if !g.frames[0].Has(core.ActionLeft) {
		t.Error("first tick should hold left")
	}
	if g.frames[1].Has(core.ActionLeft) {
		t.Error("left still held after the hold window")
	}
}

func TestOppositeDirectionCancels(t *testing.T) {
	m, g := newTestModel()
	t0 := time.Unix(1000, 0)

	next, _ := m.handleKey(keyMsg("left"), t0)
	m = next.(Model)
	next, _ = m.handleKey(keyMsg("right"), t0.Add(10*time.Millisecond))
	m = next.(Model)
	next, _ = m.handleKey(keyMsg("up"), t0.Add(20*time.Millisecond))
	m = next.(Model)
	m.handleTick(t0.Add(30 * time.Millisecond))

	in := g.frames[0]
	if in.Has(core.ActionLeft) || !in.Has(core.ActionRight) || !in.Has(core.ActionUp) {
		t.Errorf("frame = %v, expected right and up held", in.Actions)
	}
}

func TestEdgeActionsLastOneTick(t *testing.T) {
	m, g := newTestModel()
	t0 := time.Unix(1000, 0)

	next, _ := m.handleKey(keyMsg("p"), t0)
	m = next.(Model)
	next, _ = m.handleTick(t0.Add(16 * time.Millisecond))
	m = next.(Model)
	m.handleTick(t0.Add(32 * time.Millisecond))

	if !g.frames[0].Has(core.ActionPause) {
		t.Error("first tick should carry the pause edge")
	}
	if g.frames[1].Has(core.ActionPause) {
		t.Error("pause edge repeated on the second tick")
	}
}

func TestTickMeasuresWallClock(t *testing.T) {
	m, g := newTestModel()
	t0 := time.Unix(1000, 0)

	next, _ := m.handleTick(t0)
	m = next.(Model)
	next, _ = m.handleTick(t0.Add(20 * time.Millisecond))
	m = next.(Model)
	m.handleTick(t0.Add(70 * time.Millisecond))

	expected := []time.Duration{0, 20 * time.Millisecond, 50 * time.Millisecond}
	for i, dt := range expected {
		if g.deltas[i] != dt {
			t.Errorf("delta[%d] = %v, expected %v", i, g.deltas[i], dt)
		}
	}
}

func TestViewReservesHelpRow(t *testing.T) {
	m, _ := newTestModel()
	if m.screen.Height() != 11 {
		t.Errorf("screen height = %d, expected 11", m.screen.Height())
	}

	next, _ := m.handleResize(tea.WindowSizeMsg{Width: 100, Height: 20})
	m = next.(Model)
	if m.screen.Width() != 100 || m.screen.Height() != 19 {
		t.Errorf("screen = %dx%d, expected 100x19", m.screen.Width(), m.screen.Height())
	}

	view := m.View()
	if !strings.Contains(view, "frame") || !strings.Contains(view, "quit") {
		t.Errorf("View() = %q, expected game frame and help bar", view)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorBrightRed)
	s.SetColor(2, 0, 'c', core.ColorGray)
	s.Set(0, 1, 'd')

	out := RenderScreen(s)
	for _, want := range []string{"a", "b", "c", "d"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() missing %q in %q", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", lines)
	}
}

func TestRunRows(t *testing.T) {
	runs := []storage.Run{
		{SurvivalTime: 42.3, Difficulty: 3.5, CreatedAt: time.Date(2025, 1, 2, 15, 4, 0, 0, time.UTC)},
		{SurvivalTime: 7, Difficulty: 1},
	}
	rows := runRows(runs)
	if len(rows) != 2 {
		t.Fatalf("runRows() len = %d, expected 2", len(rows))
	}
	first := rows[0]
	if first[0] != "#1" || first[1] != "42.3s" || first[2] != "3.50" || first[3] != "Jan 02 15:04" {
		t.Errorf("runRows()[0] = %v", first)
	}
	if rows[1][0] != "#2" || rows[1][1] != "7.0s" {
		t.Errorf("runRows()[1] = %v", rows[1])
	}
}

func TestRecordsModelWithoutStore(t *testing.T) {
	m := NewRecordsModel(nil, 100, 30)
	if len(m.runs) != 0 {
		t.Errorf("runs = %d, expected 0 without a store", len(m.runs))
	}
	if view := m.View(); !strings.Contains(view, "No runs recorded yet") {
		t.Error("View() should show the empty message")
	}
}
