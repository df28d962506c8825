package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gaugegrid/pkg/pipeline"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

func testModel(t *testing.T) cellModel {
	t.Helper()
	cfg := config.Default()
	cfg.Layout.Columns = 2
	items := []series.Item{
		{Label: "CPU", Data: []series.Point{{0, 30}}},
		{Label: "Memory", Data: []series.Point{{0, 70}}},
		{Label: "Disk", Data: []series.Point{{0, 95}}},
		{Label: "Idle"},
	}
	pass, err := computePass(context.Background(), pipeline.Options{Config: cfg, Series: items, Width: 600, Height: 400})
	if err != nil {
		t.Fatalf("computePass() error: %v", err)
	}
	return newCellModel(pass, items)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m cellModel, keys ...string) cellModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(cellModel)
	}
	return m
}

func TestCellModelNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"start", nil, 0},
		{"down", []string{"down"}, 1},
		{"up clamps", []string{"up", "up"}, 0},
		{"down clamps", []string{"j", "j", "j", "j", "j"}, 3},
		{"right stays in row", []string{"right", "right"}, 1},
		{"left stays in row", []string{"G", "left", "left"}, 2},
		{"last and first", []string{"G", "g"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := press(testModel(t), tt.keys...).cursor; got != tt.want {
				t.Errorf("cursor after %v = %d, want %d", tt.keys, got, tt.want)
			}
		})
	}
}

func TestCellModelQuit(t *testing.T) {
	_, cmd := testModel(t).Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestCellModelView(t *testing.T) {
	m := press(testModel(t), "down", "down")
	view := m.View()

	for _, want := range []string{"Gauge grid 2x2", "Disk", "color   red", "[3/4]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	idle := press(testModel(t), "G").View()
	if !strings.Contains(idle, "no data") {
		t.Errorf("View() for series without data missing placeholder:\n%s", idle)
	}
}
