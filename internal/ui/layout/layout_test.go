package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestTextWidth(t *testing.T) {
	tests := []struct {
		width, want int
	}{
		{80, 76},
		{200, ReadableWidth},
		{10, 20},
	}
	for _, tt := range tests {
		if got := TextWidth(tt.width); got != tt.want {
			t.Errorf("TextWidth(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 30) || !IsTooSmall(100, 23) {
		t.Error("expected too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should be accepted")
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Results", "Overall 70%", 100)
	for _, want := range []string{"PMO Maturity", "Results", "Overall 70%"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "Quit"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if h := lipgloss.Height(frame); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
}
