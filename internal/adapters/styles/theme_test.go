package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestColumnPadsToVisibleWidth(t *testing.T) {
	got := Column(Code, "A1", 5)
	if w := lipgloss.Width(got); w != 5 {
		t.Errorf("visible width = %d, want 5 (%q)", w, got)
	}

	wide := Column(Label, "longer than width", 4)
	if w := lipgloss.Width(wide); w != len("longer than width") {
		t.Errorf("text should not be truncated, got width %d", w)
	}
}

func TestMaxWidth(t *testing.T) {
	if got := MaxWidth([]string{"A", "X2Y", "AB"}); got != 3 {
		t.Errorf("MaxWidth = %d, want 3", got)
	}
	if got := MaxWidth(nil); got != 0 {
		t.Errorf("MaxWidth(nil) = %d, want 0", got)
	}
}
