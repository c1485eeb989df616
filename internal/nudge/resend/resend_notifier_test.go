package resend

import (
	"strings"
	"testing"

	"github.com/brk3/flexhabits/internal/nudge"
)

func TestRender(t *testing.T) {
	html, err := render([]nudge.AtRisk{
		{HabitID: "1", Name: "guitar", Streak: 4},
		{HabitID: "2", Name: "<script>", Streak: 1},
	}, "2026-02-12")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{"2026-02-12", "guitar: 4 day streak", "&lt;script&gt;"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in %s", want, html)
		}
	}
}
