package video

import (
	"strings"
	"testing"

	"dewi/internal/script"
)

func testScript(body ...string) *script.Script {
	return &script.Script{
		Hook:            "Did you know this?",
		Body:            body,
		RepeatPhrase:    "remember it",
		Background:      "subway_surfers",
		AudioVibe:       "phonk",
		DurationSeconds: script.DefaultDuration,
	}
}

func TestBuildCuesPartition(t *testing.T) {
	// Hook + 2 body lines + repeat = 4 windows of 3.75s each.
	cues := BuildCues(testScript("first fact line", "second fact line"))

	if len(cues) != 4 {
		t.Fatalf("len(cues) = %d, want 4", len(cues))
	}

	wantWindows := [][2]float64{
		{0, 3.75},
		{3.75, 7.5},
		{7.5, 11.25},
		{11.25, 15},
	}
	for i, want := range wantWindows {
		if cues[i].Start != want[0] || cues[i].End != want[1] {
			t.Errorf("cue %d window = [%g, %g), want [%g, %g)", i, cues[i].Start, cues[i].End, want[0], want[1])
		}
	}
}

func TestBuildCuesContiguous(t *testing.T) {
	for lines := 1; lines <= 7; lines++ {
		body := make([]string, lines)
		for i := range body {
			body[i] = "line"
		}
		cues := BuildCues(testScript(body...))

		if cues[0].Start != 0 {
			t.Errorf("%d lines: first cue starts at %g, want 0", lines, cues[0].Start)
		}
		for i := 1; i < len(cues); i++ {
			if cues[i].Start != cues[i-1].End {
				t.Errorf("%d lines: cue %d starts at %g, previous ends at %g", lines, i, cues[i].Start, cues[i-1].End)
			}
		}
		if last := cues[len(cues)-1]; last.End != 15 {
			t.Errorf("%d lines: last cue ends at %g, want exactly 15", lines, last.End)
		}
	}
}

func TestFontSizeFor(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{"shortLine", strings.Repeat("a", 10), FontSizeLarge},
		{"mediumLine", strings.Repeat("a", 40), FontSizeMedium},
		{"longLine", strings.Repeat("a", 60), FontSizeSmall},
		{"boundaryMedium", strings.Repeat("a", 30), FontSizeMedium},
		{"boundarySmall", strings.Repeat("a", 50), FontSizeSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fontSizeFor(tt.line); got != tt.want {
				t.Errorf("fontSizeFor(%d runes) = %d, want %d", len(tt.line), got, tt.want)
			}
		})
	}
}

func TestEscapeDrawTextRoundTrip(t *testing.T) {
	inputs := []string{
		"plain text",
		"it's 10:30",
		`back\slash`,
		"colons: everywhere: here",
		"''",
	}

	for _, in := range inputs {
		escaped := EscapeDrawText(in)
		if got := UnescapeDrawText(escaped); got != in {
			t.Errorf("round trip of %q = %q via %q", in, got, escaped)
		}
	}
}

func TestEscapeDrawText(t *testing.T) {
	if got := EscapeDrawText("it's 10:30"); got != `it\'s 10\:30` {
		t.Errorf("EscapeDrawText() = %q", got)
	}
}
