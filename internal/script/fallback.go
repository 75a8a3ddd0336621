package script

const (
	fallbackHook       = "Okay but like..."
	fallbackBackground = "subway_surfers"
	fallbackAudioVibe  = "phonk"

	fallbackBodyLimit   = 40
	fallbackRepeatLimit = 35
)

// Fallback synthesizes a script without any external dependency. It is
// used whenever the generation capability is unconfigured, errors, or
// returns output that does not parse. It cannot fail.
func Fallback(factText, vibe string) *Script {
	return &Script{
		Hook: fallbackHook,
		Body: []string{
			truncate(factText, fallbackBodyLimit, "..."),
			"This is actually SO important",
			"Remember this fr fr",
		},
		RepeatPhrase: truncate(factText, fallbackRepeatLimit, ""),
		MascotCues: []MascotCue{
			{Timestamp: "0:05", Character: "penguin", Action: "directing"},
			{Timestamp: "0:10", Character: "seal", Action: "clapping"},
		},
		Background:      fallbackBackground,
		AudioVibe:       fallbackAudioVibe,
		DurationSeconds: DefaultDuration,
	}
}

func truncate(s string, limit int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + suffix
}
