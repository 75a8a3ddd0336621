package video

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"dewi/internal/script"
	"dewi/internal/storage"
)

const (
	defaultFFmpegPath = "ffmpeg"
	fallbackColor     = "0x667eea"
	placeholderSuffix = "_pending.json"
)

// Assembler muxes a background clip, timed text overlays, and optional
// narration audio into a single output file via ffmpeg. It is total
// over toolchain absence: when ffmpeg is missing or fails, it writes a
// placeholder artifact instead of erroring.
type Assembler struct {
	ffmpegPath  string
	outputDir   string
	width       int
	height      int
	duration    int
	fontFile    string
	backgrounds storage.BackgroundResolver

	probeOnce sync.Once
	probed    bool
}

type AssemblerOptions struct {
	FFmpegPath  string
	OutputDir   string
	Resolution  string
	Duration    int
	FontFile    string
	Backgrounds storage.BackgroundResolver
}

// AssembleResult reports where the artifact landed. Placeholder is true
// when the toolchain was unavailable or failed and a pending artifact
// was written instead of a playable file.
type AssembleResult struct {
	OutputPath  string
	Placeholder bool
}

func NewAssembler(opts AssemblerOptions) *Assembler {
	ffmpegPath := opts.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = defaultFFmpegPath
	}
	width, height := parseResolution(opts.Resolution)
	duration := opts.Duration
	if duration <= 0 {
		duration = script.DefaultDuration
	}

	return &Assembler{
		ffmpegPath:  ffmpegPath,
		outputDir:   opts.OutputDir,
		width:       width,
		height:      height,
		duration:    duration,
		fontFile:    opts.FontFile,
		backgrounds: opts.Backgrounds,
	}
}

func parseResolution(res string) (int, int) {
	parts := strings.Split(res, "x")
	if len(parts) != 2 {
		return 1080, 1920
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 1080, 1920
	}
	return w, h
}

// Available probes for ffmpeg once and caches the answer.
func (a *Assembler) Available() bool {
	a.probeOnce.Do(func() {
		a.probed = exec.Command(a.ffmpegPath, "-version").Run() == nil
	})
	return a.probed
}

// Assemble renders the script into outputDir/{outputName}.mp4. The
// output path is a pure function of outputName, so re-rendering with
// the same name overwrites rather than accumulates. The only error
// mode is a failed write of the artifact itself.
func (a *Assembler) Assemble(ctx context.Context, s *script.Script, audioPath, outputName string) (*AssembleResult, error) {
	if !a.Available() {
		slog.Warn("ffmpeg not installed, writing placeholder artifact")
		return a.writePlaceholder(s, outputName)
	}

	if err := os.MkdirAll(a.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(a.outputDir, outputName+".mp4")
	args := a.buildFFmpegArgs(s, audioPath, outputPath)

	cmd := exec.CommandContext(ctx, a.ffmpegPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		slog.Warn("ffmpeg failed, writing placeholder artifact", "error", err, "output", string(output))
		return a.writePlaceholder(s, outputName)
	}

	return &AssembleResult{OutputPath: outputPath}, nil
}

func (a *Assembler) buildFFmpegArgs(s *script.Script, audioPath, outputPath string) []string {
	duration := s.DurationSeconds
	if duration <= 0 {
		duration = a.duration
	}

	args := []string{"-y"}

	if bgPath, ok := a.backgrounds.BackgroundClip(s.Background); ok {
		args = append(args,
			"-stream_loop", "-1",
			"-i", bgPath,
			"-t", strconv.Itoa(duration),
		)
	} else {
		args = append(args,
			"-f", "lavfi",
			"-i", fmt.Sprintf("color=c=%s:s=%dx%d:d=%d", fallbackColor, a.width, a.height, duration),
		)
	}

	textFilter := a.buildTextFilter(BuildCues(s))

	if audioPath != "" {
		if _, err := os.Stat(audioPath); err == nil {
			args = append(args,
				"-i", audioPath,
				"-vf", textFilter,
				"-map", "0:v",
				"-map", "1:a",
				"-shortest",
				"-c:v", "libx264",
				"-preset", "fast",
				"-crf", "23",
				"-c:a", "aac",
				"-b:a", "128k",
				outputPath,
			)
			return args
		}
		slog.Warn("narration audio missing, rendering without audio", "path", audioPath)
	}

	args = append(args,
		"-vf", textFilter,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		outputPath,
	)
	return args
}

func (a *Assembler) buildTextFilter(cues []TextCue) string {
	filters := make([]string, 0, len(cues))
	for _, cue := range cues {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("drawtext=text='%s':", EscapeDrawText(cue.Text)))
		sb.WriteString(fmt.Sprintf("fontsize=%d:", cue.FontSize))
		sb.WriteString("fontcolor=white:")
		if a.fontFile != "" {
			sb.WriteString(fmt.Sprintf("fontfile=%s:", a.fontFile))
		}
		sb.WriteString("x=(w-text_w)/2:")
		sb.WriteString("y=(h-text_h)/2:")
		sb.WriteString(fmt.Sprintf("enable='between(t,%g,%g)':", cue.Start, cue.End))
		sb.WriteString("shadowcolor=black@0.5:shadowx=2:shadowy=2")
		filters = append(filters, sb.String())
	}
	return strings.Join(filters, ",")
}

type placeholder struct {
	Status     string         `json:"status"`
	Message    string         `json:"message"`
	Script     *script.Script `json:"script"`
	OutputName string         `json:"output_name"`
}

// PlaceholderPath returns the deterministic path of the pending
// artifact for a given output name.
func (a *Assembler) PlaceholderPath(outputName string) string {
	return filepath.Join(a.outputDir, outputName+placeholderSuffix)
}

func (a *Assembler) writePlaceholder(s *script.Script, outputName string) (*AssembleResult, error) {
	if err := os.MkdirAll(a.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(placeholder{
		Status:     "pending",
		Message:    "video assembly requires ffmpeg",
		Script:     s,
		OutputName: outputName,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal placeholder: %w", err)
	}

	outputPath := a.PlaceholderPath(outputName)
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return nil, fmt.Errorf("write placeholder: %w", err)
	}

	return &AssembleResult{OutputPath: outputPath, Placeholder: true}, nil
}
