package cmd

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"dewi/internal/app"
	"dewi/pkg/config"
)

var (
	renderFact  string
	renderVibe  string
	renderVoice string
	renderMute  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Generate and render a single video from a fact",
	Long:  `Run the full pipeline once: script the fact, narrate it, and assemble the clip.`,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFact, "fact", "f", "", "Fact text to build the video from")
	renderCmd.Flags().StringVar(&renderVibe, "vibe", "", "Script vibe: hype, cozy, chaotic, unhinged")
	renderCmd.Flags().StringVar(&renderVoice, "voice", "seal", "Mascot voice: seal or penguin")
	renderCmd.Flags().BoolVar(&renderMute, "mute", false, "Skip narration audio")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderFact == "" {
		return errors.New("please provide --fact")
	}

	ctx := cmd.Context()
	cfg := config.Load()

	service, _, err := app.BuildService(cfg)
	if err != nil {
		return err
	}

	fact := service.AddFact(renderFact)
	video, err := service.GenerateVideo(ctx, fact.ID, renderVibe)
	if err != nil {
		return err
	}

	slog.Info("Script ready", "hook", video.Script.Hook, "vibe", video.Vibe, "ai", video.AIAvailable)

	result, err := service.RenderVideo(ctx, video.ID, !renderMute, renderVoice)
	if err != nil {
		return err
	}

	if result.Status == app.StatusPendingToolchain {
		slog.Warn("ffmpeg unavailable, wrote placeholder", "path", result.PlaceholderPath)
		return nil
	}

	slog.Info("Render complete", "path", result.VideoPath, "audio", result.AudioGenerated)
	return nil
}
