package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for Dewi",
	Long:  `Configure API keys, create data directories, and check the toolchain.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("🦭 Dewi Setup"))

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Checking toolchain", checkToolchain},
		{"Creating directories", createDirectories},
		{"Configuring environment", configureEnv},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return nil
}

func checkToolchain() error {
	err := runWithSpinner("Checking for ffmpeg", func() error {
		return exec.Command("ffmpeg", "-version").Run()
	})
	if err != nil {
		fmt.Println(warnStyle.Render("ffmpeg not found - renders will produce placeholder artifacts"))
		fmt.Println(infoStyle.Render("Install from https://ffmpeg.org/download.html"))
	}
	return nil
}

func createDirectories() error {
	dirs := []string{"data/assets/backgrounds", "data/videos", "data/audio"}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	fmt.Println(successStyle.Render("✓ Created directories"))
	return nil
}

func configureEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureAPIKeys(env); err != nil {
		return err
	}

	if err := configureGCS(env); err != nil {
		return err
	}

	return writeEnvFile(env)
}

func configureAPIKeys(env map[string]string) error {
	var groqKey, elevenKey string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GROQ API Key").
				Description("https://console.groq.com/keys - leave empty to use fallback scripts").
				Value(&groqKey),
			huh.NewInput().
				Title("ElevenLabs API Key").
				Description("https://elevenlabs.io/app/settings/api-keys - leave empty for silent renders").
				EchoMode(huh.EchoModePassword).
				Value(&elevenKey),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if key := strings.TrimSpace(groqKey); key != "" {
		env["GROQ_API_KEY"] = key
	}
	if key := strings.TrimSpace(elevenKey); key != "" {
		env["ELEVENLABS_API_KEY"] = key
	}
	return nil
}

func configureGCS(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup GCS background sync?").
		Description("Mirror background clips from a Cloud Storage bucket (optional)").
		Value(&setup).
		Run(); err != nil {
		return err
	}

	if !setup {
		return nil
	}

	var bucket string
	if err := huh.NewInput().
		Title("GCS Bucket").
		Placeholder("my-backgrounds-bucket").
		Value(&bucket).
		Run(); err != nil {
		return err
	}

	if bucket = strings.TrimSpace(bucket); bucket != "" {
		env["GCS_BUCKET"] = bucket
	}
	return nil
}

func writeEnvFile(env map[string]string) error {
	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	order := []string{
		"GROQ_API_KEY",
		"ELEVENLABS_API_KEY",
		"GCS_BUCKET",
	}

	for _, key := range order {
		if val, ok := env[key]; ok && val != "" {
			_, _ = fmt.Fprintf(f, "%s=%s\n", key, val)
		}
	}

	fmt.Println(successStyle.Render("✓ Created .env file"))
	printNextSteps()
	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println("  1. Add background clips to: data/assets/backgrounds/")
	fmt.Println("  2. Run: dewi render -f \"your fact\"")
	fmt.Println("  3. Or start the API: dewi serve")
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ " + title))
	return nil
}
