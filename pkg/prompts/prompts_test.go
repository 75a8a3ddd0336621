package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderScript(t *testing.T) {
	p := Defaults()

	result, err := p.RenderScript(ScriptParams{
		Fact:  "The mitochondria is the powerhouse of the cell",
		Vibe:  "hype",
		Style: "energetic, excited",
	})
	if err != nil {
		t.Fatalf("RenderScript() error = %v", err)
	}

	if !strings.Contains(result, "The mitochondria is the powerhouse of the cell") {
		t.Error("rendered prompt missing fact text")
	}
	if !strings.Contains(result, "energetic, excited") {
		t.Error("rendered prompt missing style hint")
	}
	if !strings.Contains(result, "repeat_phrase") {
		t.Error("rendered prompt missing schema description")
	}
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	p, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if p.Script.Generate == "" {
		t.Error("defaults not applied for missing file")
	}
}

func TestLoadFromOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := "script:\n  generate: \"custom {{.Fact}}\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	result, err := p.RenderScript(ScriptParams{Fact: "gravity"})
	if err != nil {
		t.Fatalf("RenderScript() error = %v", err)
	}
	if result != "custom gravity" {
		t.Errorf("RenderScript() = %q, want %q", result, "custom gravity")
	}
	if p.System.Script == "" {
		t.Error("system prompt default should survive partial override")
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("script: [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() expected error for invalid yaml")
	}
}
