package prompts

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

const defaultScriptSystem = "You are a scriptwriter for 15-second educational short-form videos. " +
	"You turn a single atomic fact into a punchy script with a hook, three body lines, and a memorable repeat phrase. " +
	"Respond with JSON only, no markdown and no code blocks."

const defaultScriptPrompt = `Create a 15-second vertical video script for this fact:
"{{.Fact}}"

STYLE: {{.Style}}

Return ONLY JSON:
{
  "hook": "2-3 word attention grabber",
  "body": ["Line 1", "Line 2 EMPHASIZE keywords", "Line 3"],
  "repeat_phrase": "5-7 word memorable summary",
  "mascot_cues": [
    {"timestamp": "0:03", "character": "seal", "action": "clapping"},
    {"timestamp": "0:10", "character": "penguin", "action": "dancing"}
  ],
  "bg_suggestion": "subway_surfers",
  "audio_vibe": "phonk"
}`

type Prompts struct {
	System SystemPrompts `yaml:"system"`
	Script ScriptPrompts `yaml:"script"`
}

type SystemPrompts struct {
	Script string `yaml:"script"`
}

type ScriptPrompts struct {
	Generate string `yaml:"generate"`
}

type ScriptParams struct {
	Fact  string
	Vibe  string
	Style string
}

// Defaults returns the built-in prompt set used when no prompts.yaml exists.
func Defaults() *Prompts {
	return &Prompts{
		System: SystemPrompts{Script: defaultScriptSystem},
		Script: ScriptPrompts{Generate: defaultScriptPrompt},
	}
}

func Load() (*Prompts, error) {
	return LoadFrom(defaultPromptsPath)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	p := Defaults()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	return p, nil
}

func (p *Prompts) RenderScript(params ScriptParams) (string, error) {
	return render(p.Script.Generate, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
