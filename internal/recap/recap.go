// Package recap writes a short narrative summary of a finished game with
// Gemini.
package recap

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/spirit-tracker/internal/engine"
	"github.com/tatianab/spirit-tracker/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"google.golang.org/api/option"
)

//go:embed prompts/recap.txt
var recapPrompt string

var recapTemplate = template.Must(template.New("recap").Parse(recapPrompt))

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	tr     engine.Translator
	locale string
}

// NewClient connects to Gemini. tr and locale control the names and the
// language of the recap.
func NewClient(ctx context.Context, apiKey, modelName string, tr engine.Translator, locale string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.8)
	return &Client{
		client: client,
		model:  model,
		tr:     tr,
		locale: locale,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// Recap asks the model for a recap of result.
func (c *Client) Recap(ctx context.Context, result models.GameResult) (string, error) {
	prompt, err := BuildPrompt(result, c.tr, c.locale)
	if err != nil {
		return "", err
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return strings.TrimSpace(out.String()), nil
}

type promptData struct {
	Language    string
	Outcome     string
	Score       int
	Difficulty  int
	PlayerCount int
	Spirits     []string
	Adversary   string
	Scenario    string
	Rounds      int
	TerrorLevel int
	Duration    string
}

// BuildPrompt renders the recap prompt for result.
func BuildPrompt(result models.GameResult, tr engine.Translator, locale string) (string, error) {
	data := promptData{
		Language:    "in " + languageName(locale),
		Outcome:     string(result.Outcome),
		Score:       result.Score,
		Difficulty:  result.Difficulty,
		PlayerCount: result.PlayerCount,
		Scenario:    result.Scenario,
		Duration:    result.Duration,
	}
	for _, sp := range result.Spirits {
		data.Spirits = append(data.Spirits, engine.SpiritName(sp.ID, tr))
	}
	if adv := result.Adversary; adv != nil {
		name := adv.Name
		if name == "" {
			name = adv.ID
		}
		data.Adversary = fmt.Sprintf("%s, level %d", name, adv.Level)
	}
	if result.Rounds != nil {
		data.Rounds = *result.Rounds
	}
	if result.TerrorLevel != nil {
		data.TerrorLevel = *result.TerrorLevel
	}

	var buf bytes.Buffer
	if err := recapTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func languageName(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "English"
	}
	base, _ := tag.Base()
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return "English"
}
