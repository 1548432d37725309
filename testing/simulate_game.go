package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tatianab/spirit-tracker/internal/config"
	"github.com/tatianab/spirit-tracker/internal/engine"
	"github.com/tatianab/spirit-tracker/internal/history"
	"github.com/tatianab/spirit-tracker/internal/i18n"
	"github.com/tatianab/spirit-tracker/internal/models"
	"github.com/tatianab/spirit-tracker/internal/recap"
	"github.com/tatianab/spirit-tracker/internal/session"
	"github.com/tatianab/spirit-tracker/internal/storage"
)

const maxRounds = 6

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		log.Fatalf("Failed to load locales: %v", err)
	}
	locale := bundle.Match(cfg.LanguagePrefs()...)
	tr := bundle.NewTranslator(locale)

	eng, err := engine.NewEngine(nil, nil)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	// The simulation never touches the saved history.
	hist, err := history.Open(ctx, storage.NewMemoryStore(), nil)
	if err != nil {
		log.Fatalf("Failed to open history: %v", err)
	}
	sess := session.New(eng, hist, session.WithTranslator(tr))

	settings := models.DefaultSettings()
	settings.SetPlayerCount(2)
	settings.ToggleExpansion(models.ExpansionBranchAndClaw)
	settings.Adversary = &models.AdversaryRef{ID: "england", Level: 3}
	for _, sp := range eng.Catalog().AvailableSpirits(settings.Expansions)[:2] {
		settings.ToggleSpirit(sp)
	}
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	// 1. Setup
	fmt.Println("--- Setup ---")
	sess.Start(settings)
	for _, r := range eng.SetupRules(settings, tr) {
		fmt.Printf("Level %d %s: %s\n", r.Level, r.Name, r.Effect)
	}
	fmt.Printf("Invader deck: %v\n\n", sess.Deck())
	sess.ConfirmSetup()

	// 2. Play rounds until the deck runs out or the spirits win
	for sess.Round() <= maxRounds && !sess.ScoringOpen() {
		stage, ok := sess.InvaderStage()
		stageText := "deck exhausted"
		if ok {
			stageText = fmt.Sprintf("stage %d", stage)
		}
		fmt.Printf("--- Round %d (%s) ---\n", sess.Round(), stageText)

		round := sess.Round()
		for sess.Round() == round && !sess.ScoringOpen() {
			phase, _ := sess.CurrentPhase()
			fmt.Printf("%-28s %s\n", engine.PhaseName(phase, tr), strings.ToUpper(phase.Category.String()))
			for _, h := range eng.ActiveHints(sess.Settings(), phase.ID, tr) {
				fmt.Printf("    [%d] %s\n", h.Level, h.Text)
			}
			sess.Advance()
		}
		fmt.Println()
	}

	// 3. Score
	outcome := models.Victory
	if sess.ScoringOpen() {
		outcome = sess.ScoringOutcome()
	} else {
		sess.OpenScoring(outcome)
	}
	defaults := sess.ScoringDefaults()
	result, breakdown, err := sess.Complete(ctx, session.Completion{
		Outcome:      outcome,
		Difficulty:   defaults.Difficulty,
		Dahan:        9,
		Blight:       3,
		InvaderCards: defaults.InvaderCards(outcome),
	})
	if err != nil {
		log.Fatalf("Failed to complete game: %v", err)
	}

	fmt.Println("--- Result ---")
	fmt.Printf("Outcome: %s\n", result.Outcome)
	fmt.Printf("Score: %d (base %d, invaders %d, dahan %d, blight -%d)\n",
		breakdown.Total, breakdown.BaseScore, breakdown.InvaderScore, breakdown.DahanPoints, breakdown.BlightPenalty)
	fmt.Printf("Difficulty: %d, Duration: %s\n", result.Difficulty, result.Duration)

	if !cfg.RecapEnabled() {
		return
	}
	client, err := recap.NewClient(ctx, cfg.GeminiAPIKey, cfg.RecapModel, tr, locale)
	if err != nil {
		log.Fatalf("Failed to create recap client: %v", err)
	}
	defer client.Close()

	text, err := client.Recap(ctx, result)
	if err != nil {
		fmt.Printf("Error writing recap: %v\n", err)
		return
	}
	fmt.Printf("\n--- Recap ---\n%s\n", text)
}
