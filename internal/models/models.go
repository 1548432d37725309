package models

// ExpansionID identifies a game box whose content can be enabled.
type ExpansionID string

const (
	ExpansionBase            ExpansionID = "base"
	ExpansionBranchAndClaw   ExpansionID = "branch_and_claw"
	ExpansionJaggedEarth     ExpansionID = "jagged_earth"
	ExpansionNatureIncarnate ExpansionID = "nature_incarnate"
	ExpansionHorizons        ExpansionID = "horizons"
	ExpansionFeatherAndFlame ExpansionID = "feather_and_flame"
)

// Expansion is a catalog entry for an ExpansionID.
type Expansion struct {
	ID ExpansionID `yaml:"id" json:"id"`
}

// Spirit represents a selectable player character.
type Spirit struct {
	ID          string      `yaml:"id" json:"id"`
	ExpansionID ExpansionID `yaml:"expansion" json:"expansionId"`
}

// AdversaryLevel is one row of an adversary's difficulty table.
type AdversaryLevel struct {
	Level       int    `yaml:"level"`
	Difficulty  int    `yaml:"difficulty"`
	Name        string `yaml:"name,omitempty"`
	Effect      string `yaml:"effect,omitempty"`
	SetupRule   string `yaml:"setupRule,omitempty"`
	IsSetup     bool   `yaml:"isSetup,omitempty"`
	InvaderDeck string `yaml:"invaderDeck,omitempty"` // e.g. "11-3-2222-3333"
	FearCards   string `yaml:"fearCards,omitempty"`   // e.g. "3/4/3"
}

// HintRule is a reminder shown on a phase once the adversary reaches Level.
type HintRule struct {
	ID    string `yaml:"id"`
	Level int    `yaml:"level"`
	Hint  string `yaml:"hint"`
	Key   string `yaml:"key,omitempty"` // translation key override
}

// RuleText is a named piece of adversary rules text.
type RuleText struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// PhaseInjection splices a synthetic phase into the round when When holds.
type PhaseInjection struct {
	Phase    string `yaml:"phase"`
	Before   string `yaml:"before"`
	MinLevel int    `yaml:"minLevel"`
	When     string `yaml:"when"` // expr condition, empty means always
}

// DeckRule reshapes the invader deck from MinLevel upwards.
type DeckRule struct {
	MinLevel  int `yaml:"minLevel"`
	RemoveTop int `yaml:"removeTop"`
}

// Adversary is an opposing faction with seven difficulty levels (0..6).
type Adversary struct {
	ID            string                `yaml:"id"`
	Name          string                `yaml:"name,omitempty"`
	ExpansionID   ExpansionID           `yaml:"expansion"`
	Levels        []AdversaryLevel      `yaml:"levels"`
	Escalation    *RuleText             `yaml:"escalation,omitempty"`
	LossCondition *RuleText             `yaml:"lossCondition,omitempty"`
	PhaseHints    map[string][]HintRule `yaml:"phaseHints,omitempty"`
	Injections    []PhaseInjection      `yaml:"injections,omitempty"`
	DeckRules     []DeckRule            `yaml:"deckRules,omitempty"`
}

// Level returns the level row for lvl, if present.
func (a *Adversary) Level(lvl int) (AdversaryLevel, bool) {
	for _, l := range a.Levels {
		if l.Level == lvl {
			return l, true
		}
	}
	return AdversaryLevel{}, false
}

// Scenario is an optional game variant. Difficulty may be negative.
type Scenario struct {
	ID          string      `yaml:"id"`
	Difficulty  int         `yaml:"difficulty"`
	ExpansionID ExpansionID `yaml:"expansion"`
}

// PhaseCategory groups phases into the five parts of a round.
type PhaseCategory int

const (
	CategorySpirit PhaseCategory = iota
	CategoryFast
	CategoryInvader
	CategorySlow
	CategoryTime
)

var categoryNames = map[PhaseCategory]string{
	CategorySpirit:  "spirit",
	CategoryFast:    "fast",
	CategoryInvader: "invader",
	CategorySlow:    "slow",
	CategoryTime:    "time",
}

func (c PhaseCategory) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "unknown"
}

// UnmarshalText lets catalog files name categories by string.
func (c *PhaseCategory) UnmarshalText(text []byte) error {
	for k, v := range categoryNames {
		if v == string(text) {
			*c = k
			return nil
		}
	}
	return &UnknownCategoryError{Name: string(text)}
}

// UnknownCategoryError reports a category name missing from categoryNames.
type UnknownCategoryError struct {
	Name string
}

func (e *UnknownCategoryError) Error() string {
	return "unknown phase category " + e.Name
}

// Phase is one named step within a round.
type Phase struct {
	ID             string        `yaml:"id"`
	Category       PhaseCategory `yaml:"category"`
	Substeps       []string      `yaml:"substeps,omitempty"`
	RequiresEvents bool          `yaml:"requiresEvents,omitempty"`
	Name           string        `yaml:"name"`
	Description    string        `yaml:"description"`
	Icon           string        `yaml:"icon,omitempty"`
}

// Well known phase ids.
const (
	PhaseSpiritGrowth           = "spirit-growth"
	PhaseFastPower              = "fast-power"
	PhaseInvaderBlight          = "invader-blight"
	PhaseInvaderEvent           = "invader-event"
	PhaseInvaderFear            = "invader-fear"
	PhaseInvaderRavage          = "invader-ravage"
	PhaseInvaderBuild           = "invader-build"
	PhaseInvaderExplore         = "invader-explore"
	PhaseInvaderAdvance         = "invader-advance"
	PhaseSlowPower              = "slow-power"
	PhaseTimePasses             = "time-passes"
	PhaseEnglandHighImmigration = "england-high-immigration"
)
