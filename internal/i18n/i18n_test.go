package i18n

import (
	"testing"
	"testing/fstest"
)

func loadBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("Failed to load locales: %v", err)
	}
	return b
}

func TestEmbeddedLocales(t *testing.T) {
	b := loadBundle(t)
	locales := b.Locales()
	if len(locales) != 2 || locales[0] != "de-DE" || locales[1] != "en-US" {
		t.Errorf("Expected [de-DE en-US], got %v", locales)
	}
}

func TestTranslate(t *testing.T) {
	b := loadBundle(t)
	de := b.NewTranslator("de-DE")

	if got := de.T("common.round", map[string]any{"round": 3}); got != "Runde 3" {
		t.Errorf("Expected 'Runde 3', got %q", got)
	}
	if got := de.T("phases.spirit-growth.substeps.1", nil); got != "Erhalte Energie von deiner Präsenzleiste." {
		t.Errorf("Expected a flattened list entry, got %q", got)
	}
	// Not translated into German, so English is used.
	if got := de.T("spirits.keeper", nil); got != "Keeper of the Forbidden Wilds" {
		t.Errorf("Expected the English fallback, got %q", got)
	}
	if got := de.T("no.such.key", nil); got != "no.such.key" {
		t.Errorf("Expected the key itself, got %q", got)
	}
	if de.Has("no.such.key") || !de.Has("settings.title") {
		t.Error("Has reported the wrong presence")
	}
	if got := de.Or("adversary_data.france.hints.x", "static"); got != "static" {
		t.Errorf("Expected the default, got %q", got)
	}
}

func TestUnknownLocaleFallsBack(t *testing.T) {
	tr := loadBundle(t).NewTranslator("fr-FR")
	if tr.Locale() != BaseLocale {
		t.Errorf("Expected %s, got %s", BaseLocale, tr.Locale())
	}
	if got := tr.T("common.victory", nil); got != "Victory" {
		t.Errorf("Expected 'Victory', got %q", got)
	}
}

func TestNilTranslator(t *testing.T) {
	var tr *Translator
	if got := tr.T("common.victory", nil); got != "common.victory" {
		t.Errorf("Expected the key, got %q", got)
	}
}

func TestMatch(t *testing.T) {
	b := loadBundle(t)
	tests := []struct {
		prefs []string
		want  string
	}{
		{[]string{"de_DE.UTF-8"}, "de-DE"},
		{[]string{"de"}, "de-DE"},
		{[]string{"en_GB.UTF-8"}, "en-US"},
		{[]string{"", "de-AT"}, "de-DE"},
		{[]string{"ja-JP"}, "en-US"},
		{nil, "en-US"},
	}
	for _, tt := range tests {
		if got := b.Match(tt.prefs...); got != tt.want {
			t.Errorf("Match(%v) = %s, want %s", tt.prefs, got, tt.want)
		}
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/de-DE.yaml": {Data: []byte("locale: de-DE\nmessages:\n  a: b\n")},
	}
	if _, err := LoadFromFS(fsys); err == nil {
		t.Error("Expected an error without the base locale")
	}
}

func TestLoadFromFSNumericKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en-US.yaml": {Data: []byte("locale: en-US\nmessages:\n  levels:\n    1:\n      name: Fast Start\n")},
	}
	b, err := LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if got := b.NewTranslator("en-US").T("levels.1.name", nil); got != "Fast Start" {
		t.Errorf("Expected 'Fast Start', got %q", got)
	}
}
