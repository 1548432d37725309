// Package i18n loads the embedded locale bundles and resolves dotted
// message keys such as "phases.invader-ravage.name".
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the fallback for keys missing from another locale.
const BaseLocale = "en-US"

//go:embed locales/*.yaml
var localesFS embed.FS

type localeFile struct {
	Locale   string         `yaml:"locale"`
	Messages map[string]any `yaml:"messages"`
}

// Bundle holds the flattened messages of every locale.
type Bundle struct {
	locales map[string]map[string]string
	tags    []language.Tag
	matcher language.Matcher
}

// LoadEmbedded loads the locale files shipped with the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(localesFS)
}

// LoadFromFS loads every locales/*.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", path, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", path, err)
		}
		if strings.TrimSpace(file.Locale) == "" {
			return nil, fmt.Errorf("locale %s: locale is required", path)
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", path, err)
		}
		flat := map[string]string{}
		flatten("", file.Messages, flat)
		b.locales[file.Locale] = flat
		b.tags = append(b.tags, tag)
	}

	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}
	// The matcher falls back to its first tag.
	sort.SliceStable(b.tags, func(i, j int) bool {
		return b.tags[i].String() == BaseLocale && b.tags[j].String() != BaseLocale
	})
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		flattenValue(joinKey(prefix, k), v, out)
	}
}

func flattenValue(key string, v any, out map[string]string) {
	switch val := v.(type) {
	case map[string]any:
		flatten(key, val, out)
	case map[any]any:
		// Level numbers and other non-string keys.
		for k, item := range val {
			flattenValue(joinKey(key, fmt.Sprint(k)), item, out)
		}
	case []any:
		for i, item := range val {
			flattenValue(joinKey(key, strconv.Itoa(i)), item, out)
		}
	case nil:
	default:
		out[key] = fmt.Sprint(val)
	}
}

func joinKey(prefix, k string) string {
	if prefix == "" {
		return k
	}
	return prefix + "." + k
}

// Locales returns the available locale identifiers.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for l := range b.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Match picks the best supported locale for the preferences, which may be a
// POSIX LANG value like "de_DE.UTF-8" or an Accept-Language style list.
func (b *Bundle) Match(prefs ...string) string {
	var tags []language.Tag
	for _, p := range prefs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p, _, _ = strings.Cut(p, ".")
		p = strings.ReplaceAll(p, "_", "-")
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return BaseLocale
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return BaseLocale
	}
	return b.tags[idx].String()
}

// Translator resolves keys for one locale.
type Translator struct {
	bundle  *Bundle
	locale  string
	printer *message.Printer
}

// NewTranslator returns a translator for locale, falling back to BaseLocale
// when the locale is unknown.
func (b *Bundle) NewTranslator(locale string) *Translator {
	if _, ok := b.locales[locale]; !ok {
		locale = BaseLocale
	}
	return &Translator{
		bundle:  b,
		locale:  locale,
		printer: message.NewPrinter(language.Make(locale)),
	}
}

// Locale returns the translator's locale.
func (t *Translator) Locale() string {
	return t.locale
}

// T returns the message for key with {name} placeholders replaced from
// params. A missing key yields the key itself.
func (t *Translator) T(key string, params map[string]any) string {
	if t == nil {
		return key
	}
	msg, ok := t.bundle.locales[t.locale][key]
	if !ok {
		msg, ok = t.bundle.locales[BaseLocale][key]
	}
	if !ok {
		return key
	}
	for name, v := range params {
		msg = strings.ReplaceAll(msg, "{"+name+"}", t.format(v))
	}
	return msg
}

// Has reports whether key resolves in the translator's locale or the base.
func (t *Translator) Has(key string) bool {
	return t.T(key, nil) != key
}

func (t *Translator) format(v any) string {
	switch n := v.(type) {
	case int, int64, int32, float64:
		return t.printer.Sprint(n)
	default:
		return fmt.Sprint(v)
	}
}

// Or resolves key and falls back to def when the lookup returns the key
// itself or an empty string.
func (t *Translator) Or(key, def string) string {
	if s := t.T(key, nil); s != "" && s != key {
		return s
	}
	return def
}
