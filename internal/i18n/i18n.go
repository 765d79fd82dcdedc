// Package i18n renders the user-facing texts of an analysis in English or German.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed messages/*.json
var messagesFS embed.FS

// Supported locales
const (
	LocaleEnglish = "en"
	LocaleGerman  = "de"
	DefaultLocale = LocaleEnglish
)

type localeKey struct{}

var (
	messages     map[string]map[string]interface{}
	messagesOnce sync.Once

	matcher = language.NewMatcher([]language.Tag{language.English, language.German})
)

func loadMessages() {
	messagesOnce.Do(func() {
		messages = make(map[string]map[string]interface{})

		for _, locale := range []string{LocaleEnglish, LocaleGerman} {
			data, err := messagesFS.ReadFile("messages/" + locale + ".json")
			if err != nil {
				continue
			}
			var msg map[string]interface{}
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			messages[locale] = msg
		}
	})
}

// Localizer looks up messages for one locale.
type Localizer struct {
	locale string
}

// NewLocalizer creates a localizer; unsupported locales fall back to English.
func NewLocalizer(locale string) *Localizer {
	loadMessages()
	return &Localizer{locale: Normalize(locale)}
}

// LocalizerFromContext creates a localizer for the locale stored in ctx.
func LocalizerFromContext(ctx context.Context) *Localizer {
	return NewLocalizer(GetLocaleFromContext(ctx))
}

// T translates a dot-notation key, replacing {name} placeholders from params.
// Unknown keys are returned unchanged.
func (l *Localizer) T(key string, params ...map[string]string) string {
	msg := lookup(key, l.locale)
	if msg == "" {
		msg = lookup(key, DefaultLocale)
	}
	if msg == "" {
		return key
	}
	if len(params) > 0 {
		for k, v := range params[0] {
			msg = strings.ReplaceAll(msg, "{"+k+"}", v)
		}
	}
	return msg
}

// Locale returns the locale of l.
func (l *Localizer) Locale() string {
	return l.locale
}

func lookup(key, locale string) string {
	current, ok := messages[locale]
	if !ok {
		return ""
	}
	parts := strings.Split(key, ".")
	for i, part := range parts {
		if i == len(parts)-1 {
			s, _ := current[part].(string)
			return s
		}
		nested, ok := current[part].(map[string]interface{})
		if !ok {
			return ""
		}
		current = nested
	}
	return ""
}

// Normalize maps a locale string such as "de-AT" to a supported locale.
func Normalize(locale string) string {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return DefaultLocale
	}
	return match(tag)
}

// ParseAcceptLanguage returns the best supported locale for an
// Accept-Language header value, or fallback when nothing matches.
func ParseAcceptLanguage(header, fallback string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Normalize(fallback)
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Normalize(fallback)
	}
	if idx == 1 {
		return LocaleGerman
	}
	return LocaleEnglish
}

func match(tag language.Tag) string {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No || idx != 1 {
		return LocaleEnglish
	}
	return LocaleGerman
}

// WithLocale adds locale to ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// GetLocaleFromContext retrieves the locale from ctx, or DefaultLocale.
func GetLocaleFromContext(ctx context.Context) string {
	if locale, ok := ctx.Value(localeKey{}).(string); ok && locale != "" {
		return locale
	}
	return DefaultLocale
}
