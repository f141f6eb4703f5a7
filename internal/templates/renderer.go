package templates

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"returnnotify/internal/directory"
	"returnnotify/internal/logging"
)

// LocaleSource resolves the reseller whose locale picks the catalog language.
type LocaleSource interface {
	ResellerByID(ctx context.Context, id int64) (*directory.Reseller, error)
}

// Renderer renders catalog messages in the reseller's language.
type Renderer struct {
	catalog  Catalog
	tags     []language.Tag
	matcher  language.Matcher
	fallback language.Tag
	locales  LocaleSource
	logger   *slog.Logger
}

// NewRenderer builds a renderer over catalog. defaultLanguage is used when a
// reseller has no locale or nothing in the catalog matches it.
func NewRenderer(catalog Catalog, defaultLanguage string, locales LocaleSource, logger *slog.Logger) (*Renderer, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("template catalog is empty")
	}
	fallback, err := language.Parse(strings.TrimSpace(defaultLanguage))
	if err != nil {
		return nil, fmt.Errorf("templates.default_language %q: %w", defaultLanguage, err)
	}
	if _, ok := catalog[fallback.String()]; !ok {
		return nil, fmt.Errorf("templates.default_language %q has no catalog entries", defaultLanguage)
	}
	tags := catalog.Languages(fallback)
	return &Renderer{
		catalog:  catalog,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
		fallback: fallback,
		locales:  locales,
		logger:   logging.NewComponentLogger(logger, "templates"),
	}, nil
}

// Render returns the text for key with every #NAME# placeholder replaced by
// values[NAME]. Unknown keys render as the key itself.
func (r *Renderer) Render(ctx context.Context, key string, values map[string]string, resellerID int64) string {
	tag := cachedLanguage(ctx, resellerID, func() language.Tag { return r.languageFor(ctx, resellerID) })
	text, ok := r.lookup(tag, key)
	if !ok {
		r.logger.Debug("template key not found",
			logging.String("template_key", key),
			logging.Int64(logging.FieldResellerID, resellerID),
		)
		return key
	}
	return Substitute(text, values)
}

// Language reports the catalog language chosen for a locale string.
func (r *Renderer) Language(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return r.fallback
	}
	desired, err := language.Parse(locale)
	if err != nil {
		return r.fallback
	}
	_, index, confidence := r.matcher.Match(desired)
	if confidence == language.No {
		return r.fallback
	}
	return r.tags[index]
}

func (r *Renderer) languageFor(ctx context.Context, resellerID int64) language.Tag {
	if r.locales == nil || resellerID == 0 {
		return r.fallback
	}
	reseller, err := r.locales.ResellerByID(ctx, resellerID)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "reseller locale lookup failed", "template_locale_lookup_failed",
			logging.String(logging.FieldErrorHint, "check the directory database"),
			logging.String(logging.FieldImpact, "default language used"),
			logging.Int64(logging.FieldResellerID, resellerID),
			logging.Error(err),
		)
		return r.fallback
	}
	if reseller == nil {
		return r.fallback
	}
	return r.Language(reseller.Locale)
}

func (r *Renderer) lookup(tag language.Tag, key string) (string, bool) {
	if text, ok := r.catalog[tag.String()][key]; ok {
		return text, true
	}
	if text, ok := r.catalog[r.fallback.String()][key]; ok {
		return text, true
	}
	return "", false
}

// Substitute replaces #NAME# markers in text. Markers without a value are
// left untouched.
func Substitute(text string, values map[string]string) string {
	if len(values) == 0 || !strings.Contains(text, "#") {
		return text
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	// Longer names first so #DATE# cannot clip #DATE_TIME#.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "#"+key+"#", values[key])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
