package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"

	"hearing-care-backend/pkg/logger"
)

//go:embed po/*.po
var catalogFS embed.FS

// poDomain is the gettext domain each catalog is registered under.
const poDomain = "site"

// DefaultLocale is used when Setup is given an empty or invalid default.
const DefaultLocale = "es"

var (
	localesByTag  map[string]*gotext.Locale
	supportedTags []language.Tag
	matcher       language.Matcher
	defaultTag    = language.Make(DefaultLocale)
)

// Setup loads the embedded catalogs and builds the language matcher. The
// default locale is the first entry of the matcher and therefore the
// fallback for requests without a usable preference.
//
// Calling Setup again replaces the loaded catalogs.
func Setup(defaultLocale string) error {
	def, err := language.Parse(defaultLocale)
	if err != nil {
		def = language.Make(DefaultLocale)
	}

	entries, err := fs.ReadDir(catalogFS, "po")
	if err != nil {
		return fmt.Errorf("i18n: read po directory: %w", err)
	}

	loaded := make(map[string]*gotext.Locale)
	var tags []language.Tag

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".po") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".po")
		t, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
		if err != nil {
			logger.Log.Warn("Skipping invalid locale file", "file", entry.Name(), "error", err)
			continue
		}

		data, err := catalogFS.ReadFile(path.Join("po", entry.Name()))
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", entry.Name(), err)
		}

		po := gotext.NewPo()
		po.Parse(data)

		loc := gotext.NewLocale("", t.String())
		loc.AddTranslator(poDomain, po)

		loaded[t.String()] = loc
		tags = append(tags, t)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })

	all := make([]language.Tag, 0, len(tags)+1)
	all = append(all, def)
	for _, t := range tags {
		if t != def {
			all = append(all, t)
		}
	}

	localesByTag = loaded
	supportedTags = all
	matcher = language.NewMatcher(all)
	defaultTag = def

	logger.Log.Info("Loaded locales", "default", def.String(), "count", len(loaded))
	return nil
}

// Languages returns the supported tags, default first.
func Languages() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}

// resolveLocale matches t against the loaded locales. Without Setup it
// returns no locale and the default tag.
func resolveLocale(t language.Tag) (*gotext.Locale, language.Tag) {
	if matcher == nil {
		return nil, defaultTag
	}

	_, idx, _ := matcher.Match(t)
	matched := supportedTags[idx]

	return localesByTag[matched.String()], matched
}
