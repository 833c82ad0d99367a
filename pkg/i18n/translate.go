package i18n

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"text/template"

	"hearing-care-backend/pkg/logger"
)

// templateCache caches compiled templates per message text.
var templateCache sync.Map

// Tr translates msgid for the language in ctx. Optional key/value pairs
// fill {{.Key}} placeholders.
func Tr(ctx context.Context, msgid string, kv ...any) string {
	return translate(ctx, "", msgid, kv)
}

// TrC translates msgid under a disambiguating gettext context.
func TrC(ctx context.Context, contextKey, msgid string, kv ...any) string {
	return translate(ctx, contextKey, msgid, kv)
}

func translate(ctx context.Context, contextKey, msgid string, kv []any) string {
	loc, _ := resolveLocale(TagFrom(ctx))

	text := msgid
	if loc != nil {
		if contextKey != "" {
			if loc.IsTranslatedDC(poDomain, msgid, contextKey) {
				text = loc.GetDC(poDomain, msgid, contextKey)
			}
		} else if loc.IsTranslatedD(poDomain, msgid) {
			text = loc.GetD(poDomain, msgid)
		}
	}

	return render(text, vars(kv))
}

// render executes s as a text/template when it carries placeholders.
func render(s string, data map[string]any) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	var tmpl *template.Template
	if t, ok := templateCache.Load(s); ok {
		tmpl = t.(*template.Template)
	} else {
		var err error
		tmpl, err = template.New("msg").Option("missingkey=error").Parse(s)
		if err != nil {
			logger.Log.Warn("i18n: template parse error", "text", s, "error", err)
			return s
		}
		templateCache.Store(s, tmpl)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		logger.Log.Warn("i18n: template execute error", "text", s, "error", err)
		return s
	}
	return buf.String()
}

// vars builds template data from alternating key, value pairs.
// Panics on programmer error.
func vars(kv []any) map[string]any {
	if len(kv)%2 != 0 {
		panic("i18n: odd number of arguments, want key, value pairs")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("i18n: key must be string")
		}
		m[k] = kv[i+1]
	}
	return m
}
