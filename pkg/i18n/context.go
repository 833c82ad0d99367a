package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

// LangParam is the query parameter read by FromRequest.
const LangParam = "lang"

// WithTag stores t in ctx.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the tag stored in ctx, or the default tag.
func TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if t, _ := ctx.Value(tagKey).(language.Tag); t != (language.Tag{}) {
			return t
		}
	}
	return defaultTag
}

// FromRequest negotiates the language for r from the lang query parameter
// and then the Accept-Language header. "auto" ignores the query parameter.
func FromRequest(r *http.Request) language.Tag {
	if r == nil || matcher == nil {
		return defaultTag
	}

	preferred := make([]string, 0, 2)
	if q := r.URL.Query().Get(LangParam); q != "" && !strings.EqualFold(q, "auto") {
		preferred = append(preferred, q)
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		preferred = append(preferred, al)
	}
	if len(preferred) == 0 {
		return defaultTag
	}

	tag, _ := language.MatchStrings(matcher, preferred...)
	base, _ := tag.Base()
	return language.Make(base.String())
}
