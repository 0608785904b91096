// Package i18n resolves player-facing messages for a requested locale.
//
// Catalogs are compiled in: en-US is the canonical base and every key must
// exist there. Lookups for unknown locales or missing keys fall back to the
// base catalog, so Message is total over known keys.
package i18n

import (
	"golang.org/x/text/language"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

var supported = []language.Tag{
	language.MustParse("en-US"),
	language.MustParse("pt-BR"),
	language.MustParse("es-ES"),
}

var matcher = language.NewMatcher(supported)

var catalogs = map[string]map[string]string{
	"en-US": enUS,
	"pt-BR": ptBR,
	"es-ES": esES,
}

// ResolveLocale matches a requested locale against the supported set,
// falling back to the base locale for empty or unknown values.
func ResolveLocale(requested string) string {
	if requested == "" {
		return BaseLocale
	}
	tag, err := language.Parse(requested)
	if err != nil {
		return BaseLocale
	}
	_, index, _ := matcher.Match(tag)
	return supported[index].String()
}

// Message returns the message for key in the best matching locale.
// Missing keys fall back to the base catalog, then to the key itself.
func Message(locale, key string) string {
	resolved := ResolveLocale(locale)
	if msg, ok := catalogs[resolved][key]; ok {
		return msg
	}
	if msg, ok := catalogs[BaseLocale][key]; ok {
		return msg
	}
	return key
}
