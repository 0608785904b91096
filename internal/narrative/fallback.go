package narrative

import "github.com/louisbranch/soloquest/internal/platform/i18n"

// StartFallback is the templated opening used when the generator is
// unavailable at session start. Play continues in degraded mode.
func StartFallback(locale string) Response {
	return Response{
		Content:      i18n.Message(locale, i18n.KeyNarrativeStartFallback),
		UsedFallback: true,
		SuggestedActions: []SuggestedAction{
			{ID: "look", Label: "Look around", Action: "I take in my surroundings."},
			{ID: "enter", Label: "Enter the inn", Action: "I push open the inn door."},
		},
	}
}

// DeathFallback is the hard-coded death narration used when the final
// narrative call itself fails. Death narration must never be lost.
func DeathFallback(locale string) Response {
	return Response{
		Content:      i18n.Message(locale, i18n.KeyNarrativeDeathFallback),
		UsedFallback: true,
	}
}

// DegradedNotice is the user-visible notice shown alongside fallback
// content.
func DegradedNotice(locale string) string {
	return i18n.Message(locale, i18n.KeyNarrativeDegraded)
}
