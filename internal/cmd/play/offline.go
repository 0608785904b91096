package play

import (
	"context"

	"github.com/louisbranch/soloquest/internal/narrative"
	"github.com/louisbranch/soloquest/internal/platform/i18n"
)

// offlineGenerator narrates without an external model. Every response is a
// localized fallback marked as degraded, so dice, progression, and inventory
// still work when no API key is configured.
type offlineGenerator struct{}

func (offlineGenerator) Start(_ context.Context, tc narrative.Context, stream narrative.StreamFunc) (narrative.Response, error) {
	resp := narrative.StartFallback(tc.Campaign.Locale)
	if stream != nil {
		stream(resp.Content)
	}
	return resp, nil
}

func (offlineGenerator) Turn(_ context.Context, tc narrative.Context, _ string, _ *narrative.EffectiveRoll, stream narrative.StreamFunc) (narrative.Response, error) {
	resp := narrative.Response{
		Content:      i18n.Message(tc.Campaign.Locale, i18n.KeyNarrativeOfflineTurn),
		UsedFallback: true,
	}
	if stream != nil {
		stream(resp.Content)
	}
	return resp, nil
}

func (offlineGenerator) Death(_ context.Context, tc narrative.Context, _ string, stream narrative.StreamFunc) (narrative.Response, error) {
	resp := narrative.DeathFallback(tc.Campaign.Locale)
	if stream != nil {
		stream(resp.Content)
	}
	return resp, nil
}
