package narrative

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencedJSON matches the trailing ```json block carrying structured effects.
var fencedJSON = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```\\s*$")

type effectPayload struct {
	Type     string `json:"type"`
	Amount   int    `json:"amount"`
	Roll     string `json:"roll"`
	Resource string `json:"resource"`
}

type responsePayload struct {
	CharacterEffects []effectPayload   `json:"characterEffects"`
	ItemDrops        []Drop            `json:"itemDrops"`
	XPAward          int               `json:"xpAward"`
	RollRequest      string            `json:"rollRequest"`
	SuggestedActions []SuggestedAction `json:"suggestedActions"`
}

// parseResponse splits the generated text into narration and the structured
// payload. A missing or malformed payload degrades to a content-only
// response; narration is never lost to a JSON error.
func parseResponse(content string) Response {
	match := fencedJSON.FindStringSubmatch(content)
	if match == nil {
		return Response{Content: strings.TrimSpace(content)}
	}

	var payload responsePayload
	if err := json.Unmarshal([]byte(match[1]), &payload); err != nil {
		return Response{Content: strings.TrimSpace(content)}
	}

	narration := strings.TrimSpace(strings.TrimSuffix(content, match[0]))
	return Response{
		Content:          narration,
		CharacterEffects: decodeEffects(payload.CharacterEffects),
		ItemDrops:        payload.ItemDrops,
		XPAward:          payload.XPAward,
		RollRequest:      strings.TrimSpace(payload.RollRequest),
		SuggestedActions: payload.SuggestedActions,
	}
}

func decodeEffects(payloads []effectPayload) []Effect {
	if len(payloads) == 0 {
		return nil
	}
	effects := make([]Effect, 0, len(payloads))
	for _, p := range payloads {
		switch EffectKind(p.Type) {
		case EffectDamage:
			effects = append(effects, Effect{Kind: EffectDamage, Amount: p.Amount})
		case EffectDamageRoll:
			effects = append(effects, Effect{Kind: EffectDamageRoll, Notation: strings.TrimSpace(p.Roll)})
		case EffectHeal:
			effects = append(effects, Effect{Kind: EffectHeal, Amount: p.Amount})
		case EffectSpendResource:
			effects = append(effects, Effect{Kind: EffectSpendResource, Resource: p.Resource, Amount: p.Amount})
		case EffectRestoreResource:
			effects = append(effects, Effect{Kind: EffectRestoreResource, Resource: p.Resource, Amount: p.Amount})
		default:
			effects = append(effects, Effect{Kind: EffectUnrecognized, Raw: p.Type})
		}
	}
	return effects
}
