package narrative

import "testing"

const sampleNarration = `The goblin staggers back, clutching its shoulder.

` + "```json" + `
{
  "characterEffects": [
    {"type": "damage", "amount": 5},
    {"type": "damage_roll", "roll": "2d6"},
    {"type": "spend_resource", "resource": "sanity", "amount": 2},
    {"type": "curse", "amount": 1}
  ],
  "itemDrops": [{"itemId": "healing_potion", "quantity": 1}],
  "xpAward": 50,
  "rollRequest": "d20",
  "suggestedActions": [
    {"id": "a1", "label": "Press the attack", "action": "I press the attack.", "rollNotation": "d20", "dc": 12}
  ]
}
` + "```"

// TestParseResponseExtractsPayload checks narration/payload splitting and the
// tagged effect decoding, including the unrecognized branch.
func TestParseResponseExtractsPayload(t *testing.T) {
	resp := parseResponse(sampleNarration)

	if resp.Content != "The goblin staggers back, clutching its shoulder." {
		t.Fatalf("unexpected narration: %q", resp.Content)
	}
	if len(resp.CharacterEffects) != 4 {
		t.Fatalf("expected 4 effects, got %d", len(resp.CharacterEffects))
	}
	if e := resp.CharacterEffects[0]; e.Kind != EffectDamage || e.Amount != 5 {
		t.Fatalf("unexpected damage effect: %+v", e)
	}
	if e := resp.CharacterEffects[1]; e.Kind != EffectDamageRoll || e.Notation != "2d6" {
		t.Fatalf("unexpected damage_roll effect: %+v", e)
	}
	if e := resp.CharacterEffects[2]; e.Kind != EffectSpendResource || e.Resource != "sanity" || e.Amount != 2 {
		t.Fatalf("unexpected spend_resource effect: %+v", e)
	}
	if e := resp.CharacterEffects[3]; e.Kind != EffectUnrecognized || e.Raw != "curse" {
		t.Fatalf("unexpected unrecognized effect: %+v", e)
	}
	if len(resp.ItemDrops) != 1 || resp.ItemDrops[0].ItemID != "healing_potion" {
		t.Fatalf("unexpected drops: %+v", resp.ItemDrops)
	}
	if resp.XPAward != 50 {
		t.Fatalf("xp award = %d, want 50", resp.XPAward)
	}
	if resp.RollRequest != "d20" {
		t.Fatalf("roll request = %q, want d20", resp.RollRequest)
	}
	if len(resp.SuggestedActions) != 1 || resp.SuggestedActions[0].DC != 12 {
		t.Fatalf("unexpected suggestions: %+v", resp.SuggestedActions)
	}
}

// TestParseResponseWithoutPayload degrades to content-only.
func TestParseResponseWithoutPayload(t *testing.T) {
	resp := parseResponse("Just a story beat, nothing mechanical.")
	if resp.Content != "Just a story beat, nothing mechanical." {
		t.Fatalf("unexpected content: %q", resp.Content)
	}
	if resp.CharacterEffects != nil || resp.XPAward != 0 {
		t.Fatalf("expected empty payload, got %+v", resp)
	}
}

// TestParseResponseMalformedPayload keeps the full text when the JSON block
// does not decode.
func TestParseResponseMalformedPayload(t *testing.T) {
	content := "A tense pause.\n\n```json\n{not json}\n```"
	resp := parseResponse(content)
	if resp.Content == "" || resp.CharacterEffects != nil {
		t.Fatalf("expected content-only response, got %+v", resp)
	}
}
