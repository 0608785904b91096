// Package narrative defines the boundary to the external story generator:
// the context sent per call, the structured response that comes back, and a
// streaming hook for incremental output.
//
// The generator is a consumed capability. The engine never depends on how
// prompts are built or transported beyond the Generator interface; the
// OpenAI-compatible adapter in this package is one implementation.
package narrative

import (
	"context"

	"github.com/louisbranch/soloquest/internal/campaign"
	"github.com/louisbranch/soloquest/internal/character"
)

// Role tags a history message for the generator.
type Role string

const (
	RolePlayer   Role = "player"
	RoleNarrator Role = "narrator"
	RoleSystem   Role = "system"
)

// Message is one entry of the campaign history shared with the generator.
type Message struct {
	Role    Role
	Content string
}

// Context carries everything the generator needs to continue the story.
type Context struct {
	Campaign  campaign.Campaign
	Messages  []Message
	Character *character.Character
}

// EffectiveRoll is the roll view forwarded to the generator: the raw result
// plus the misfortune-degraded total the story should react to.
type EffectiveRoll struct {
	Notation  string
	Breakdown string
	RawTotal  int
	Effective int
	Penalty   int
}

// EffectKind discriminates generator-issued character effects.
type EffectKind string

const (
	EffectDamage          EffectKind = "damage"
	EffectDamageRoll      EffectKind = "damage_roll"
	EffectHeal            EffectKind = "heal"
	EffectSpendResource   EffectKind = "spend_resource"
	EffectRestoreResource EffectKind = "restore_resource"
	EffectUnrecognized    EffectKind = "unrecognized"
)

// Effect is a tagged game effect returned by the generator. Unrecognized
// kinds are preserved so appliers can log and skip them explicitly.
type Effect struct {
	Kind     EffectKind
	Amount   int
	Notation string // set for damage_roll
	Resource string // set for spend_resource / restore_resource
	Raw      string // original type token for unrecognized effects
}

// Drop is an item grant returned by the generator.
type Drop struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// SuggestedAction is one actionable follow-up offered to the player.
type SuggestedAction struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Action       string `json:"action"`
	RollNotation string `json:"rollNotation,omitempty"`
	DC           int    `json:"dc,omitempty"`
}

// Response is the generator's full answer for one call.
type Response struct {
	Content          string
	CharacterEffects []Effect
	ItemDrops        []Drop
	XPAward          int
	RollRequest      string
	SuggestedActions []SuggestedAction
	UsedFallback     bool
}

// StreamFunc receives partial narration text as it arrives. It may be called
// zero or more times before the final Response and never after the call
// returns. A nil StreamFunc disables streaming.
type StreamFunc func(chunk string)

// Generator produces story text plus structured game effects.
type Generator interface {
	// Start opens a new session with no player action yet.
	Start(ctx context.Context, tc Context, stream StreamFunc) (Response, error)

	// Turn continues the story after a player action and optional roll.
	Turn(ctx context.Context, tc Context, action string, roll *EffectiveRoll, stream StreamFunc) (Response, error)

	// Death produces the closing narration after a lethal outcome.
	Death(ctx context.Context, tc Context, cause string, stream StreamFunc) (Response, error)
}
