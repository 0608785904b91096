// Package turn sequences one player turn: it classifies the input as dice
// notation or free text, resolves rolls with equipment and misfortune
// adjustments, invokes the narrative generator, and applies the returned
// effects through the progression and inventory rules.
//
// The session is an explicit state object owned by the caller; the engine
// holds no per-session state and no locks. Turns within a session are
// strictly sequential.
package turn

import (
	"math/rand"

	"github.com/louisbranch/soloquest/internal/campaign"
	"github.com/louisbranch/soloquest/internal/character"
	"github.com/louisbranch/soloquest/internal/narrative"
	apperrors "github.com/louisbranch/soloquest/internal/platform/errors"
)

// State is one node of the turn state machine.
type State int

const (
	StateIdle State = iota
	StateAwaitingRollOrMessage
	StateRollingDice
	StateAwaitingNarrative
	StateApplyingEffects
	StateCharacterDead
)

// String returns the state name for logs and telemetry.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingRollOrMessage:
		return "awaiting_roll_or_message"
	case StateRollingDice:
		return "rolling_dice"
	case StateAwaitingNarrative:
		return "awaiting_narrative"
	case StateApplyingEffects:
		return "applying_effects"
	case StateCharacterDead:
		return "character_dead"
	default:
		return "unknown"
	}
}

var (
	// ErrTurnInProgress is returned when Resolve is re-entered while a turn
	// is between the narrative call and effect application.
	ErrTurnInProgress = apperrors.New(apperrors.CodeTurnInProgress, "a turn is already in progress")

	// ErrCharacterDead is returned once the session reached its terminal
	// state; no further input is accepted.
	ErrCharacterDead = apperrors.New(apperrors.CodeTurnCharacterDead, "the character is dead")
)

// Session is the per-campaign play state, owned by the caller and passed
// into every engine call. One session never runs two turns at once.
type Session struct {
	Campaign  campaign.Campaign
	Character character.Character
	State     State

	// PendingRoll is the generator's roll request seeding the next input
	// prompt, empty when none.
	PendingRoll string
	Suggested   []narrative.SuggestedAction

	RNG *rand.Rand
}

// NewSession creates an idle session for the campaign and its character.
func NewSession(camp campaign.Campaign, char character.Character, rng *rand.Rand) *Session {
	return &Session{
		Campaign:  camp,
		Character: char,
		State:     StateIdle,
		RNG:       rng,
	}
}

// Outcome is the result of one resolved turn, everything the play loop
// needs to render the next prompt.
type Outcome struct {
	Narration string
	// Roll is set on the auto-roll path: the resolved dice with the
	// misfortune-degraded effective value forwarded to the generator.
	Roll *narrative.EffectiveRoll

	Suggested   []narrative.SuggestedAction
	RollRequest string

	XPAwarded     int
	LeveledUp     bool
	NewLevel      int
	PendingPoints int

	Died           bool
	DeathNarration string

	// Degraded is set when fallback narration replaced a failed generator
	// call; Notice carries the localized user-visible explanation.
	Degraded bool
	Notice   string
}
