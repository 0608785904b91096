package turn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/soloquest/internal/character"
	"github.com/louisbranch/soloquest/internal/dice"
	"github.com/louisbranch/soloquest/internal/inventory"
	"github.com/louisbranch/soloquest/internal/misfortune"
	"github.com/louisbranch/soloquest/internal/narrative"
	apperrors "github.com/louisbranch/soloquest/internal/platform/errors"
	"github.com/louisbranch/soloquest/internal/platform/id"
	"github.com/louisbranch/soloquest/internal/progression"
	"github.com/louisbranch/soloquest/internal/storage"
	"github.com/louisbranch/soloquest/internal/telemetry"
)

// Engine resolves turns against a narrative generator and a store. It is
// stateless across calls; all play state lives in the Session.
type Engine struct {
	gen       narrative.Generator
	store     storage.Store
	telemetry *telemetry.Emitter
	tracer    trace.Tracer

	clock func() time.Time
	newID func() (string, error)
}

// NewEngine creates a turn engine.
func NewEngine(gen narrative.Generator, store storage.Store, emitter *telemetry.Emitter) *Engine {
	return &Engine{
		gen:       gen,
		store:     store,
		telemetry: emitter,
		tracer:    otel.Tracer("github.com/louisbranch/soloquest/internal/turn"),
		clock:     time.Now,
		newID:     id.NewID,
	}
}

// Start produces the opening narration for a fresh session. A generator
// failure here is not fatal: the localized fallback opening substitutes and
// play continues in degraded mode.
func (e *Engine) Start(ctx context.Context, s *Session, stream narrative.StreamFunc) (Outcome, error) {
	if s.State == StateCharacterDead {
		return Outcome{}, ErrCharacterDead
	}
	ctx, span := e.tracer.Start(ctx, "turn.Start", trace.WithAttributes(
		attribute.String("campaign.id", s.Campaign.ID),
	))
	defer span.End()

	s.State = StateAwaitingNarrative
	resp, err := e.gen.Start(ctx, e.narrativeContext(ctx, s), stream)
	if err != nil {
		e.emit(ctx, telemetry.SeverityWarn, "narrative start failed, using fallback",
			map[string]string{"error": err.Error()})
		resp = narrative.StartFallback(s.Campaign.Locale)
	}
	return e.applyResponse(ctx, s, resp, Outcome{}, stream)
}

// Resolve runs one full turn from player input to applied effects.
//
// Input that matches the dice grammar auto-rolls; input that matches but is
// out of bounds fails without advancing the turn. Everything else is a
// narrative action, checked for fabricated roll claims first. A mid-session
// generator failure aborts the turn with no effects applied and the pending
// roll and suggestions unchanged.
func (e *Engine) Resolve(ctx context.Context, s *Session, input string, stream narrative.StreamFunc) (Outcome, error) {
	switch s.State {
	case StateRollingDice, StateAwaitingNarrative, StateApplyingEffects:
		return Outcome{}, ErrTurnInProgress
	case StateCharacterDead:
		return Outcome{}, ErrCharacterDead
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return Outcome{}, fmt.Errorf("player input is required")
	}

	ctx, span := e.tracer.Start(ctx, "turn.Resolve", trace.WithAttributes(
		attribute.String("campaign.id", s.Campaign.ID),
		attribute.String("character.id", s.Character.ID),
	))
	defer span.End()

	prior := s.State
	var out Outcome
	var resp narrative.Response

	if dice.LooksLikeNotation(input) {
		notation, err := dice.Parse(input)
		if err != nil {
			// Out-of-bounds notation surfaces synchronously; nothing mutated.
			return Outcome{}, err
		}

		s.State = StateRollingDice
		roll := e.rollDice(ctx, s, notation)
		out.Roll = roll

		s.State = StateAwaitingNarrative
		resp, err = e.gen.Turn(ctx, e.narrativeContext(ctx, s), "", roll, stream)
		if err != nil {
			s.State = prior
			return Outcome{}, apperrors.Wrap(apperrors.CodeTurnNarrative, "narrative call failed", err)
		}

		// Recorded after the call so the roll reaches the generator once,
		// through the roll argument, and enters the history for later turns.
		content := fmt.Sprintf("%s rolled %s: %s", s.Character.Name, roll.Notation, roll.Breakdown)
		if roll.Penalty > 0 {
			content = fmt.Sprintf("%s (effective %d)", content, roll.Effective)
		}
		e.createMessage(ctx, s, storage.RoleSystem, content)
	} else {
		if claimed, ok := misfortune.DetectClaimedRoll(input); ok {
			s.Character.Misfortune = misfortune.Gain(s.Character.Misfortune)
			e.persist(ctx, "update misfortune", func(ctx context.Context) error {
				return e.store.UpdateMisfortune(ctx, s.Character.ID, s.Character.Misfortune)
			})
			e.emit(ctx, telemetry.SeverityWarn, "claimed roll detected",
				map[string]string{
					"claimed": fmt.Sprintf("%d", claimed),
					"stacks":  fmt.Sprintf("%d", s.Character.Misfortune),
				})
		}

		s.State = StateAwaitingNarrative
		var err error
		resp, err = e.gen.Turn(ctx, e.narrativeContext(ctx, s), input, nil, stream)
		if err != nil {
			s.State = prior
			return Outcome{}, apperrors.Wrap(apperrors.CodeTurnNarrative, "narrative call failed", err)
		}
		e.createMessage(ctx, s, storage.RolePlayer, input)
	}

	return e.applyResponse(ctx, s, resp, out, stream)
}

// Resend removes the turn artifacts created strictly after the cut and
// replays the original input. Deletes are sequential, not transactional.
func (e *Engine) Resend(ctx context.Context, s *Session, after time.Time, original string, stream narrative.StreamFunc) (Outcome, error) {
	if err := e.store.DeleteMessagesAfter(ctx, s.Campaign.ID, after); err != nil {
		return Outcome{}, fmt.Errorf("delete messages for resend: %w", err)
	}
	if err := e.store.DeleteRollsAfter(ctx, s.Campaign.ID, after); err != nil {
		return Outcome{}, fmt.Errorf("delete rolls for resend: %w", err)
	}
	return e.Resolve(ctx, s, original, stream)
}

// rollDice resolves the auto-roll path: equipment bonus folds into the
// modifier, misfortune degrades the narrative-facing value only, and stacks
// decay for the honest roll. The stored roll keeps the raw total.
func (e *Engine) rollDice(ctx context.Context, s *Session, notation dice.Notation) *narrative.EffectiveRoll {
	boosted := notation
	boosted.Modifier += inventory.EquipmentRollBonus(s.Character.Inventory)
	result := dice.Roll(boosted, s.RNG)

	stacks := s.Character.Misfortune
	effective := misfortune.ApplyToRoll(result.Total, stacks)
	penalty := misfortune.Penalty(stacks)

	s.Character.Misfortune = misfortune.Decay(stacks)
	e.persist(ctx, "update misfortune", func(ctx context.Context) error {
		return e.store.UpdateMisfortune(ctx, s.Character.ID, s.Character.Misfortune)
	})

	now := e.clock().UTC()
	if rollID, err := e.newID(); err == nil {
		e.persist(ctx, "create roll", func(ctx context.Context) error {
			return e.store.CreateRoll(ctx, storage.Roll{
				ID:          rollID,
				CampaignID:  s.Campaign.ID,
				CharacterID: s.Character.ID,
				Notation:    notation.String(),
				Rolls:       result.Rolls,
				Total:       result.Total,
				Effective:   effective,
				Penalty:     penalty,
				Breakdown:   result.Breakdown,
				CreatedAt:   now,
			})
		})
	}

	return &narrative.EffectiveRoll{
		Notation:  notation.String(),
		Breakdown: result.Breakdown,
		RawTotal:  result.Total,
		Effective: effective,
		Penalty:   penalty,
	}
}

// applyResponse runs the effect-application phase and settles the session
// in its next state. Effects never short-circuit: lethality is latched and
// the rest of the batch still applies; a single bad effect is recorded and
// skipped.
func (e *Engine) applyResponse(ctx context.Context, s *Session, resp narrative.Response, out Outcome, stream narrative.StreamFunc) (Outcome, error) {
	s.State = StateApplyingEffects

	out.Narration = resp.Content
	if resp.UsedFallback {
		out.Degraded = true
		out.Notice = narrative.DegradedNotice(s.Campaign.Locale)
		e.emit(ctx, telemetry.SeverityWarn, "narrative fallback used", nil)
	}
	if resp.Content != "" {
		e.createMessage(ctx, s, storage.RoleNarrator, resp.Content)
	}

	char := s.Character.CloneMaps()
	armor := inventory.ArmorDamageReduction(char.EquippedArmor, char.Inventory)
	lethal := false
	hpChanged := false

	for _, effect := range resp.CharacterEffects {
		switch effect.Kind {
		case narrative.EffectDamage:
			applyDamage(&char, effect.Amount, armor, &lethal)
			hpChanged = true
		case narrative.EffectDamageRoll:
			result, err := dice.RollNotation(effect.Notation, s.RNG)
			if err != nil {
				e.skipEffect(ctx, "damage_roll", effect.Notation, err)
				continue
			}
			applyDamage(&char, result.Total, armor, &lethal)
			hpChanged = true
		case narrative.EffectHeal:
			char.HitPoints = min(char.MaxHitPoints, char.HitPoints+max(effect.Amount, 0))
			hpChanged = true
		case narrative.EffectSpendResource, narrative.EffectRestoreResource:
			if err := applyResource(&char, effect); err != nil {
				e.skipEffect(ctx, string(effect.Kind), effect.Resource, err)
				continue
			}
			e.persist(ctx, "update resource", func(ctx context.Context) error {
				return e.store.UpdateResource(ctx, char.ID, effect.Resource, char.Resources[effect.Resource])
			})
		default:
			e.skipEffect(ctx, "unrecognized", effect.Raw, nil)
		}
	}

	if hpChanged {
		e.persist(ctx, "update hp", func(ctx context.Context) error {
			return e.store.UpdateHP(ctx, char.ID, char.HitPoints, char.MaxHitPoints)
		})
	}

	invChanged := false
	for _, drop := range resp.ItemDrops {
		var added bool
		char.Inventory, added = inventory.AddDrop(char.Inventory, inventory.Drop{
			ItemID:   drop.ItemID,
			Quantity: drop.Quantity,
		}, e.newID)
		if !added {
			e.skipEffect(ctx, "item_drop", drop.ItemID, nil)
			continue
		}
		invChanged = true
	}
	if invChanged {
		e.persist(ctx, "update inventory", func(ctx context.Context) error {
			return e.store.UpdateInventory(ctx, char)
		})
	}

	if resp.XPAward != 0 {
		result := progression.UpdateExperience(char, resp.XPAward, char.System)
		char = result.Character
		out.XPAwarded = resp.XPAward
		out.LeveledUp = result.LeveledUp
		out.NewLevel = result.NewLevel
		e.persist(ctx, "update progress", func(ctx context.Context) error {
			return e.store.UpdateProgress(ctx, char.ID, char.Level, char.Experience, char.PendingPoints)
		})
		e.persist(ctx, "update hp", func(ctx context.Context) error {
			return e.store.UpdateHP(ctx, char.ID, char.HitPoints, char.MaxHitPoints)
		})
	}

	out.PendingPoints = char.PendingPoints
	s.Character = char

	if lethal {
		out.Died = true
		s.State = StateCharacterDead
		s.Suggested = nil
		s.PendingRoll = ""

		death := e.deathNarration(ctx, s, stream)
		out.DeathNarration = death.Content
		if death.UsedFallback {
			out.Degraded = true
			out.Notice = narrative.DegradedNotice(s.Campaign.Locale)
		}
		if death.Content != "" {
			e.createMessage(ctx, s, storage.RoleNarrator, death.Content)
		}
		return out, nil
	}

	s.State = StateIdle
	s.Suggested = resp.SuggestedActions
	s.PendingRoll = resp.RollRequest
	out.Suggested = resp.SuggestedActions
	out.RollRequest = resp.RollRequest
	return out, nil
}

// deathNarration issues the final narrative call. The hard-coded fallback
// guarantees a death narration even when the generator is down.
func (e *Engine) deathNarration(ctx context.Context, s *Session, stream narrative.StreamFunc) narrative.Response {
	cause := fmt.Sprintf("%s's hit points reached zero.", s.Character.Name)
	resp, err := e.gen.Death(ctx, e.narrativeContext(ctx, s), cause, stream)
	if err != nil {
		e.emit(ctx, telemetry.SeverityWarn, "death narrative failed, using fallback",
			map[string]string{"error": err.Error()})
		return narrative.DeathFallback(s.Campaign.Locale)
	}
	return resp
}

func applyDamage(char *character.Character, amount, armor int, lethal *bool) {
	damage := amount - armor
	if damage < 0 {
		damage = 0
	}
	char.HitPoints = max(char.HitPoints-damage, 0)
	if char.HitPoints <= 0 {
		*lethal = true
	}
}

func applyResource(char *character.Character, effect narrative.Effect) error {
	limit, ok := char.MaxResources[effect.Resource]
	if !ok {
		return fmt.Errorf("unknown resource %q", effect.Resource)
	}
	current := char.Resources[effect.Resource]
	amount := max(effect.Amount, 0)
	switch effect.Kind {
	case narrative.EffectSpendResource:
		char.Resources[effect.Resource] = max(current-amount, 0)
	case narrative.EffectRestoreResource:
		char.Resources[effect.Resource] = min(current+amount, limit)
	}
	return nil
}

// narrativeContext assembles the generator context from the session and the
// persisted history. A history read failure degrades to a memoryless call
// rather than failing the turn.
func (e *Engine) narrativeContext(ctx context.Context, s *Session) narrative.Context {
	tc := narrative.Context{Campaign: s.Campaign, Character: &s.Character}

	messages, err := e.store.ListMessages(ctx, s.Campaign.ID)
	if err != nil {
		e.emit(ctx, telemetry.SeverityError, "history read failed",
			map[string]string{"error": err.Error()})
		return tc
	}
	for _, msg := range messages {
		role := narrative.RoleNarrator
		switch msg.Role {
		case storage.RolePlayer:
			role = narrative.RolePlayer
		case storage.RoleSystem:
			role = narrative.RoleSystem
		}
		tc.Messages = append(tc.Messages, narrative.Message{Role: role, Content: msg.Content})
	}
	return tc
}

// createMessage persists one history message best-effort. Persistence is
// write-then-forget: a failed write is recorded but never fails the turn.
func (e *Engine) createMessage(ctx context.Context, s *Session, role storage.MessageRole, content string) {
	msgID, err := e.newID()
	if err != nil {
		e.emit(ctx, telemetry.SeverityError, "id generation failed",
			map[string]string{"error": err.Error()})
		return
	}
	e.persist(ctx, "create message", func(ctx context.Context) error {
		return e.store.CreateMessage(ctx, storage.Message{
			ID:         msgID,
			CampaignID: s.Campaign.ID,
			Role:       role,
			Content:    content,
			CreatedAt:  e.clock().UTC(),
		})
	})
}

func (e *Engine) persist(ctx context.Context, op string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		e.emit(ctx, telemetry.SeverityError, "persist failed",
			map[string]string{"op": op, "error": err.Error()})
	}
}

func (e *Engine) skipEffect(ctx context.Context, kind, detail string, err error) {
	metadata := map[string]string{"kind": kind, "detail": detail}
	if err != nil {
		metadata["error"] = err.Error()
	}
	e.emit(ctx, telemetry.SeverityWarn, "effect skipped", metadata)
}

func (e *Engine) emit(ctx context.Context, severity telemetry.Severity, message string, metadata map[string]string) {
	_ = e.telemetry.Emit(ctx, severity, "turn", message, metadata)
}
