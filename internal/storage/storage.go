// Package storage defines the persistence interfaces for campaigns,
// characters, turn history, and telemetry. Implementations live in
// subpackages; consumers depend only on these interfaces.
package storage

import (
	"context"
	"time"

	"github.com/louisbranch/soloquest/internal/campaign"
	"github.com/louisbranch/soloquest/internal/character"
	apperrors "github.com/louisbranch/soloquest/internal/platform/errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// MessageRole tags a stored history message.
type MessageRole string

const (
	RolePlayer   MessageRole = "player"
	RoleNarrator MessageRole = "narrator"
	RoleSystem   MessageRole = "system"
)

// Message is one persisted entry of a campaign's turn history.
type Message struct {
	ID         string
	CampaignID string
	Role       MessageRole
	Content    string
	CreatedAt  time.Time
}

// Roll is one persisted dice roll, recording both the raw total and the
// misfortune-adjusted value the turn actually used.
type Roll struct {
	ID          string
	CampaignID  string
	CharacterID string
	Notation    string
	Rolls       []int
	Total       int
	Effective   int
	Penalty     int
	Breakdown   string
	CreatedAt   time.Time
}

// TelemetryEvent is an append-only operational record. IDs are assigned by
// the store.
type TelemetryEvent struct {
	Timestamp time.Time
	Severity  string
	Component string
	Message   string
	Metadata  map[string]string
}

// MessageStore persists campaign history.
type MessageStore interface {
	CreateMessage(ctx context.Context, msg Message) error
	ListMessages(ctx context.Context, campaignID string) ([]Message, error)
	// DeleteMessagesAfter removes every message of the campaign created
	// strictly after t.
	DeleteMessagesAfter(ctx context.Context, campaignID string, t time.Time) error
}

// RollStore persists dice rolls.
type RollStore interface {
	CreateRoll(ctx context.Context, roll Roll) error
	DeleteRollsAfter(ctx context.Context, campaignID string, t time.Time) error
}

// CharacterStore persists characters. The targeted update methods write a
// single facet without rewriting the whole record.
type CharacterStore interface {
	GetCharacter(ctx context.Context, id string) (character.Character, error)
	PutCharacter(ctx context.Context, c character.Character) error
	UpdateHP(ctx context.Context, id string, hp, maxHP int) error
	UpdateProgress(ctx context.Context, id string, level, experience, pendingPoints int) error
	UpdateAttribute(ctx context.Context, id, name string, value int) error
	UpdateResource(ctx context.Context, id, name string, value int) error
	UpdateMisfortune(ctx context.Context, id string, stacks int) error
	UpdateInventory(ctx context.Context, c character.Character) error
}

// CampaignStore persists campaigns.
type CampaignStore interface {
	GetCampaign(ctx context.Context, id string) (campaign.Campaign, error)
	PutCampaign(ctx context.Context, c campaign.Campaign) error
}

// TelemetryStore persists operational events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, event TelemetryEvent) error
}

// Store aggregates every persistence concern behind one handle.
type Store interface {
	MessageStore
	RollStore
	CharacterStore
	CampaignStore
	TelemetryStore

	Close() error
}
