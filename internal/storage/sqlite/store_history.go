package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/soloquest/internal/storage"
)

// CreateMessage appends one history message.
func (s *Store) CreateMessage(ctx context.Context, msg storage.Message) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(msg.ID) == "" {
		return fmt.Errorf("message id is required")
	}
	if strings.TrimSpace(msg.CampaignID) == "" {
		return fmt.Errorf("campaign id is required")
	}
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO messages (id, campaign_id, role, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		msg.ID,
		msg.CampaignID,
		string(msg.Role),
		msg.Content,
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// ListMessages returns the campaign history in creation order.
func (s *Store) ListMessages(ctx context.Context, campaignID string) ([]storage.Message, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, campaign_id, role, content, created_at
		   FROM messages
		  WHERE campaign_id = ?
		  ORDER BY created_at ASC, id ASC`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []storage.Message
	for rows.Next() {
		var msg storage.Message
		var role string
		var createdAt int64
		if err := rows.Scan(&msg.ID, &msg.CampaignID, &role, &msg.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		msg.Role = storage.MessageRole(role)
		msg.CreatedAt = fromMillis(createdAt)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// DeleteMessagesAfter removes the campaign's messages created strictly after t.
func (s *Store) DeleteMessagesAfter(ctx context.Context, campaignID string, t time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM messages WHERE campaign_id = ? AND created_at > ?`,
		campaignID,
		toMillis(t),
	)
	if err != nil {
		return fmt.Errorf("delete messages after: %w", err)
	}
	return nil
}

// CreateRoll appends one dice roll record.
func (s *Store) CreateRoll(ctx context.Context, roll storage.Roll) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(roll.ID) == "" {
		return fmt.Errorf("roll id is required")
	}
	if strings.TrimSpace(roll.CampaignID) == "" {
		return fmt.Errorf("campaign id is required")
	}
	dice, err := marshalJSON(roll.Rolls, "[]")
	if err != nil {
		return fmt.Errorf("marshal roll dice: %w", err)
	}
	createdAt := roll.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO rolls (
		   id, campaign_id, character_id, notation,
		   rolls, total, effective, penalty, breakdown, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		roll.ID,
		roll.CampaignID,
		roll.CharacterID,
		roll.Notation,
		dice,
		roll.Total,
		roll.Effective,
		roll.Penalty,
		roll.Breakdown,
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("create roll: %w", err)
	}
	return nil
}

// DeleteRollsAfter removes the campaign's rolls created strictly after t.
func (s *Store) DeleteRollsAfter(ctx context.Context, campaignID string, t time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM rolls WHERE campaign_id = ? AND created_at > ?`,
		campaignID,
		toMillis(t),
	)
	if err != nil {
		return fmt.Errorf("delete rolls after: %w", err)
	}
	return nil
}

// AppendTelemetryEvent records one operational event.
func (s *Store) AppendTelemetryEvent(ctx context.Context, event storage.TelemetryEvent) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	metadata := "{}"
	if len(event.Metadata) > 0 {
		raw, err := json.Marshal(event.Metadata)
		if err != nil {
			return fmt.Errorf("marshal telemetry metadata: %w", err)
		}
		metadata = string(raw)
	}
	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO telemetry_events (timestamp, severity, component, message, metadata)
		 VALUES (?, ?, ?, ?, ?)`,
		toMillis(timestamp),
		event.Severity,
		event.Component,
		event.Message,
		metadata,
	)
	if err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}
