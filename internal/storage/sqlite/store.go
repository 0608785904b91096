// Package sqlite provides the SQLite-backed play storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/soloquest/internal/campaign"
	"github.com/louisbranch/soloquest/internal/character"
	"github.com/louisbranch/soloquest/internal/inventory"
	sqlitemigrate "github.com/louisbranch/soloquest/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/soloquest/internal/storage"
	"github.com/louisbranch/soloquest/internal/storage/sqlite/migrations"
	"github.com/louisbranch/soloquest/internal/systems"
	_ "modernc.org/sqlite"
)

// Store persists play state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite play store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func marshalJSON(value any, fallback string) (string, error) {
	if value == nil {
		return fallback, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// PutCampaign inserts or replaces one campaign record.
func (s *Store) PutCampaign(ctx context.Context, c campaign.Campaign) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("campaign id is required")
	}
	entities, err := marshalJSON(c.Entities, "[]")
	if err != nil {
		return fmt.Errorf("marshal campaign entities: %w", err)
	}
	facts, err := marshalJSON(c.Facts, "[]")
	if err != nil {
		return fmt.Errorf("marshal campaign facts: %w", err)
	}
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO campaigns (id, name, system, locale, recap, entities, facts, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name,
		   system = excluded.system,
		   locale = excluded.locale,
		   recap = excluded.recap,
		   entities = excluded.entities,
		   facts = excluded.facts`,
		c.ID,
		c.Name,
		int(c.System),
		c.Locale,
		c.Recap,
		entities,
		facts,
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("put campaign: %w", err)
	}
	return nil
}

// GetCampaign returns one campaign by ID.
func (s *Store) GetCampaign(ctx context.Context, id string) (campaign.Campaign, error) {
	if err := s.ready(ctx); err != nil {
		return campaign.Campaign{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, system, locale, recap, entities, facts, created_at
		   FROM campaigns
		  WHERE id = ?`,
		id,
	)

	var c campaign.Campaign
	var system int
	var entities, facts string
	var createdAt int64
	err := row.Scan(&c.ID, &c.Name, &system, &c.Locale, &c.Recap, &entities, &facts, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return campaign.Campaign{}, storage.ErrNotFound
		}
		return campaign.Campaign{}, fmt.Errorf("get campaign: %w", err)
	}

	c.System = systems.ID(system)
	c.CreatedAt = fromMillis(createdAt)
	if err := json.Unmarshal([]byte(entities), &c.Entities); err != nil {
		return campaign.Campaign{}, fmt.Errorf("decode campaign entities: %w", err)
	}
	if err := json.Unmarshal([]byte(facts), &c.Facts); err != nil {
		return campaign.Campaign{}, fmt.Errorf("decode campaign facts: %w", err)
	}
	return c, nil
}

// PutCharacter inserts or replaces one character record.
func (s *Store) PutCharacter(ctx context.Context, c character.Character) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("character id is required")
	}
	attrs, err := marshalJSON(c.Attributes, "{}")
	if err != nil {
		return fmt.Errorf("marshal character attributes: %w", err)
	}
	resources, err := marshalJSON(c.Resources, "{}")
	if err != nil {
		return fmt.Errorf("marshal character resources: %w", err)
	}
	maxResources, err := marshalJSON(c.MaxResources, "{}")
	if err != nil {
		return fmt.Errorf("marshal character max resources: %w", err)
	}
	items, err := marshalJSON(c.Inventory, "[]")
	if err != nil {
		return fmt.Errorf("marshal character inventory: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO characters (
		   id, campaign_id, name, system,
		   level, experience, pending_points, attributes,
		   hit_points, max_hit_points, resources, max_resources,
		   misfortune, inventory, equipped_weapon, equipped_armor
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   campaign_id = excluded.campaign_id,
		   name = excluded.name,
		   system = excluded.system,
		   level = excluded.level,
		   experience = excluded.experience,
		   pending_points = excluded.pending_points,
		   attributes = excluded.attributes,
		   hit_points = excluded.hit_points,
		   max_hit_points = excluded.max_hit_points,
		   resources = excluded.resources,
		   max_resources = excluded.max_resources,
		   misfortune = excluded.misfortune,
		   inventory = excluded.inventory,
		   equipped_weapon = excluded.equipped_weapon,
		   equipped_armor = excluded.equipped_armor`,
		c.ID,
		c.CampaignID,
		c.Name,
		int(c.System),
		c.Level,
		c.Experience,
		c.PendingPoints,
		attrs,
		c.HitPoints,
		c.MaxHitPoints,
		resources,
		maxResources,
		c.Misfortune,
		items,
		c.EquippedWeapon,
		c.EquippedArmor,
	)
	if err != nil {
		return fmt.Errorf("put character: %w", err)
	}
	return nil
}

// GetCharacter returns one character by ID.
func (s *Store) GetCharacter(ctx context.Context, id string) (character.Character, error) {
	if err := s.ready(ctx); err != nil {
		return character.Character{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, campaign_id, name, system,
		        level, experience, pending_points, attributes,
		        hit_points, max_hit_points, resources, max_resources,
		        misfortune, inventory, equipped_weapon, equipped_armor
		   FROM characters
		  WHERE id = ?`,
		id,
	)

	var c character.Character
	var system int
	var attrs, resources, maxResources, items string
	err := row.Scan(
		&c.ID,
		&c.CampaignID,
		&c.Name,
		&system,
		&c.Level,
		&c.Experience,
		&c.PendingPoints,
		&attrs,
		&c.HitPoints,
		&c.MaxHitPoints,
		&resources,
		&maxResources,
		&c.Misfortune,
		&items,
		&c.EquippedWeapon,
		&c.EquippedArmor,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return character.Character{}, storage.ErrNotFound
		}
		return character.Character{}, fmt.Errorf("get character: %w", err)
	}

	c.System = systems.ID(system)
	if err := json.Unmarshal([]byte(attrs), &c.Attributes); err != nil {
		return character.Character{}, fmt.Errorf("decode character attributes: %w", err)
	}
	if err := json.Unmarshal([]byte(resources), &c.Resources); err != nil {
		return character.Character{}, fmt.Errorf("decode character resources: %w", err)
	}
	if err := json.Unmarshal([]byte(maxResources), &c.MaxResources); err != nil {
		return character.Character{}, fmt.Errorf("decode character max resources: %w", err)
	}
	var inv []inventory.Item
	if err := json.Unmarshal([]byte(items), &inv); err != nil {
		return character.Character{}, fmt.Errorf("decode character inventory: %w", err)
	}
	c.Inventory = inv
	if len(c.Resources) == 0 {
		c.Resources = nil
	}
	if len(c.MaxResources) == 0 {
		c.MaxResources = nil
	}
	return c, nil
}

func (s *Store) updateCharacter(ctx context.Context, op, query string, args ...any) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateHP writes current and maximum hit points.
func (s *Store) UpdateHP(ctx context.Context, id string, hp, maxHP int) error {
	return s.updateCharacter(ctx, "update hp",
		`UPDATE characters SET hit_points = ?, max_hit_points = ? WHERE id = ?`,
		hp, maxHP, id)
}

// UpdateProgress writes level, experience, and pending attribute points.
func (s *Store) UpdateProgress(ctx context.Context, id string, level, experience, pendingPoints int) error {
	return s.updateCharacter(ctx, "update progress",
		`UPDATE characters SET level = ?, experience = ?, pending_points = ? WHERE id = ?`,
		level, experience, pendingPoints, id)
}

// UpdateAttribute writes one attribute value inside the JSON column.
func (s *Store) UpdateAttribute(ctx context.Context, id, name string, value int) error {
	return s.updateCharacter(ctx, "update attribute",
		`UPDATE characters SET attributes = json_set(attributes, '$.' || ?, ?) WHERE id = ?`,
		name, value, id)
}

// UpdateResource writes one resource value inside the JSON column.
func (s *Store) UpdateResource(ctx context.Context, id, name string, value int) error {
	return s.updateCharacter(ctx, "update resource",
		`UPDATE characters SET resources = json_set(resources, '$.' || ?, ?) WHERE id = ?`,
		name, value, id)
}

// UpdateMisfortune writes the misfortune stack count.
func (s *Store) UpdateMisfortune(ctx context.Context, id string, stacks int) error {
	return s.updateCharacter(ctx, "update misfortune",
		`UPDATE characters SET misfortune = ? WHERE id = ?`,
		stacks, id)
}

// UpdateInventory writes the inventory list and equipment slots.
func (s *Store) UpdateInventory(ctx context.Context, c character.Character) error {
	items, err := marshalJSON(c.Inventory, "[]")
	if err != nil {
		return fmt.Errorf("marshal character inventory: %w", err)
	}
	return s.updateCharacter(ctx, "update inventory",
		`UPDATE characters SET inventory = ?, equipped_weapon = ?, equipped_armor = ? WHERE id = ?`,
		items, c.EquippedWeapon, c.EquippedArmor, c.ID)
}

var _ storage.Store = (*Store)(nil)
