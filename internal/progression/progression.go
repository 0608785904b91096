// Package progression implements experience tracking, level-up and
// level-down detection, and attribute point allocation.
package progression

import (
	"github.com/louisbranch/soloquest/internal/character"
	apperrors "github.com/louisbranch/soloquest/internal/platform/errors"
	"github.com/louisbranch/soloquest/internal/systems"
)

var (
	// ErrNoPointsAvailable indicates an allocation with no pending points.
	ErrNoPointsAvailable = apperrors.New(apperrors.CodeProgressionNoPoints, "no attribute points available")
	// ErrUnknownAttribute indicates the system template has no such attribute.
	ErrUnknownAttribute = apperrors.New(apperrors.CodeProgressionUnknownAttribute, "unknown attribute")
	// ErrAttributeOutOfRange indicates the increment would leave the template's range.
	ErrAttributeOutOfRange = apperrors.New(apperrors.CodeProgressionAttributeAtCap, "attribute value out of range")
)

// Result describes the outcome of an experience update.
type Result struct {
	Character       character.Character
	LeveledUp       bool
	LeveledDown     bool
	NewLevel        int
	AttributePoints int // points granted by this update, not the pending total
}

// LevelForExperience returns the 1-indexed level for a cumulative XP value:
// the highest level whose threshold is met, clamped to [1, len(table)].
func LevelForExperience(xp int, table []int) int {
	level := 1
	for i, threshold := range table {
		if xp >= threshold {
			level = i + 1
		} else {
			break
		}
	}
	return level
}

// UpdateExperience applies an XP delta — negative deltas are a supported
// mechanic, not an error — and recomputes the level from the system's
// cumulative table.
//
// Level gains grant LevelUpPoints per level and put the character in the
// pending-allocation state; no attribute is mutated here. Level losses set
// LeveledDown but claw nothing back: already-allocated attributes and
// still-pending points survive (documented decision, see DESIGN.md).
// Max HP is recomputed for the new level and current HP clamped to it.
func UpdateExperience(c character.Character, delta int, sys systems.ID) Result {
	tmpl := systems.Lookup(sys)

	// Work on a copy so the caller's maps are never aliased mid-update.
	c = c.CloneMaps()
	oldLevel := c.Level
	c.Experience = max(c.Experience+delta, 0)
	newLevel := LevelForExperience(c.Experience, tmpl.ExperienceTable)

	result := Result{NewLevel: newLevel}

	switch {
	case newLevel > oldLevel:
		result.LeveledUp = true
		result.AttributePoints = tmpl.LevelUpPoints * (newLevel - oldLevel)
		c.PendingPoints += result.AttributePoints
	case newLevel < oldLevel:
		result.LeveledDown = true
	}

	if newLevel != oldLevel {
		c.Level = newLevel
		c.MaxHitPoints = tmpl.MaxHP(c.Attributes, newLevel)
		c.HitPoints = min(c.HitPoints, c.MaxHitPoints)
		refreshResources(&c, tmpl)
	}

	result.Character = c
	return result
}

// AllocateAttributePoint spends one pending point on the named attribute.
// It fails with ErrNoPointsAvailable when nothing is pending,
// ErrUnknownAttribute for names outside the template, and
// ErrAttributeOutOfRange when the increment would exceed the attribute cap.
// Derived stats (max HP, resource caps) are recomputed on success.
func AllocateAttributePoint(c character.Character, attr string, sys systems.ID) (character.Character, error) {
	if c.PendingPoints <= 0 {
		return c, ErrNoPointsAvailable
	}

	tmpl := systems.Lookup(sys)
	def, ok := tmpl.Attribute(attr)
	if !ok {
		return c, apperrors.WithMetadata(apperrors.CodeProgressionUnknownAttribute,
			"unknown attribute", map[string]string{"attribute": attr})
	}

	next := c.Attributes[attr] + 1
	if !systems.ValidAttributeValue(next, def) {
		return c, apperrors.WithMetadata(apperrors.CodeProgressionAttributeAtCap,
			"attribute value out of range", map[string]string{"attribute": attr})
	}

	c = c.CloneMaps()
	c.Attributes[attr] = next
	c.PendingPoints--

	c.MaxHitPoints = tmpl.MaxHP(c.Attributes, c.Level)
	c.HitPoints = min(c.HitPoints, c.MaxHitPoints)
	refreshResources(&c, tmpl)

	return c, nil
}

// ConfirmLevelUp ends the pending-allocation state. Unspent points are
// forfeited: confirming early is the player's explicit choice.
func ConfirmLevelUp(c character.Character) character.Character {
	c.PendingPoints = 0
	return c
}

// refreshResources recomputes resource caps from the template and clamps
// current values, preserving spent amounts where the cap allows.
func refreshResources(c *character.Character, tmpl systems.Template) {
	if tmpl.MaxResources == nil {
		return
	}
	maxResources := tmpl.MaxResources(c.Attributes, c.Level)
	if c.Resources == nil {
		c.Resources = make(map[string]int, len(maxResources))
		for name, value := range maxResources {
			c.Resources[name] = value
		}
	}
	for name, limit := range maxResources {
		if current, ok := c.Resources[name]; !ok {
			c.Resources[name] = limit
		} else {
			c.Resources[name] = min(current, limit)
		}
	}
	c.MaxResources = maxResources
}
