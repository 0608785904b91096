// Package character defines the player character owned by a campaign.
//
// A character is mutated only through the progression, inventory, and
// misfortune operations; callers never write fields directly during a turn.
package character

import (
	"github.com/louisbranch/soloquest/internal/inventory"
	"github.com/louisbranch/soloquest/internal/platform/id"
	"github.com/louisbranch/soloquest/internal/systems"
)

// MaxMisfortune caps the anti-cheat bad-luck counter.
const MaxMisfortune = 5

// Character is the single player character of a campaign (1:1 ownership).
type Character struct {
	ID         string
	CampaignID string
	Name       string
	System     systems.ID

	Level      int
	Experience int
	// PendingPoints counts attribute points granted by level-ups and not yet
	// spent. A non-zero value is the pending-allocation state; confirming a
	// level-up zeroes it even when points remain (unspent points forfeit).
	PendingPoints int

	Attributes map[string]int

	HitPoints    int
	MaxHitPoints int

	Resources    map[string]int
	MaxResources map[string]int

	Misfortune int

	Inventory      []inventory.Item
	EquippedWeapon string // inventory entry id, empty when unequipped
	EquippedArmor  string
}

// New creates a level-1 character from the system template's defaults.
func New(campaignID, name string, sys systems.ID) (Character, error) {
	charID, err := id.NewID()
	if err != nil {
		return Character{}, err
	}

	tmpl := systems.Lookup(sys)
	attrs := tmpl.DefaultAttributes()
	maxHP := tmpl.MaxHP(attrs, 1)

	c := Character{
		ID:           charID,
		CampaignID:   campaignID,
		Name:         name,
		System:       sys,
		Level:        1,
		Attributes:   attrs,
		HitPoints:    maxHP,
		MaxHitPoints: maxHP,
	}

	if tmpl.MaxResources != nil {
		maxResources := tmpl.MaxResources(attrs, 1)
		c.MaxResources = maxResources
		c.Resources = make(map[string]int, len(maxResources))
		for name, value := range maxResources {
			c.Resources[name] = value
		}
	}

	return c, nil
}

// Alive reports whether the character has hit points remaining.
func (c Character) Alive() bool {
	return c.HitPoints > 0
}

// PendingAllocation reports whether a level-up is awaiting point spending.
func (c Character) PendingAllocation() bool {
	return c.PendingPoints > 0
}

// CloneMaps returns a copy with attribute and resource maps duplicated so
// callers can mutate the copy without aliasing the original.
func (c Character) CloneMaps() Character {
	clone := c
	clone.Attributes = make(map[string]int, len(c.Attributes))
	for k, v := range c.Attributes {
		clone.Attributes[k] = v
	}
	if c.Resources != nil {
		clone.Resources = make(map[string]int, len(c.Resources))
		for k, v := range c.Resources {
			clone.Resources[k] = v
		}
	}
	if c.MaxResources != nil {
		clone.MaxResources = make(map[string]int, len(c.MaxResources))
		for k, v := range c.MaxResources {
			clone.MaxResources[k] = v
		}
	}
	if c.Inventory != nil {
		clone.Inventory = append([]inventory.Item(nil), c.Inventory...)
	}
	return clone
}
