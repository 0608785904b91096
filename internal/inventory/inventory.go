// Package inventory implements item definitions, encoded item effects, and
// equipment bonus resolution.
//
// Item effects travel as comma-separated "type:value[:value2]" tokens
// (e.g. "roll_bonus:2,damage_bonus:3"). Parsing is best-effort: malformed
// tokens become EffectUnrecognized entries instead of failing the string.
package inventory

import (
	"strconv"
	"strings"
)

// Type classifies an inventory entry.
type Type string

const (
	TypeConsumable Type = "consumable"
	TypeEquipment  Type = "equipment"
	TypeOther      Type = "other"
)

// Slot names the equipment slot a definition occupies, if any.
type Slot string

const (
	SlotNone   Slot = ""
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
)

// EffectKind discriminates parsed effect tokens.
type EffectKind string

const (
	EffectRollBonus       EffectKind = "roll_bonus"
	EffectDamageBonus     EffectKind = "damage_bonus"
	EffectDamageReduction EffectKind = "damage_reduction"
	EffectHeal            EffectKind = "heal"
	EffectAttributeBonus  EffectKind = "attribute_bonus"
	EffectUnrecognized    EffectKind = "unrecognized"
)

// MaxRollBonus caps the total roll bonus from carried equipment.
const MaxRollBonus = 5

// Effect is one decoded effect token.
type Effect struct {
	Kind  EffectKind
	Value int
	Attr  string // set for attribute_bonus
	Raw   string // original token, kept for unrecognized entries
}

// Item is one inventory entry on a character. Consumables stack by ItemID;
// equipment instances are distinct entries.
type Item struct {
	ID          string `json:"id"`
	ItemID      string `json:"itemId"`
	Name        string `json:"name"`
	Type        Type   `json:"type"`
	Quantity    int    `json:"quantity"`
	Effect      string `json:"effect,omitempty"`
	Description string `json:"description,omitempty"`
}

// Drop is an item grant produced by the narrative generator.
type Drop struct {
	ItemID   string
	Quantity int
}

// ParseEffects decodes every token in an encoded effect string. Malformed
// tokens are preserved as EffectUnrecognized rather than aborting the parse.
func ParseEffects(encoded string) []Effect {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil
	}

	tokens := strings.Split(encoded, ",")
	effects := make([]Effect, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		effects = append(effects, parseToken(token))
	}
	return effects
}

func parseToken(token string) Effect {
	parts := strings.Split(token, ":")
	kind := EffectKind(strings.TrimSpace(parts[0]))

	switch kind {
	case EffectRollBonus, EffectDamageBonus, EffectDamageReduction, EffectHeal:
		if len(parts) != 2 {
			return Effect{Kind: EffectUnrecognized, Raw: token}
		}
		value, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Effect{Kind: EffectUnrecognized, Raw: token}
		}
		return Effect{Kind: kind, Value: value}
	case EffectAttributeBonus:
		if len(parts) != 3 {
			return Effect{Kind: EffectUnrecognized, Raw: token}
		}
		attr := strings.TrimSpace(parts[1])
		value, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || attr == "" {
			return Effect{Kind: EffectUnrecognized, Raw: token}
		}
		return Effect{Kind: kind, Attr: attr, Value: value}
	default:
		return Effect{Kind: EffectUnrecognized, Raw: token}
	}
}

// effectValue returns the value of the first effect of the given kind in an
// encoded effect string, or 0 when absent.
func effectValue(encoded string, kind EffectKind) int {
	for _, effect := range ParseEffects(encoded) {
		if effect.Kind == kind {
			return effect.Value
		}
	}
	return 0
}

// EquipmentRollBonus sums roll_bonus effects across equipment-type entries,
// capped at MaxRollBonus regardless of how many bonus items are carried.
func EquipmentRollBonus(items []Item) int {
	total := 0
	for _, item := range items {
		if item.Type != TypeEquipment {
			continue
		}
		total += effectValue(item.Effect, EffectRollBonus)
	}
	return min(total, MaxRollBonus)
}

// ArmorDamageReduction returns the damage_reduction value of the equipped
// armor, or 0 when nothing is equipped or the item carries no such effect.
func ArmorDamageReduction(equippedID string, items []Item) int {
	return equippedEffect(equippedID, items, EffectDamageReduction)
}

// WeaponDamageBonus returns the damage_bonus value of the equipped weapon,
// or 0 when nothing is equipped or the item carries no such effect.
func WeaponDamageBonus(equippedID string, items []Item) int {
	return equippedEffect(equippedID, items, EffectDamageBonus)
}

func equippedEffect(equippedID string, items []Item, kind EffectKind) int {
	if equippedID == "" {
		return 0
	}
	for _, item := range items {
		if item.ID == equippedID {
			return effectValue(item.Effect, kind)
		}
	}
	return 0
}

// AddDrop merges a drop into the inventory. A drop whose ItemID matches an
// existing consumable entry increases that entry's quantity in place;
// everything else appends a new entry. Unknown item ids are ignored.
func AddDrop(items []Item, drop Drop, newID func() (string, error)) ([]Item, bool) {
	def, ok := Lookup(drop.ItemID)
	if !ok {
		return items, false
	}

	qty := drop.Quantity
	if qty <= 0 {
		qty = def.DefaultQuantity
	}

	if def.Type == TypeConsumable {
		for i := range items {
			if items[i].ItemID == drop.ItemID && items[i].Type == TypeConsumable {
				items[i].Quantity += qty
				return items, true
			}
		}
	}

	item, ok := NewItem(drop.ItemID, qty, newID)
	if !ok {
		return items, false
	}
	return append(items, item), true
}

// UseConsumable decrements a consumable stack and returns its effects.
// Stacks that reach zero are removed. The third return is false when the
// item is absent or not a consumable.
func UseConsumable(items []Item, itemID string) ([]Item, []Effect, bool) {
	for i := range items {
		if items[i].ItemID != itemID || items[i].Type != TypeConsumable {
			continue
		}
		effects := ParseEffects(items[i].Effect)
		items[i].Quantity--
		if items[i].Quantity <= 0 {
			items = append(items[:i], items[i+1:]...)
		}
		return items, effects, true
	}
	return items, nil, false
}
