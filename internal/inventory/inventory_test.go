package inventory

import "testing"

// TestParseEffectsDecodesTokens ensures each known token kind decodes and
// malformed tokens survive as unrecognized entries.
func TestParseEffectsDecodesTokens(t *testing.T) {
	effects := ParseEffects("roll_bonus:2, damage_bonus:3,attribute_bonus:strength:1,bogus,heal:abc")
	if len(effects) != 5 {
		t.Fatalf("expected 5 effects, got %d", len(effects))
	}

	if effects[0].Kind != EffectRollBonus || effects[0].Value != 2 {
		t.Fatalf("unexpected first effect: %+v", effects[0])
	}
	if effects[1].Kind != EffectDamageBonus || effects[1].Value != 3 {
		t.Fatalf("unexpected second effect: %+v", effects[1])
	}
	if effects[2].Kind != EffectAttributeBonus || effects[2].Attr != "strength" || effects[2].Value != 1 {
		t.Fatalf("unexpected third effect: %+v", effects[2])
	}
	if effects[3].Kind != EffectUnrecognized || effects[3].Raw != "bogus" {
		t.Fatalf("unexpected fourth effect: %+v", effects[3])
	}
	if effects[4].Kind != EffectUnrecognized || effects[4].Raw != "heal:abc" {
		t.Fatalf("unexpected fifth effect: %+v", effects[4])
	}
}

// TestParseEffectsEmpty ensures empty strings produce no effects.
func TestParseEffectsEmpty(t *testing.T) {
	if effects := ParseEffects(""); effects != nil {
		t.Fatalf("expected nil effects, got %v", effects)
	}
	if effects := ParseEffects("  ,  "); len(effects) != 0 {
		t.Fatalf("expected no effects, got %v", effects)
	}
}

// TestEquipmentRollBonusCap ensures the aggregate bonus never exceeds +5 and
// ignores non-equipment entries.
func TestEquipmentRollBonusCap(t *testing.T) {
	items := []Item{
		{ID: "a", Type: TypeEquipment, Effect: "roll_bonus:2"},
		{ID: "b", Type: TypeEquipment, Effect: "roll_bonus:3"},
		{ID: "c", Type: TypeEquipment, Effect: "roll_bonus:4"},
		{ID: "d", Type: TypeConsumable, Effect: "roll_bonus:5"},
	}

	if got := EquipmentRollBonus(items); got != MaxRollBonus {
		t.Fatalf("EquipmentRollBonus = %d, want %d", got, MaxRollBonus)
	}
	if got := EquipmentRollBonus(items[:1]); got != 2 {
		t.Fatalf("EquipmentRollBonus = %d, want 2", got)
	}
	if got := EquipmentRollBonus(nil); got != 0 {
		t.Fatalf("EquipmentRollBonus(nil) = %d, want 0", got)
	}
}

// TestEquippedItemEffects checks armor reduction and weapon bonus lookup by
// equipped entry id.
func TestEquippedItemEffects(t *testing.T) {
	items := []Item{
		{ID: "armor-1", Type: TypeEquipment, Effect: "damage_reduction:4"},
		{ID: "sword-1", Type: TypeEquipment, Effect: "damage_bonus:2"},
		{ID: "charm-1", Type: TypeEquipment, Effect: "roll_bonus:1"},
	}

	if got := ArmorDamageReduction("armor-1", items); got != 4 {
		t.Fatalf("ArmorDamageReduction = %d, want 4", got)
	}
	if got := ArmorDamageReduction("", items); got != 0 {
		t.Fatalf("unequipped armor reduction = %d, want 0", got)
	}
	if got := ArmorDamageReduction("charm-1", items); got != 0 {
		t.Fatalf("no-effect armor reduction = %d, want 0", got)
	}
	if got := WeaponDamageBonus("sword-1", items); got != 2 {
		t.Fatalf("WeaponDamageBonus = %d, want 2", got)
	}
	if got := WeaponDamageBonus("missing", items); got != 0 {
		t.Fatalf("missing weapon bonus = %d, want 0", got)
	}
}

// TestNewItemUnknownID ensures unknown catalog ids return no item.
func TestNewItemUnknownID(t *testing.T) {
	if _, ok := NewItem("no_such_item", 1, nil); ok {
		t.Fatal("expected unknown item id to be rejected")
	}

	item, ok := NewItem("healing_potion", 0, nil)
	if !ok {
		t.Fatal("expected healing_potion to instantiate")
	}
	if item.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", item.Quantity)
	}
	if item.ItemID != "healing_potion" || item.Name == "" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

// TestAddDropStacksConsumables checks the stacking rule: consumables merge
// by item id, equipment always appends, unknown ids are ignored.
func TestAddDropStacksConsumables(t *testing.T) {
	items, ok := AddDrop(nil, Drop{ItemID: "healing_potion", Quantity: 2}, nil)
	if !ok || len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("unexpected inventory after first drop: %+v", items)
	}

	items, ok = AddDrop(items, Drop{ItemID: "healing_potion", Quantity: 3}, nil)
	if !ok || len(items) != 1 {
		t.Fatalf("expected consumables to stack, got %+v", items)
	}
	if items[0].Quantity != 5 {
		t.Fatalf("stacked quantity = %d, want 5", items[0].Quantity)
	}

	items, ok = AddDrop(items, Drop{ItemID: "short_sword", Quantity: 1}, nil)
	if !ok || len(items) != 2 {
		t.Fatalf("expected equipment to append, got %+v", items)
	}
	items, ok = AddDrop(items, Drop{ItemID: "short_sword", Quantity: 1}, nil)
	if !ok || len(items) != 3 {
		t.Fatalf("expected second equipment instance, got %+v", items)
	}

	items, ok = AddDrop(items, Drop{ItemID: "counterfeit_crown"}, nil)
	if ok {
		t.Fatal("expected unknown item drop to be ignored")
	}
	if len(items) != 3 {
		t.Fatalf("inventory mutated by unknown drop: %+v", items)
	}
}

// TestUseConsumable checks decrement, stack removal, and effect return.
func TestUseConsumable(t *testing.T) {
	items, _ := AddDrop(nil, Drop{ItemID: "healing_potion", Quantity: 2}, nil)

	items, effects, ok := UseConsumable(items, "healing_potion")
	if !ok {
		t.Fatal("expected consumable use to succeed")
	}
	if len(effects) != 1 || effects[0].Kind != EffectHeal || effects[0].Value != 10 {
		t.Fatalf("unexpected effects: %+v", effects)
	}
	if items[0].Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", items[0].Quantity)
	}

	items, _, ok = UseConsumable(items, "healing_potion")
	if !ok {
		t.Fatal("expected second use to succeed")
	}
	if len(items) != 0 {
		t.Fatalf("expected empty stack removal, got %+v", items)
	}

	if _, _, ok := UseConsumable(items, "healing_potion"); ok {
		t.Fatal("expected use of missing item to fail")
	}
}
