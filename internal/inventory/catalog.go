package inventory

import "fmt"

// Definition is a static catalog entry an Item instantiates from.
type Definition struct {
	ID              string
	Name            string
	Type            Type
	Effect          string
	Description     string
	DefaultQuantity int
	Slot            Slot
}

// catalog is the process-wide static item catalog. It has no lifecycle
// beyond load and is never mutated at runtime.
var catalog = map[string]Definition{
	"healing_potion": {
		ID:              "healing_potion",
		Name:            "Healing Potion",
		Type:            TypeConsumable,
		Effect:          "heal:10",
		Description:     "A vial of red liquid that restores 10 hit points.",
		DefaultQuantity: 1,
	},
	"greater_healing_potion": {
		ID:              "greater_healing_potion",
		Name:            "Greater Healing Potion",
		Type:            TypeConsumable,
		Effect:          "heal:25",
		Description:     "A larger vial that restores 25 hit points.",
		DefaultQuantity: 1,
	},
	"rations": {
		ID:              "rations",
		Name:            "Trail Rations",
		Type:            TypeConsumable,
		Effect:          "heal:2",
		Description:     "Dried food for a day on the road.",
		DefaultQuantity: 3,
	},
	"short_sword": {
		ID:              "short_sword",
		Name:            "Short Sword",
		Type:            TypeEquipment,
		Effect:          "damage_bonus:2",
		Description:     "A light, reliable blade.",
		DefaultQuantity: 1,
		Slot:            SlotWeapon,
	},
	"long_sword": {
		ID:              "long_sword",
		Name:            "Long Sword",
		Type:            TypeEquipment,
		Effect:          "damage_bonus:4",
		Description:     "A knight's weapon, heavier and deadlier.",
		DefaultQuantity: 1,
		Slot:            SlotWeapon,
	},
	"leather_armor": {
		ID:              "leather_armor",
		Name:            "Leather Armor",
		Type:            TypeEquipment,
		Effect:          "damage_reduction:2",
		Description:     "Hardened leather that blunts incoming blows.",
		DefaultQuantity: 1,
		Slot:            SlotArmor,
	},
	"chain_mail": {
		ID:              "chain_mail",
		Name:            "Chain Mail",
		Type:            TypeEquipment,
		Effect:          "damage_reduction:4",
		Description:     "Interlocking rings that turn aside blades.",
		DefaultQuantity: 1,
		Slot:            SlotArmor,
	},
	"lucky_charm": {
		ID:              "lucky_charm",
		Name:            "Lucky Charm",
		Type:            TypeEquipment,
		Effect:          "roll_bonus:2",
		Description:     "A rabbit's foot on a worn cord.",
		DefaultQuantity: 1,
	},
	"blessed_amulet": {
		ID:              "blessed_amulet",
		Name:            "Blessed Amulet",
		Type:            TypeEquipment,
		Effect:          "roll_bonus:3,attribute_bonus:charisma:1",
		Description:     "A silver amulet humming with faint warmth.",
		DefaultQuantity: 1,
	},
	"torch": {
		ID:              "torch",
		Name:            "Torch",
		Type:            TypeOther,
		Description:     "A pitch-soaked brand, good for an hour of light.",
		DefaultQuantity: 2,
	},
	"rope": {
		ID:              "rope",
		Name:            "Hemp Rope",
		Type:            TypeOther,
		Description:     "Fifty feet of sturdy rope.",
		DefaultQuantity: 1,
	},
}

// Lookup returns the catalog definition for an item id.
func Lookup(itemID string) (Definition, bool) {
	def, ok := catalog[itemID]
	return def, ok
}

// NewItem instantiates an inventory entry from the catalog. The second
// return is false for unknown item ids; callers skip those silently rather
// than treating them as hard errors.
func NewItem(itemID string, quantity int, newID func() (string, error)) (Item, bool) {
	def, ok := catalog[itemID]
	if !ok {
		return Item{}, false
	}
	if quantity <= 0 {
		quantity = def.DefaultQuantity
	}

	entryID := itemID
	if newID != nil {
		generated, err := newID()
		if err == nil {
			entryID = generated
		} else {
			entryID = fmt.Sprintf("%s-fallback", itemID)
		}
	}

	return Item{
		ID:          entryID,
		ItemID:      def.ID,
		Name:        def.Name,
		Type:        def.Type,
		Quantity:    quantity,
		Effect:      def.Effect,
		Description: def.Description,
	}, true
}
