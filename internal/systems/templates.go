package systems

// Resource names used across templates.
const (
	ResourceSanity      = "sanity"
	ResourceMagicPoints = "magicPoints"
	ResourceBloodPool   = "bloodPool"
)

// dnd5eExperienceTable holds the SRD cumulative XP thresholds for levels 1-20.
var dnd5eExperienceTable = []int{
	0, 300, 900, 2700, 6500,
	14000, 23000, 34000, 48000, 64000,
	85000, 100000, 120000, 140000, 165000,
	195000, 225000, 265000, 305000, 355000,
}

var dnd5eTemplate = Template{
	ID:   DnD5e,
	Name: "D&D 5e",
	Attributes: []AttributeDef{
		{Name: "strength", DisplayName: "Strength", Description: "Physical power", Default: 10, Min: 1, Max: 20},
		{Name: "dexterity", DisplayName: "Dexterity", Description: "Agility and reflexes", Default: 10, Min: 1, Max: 20},
		{Name: "constitution", DisplayName: "Constitution", Description: "Endurance and health", Default: 10, Min: 1, Max: 20},
		{Name: "intelligence", DisplayName: "Intelligence", Description: "Reasoning and memory", Default: 10, Min: 1, Max: 20},
		{Name: "wisdom", DisplayName: "Wisdom", Description: "Perception and insight", Default: 10, Min: 1, Max: 20},
		{Name: "charisma", DisplayName: "Charisma", Description: "Force of personality", Default: 10, Min: 1, Max: 20},
	},
	Modifier:        func(value int) int { return floorDiv(value-10, 2) },
	LevelUpPoints:   2,
	ExperienceTable: dnd5eExperienceTable,
	MaxHP: func(attrs map[string]int, level int) int {
		conMod := floorDiv(attrs["constitution"]-10, 2)
		hp := 10 + conMod + (level-1)*(6+conMod)
		return max(hp, 1)
	},
}

var cthulhuTemplate = Template{
	ID:   CallOfCthulhu,
	Name: "Call of Cthulhu",
	Attributes: []AttributeDef{
		{Name: "strength", DisplayName: "STR", Description: "Physical strength", Default: 50, Min: 15, Max: 90},
		{Name: "constitution", DisplayName: "CON", Description: "Health and vitality", Default: 50, Min: 15, Max: 90},
		{Name: "size", DisplayName: "SIZ", Description: "Height and build", Default: 50, Min: 15, Max: 90},
		{Name: "dexterity", DisplayName: "DEX", Description: "Agility and speed", Default: 50, Min: 15, Max: 90},
		{Name: "appearance", DisplayName: "APP", Description: "Physical appeal", Default: 50, Min: 15, Max: 90},
		{Name: "intelligence", DisplayName: "INT", Description: "Learning and reasoning", Default: 50, Min: 15, Max: 90},
		{Name: "power", DisplayName: "POW", Description: "Willpower and spirit", Default: 50, Min: 15, Max: 90},
		{Name: "education", DisplayName: "EDU", Description: "Formal knowledge", Default: 50, Min: 15, Max: 90},
	},
	// Percentile system: no attribute modifier.
	Modifier:        nil,
	LevelUpPoints:   5,
	ExperienceTable: linearTable(20, 1000),
	MaxHP: func(attrs map[string]int, level int) int {
		return ceilDiv(attrs["constitution"]+attrs["size"], 10)
	},
	Resources: []ResourceDef{
		{Name: ResourceSanity, DisplayName: "Sanity", Description: "Mental stability", Color: "#7b68ee"},
		{Name: ResourceMagicPoints, DisplayName: "Magic Points", Description: "Occult energy", Color: "#2e8b57"},
	},
	MaxResources: func(attrs map[string]int, level int) map[string]int {
		return map[string]int{
			ResourceSanity:      attrs["power"],
			ResourceMagicPoints: floorDiv(attrs["power"], 5),
		}
	},
}

var vampireTemplate = Template{
	ID:   Vampire,
	Name: "Vampire: The Masquerade",
	Attributes: []AttributeDef{
		{Name: "strength", DisplayName: "Strength", Description: "Physical might", Default: 2, Min: 1, Max: 5},
		{Name: "dexterity", DisplayName: "Dexterity", Description: "Speed and grace", Default: 2, Min: 1, Max: 5},
		{Name: "stamina", DisplayName: "Stamina", Description: "Toughness", Default: 2, Min: 1, Max: 5},
		{Name: "charisma", DisplayName: "Charisma", Description: "Presence and charm", Default: 2, Min: 1, Max: 5},
		{Name: "manipulation", DisplayName: "Manipulation", Description: "Social leverage", Default: 2, Min: 1, Max: 5},
		{Name: "wits", DisplayName: "Wits", Description: "Quick thinking", Default: 2, Min: 1, Max: 5},
	},
	// Dot systems pool dice per attribute dot; the modifier is the value itself.
	Modifier:        func(value int) int { return value },
	LevelUpPoints:   3,
	ExperienceTable: quadraticTable(10, 250),
	MaxHP: func(attrs map[string]int, level int) int {
		return 3 + attrs["stamina"]
	},
	Resources: []ResourceDef{
		{Name: ResourceBloodPool, DisplayName: "Blood Pool", Description: "Stored vitae", Color: "#8b0000"},
	},
	MaxResources: func(attrs map[string]int, level int) map[string]int {
		return map[string]int{ResourceBloodPool: 10}
	},
}

var genericTemplate = Template{
	ID:   Generic,
	Name: "Generic",
	Attributes: []AttributeDef{
		{Name: "strength", DisplayName: "Strength", Description: "Physical power", Default: 10, Min: 3, Max: 18},
		{Name: "dexterity", DisplayName: "Dexterity", Description: "Agility and reflexes", Default: 10, Min: 3, Max: 18},
		{Name: "constitution", DisplayName: "Constitution", Description: "Endurance and health", Default: 10, Min: 3, Max: 18},
		{Name: "intelligence", DisplayName: "Intelligence", Description: "Reasoning and memory", Default: 10, Min: 3, Max: 18},
		{Name: "charisma", DisplayName: "Charisma", Description: "Force of personality", Default: 10, Min: 3, Max: 18},
	},
	Modifier:        func(value int) int { return floorDiv(value-10, 2) },
	LevelUpPoints:   3,
	ExperienceTable: quadraticTable(20, 150),
	MaxHP: func(attrs map[string]int, level int) int {
		conMod := floorDiv(attrs["constitution"]-10, 2)
		hp := 10 + conMod + (level-1)*5
		return max(hp, 1)
	},
}

// linearTable builds cumulative thresholds of step XP per level.
func linearTable(levels, step int) []int {
	table := make([]int, levels)
	for i := range table {
		table[i] = i * step
	}
	return table
}

// quadraticTable builds thresholds of unit*n*(n-1) for level n, so each
// level-up costs unit*2 more XP than the previous one.
func quadraticTable(levels, unit int) []int {
	table := make([]int, levels)
	for i := range table {
		n := i + 1
		table[i] = unit * n * (n - 1)
	}
	return table
}
