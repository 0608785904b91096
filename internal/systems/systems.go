// Package systems holds the static rule tables for the supported tabletop
// RPG systems: attribute definitions, modifier formulas, hit-point and
// resource formulas, and leveling grants.
//
// Templates are rules data, not behavior: the formulas here reproduce each
// system's published math exactly and are never reinterpreted by callers.
// Lookup is total — unknown systems resolve to the Generic template.
package systems

import "strings"

// ID identifies a supported game system.
type ID int

const (
	// Generic is the fallback system for unknown names.
	Generic ID = iota
	DnD5e
	CallOfCthulhu
	Vampire
)

// String returns the display name of the system.
func (id ID) String() string {
	switch id {
	case DnD5e:
		return "D&D 5e"
	case CallOfCthulhu:
		return "Call of Cthulhu"
	case Vampire:
		return "Vampire: The Masquerade"
	default:
		return "Generic"
	}
}

// ParseID maps a system name or alias to an ID. Matching is case-insensitive
// and unknown names resolve to Generic, making the fallback path exhaustive.
func ParseID(name string) ID {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dnd", "d&d", "dnd5e", "d&d 5e", "dungeons & dragons", "dungeons and dragons":
		return DnD5e
	case "coc", "call of cthulhu", "cthulhu":
		return CallOfCthulhu
	case "vtm", "vampire", "vampire: the masquerade":
		return Vampire
	default:
		return Generic
	}
}

// AttributeDef describes one attribute owned by a system template.
type AttributeDef struct {
	Name        string
	DisplayName string
	Description string
	Default     int
	Min         int
	Max         int
}

// ResourceDef describes an optional named resource (sanity, magic points).
type ResourceDef struct {
	Name        string
	DisplayName string
	Description string
	Color       string
}

// Template is the static rule table for one game system.
//
// Modifier is nil for percentile systems that have no attribute modifier.
// MaxResources is nil when the system defines no resources. ExperienceTable
// holds cumulative XP thresholds: level N requires ExperienceTable[N-1]
// (1-indexed levels, level 1 at threshold 0) and the table is non-decreasing.
type Template struct {
	ID              ID
	Name            string
	Attributes      []AttributeDef
	Modifier        func(value int) int
	LevelUpPoints   int
	ExperienceTable []int
	MaxHP           func(attrs map[string]int, level int) int
	Resources       []ResourceDef
	MaxResources    func(attrs map[string]int, level int) map[string]int
}

// Attribute returns the definition for the named attribute.
func (t Template) Attribute(name string) (AttributeDef, bool) {
	for _, def := range t.Attributes {
		if def.Name == name {
			return def, true
		}
	}
	return AttributeDef{}, false
}

// DefaultAttributes returns a fresh attribute map seeded with defaults.
func (t Template) DefaultAttributes() map[string]int {
	attrs := make(map[string]int, len(t.Attributes))
	for _, def := range t.Attributes {
		attrs[def.Name] = def.Default
	}
	return attrs
}

// MaxLevel returns the highest level the experience table supports.
func (t Template) MaxLevel() int {
	return len(t.ExperienceTable)
}

// ValidAttributeValue reports whether value is inside the definition's range.
func ValidAttributeValue(value int, def AttributeDef) bool {
	return value >= def.Min && value <= def.Max
}

var registry = map[ID]Template{
	Generic:       genericTemplate,
	DnD5e:         dnd5eTemplate,
	CallOfCthulhu: cthulhuTemplate,
	Vampire:       vampireTemplate,
}

// Lookup returns the template for the given system. It is a total function:
// ids without a registered template resolve to Generic.
func Lookup(id ID) Template {
	if t, ok := registry[id]; ok {
		return t
	}
	return registry[Generic]
}

// LookupName resolves a free-form system name to its template.
func LookupName(name string) Template {
	return Lookup(ParseID(name))
}

// floorDiv divides and rounds toward negative infinity, matching the
// tabletop convention for attribute modifiers on low scores.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ceilDiv divides and rounds toward positive infinity.
func ceilDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}
