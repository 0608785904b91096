package systems

import "testing"

// TestParseIDAliases ensures common names and aliases resolve, with Generic
// as the fallback for anything unknown.
func TestParseIDAliases(t *testing.T) {
	tcs := []struct {
		name string
		want ID
	}{
		{"dnd", DnD5e},
		{"D&D 5e", DnD5e},
		{"Dungeons & Dragons", DnD5e},
		{"call of cthulhu", CallOfCthulhu},
		{"CoC", CallOfCthulhu},
		{"Vampire", Vampire},
		{"vtm", Vampire},
		{"", Generic},
		{"homebrew thing", Generic},
	}

	for _, tc := range tcs {
		if got := ParseID(tc.name); got != tc.want {
			t.Fatalf("ParseID(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// TestLookupFallsBackToGeneric ensures Lookup is total.
func TestLookupFallsBackToGeneric(t *testing.T) {
	if got := Lookup(ID(999)); got.ID != Generic {
		t.Fatalf("Lookup(unknown) = %v, want Generic", got.ID)
	}
	if got := LookupName("no such system"); got.ID != Generic {
		t.Fatalf("LookupName(unknown) = %v, want Generic", got.ID)
	}
}

// TestDnD5eModifier checks the floor((value-10)/2) formula including
// negative-rounding on low scores.
func TestDnD5eModifier(t *testing.T) {
	tmpl := Lookup(DnD5e)
	tcs := []struct {
		value, want int
	}{
		{1, -5}, {7, -2}, {8, -1}, {9, -1}, {10, 0},
		{11, 0}, {12, 1}, {15, 2}, {20, 5},
	}
	for _, tc := range tcs {
		if got := tmpl.Modifier(tc.value); got != tc.want {
			t.Fatalf("DnD5e modifier(%d) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

// TestCthulhuFormulas checks HP = ceil((CON+SIZ)/10), sanity = POW, and
// magic points = floor(POW/5), with no attribute modifier.
func TestCthulhuFormulas(t *testing.T) {
	tmpl := Lookup(CallOfCthulhu)
	if tmpl.Modifier != nil {
		t.Fatal("expected no modifier for percentile system")
	}

	attrs := map[string]int{"constitution": 55, "size": 60, "power": 47}
	if got := tmpl.MaxHP(attrs, 1); got != 12 {
		t.Fatalf("maxHP = %d, want 12 (ceil(115/10))", got)
	}

	resources := tmpl.MaxResources(attrs, 1)
	if got := resources[ResourceSanity]; got != 47 {
		t.Fatalf("sanity = %d, want 47", got)
	}
	if got := resources[ResourceMagicPoints]; got != 9 {
		t.Fatalf("magic points = %d, want 9 (floor(47/5))", got)
	}
}

// TestVampireFormulas checks the dice-pool modifier and stamina-based HP.
func TestVampireFormulas(t *testing.T) {
	tmpl := Lookup(Vampire)
	if got := tmpl.Modifier(4); got != 4 {
		t.Fatalf("vampire modifier(4) = %d, want 4", got)
	}
	if got := tmpl.MaxHP(map[string]int{"stamina": 3}, 5); got != 6 {
		t.Fatalf("vampire maxHP = %d, want 6", got)
	}
	if got := tmpl.MaxResources(nil, 1)[ResourceBloodPool]; got != 10 {
		t.Fatalf("blood pool = %d, want 10", got)
	}
}

// TestExperienceTablesNonDecreasing enforces the table invariant for every
// registered system, starting at threshold 0 for level 1.
func TestExperienceTablesNonDecreasing(t *testing.T) {
	for id, tmpl := range registry {
		if len(tmpl.ExperienceTable) == 0 {
			t.Fatalf("%v: empty experience table", id)
		}
		if tmpl.ExperienceTable[0] != 0 {
			t.Fatalf("%v: level 1 threshold = %d, want 0", id, tmpl.ExperienceTable[0])
		}
		for i := 1; i < len(tmpl.ExperienceTable); i++ {
			if tmpl.ExperienceTable[i] < tmpl.ExperienceTable[i-1] {
				t.Fatalf("%v: table decreases at index %d", id, i)
			}
		}
	}
}

// TestDefaultAttributesMatchDefinitions ensures the seeded map covers every
// attribute at its default.
func TestDefaultAttributesMatchDefinitions(t *testing.T) {
	for id, tmpl := range registry {
		attrs := tmpl.DefaultAttributes()
		if len(attrs) != len(tmpl.Attributes) {
			t.Fatalf("%v: %d defaults for %d attributes", id, len(attrs), len(tmpl.Attributes))
		}
		for _, def := range tmpl.Attributes {
			if attrs[def.Name] != def.Default {
				t.Fatalf("%v: %s default = %d, want %d", id, def.Name, attrs[def.Name], def.Default)
			}
			if !ValidAttributeValue(def.Default, def) {
				t.Fatalf("%v: %s default outside its own range", id, def.Name)
			}
		}
	}
}

// TestValidAttributeValue checks the pure range test.
func TestValidAttributeValue(t *testing.T) {
	def := AttributeDef{Name: "strength", Min: 3, Max: 18}
	if !ValidAttributeValue(3, def) || !ValidAttributeValue(18, def) {
		t.Fatal("expected bounds to be inclusive")
	}
	if ValidAttributeValue(2, def) || ValidAttributeValue(19, def) {
		t.Fatal("expected out-of-range values to be rejected")
	}
}
