package progression

import (
	"errors"
	"testing"

	"github.com/louisbranch/soloquest/internal/character"
	"github.com/louisbranch/soloquest/internal/systems"
)

func newTestCharacter(t *testing.T, sys systems.ID) character.Character {
	t.Helper()
	c, err := character.New("campaign-1", "Rowan", sys)
	if err != nil {
		t.Fatalf("new character: %v", err)
	}
	return c
}

// TestLevelForExperience checks the highest-threshold-met rule on the
// generic table [0, 300, 900, ...].
func TestLevelForExperience(t *testing.T) {
	table := []int{0, 600, 1800, 3600}
	tcs := []struct{ xp, want int }{
		{0, 1}, {599, 1}, {600, 2}, {1799, 2}, {1800, 3}, {3600, 4},
		{999999, 4}, // clamped to table length
	}
	for _, tc := range tcs {
		if got := LevelForExperience(tc.xp, table); got != tc.want {
			t.Fatalf("LevelForExperience(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

// TestUpdateExperienceLevelUp grants pending points without touching
// attributes.
func TestUpdateExperienceLevelUp(t *testing.T) {
	c := newTestCharacter(t, systems.Generic)
	tmpl := systems.Lookup(systems.Generic)

	result := UpdateExperience(c, tmpl.ExperienceTable[1], systems.Generic)
	if !result.LeveledUp || result.LeveledDown {
		t.Fatalf("unexpected flags: %+v", result)
	}
	if result.NewLevel != 2 {
		t.Fatalf("new level = %d, want 2", result.NewLevel)
	}
	if result.AttributePoints != tmpl.LevelUpPoints {
		t.Fatalf("granted points = %d, want %d", result.AttributePoints, tmpl.LevelUpPoints)
	}
	if result.Character.PendingPoints != tmpl.LevelUpPoints {
		t.Fatalf("pending points = %d, want %d", result.Character.PendingPoints, tmpl.LevelUpPoints)
	}
	if !result.Character.PendingAllocation() {
		t.Fatal("expected pending-allocation state")
	}
	for name, value := range c.Attributes {
		if result.Character.Attributes[name] != value {
			t.Fatalf("attribute %s mutated during level-up", name)
		}
	}
}

// TestUpdateExperienceMultiLevelJump grants points per level gained.
func TestUpdateExperienceMultiLevelJump(t *testing.T) {
	c := newTestCharacter(t, systems.Generic)
	tmpl := systems.Lookup(systems.Generic)

	result := UpdateExperience(c, tmpl.ExperienceTable[2], systems.Generic)
	if result.NewLevel != 3 {
		t.Fatalf("new level = %d, want 3", result.NewLevel)
	}
	if result.AttributePoints != 2*tmpl.LevelUpPoints {
		t.Fatalf("granted points = %d, want %d", result.AttributePoints, 2*tmpl.LevelUpPoints)
	}
}

// TestUpdateExperienceLevelDown supports XP loss and keeps allocations.
func TestUpdateExperienceLevelDown(t *testing.T) {
	c := newTestCharacter(t, systems.Generic)
	tmpl := systems.Lookup(systems.Generic)

	up := UpdateExperience(c, tmpl.ExperienceTable[1]+100, systems.Generic)
	down := UpdateExperience(up.Character, -700, systems.Generic)

	if !down.LeveledDown || down.LeveledUp {
		t.Fatalf("unexpected flags: %+v", down)
	}
	if down.NewLevel != 1 {
		t.Fatalf("new level = %d, want 1", down.NewLevel)
	}
	// No clawback: pending points from the earlier level-up survive.
	if down.Character.PendingPoints != tmpl.LevelUpPoints {
		t.Fatalf("pending points = %d, want %d", down.Character.PendingPoints, tmpl.LevelUpPoints)
	}
}

// TestUpdateExperienceFloorsAtZero ensures cumulative XP never goes negative
// and the level never drops below 1.
func TestUpdateExperienceFloorsAtZero(t *testing.T) {
	c := newTestCharacter(t, systems.Generic)
	result := UpdateExperience(c, -5000, systems.Generic)
	if result.Character.Experience != 0 {
		t.Fatalf("experience = %d, want 0", result.Character.Experience)
	}
	if result.NewLevel != 1 {
		t.Fatalf("level = %d, want 1", result.NewLevel)
	}
	if result.LeveledDown {
		t.Fatal("no level change expected at level 1")
	}
}

// TestAllocateAttributePoint spends pending points and recomputes derived
// stats.
func TestAllocateAttributePoint(t *testing.T) {
	c := newTestCharacter(t, systems.Generic)
	tmpl := systems.Lookup(systems.Generic)
	up := UpdateExperience(c, tmpl.ExperienceTable[1], systems.Generic)

	allocated, err := AllocateAttributePoint(up.Character, "strength", systems.Generic)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if allocated.Attributes["strength"] != c.Attributes["strength"]+1 {
		t.Fatalf("strength = %d, want %d", allocated.Attributes["strength"], c.Attributes["strength"]+1)
	}
	if allocated.PendingPoints != up.Character.PendingPoints-1 {
		t.Fatalf("pending points = %d, want %d", allocated.PendingPoints, up.Character.PendingPoints-1)
	}
}

// TestAllocateAttributePointRejections covers the three failure modes as
// no-ops.
func TestAllocateAttributePointRejections(t *testing.T) {
	c := newTestCharacter(t, systems.Generic)

	if _, err := AllocateAttributePoint(c, "strength", systems.Generic); !errors.Is(err, ErrNoPointsAvailable) {
		t.Fatalf("expected ErrNoPointsAvailable, got %v", err)
	}

	c.PendingPoints = 1
	if _, err := AllocateAttributePoint(c, "luck", systems.Generic); !errors.Is(err, ErrUnknownAttribute) {
		t.Fatalf("expected ErrUnknownAttribute, got %v", err)
	}

	c.Attributes["strength"] = 18 // generic cap
	if _, err := AllocateAttributePoint(c, "strength", systems.Generic); !errors.Is(err, ErrAttributeOutOfRange) {
		t.Fatalf("expected ErrAttributeOutOfRange, got %v", err)
	}

	// Failures leave the input untouched.
	if c.PendingPoints != 1 {
		t.Fatalf("pending points mutated: %d", c.PendingPoints)
	}
}

// TestAllocateUpdatesResourceCaps exercises a CoC power allocation feeding
// the sanity and magic point formulas.
func TestAllocateUpdatesResourceCaps(t *testing.T) {
	c := newTestCharacter(t, systems.CallOfCthulhu)
	c.PendingPoints = 1

	allocated, err := AllocateAttributePoint(c, "power", systems.CallOfCthulhu)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	wantSanity := allocated.Attributes["power"]
	if allocated.MaxResources[systems.ResourceSanity] != wantSanity {
		t.Fatalf("sanity cap = %d, want %d", allocated.MaxResources[systems.ResourceSanity], wantSanity)
	}
}

// TestConfirmLevelUpForfeitsPoints ensures confirm clears pending state even
// with points unspent.
func TestConfirmLevelUpForfeitsPoints(t *testing.T) {
	c := newTestCharacter(t, systems.Generic)
	c.PendingPoints = 3

	confirmed := ConfirmLevelUp(c)
	if confirmed.PendingPoints != 0 {
		t.Fatalf("pending points = %d, want 0", confirmed.PendingPoints)
	}
	if confirmed.PendingAllocation() {
		t.Fatal("expected pending-allocation state cleared")
	}
}
