// Package dice implements dice-notation parsing and rolling for soloquest.
//
// Notation follows the common tabletop convention `[count]d<sides>[+/-mod]`,
// case-insensitive: "d20", "2d6+3", "1d20-2". Rolling uses a non-cryptographic
// RNG supplied by the caller; there is no determinism guarantee across
// platforms beyond what math/rand provides for a fixed seed.
package dice

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/soloquest/internal/platform/errors"
)

// Bounds accepted by Parse.
const (
	MinCount    = 1
	MaxCount    = 100
	MinSides    = 2
	MaxSides    = 1000
	MinModifier = -100
	MaxModifier = 100
)

// ErrInvalidNotation indicates the notation string does not parse or a
// component is outside the accepted bounds.
var ErrInvalidNotation = apperrors.New(apperrors.CodeDiceInvalidNotation, "invalid dice notation")

var notationPattern = regexp.MustCompile(`^(\d*)[dD](\d+)([+-]\d+)?$`)

// Notation is a parsed dice expression. It is immutable once parsed.
type Notation struct {
	Count    int
	Sides    int
	Modifier int
}

// RollResult captures a single resolved roll. It is produced once and
// never mutated; misfortune penalties apply downstream to a copy of the
// total, not to the stored result.
type RollResult struct {
	Notation  string
	Rolls     []int
	Total     int
	Breakdown string
}

// Parse parses a dice notation string.
//
// The count defaults to 1 when omitted. Parse returns ErrInvalidNotation
// when the pattern does not match or when count, sides, or modifier fall
// outside [1,100], [2,1000], and [-100,100] respectively.
func Parse(s string) (Notation, error) {
	match := notationPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return Notation{}, apperrors.WithMetadata(apperrors.CodeDiceInvalidNotation,
			"notation does not match [count]d<sides>[+/-modifier]",
			map[string]string{"notation": s})
	}

	count := 1
	if match[1] != "" {
		parsed, err := strconv.Atoi(match[1])
		if err != nil {
			return Notation{}, ErrInvalidNotation
		}
		count = parsed
	}

	sides, err := strconv.Atoi(match[2])
	if err != nil {
		return Notation{}, ErrInvalidNotation
	}

	modifier := 0
	if match[3] != "" {
		parsed, err := strconv.Atoi(match[3])
		if err != nil {
			return Notation{}, ErrInvalidNotation
		}
		modifier = parsed
	}

	if count < MinCount || count > MaxCount {
		return Notation{}, apperrors.WithMetadata(apperrors.CodeDiceInvalidNotation,
			"dice count out of range", map[string]string{"count": strconv.Itoa(count)})
	}
	if sides < MinSides || sides > MaxSides {
		return Notation{}, apperrors.WithMetadata(apperrors.CodeDiceInvalidNotation,
			"dice sides out of range", map[string]string{"sides": strconv.Itoa(sides)})
	}
	if modifier < MinModifier || modifier > MaxModifier {
		return Notation{}, apperrors.WithMetadata(apperrors.CodeDiceInvalidNotation,
			"dice modifier out of range", map[string]string{"modifier": strconv.Itoa(modifier)})
	}

	return Notation{Count: count, Sides: sides, Modifier: modifier}, nil
}

// Valid reports whether s parses as dice notation.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// LooksLikeNotation reports whether s matches the notation grammar, even when
// a component is out of bounds. Callers use it to tell a malformed roll
// attempt apart from ordinary free text.
func LooksLikeNotation(s string) bool {
	return notationPattern.MatchString(strings.TrimSpace(s))
}

// String returns the canonical form of the notation: the count is omitted
// when 1 and the modifier when 0, so Parse(n.String()) == n.
func (n Notation) String() string {
	var b strings.Builder
	if n.Count != 1 {
		fmt.Fprintf(&b, "%d", n.Count)
	}
	fmt.Fprintf(&b, "d%d", n.Sides)
	if n.Modifier > 0 {
		fmt.Fprintf(&b, "+%d", n.Modifier)
	} else if n.Modifier < 0 {
		fmt.Fprintf(&b, "%d", n.Modifier)
	}
	return b.String()
}

// Roll draws Count uniform integers in [1, Sides], sums them, and adds the
// modifier. The total is intentionally not clamped: a strongly negative
// modifier may produce a total below 1.
func Roll(n Notation, rng *rand.Rand) RollResult {
	rolls := make([]int, n.Count)
	sum := 0
	for i := range rolls {
		rolls[i] = rng.Intn(n.Sides) + 1
		sum += rolls[i]
	}

	return RollResult{
		Notation:  n.String(),
		Rolls:     rolls,
		Total:     sum + n.Modifier,
		Breakdown: breakdown(rolls, n.Modifier, sum+n.Modifier),
	}
}

// RollNotation parses and rolls in one step.
func RollNotation(s string, rng *rand.Rand) (RollResult, error) {
	n, err := Parse(s)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(n, rng), nil
}

// RollAdvantage rolls the notation twice and keeps the higher total.
func RollAdvantage(n Notation, rng *rand.Rand) RollResult {
	return rollTwice(n, rng, "advantage", func(a, b RollResult) RollResult {
		if a.Total >= b.Total {
			return a
		}
		return b
	})
}

// RollDisadvantage rolls the notation twice and keeps the lower total.
func RollDisadvantage(n Notation, rng *rand.Rand) RollResult {
	return rollTwice(n, rng, "disadvantage", func(a, b RollResult) RollResult {
		if a.Total <= b.Total {
			return a
		}
		return b
	})
}

func rollTwice(n Notation, rng *rand.Rand, marker string, pick func(a, b RollResult) RollResult) RollResult {
	first := Roll(n, rng)
	second := Roll(n, rng)
	kept := pick(first, second)

	kept.Breakdown = fmt.Sprintf("%s | %s (%s)", first.Breakdown, second.Breakdown, marker)
	return kept
}

func breakdown(rolls []int, modifier, total int) string {
	var b strings.Builder
	if len(rolls) == 1 {
		fmt.Fprintf(&b, "%d", rolls[0])
	} else {
		parts := make([]string, len(rolls))
		for i, r := range rolls {
			parts[i] = strconv.Itoa(r)
		}
		fmt.Fprintf(&b, "[%s]", strings.Join(parts, ", "))
	}
	if modifier > 0 {
		fmt.Fprintf(&b, " + %d", modifier)
	} else if modifier < 0 {
		fmt.Fprintf(&b, " - %d", -modifier)
	}
	fmt.Fprintf(&b, " = %d", total)
	return b.String()
}
