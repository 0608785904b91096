// Package misfortune implements the anti-cheat bad-luck counter.
//
// When a player narrates a fabricated dice result ("I rolled a 20!") instead
// of using the roll mechanic, the monitor gains a stack. Each stack shaves
// one point off future roll totals as seen by the narrative layer, up to a
// cap of five, and stacks decay one per honest engine-resolved roll.
//
// Detection is a heuristic over a fixed multilingual pattern list (English,
// Portuguese, Spanish). False negatives are acceptable; occasional false
// positives on legitimate narrative text are a known limitation, not a bug.
package misfortune

import (
	"regexp"
	"strconv"
	"strings"
)

// Max is the stack cap: penalties never exceed five.
const Max = 5

// minMessageLen short-circuits detection for trivially short messages.
const minMessageLen = 5

var claimPatterns = []*regexp.Regexp{
	// English
	regexp.MustCompile(`(?i)\brolled\s+(?:a\s+|an\s+)?(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\bi\s+got\s+(?:a\s+|an\s+)?(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\bnatural\s+(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\broll\s+of\s+(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\bmy\s+(?:die|dice)\s+(?:shows?|landed\s+on)\s+(\d{1,2})\b`),
	// Portuguese
	regexp.MustCompile(`(?i)\btirei\s+(?:um\s+)?(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\brolei\s+(?:um\s+)?(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\bo\s+dado\s+deu\s+(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\bcaiu\s+(?:um\s+)?(\d{1,2})\b`),
	// Spanish
	regexp.MustCompile(`(?i)\bsaqu[eé]\s+(?:un\s+)?(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\btir[eé]\s+(?:un\s+)?(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\bel\s+dado\s+dio\s+(\d{1,2})\b`),
}

// DetectClaimedRoll scans free text for a narrated dice claim and returns
// the first claimed value in [1, 20]. Messages shorter than five characters
// never match.
func DetectClaimedRoll(message string) (int, bool) {
	message = strings.TrimSpace(message)
	if len(message) < minMessageLen {
		return 0, false
	}

	for _, pattern := range claimPatterns {
		match := pattern.FindStringSubmatch(message)
		if match == nil {
			continue
		}
		value, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if value >= 1 && value <= 20 {
			return value, true
		}
	}
	return 0, false
}

// Penalty returns the roll penalty for the given stack count: one point per
// stack, capped at Max.
func Penalty(stacks int) int {
	return min(max(stacks, 0), Max)
}

// ApplyToRoll degrades a roll total by the stack penalty, never below 1.
// The stored roll result is untouched; only the narrative-facing value moves.
func ApplyToRoll(total, stacks int) int {
	return max(1, total-Penalty(stacks))
}

// Gain adds one stack, capped at Max.
func Gain(stacks int) int {
	return min(stacks+1, Max)
}

// Decay removes one stack after an honest roll, floored at 0.
func Decay(stacks int) int {
	return max(stacks-1, 0)
}
