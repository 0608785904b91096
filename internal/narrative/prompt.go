package narrative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/louisbranch/soloquest/internal/systems"
)

// maxHistoryMessages bounds how much raw history travels with each call;
// older context is expected to arrive through the campaign recap instead.
const maxHistoryMessages = 30

const contractInstructions = `You are the game master of a solo tabletop RPG session.
Narrate vividly in second person and keep continuity with the recap, entities, and facts.
Never invent dice results for the player; when an action needs a roll, request one.

After the narration, end your reply with a fenced json block in exactly this shape
(omit fields that do not apply, always include "suggestedActions"):

` + "```json" + `
{
  "characterEffects": [
    {"type": "damage", "amount": 5},
    {"type": "damage_roll", "roll": "2d6"},
    {"type": "heal", "amount": 3},
    {"type": "spend_resource", "resource": "sanity", "amount": 2},
    {"type": "restore_resource", "resource": "magicPoints", "amount": 1}
  ],
  "itemDrops": [{"itemId": "healing_potion", "quantity": 1}],
  "xpAward": 50,
  "rollRequest": "d20",
  "suggestedActions": [
    {"id": "a1", "label": "Sneak past", "action": "I sneak past the guard.", "rollNotation": "d20", "dc": 12}
  ]
}
` + "```"

// systemPrompt assembles the full instruction block for one call.
func systemPrompt(tc Context) string {
	var b strings.Builder
	b.WriteString(contractInstructions)

	fmt.Fprintf(&b, "\n\nCampaign: %s (%s)\n", tc.Campaign.Name, tc.Campaign.System)
	if tc.Campaign.Locale != "" {
		fmt.Fprintf(&b, "Narrate in the player's locale: %s\n", tc.Campaign.Locale)
	}
	if tc.Campaign.Recap != "" {
		fmt.Fprintf(&b, "\nRecap so far:\n%s\n", tc.Campaign.Recap)
	}
	if len(tc.Campaign.Entities) > 0 {
		fmt.Fprintf(&b, "\nKnown entities:\n- %s\n", strings.Join(tc.Campaign.Entities, "\n- "))
	}
	if len(tc.Campaign.Facts) > 0 {
		fmt.Fprintf(&b, "\nEstablished facts:\n- %s\n", strings.Join(tc.Campaign.Facts, "\n- "))
	}
	if tc.Character != nil {
		b.WriteString("\n")
		b.WriteString(characterSheet(tc))
	}
	return b.String()
}

// characterSheet renders the character block of the system prompt.
func characterSheet(tc Context) string {
	c := tc.Character
	tmpl := systems.Lookup(c.System)

	var b strings.Builder
	fmt.Fprintf(&b, "Character: %s, level %d, HP %d/%d", c.Name, c.Level, c.HitPoints, c.MaxHitPoints)
	if c.Misfortune > 0 {
		fmt.Fprintf(&b, ", misfortune %d", c.Misfortune)
	}
	b.WriteString("\nAttributes:")
	for _, def := range tmpl.Attributes {
		fmt.Fprintf(&b, " %s %d", def.DisplayName, c.Attributes[def.Name])
	}
	if len(c.Resources) > 0 {
		b.WriteString("\nResources:")
		names := make([]string, 0, len(c.Resources))
		for name := range c.Resources {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, " %s %d/%d", name, c.Resources[name], c.MaxResources[name])
		}
	}
	if len(c.Inventory) > 0 {
		b.WriteString("\nInventory:")
		for _, item := range c.Inventory {
			fmt.Fprintf(&b, " %s x%d;", item.Name, item.Quantity)
		}
	}
	b.WriteString("\n")
	return b.String()
}

// userPrompt renders the per-variant player-facing instruction.
func turnPrompt(action string, roll *EffectiveRoll) string {
	var b strings.Builder
	if action != "" {
		fmt.Fprintf(&b, "Player action: %s\n", action)
	}
	if roll != nil {
		fmt.Fprintf(&b, "Dice roll %s: %s", roll.Notation, roll.Breakdown)
		if roll.Penalty > 0 {
			fmt.Fprintf(&b, " (effective %d after a misfortune penalty of %d)", roll.Effective, roll.Penalty)
		}
		b.WriteString("\nNarrate the outcome of this roll.\n")
	}
	if b.Len() == 0 {
		b.WriteString("Continue the story.\n")
	}
	return b.String()
}

const startPrompt = "Open the session: set the scene, introduce the immediate situation, and offer the player their first choices."

func deathPrompt(cause string) string {
	if cause == "" {
		cause = "their wounds"
	}
	return fmt.Sprintf("The character has died from %s. Narrate a closing scene for this hero. Do not offer suggested actions.", cause)
}

// historyMessages converts the trailing window of campaign history into
// chat messages.
func historyMessages(messages []Message) []Message {
	if len(messages) > maxHistoryMessages {
		messages = messages[len(messages)-maxHistoryMessages:]
	}
	return messages
}
