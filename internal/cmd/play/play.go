// Package play parses play command flags and runs the interactive solo
// session loop.
package play

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/louisbranch/soloquest/internal/campaign"
	"github.com/louisbranch/soloquest/internal/character"
	"github.com/louisbranch/soloquest/internal/narrative"
	"github.com/louisbranch/soloquest/internal/platform/config"
	"github.com/louisbranch/soloquest/internal/platform/i18n"
	otelsetup "github.com/louisbranch/soloquest/internal/platform/otel"
	"github.com/louisbranch/soloquest/internal/progression"
	"github.com/louisbranch/soloquest/internal/storage"
	"github.com/louisbranch/soloquest/internal/storage/sqlite"
	"github.com/louisbranch/soloquest/internal/systems"
	"github.com/louisbranch/soloquest/internal/telemetry"
	"github.com/louisbranch/soloquest/internal/turn"
)

// Config holds play command configuration.
type Config struct {
	DBPath        string `env:"SOLOQUEST_DB_PATH"        envDefault:"soloquest.db"`
	Locale        string `env:"SOLOQUEST_LOCALE"         envDefault:"en-US"`
	System        string `env:"SOLOQUEST_SYSTEM"         envDefault:"generic"`
	CampaignName  string `env:"SOLOQUEST_CAMPAIGN_NAME"  envDefault:"Solo Adventure"`
	CharacterName string `env:"SOLOQUEST_CHARACTER_NAME" envDefault:"Adventurer"`

	AIBaseURL string `env:"SOLOQUEST_AI_BASE_URL"`
	AIModel   string `env:"SOLOQUEST_AI_MODEL"`
	AIAPIKey  string `env:"SOLOQUEST_AI_API_KEY"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "narration locale (en-US, pt-BR, es-ES)")
	fs.StringVar(&cfg.System, "system", cfg.System, "RPG system (generic, dnd5e, coc, vampire)")
	fs.StringVar(&cfg.CampaignName, "campaign", cfg.CampaignName, "campaign name")
	fs.StringVar(&cfg.CharacterName, "character", cfg.CharacterName, "character name")
	fs.StringVar(&cfg.AIBaseURL, "ai-base-url", cfg.AIBaseURL, "OpenAI-compatible API base URL")
	fs.StringVar(&cfg.AIModel, "ai-model", cfg.AIModel, "narrative model name")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the store, builds the session, and drives the interactive loop
// until death or /quit.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	shutdown, err := otelsetup.Setup(ctx, "soloquest-play")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	gen, err := buildGenerator(cfg)
	if err != nil {
		return err
	}

	locale := i18n.ResolveLocale(cfg.Locale)
	sys := systems.ParseID(cfg.System)

	camp, err := campaign.New(cfg.CampaignName, sys, locale)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	char, err := character.New(camp.ID, cfg.CharacterName, sys)
	if err != nil {
		return fmt.Errorf("create character: %w", err)
	}
	if err := store.PutCampaign(ctx, camp); err != nil {
		return fmt.Errorf("persist campaign: %w", err)
	}
	if err := store.PutCharacter(ctx, char); err != nil {
		return fmt.Errorf("persist character: %w", err)
	}

	engine := turn.NewEngine(gen, store, telemetry.NewEmitter(store))
	session := turn.NewSession(camp, char, rand.New(rand.NewSource(time.Now().UnixNano())))

	loop := &playLoop{
		engine:  engine,
		session: session,
		store:   store,
		out:     out,
	}
	return loop.run(ctx, in)
}

// buildGenerator wires the OpenAI-compatible adapter when configured and the
// offline generator otherwise, so play works without an API key.
func buildGenerator(cfg Config) (narrative.Generator, error) {
	if strings.TrimSpace(cfg.AIModel) == "" || strings.TrimSpace(cfg.AIAPIKey) == "" {
		return offlineGenerator{}, nil
	}
	gen, err := narrative.NewOpenAIGenerator(narrative.OpenAIConfig{
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
		APIKey:  cfg.AIAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("configure narrative generator: %w", err)
	}
	return gen, nil
}

type playLoop struct {
	engine  *turn.Engine
	session *turn.Session
	store   storage.Store
	out     io.Writer
}

func (l *playLoop) run(ctx context.Context, in io.Reader) error {
	stream := func(chunk string) { fmt.Fprint(l.out, chunk) }

	opening, err := l.engine.Start(ctx, l.session, stream)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	fmt.Fprintln(l.out)
	l.printOutcome(opening)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(l.out, "> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			quit, err := l.command(ctx, input)
			if err != nil {
				fmt.Fprintf(l.out, "%v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		outcome, err := l.engine.Resolve(ctx, l.session, input, stream)
		if err != nil {
			fmt.Fprintf(l.out, "%v\n", err)
			continue
		}
		fmt.Fprintln(l.out)
		l.printOutcome(outcome)

		if outcome.Died {
			fmt.Fprintln(l.out, "The session has ended.")
			return nil
		}
	}
	return scanner.Err()
}

// command handles the local slash commands; they act on character state
// directly and never consume a turn.
func (l *playLoop) command(ctx context.Context, input string) (quit bool, err error) {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit":
		return true, nil
	case "/sheet":
		l.printSheet()
		return false, nil
	case "/spend":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: /spend <attribute>")
		}
		return false, l.spend(ctx, fields[1])
	case "/confirm":
		char := progression.ConfirmLevelUp(l.session.Character)
		l.session.Character = char
		if err := l.store.UpdateProgress(ctx, char.ID, char.Level, char.Experience, char.PendingPoints); err != nil {
			return false, fmt.Errorf("persist confirm: %w", err)
		}
		fmt.Fprintln(l.out, "Level-up confirmed.")
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}
}

func (l *playLoop) spend(ctx context.Context, attr string) error {
	char, err := progression.AllocateAttributePoint(l.session.Character, attr, l.session.Character.System)
	if err != nil {
		return err
	}
	l.session.Character = char

	if err := l.store.UpdateAttribute(ctx, char.ID, attr, char.Attributes[attr]); err != nil {
		return fmt.Errorf("persist attribute: %w", err)
	}
	if err := l.store.UpdateHP(ctx, char.ID, char.HitPoints, char.MaxHitPoints); err != nil {
		return fmt.Errorf("persist hp: %w", err)
	}
	if err := l.store.UpdateProgress(ctx, char.ID, char.Level, char.Experience, char.PendingPoints); err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}

	fmt.Fprintf(l.out, "%s is now %d (%d points left)\n", attr, char.Attributes[attr], char.PendingPoints)
	return nil
}

func (l *playLoop) printOutcome(outcome turn.Outcome) {
	if outcome.Notice != "" {
		fmt.Fprintf(l.out, "[%s]\n", outcome.Notice)
	}
	if outcome.Roll != nil {
		fmt.Fprintf(l.out, "Roll %s: %s", outcome.Roll.Notation, outcome.Roll.Breakdown)
		if outcome.Roll.Penalty > 0 {
			fmt.Fprintf(l.out, " (effective %d, misfortune -%d)", outcome.Roll.Effective, outcome.Roll.Penalty)
		}
		fmt.Fprintln(l.out)
	}
	if outcome.XPAwarded != 0 {
		fmt.Fprintf(l.out, "XP %+d\n", outcome.XPAwarded)
	}
	if outcome.LeveledUp {
		fmt.Fprintf(l.out, "Level up! Now level %d with %d attribute points to spend (/spend <attribute>, /confirm).\n",
			outcome.NewLevel, outcome.PendingPoints)
	}
	if outcome.Died {
		fmt.Fprintln(l.out)
		fmt.Fprintln(l.out, outcome.DeathNarration)
		return
	}
	for _, action := range outcome.Suggested {
		fmt.Fprintf(l.out, "  - %s: %s\n", action.Label, action.Action)
	}
	if outcome.RollRequest != "" {
		fmt.Fprintf(l.out, "%s: %s\n", i18n.Message(l.session.Campaign.Locale, i18n.KeyRollPrompt), outcome.RollRequest)
	}
}

func (l *playLoop) printSheet() {
	char := l.session.Character
	tmpl := systems.Lookup(char.System)

	fmt.Fprintf(l.out, "%s — %s, level %d (%d XP)\n", char.Name, tmpl.Name, char.Level, char.Experience)
	fmt.Fprintf(l.out, "HP %d/%d", char.HitPoints, char.MaxHitPoints)
	if char.Misfortune > 0 {
		fmt.Fprintf(l.out, "  misfortune %d", char.Misfortune)
	}
	if char.PendingPoints > 0 {
		fmt.Fprintf(l.out, "  pending points %d", char.PendingPoints)
	}
	fmt.Fprintln(l.out)

	for _, def := range tmpl.Attributes {
		fmt.Fprintf(l.out, "  %-12s %d\n", def.DisplayName, char.Attributes[def.Name])
	}
	for _, def := range tmpl.Resources {
		fmt.Fprintf(l.out, "  %-12s %d/%d\n", def.DisplayName, char.Resources[def.Name], char.MaxResources[def.Name])
	}
	if len(char.Inventory) > 0 {
		fmt.Fprintln(l.out, "Inventory:")
		for _, item := range char.Inventory {
			marker := ""
			if item.ID == char.EquippedWeapon || item.ID == char.EquippedArmor {
				marker = " (equipped)"
			}
			fmt.Fprintf(l.out, "  %s x%d%s\n", item.Name, item.Quantity, marker)
		}
	}
}
