package play

import (
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "soloquest.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Locale != "en-US" || cfg.System != "generic" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("SOLOQUEST_DB_PATH", "env.db")
	t.Setenv("SOLOQUEST_SYSTEM", "coc")

	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "flag.db", "-character", "Mira"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "flag.db" {
		t.Fatalf("expected flag db path, got %q", cfg.DBPath)
	}
	if cfg.System != "coc" {
		t.Fatalf("expected env system, got %q", cfg.System)
	}
	if cfg.CharacterName != "Mira" {
		t.Fatalf("expected flag character name, got %q", cfg.CharacterName)
	}
}

func TestBuildGeneratorOfflineWithoutKey(t *testing.T) {
	gen, err := buildGenerator(Config{})
	if err != nil {
		t.Fatalf("build generator: %v", err)
	}
	if _, ok := gen.(offlineGenerator); !ok {
		t.Fatalf("expected offline generator, got %T", gen)
	}
}

// TestRunOfflineSession drives a short session end to end against the real
// SQLite store with the offline generator.
func TestRunOfflineSession(t *testing.T) {
	cfg := Config{
		DBPath:        filepath.Join(t.TempDir(), "play.db"),
		Locale:        "en-US",
		System:        "generic",
		CampaignName:  "Test Campaign",
		CharacterName: "Rowan",
	}

	input := strings.NewReader("d20\n/sheet\n/quit\n")
	var out strings.Builder
	if err := Run(context.Background(), cfg, input, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Roll d20:") {
		t.Fatalf("missing roll output:\n%s", text)
	}
	if !strings.Contains(text, "Rowan") {
		t.Fatalf("missing character sheet:\n%s", text)
	}
	if !strings.Contains(text, "storyteller is offline") {
		t.Fatalf("missing degraded notice:\n%s", text)
	}
}
