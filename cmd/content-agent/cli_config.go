package main

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/soracraft/content-agent-go/pkg/contentagent"
)

// cliFlags carries flags that configure the CLI itself rather than the agent.
type cliFlags struct {
	Verbose bool
}

// parseCLIConfig loads .env, environment variables, the optional YAML
// defaults file, and command-line flags into runtime config.
func parseCLIConfig() (contentagent.Config, cliFlags, error) {
	_ = godotenv.Load()

	defaults := contentagent.DefaultConfig()

	maxTurns := flag.Int("max_turns", defaults.MaxTurns, "Max tool-call turns per user message")
	stream := flag.Bool("stream", false, "Stream assistant output")
	verbose := flag.Bool("verbose", false, "Verbose tool-call logging")
	outputDir := flag.String("output_dir", defaults.OutputDir, "Directory for generated content")
	guidelinesDir := flag.String("guidelines_dir", defaults.GuidelinesDir, "Directory containing guideline markdown files")
	configFile := flag.String("config_file", "content-agent.yaml", "Optional YAML file with generation defaults")
	flag.Parse()

	generation, err := contentagent.LoadGenerationDefaults(*configFile)
	if err != nil {
		return contentagent.Config{}, cliFlags{}, err
	}

	cfg := defaults
	cfg.MaxTurns = *maxTurns
	cfg.Stream = *stream
	cfg.OutputDir = strings.TrimSpace(*outputDir)
	cfg.GuidelinesDir = strings.TrimSpace(*guidelinesDir)
	cfg.Generation = generation
	cfg.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	cfg.BaseURL = strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	if model := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); model != "" {
		cfg.Model = model
	}
	cfg.Credentials = contentagent.Credentials{
		LinkedInAccessToken: strings.TrimSpace(os.Getenv("LINKEDIN_ACCESS_TOKEN")),
		LinkedInURN:         strings.TrimSpace(os.Getenv("LINKEDIN_URN")),
		MetaAccessToken:     strings.TrimSpace(os.Getenv("META_ACCESS_TOKEN")),
		FacebookPageID:      strings.TrimSpace(os.Getenv("FB_PAGE_ID")),
		InstagramUserID:     strings.TrimSpace(os.Getenv("IG_USER_ID")),
	}

	return cfg, cliFlags{Verbose: *verbose}, nil
}

// newLogger builds a console logger writing to stderr. Verbose enables
// debug-level adapter logging.
func newLogger(verbose bool) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if !verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return zapCfg.Build()
}
