// Application wiring: configuration store, backends, capability registry,
// and the conversation.
package contentagent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// Role is the role of one conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool-result"
)

// Message is one entry of the user-visible conversation history.
type Message struct {
	Role    Role
	Content string
}

// Config holds all runtime configuration for the agent.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	MaxTurns      int
	Stream        bool
	OutputDir     string
	GuidelinesDir string

	Generation  GenerationConfig
	Credentials Credentials
	Logger      *zap.Logger
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		Model:         "gpt-5",
		MaxTurns:      10,
		OutputDir:     "generated_content",
		GuidelinesDir: "guidelines",
		Generation:    DefaultGenerationConfig(),
	}
}

func normalizeConfig(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 1
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultConfig().OutputDir
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

// App holds agent runtime state: the configuration store, the reasoning
// client, the capability registry, and the conversation history.
type App struct {
	config       Config
	store        *ConfigStore
	client       openai.Client
	tools        *tools
	artifacts    *ArtifactStore
	systemPrompt string

	history    []openai.ChatCompletionMessageParamUnion
	transcript []Message

	ctx    context.Context
	logger *zap.Logger
}

// New initializes an App with the provided context and config.
func New(ctx context.Context, cfg Config) (*App, error) {
	cfg = normalizeConfig(cfg)
	if cfg.APIKey == "" {
		return nil, errors.New("APIKey is not set")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	store := NewConfigStore()
	if err := store.Set(cfg.Generation); err != nil {
		return nil, fmt.Errorf("generation config: %w", err)
	}

	client := newOpenAIClient(cfg)
	backend := &openaiBackend{client: client, model: cfg.Model}
	artifacts := NewArtifactStore(cfg.OutputDir)
	guidelines := NewGuidelines(cfg.GuidelinesDir)

	toolCtx := toolContext{
		Ctx:        ctx,
		Logger:     cfg.Logger,
		Store:      store,
		Artifacts:  artifacts,
		Guidelines: guidelines,
		Creds:      cfg.Credentials,
		Images:     backend,
		Text:       backend,
		Video:      newVideoClient(cfg.BaseURL, cfg.APIKey),
		HTTPClient: &http.Client{Timeout: downloadTimeout},
	}
	registered := newTools(toolCtx)
	cfg.Logger.Debug("tools registered", zap.Int("count", len(registered.definitions())))

	app := &App{
		config:    cfg,
		store:     store,
		client:    client,
		tools:     registered,
		artifacts: artifacts,
		ctx:       ctx,
		logger:    cfg.Logger,
	}
	app.refreshSystemPrompt()
	return app, nil
}

func newOpenAIClient(cfg Config) openai.Client {
	opts := []option.RequestOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return openai.NewClient(opts...)
}

func (a *App) refreshSystemPrompt() {
	a.systemPrompt = buildSystemPrompt(a.store.Get())
	if len(a.history) == 0 {
		a.history = []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(a.systemPrompt)}
		return
	}
	a.history[0] = openai.SystemMessage(a.systemPrompt)
}

// Chat runs one turn: the input becomes a user message, the dispatch loop
// executes whatever adapter calls the model requests, and the final
// assistant content is returned. On error the history is left unchanged.
func (a *App) Chat(input string, opts ChatOptions) (ChatResult, error) {
	working := append(append([]openai.ChatCompletionMessageParamUnion(nil), a.history...), openai.UserMessage(input))

	updated, transcript, result, err := a.runChatLoop(working, opts.Stream, opts.StreamWriter)
	if err != nil {
		return ChatResult{}, err
	}

	a.history = updated
	a.transcript = append(a.transcript, Message{Role: RoleUser, Content: input})
	a.transcript = append(a.transcript, transcript...)
	return result, nil
}

// History returns the user-visible conversation turns in order.
func (a *App) History() []Message {
	return append([]Message(nil), a.transcript...)
}

// ClearHistory resets the conversation to just the system prompt.
func (a *App) ClearHistory() {
	a.history = []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(a.systemPrompt)}
	a.transcript = nil
	a.logger.Debug("conversation history cleared")
}

// Reconfigure replaces the generation settings and rebuilds the system
// prompt. An invalid configuration is rejected and the old one retained.
func (a *App) Reconfigure(gen GenerationConfig) error {
	if err := a.store.Set(gen); err != nil {
		return err
	}
	a.refreshSystemPrompt()
	a.logger.Info("configuration replaced",
		zap.Strings("platforms", gen.TargetPlatforms),
		zap.String("aspect_ratio", gen.VideoAspectRatio),
	)
	return nil
}

// Settings returns the current generation configuration snapshot.
func (a *App) Settings() GenerationConfig {
	return a.store.Get()
}

// Artifacts returns the artifact store for inspection.
func (a *App) Artifacts() *ArtifactStore {
	return a.artifacts
}
