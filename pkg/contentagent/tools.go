// Capability registry and the tool response envelope.
package contentagent

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/openai/openai-go"
	"go.uber.org/zap"
)

// tool is one capability adapter invocable by the reasoning model.
type tool interface {
	definition() openai.ChatCompletionToolParam
	execute(argText string) (string, error)
	name() string
}

// toolContext provides the shared dependencies adapters read from. The
// configuration snapshot is fetched through Store at call time; adapters
// never mutate it.
type toolContext struct {
	Ctx        context.Context
	Logger     *zap.Logger
	Store      *ConfigStore
	Artifacts  *ArtifactStore
	Guidelines *Guidelines
	Creds      Credentials
	Images     imageBackend
	Text       textBackend
	Video      videoBackend
	HTTPClient *http.Client
}

// Credentials carries the per-platform publishing secrets. Absence of a
// credential surfaces at publish time, never as a startup failure.
type Credentials struct {
	LinkedInAccessToken string
	LinkedInURN         string
	MetaAccessToken     string
	FacebookPageID      string
	InstagramUserID     string
}

type tools struct {
	registry map[string]tool
	ctx      toolContext
	params   []openai.ChatCompletionToolParam
}

// toolResponse is the envelope appended to history after every adapter call.
// Failures carry a kind classification so the model can reason about them.
type toolResponse struct {
	OK   bool        `json:"ok"`
	Tool string      `json:"tool,omitempty"`
	Kind string      `json:"kind,omitempty"`
	Data interface{} `json:"data,omitempty"`
	Err  string      `json:"error,omitempty"`
}

func newTools(ctx toolContext) *tools {
	t := &tools{
		registry: make(map[string]tool),
		ctx:      ctx,
	}

	t.register(&generateImageTool{ctx: ctx})
	t.register(&generateVideoTool{ctx: ctx})
	t.register(&generateCaptionTool{ctx: ctx})
	t.register(&checkPolicyTool{ctx: ctx})
	t.register(&checkDesignTool{ctx: ctx})
	t.register(&publishTool{ctx: ctx})
	return t
}

func (t *tools) register(toolImpl tool) {
	t.registry[toolImpl.name()] = toolImpl
	t.params = append(t.params, toolImpl.definition())
	if t.ctx.Logger != nil {
		t.ctx.Logger.Debug("registered tool", zap.String("name", toolImpl.name()))
	}
}

func (t *tools) definitions() []openai.ChatCompletionToolParam {
	return t.params
}

func (t *tools) execute(call openai.ChatCompletionMessageToolCall) (string, error) {
	if t.ctx.Ctx != nil {
		select {
		case <-t.ctx.Ctx.Done():
			return marshalToolResponse(call.Function.Name, nil, t.ctx.Ctx.Err())
		default:
		}
	}

	toolImpl, ok := t.registry[call.Function.Name]
	if !ok {
		return marshalToolResponse(call.Function.Name, nil, validationError("unknown tool: %s", call.Function.Name))
	}

	if t.ctx.Logger != nil {
		t.ctx.Logger.Debug("executing tool",
			zap.String("name", call.Function.Name),
			zap.String("call_id", call.ID),
		)
	}
	return toolImpl.execute(call.Function.Arguments)
}

// marshalToolResponse encodes an adapter result as a JSON envelope. err may
// be any error; classified adapter errors keep their kind, everything else
// is tagged transport.
func marshalToolResponse(toolName string, data interface{}, err error) (string, error) {
	resp := toolResponse{
		OK:   err == nil,
		Tool: toolName,
		Data: data,
	}
	if err != nil {
		resp.Err = err.Error()
		resp.Kind = string(KindOf(err))
	}
	payload, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		return "", marshalErr
	}
	return string(payload), nil
}

func parseToolArgs(toolName, argText string, out any) error {
	if argText == "" {
		argText = "{}"
	}
	if err := json.Unmarshal([]byte(argText), out); err != nil {
		return validationError("%s: invalid arguments: %v", toolName, err)
	}
	return nil
}

// requireString enforces a required string parameter.
func requireString(toolName, field, value string) error {
	if value == "" {
		return validationError("%s: %s is required", toolName, field)
	}
	return nil
}

// pickAllowed substitutes the fallback for any value outside the allowed set.
func pickAllowed(value string, allowed []string, fallback string) string {
	if contains(allowed, value) {
		return value
	}
	return fallback
}
