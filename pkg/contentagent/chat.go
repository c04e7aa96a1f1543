// Dispatch loop between the conversation and the reasoning model.
package contentagent

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go"
	"go.uber.org/zap"
)

// ChatOptions controls one chat turn.
type ChatOptions struct {
	Stream       bool
	StreamWriter io.Writer
}

// ChatResult is the final assistant output for one turn.
type ChatResult struct {
	Content  string
	Streamed bool
}

func (a *App) runChatOnce(params openai.ChatCompletionNewParams, stream bool, streamWriter io.Writer) (openai.ChatCompletionMessage, bool, error) {
	if !stream {
		completion, err := a.client.Chat.Completions.New(a.ctx, params)
		if err != nil {
			return openai.ChatCompletionMessage{}, false, err
		}
		if len(completion.Choices) == 0 {
			return openai.ChatCompletionMessage{}, false, errors.New("empty completion choices")
		}
		return completion.Choices[0].Message, false, nil
	}

	if streamWriter == nil {
		streamWriter = io.Discard
	}
	streamResp := a.client.Chat.Completions.NewStreaming(a.ctx, params)
	defer streamResp.Close()

	acc := openai.ChatCompletionAccumulator{}
	streamed := false
	for streamResp.Next() {
		chunk := streamResp.Current()
		if !acc.AddChunk(chunk) {
			return openai.ChatCompletionMessage{}, streamed, errors.New("failed to accumulate stream")
		}
		if len(chunk.Choices) > 0 {
			delta := chunk.Choices[0].Delta
			if delta.Content != "" {
				_, _ = io.WriteString(streamWriter, delta.Content)
				streamed = true
			}
		}
	}
	if err := streamResp.Err(); err != nil {
		return openai.ChatCompletionMessage{}, streamed, err
	}
	if len(acc.Choices) == 0 {
		return openai.ChatCompletionMessage{}, streamed, errors.New("empty streamed completion choices")
	}
	return acc.Choices[0].Message, streamed, nil
}

// runChatLoop sends the history plus tool definitions, executes requested
// adapter calls strictly in request order, and repeats until the model
// answers without tool calls or the turn cap is hit. Adapter failures are
// appended like successes; the model decides what to do with them.
func (a *App) runChatLoop(messages []openai.ChatCompletionMessageParamUnion, stream bool, streamWriter io.Writer) ([]openai.ChatCompletionMessageParamUnion, []Message, ChatResult, error) {
	maxTurns := a.config.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 1
	}

	var lastContent string
	var transcript []Message
	streamedAny := false
	currentMessages := messages

	for turn := 0; turn < maxTurns; turn++ {
		a.logger.Debug("dispatch turn",
			zap.Int("turn", turn+1),
			zap.Int("max_turns", maxTurns),
			zap.Int("messages", len(currentMessages)),
		)

		message, streamed, err := a.runChatOnce(openai.ChatCompletionNewParams{
			Model:    openai.ChatModel(a.config.Model),
			Messages: currentMessages,
			Tools:    a.tools.definitions(),
		}, stream, streamWriter)
		if err != nil {
			return messages, nil, ChatResult{}, err
		}
		if streamed {
			streamedAny = true
		}
		if strings.TrimSpace(message.Content) != "" {
			lastContent = message.Content
		}

		if len(message.ToolCalls) == 0 {
			if lastContent == "" {
				lastContent = message.Content
			}
			if stream && streamed && !strings.HasSuffix(message.Content, "\n") {
				_, _ = fmt.Fprintln(writerOrDiscard(streamWriter))
			}
			updated := append(currentMessages, message.ToParam())
			transcript = append(transcript, Message{Role: RoleAssistant, Content: lastContent})
			return updated, transcript, ChatResult{Content: lastContent, Streamed: streamedAny}, nil
		}

		currentMessages = append(currentMessages, message.ToParam())
		a.logger.Debug("adapter calls requested", zap.Int("count", len(message.ToolCalls)))
		for _, call := range message.ToolCalls {
			output, err := a.tools.execute(call)
			if err != nil {
				output = fmt.Sprintf(`{"ok":false,"error":%q}`, err.Error())
			}
			currentMessages = append(currentMessages, openai.ToolMessage(output, call.ID))
			transcript = append(transcript, Message{Role: RoleTool, Content: output})
		}
	}

	if lastContent == "" {
		return messages, nil, ChatResult{}, errors.New("max turns reached without assistant content")
	}
	transcript = append(transcript, Message{Role: RoleAssistant, Content: lastContent})
	return currentMessages, transcript, ChatResult{Content: lastContent, Streamed: streamedAny}, nil
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
