package openai

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"github.com/casualjim/strix/pkg/jsonx"
	"github.com/casualjim/strix/provider"
	"github.com/go-openapi/strfmt"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

type Provider struct {
	client *openai.Client
}

func New(options ...option.RequestOption) *Provider {
	client := openai.NewClient(options...)
	return &Provider{
		client: client,
	}
}

func (p *Provider) buildRequest(_ context.Context, params *provider.CompletionParams) (openai.ChatCompletionNewParams, error) {
	if params.Model == nil {
		return openai.ChatCompletionNewParams{}, provider.ErrNoModel
	}
	if params.Thread == nil {
		return openai.ChatCompletionNewParams{}, provider.ErrNoThread
	}

	result, user := messagesToOpenAI(params.Instructions, params.Thread.MessagesIter())

	tools := make([]openai.ChatCompletionToolParam, len(params.Tools))
	for i, tool := range params.Tools {
		if tool.Function == nil {
			return openai.ChatCompletionNewParams{}, fmt.Errorf("tool %s has nil function", tool.Name)
		}

		name, parameters := tool.ToNameAndSchema()

		jv, err := jsonx.ToDynamicJSON(parameters)
		if err != nil {
			return openai.ChatCompletionNewParams{}, fmt.Errorf("failed to convert tool to name and schema: %w", err)
		}

		def := openai.FunctionDefinitionParam{
			Name:       openai.String(name),
			Parameters: openai.F(shared.FunctionParameters(jv)),
		}
		if strings.TrimSpace(tool.Description) != "" {
			def.Description = openai.String(tool.Description)
		}

		tools[i] = openai.ChatCompletionToolParam{
			Type:     openai.F(openai.ChatCompletionToolTypeFunction),
			Function: openai.F(def),
		}
	}

	var temperature float64
	if params.Temperature != nil {
		temperature = *params.Temperature
	}

	oaiParams := openai.ChatCompletionNewParams{
		Messages:    openai.F(result),
		Model:       openai.F(params.Model.Name()),
		N:           openai.Int(1),
		Temperature: openai.Float(temperature),
	}
	if len(tools) > 0 {
		oaiParams.Tools = openai.F(tools)
		oaiParams.ParallelToolCalls = openai.Bool(true)
	}
	if strings.TrimSpace(user) != "" {
		oaiParams.User = openai.String(user)
	}
	if params.Stream {
		oaiParams.StreamOptions = openai.F(openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.F(true),
		})
	}

	if rs := params.ResponseSchema; rs != nil && rs.Schema != nil {
		schema, err := jsonx.ToDynamicJSON(rs.Schema)
		if err != nil {
			return openai.ChatCompletionNewParams{}, fmt.Errorf("failed to convert response schema: %w", err)
		}
		jsonSchema := openai.ResponseFormatJSONSchemaJSONSchemaParam{
			Name:   openai.F(rs.Name),
			Schema: openai.F[any](schema),
			Strict: openai.Bool(true),
		}
		if strings.TrimSpace(rs.Description) != "" {
			jsonSchema.Description = openai.F(rs.Description)
		}
		oaiParams.ResponseFormat = openai.F[openai.ChatCompletionNewParamsResponseFormatUnion](
			openai.ResponseFormatJSONSchemaParam{
				Type:       openai.F(openai.ResponseFormatJSONSchemaTypeJSONSchema),
				JSONSchema: openai.F(jsonSchema),
			},
		)
	}

	return oaiParams, nil
}

func (p *Provider) ChatCompletion(ctx context.Context, params provider.CompletionParams) (<-chan provider.StreamEvent, error) {
	chatParams, err := p.buildRequest(ctx, &params)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	events := make(chan provider.StreamEvent, 10)
	go func() {
		defer close(events)
		if params.Stream {
			p.runStream(ctx, chatParams, &params, events)
		} else {
			p.runOnce(ctx, chatParams, &params, events)
		}
	}()
	return events, nil
}

func errorEvent(err error, command *provider.CompletionParams) provider.Error {
	return provider.Error{
		Err:       err,
		RunID:     command.RunID,
		TurnID:    command.Thread.ID(),
		Timestamp: strfmt.DateTime(time.Now()),
	}
}

func (p *Provider) runStream(ctx context.Context, params openai.ChatCompletionNewParams, command *provider.CompletionParams, events chan<- provider.StreamEvent) {
	strm := p.client.Chat.Completions.NewStreaming(ctx, params)

	if strm.Err() != nil {
		events <- errorEvent(strm.Err(), command)
		strm.Close()
		return
	}

	var notFirst bool
	var acc openai.ChatCompletionAccumulator
	var usage memory.Usage

	defer func() {
		strm.Close()
		if err := ctx.Err(); err != nil {
			events <- errorEvent(err, command)
		}
	}()

	for strm.Next() {
		if err := ctx.Err(); err != nil {
			return
		}

		if !notFirst {
			notFirst = true
			events <- provider.Delim{RunID: command.RunID, TurnID: command.Thread.ID(), Delim: provider.DelimStart}
		}

		chunk := strm.Current()
		if chunk.Usage.TotalTokens > 0 {
			usage = toUsage(chunk.Usage)
		}
		// usage-only frames carry no delta; a null choices field leaves the
		// previous delta in the decoded chunk
		if chunk.JSON.Choices.IsNull() || len(chunk.Choices) == 0 {
			continue
		}
		acc.AddChunk(chunk)
		events <- completionChunkToStreamEvent(&chunk, command)
	}

	if err := strm.Err(); err != nil && ctx.Err() == nil {
		events <- errorEvent(err, command)
		return
	}

	if notFirst && ctx.Err() == nil {
		events <- provider.Delim{RunID: command.RunID, TurnID: command.Thread.ID(), Delim: provider.DelimEnd}
		compl := &acc.ChatCompletion
		if usage.IsZero() {
			usage = toUsage(compl.Usage)
		}
		events <- completionToStreamEvent(compl, usage, command)
	}
}

func (p *Provider) runOnce(ctx context.Context, params openai.ChatCompletionNewParams, command *provider.CompletionParams, events chan<- provider.StreamEvent) {
	chat, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		events <- errorEvent(err, command)
		return
	}

	events <- completionToStreamEvent(chat, toUsage(chat.Usage), command)
}

func toUsage(u openai.CompletionUsage) memory.Usage {
	return memory.Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
		Requests:         1,
	}
}

func messagesToOpenAI(instructions string, iter iter.Seq[messages.Message[messages.ModelMessage]]) ([]openai.ChatCompletionMessageParamUnion, string) {
	var result []openai.ChatCompletionMessageParamUnion
	if strings.TrimSpace(instructions) != "" {
		result = append(result, openai.SystemMessage(instructions))
	}

	var user string
	for message := range iter {
		switch msg := message.Payload.(type) {
		case messages.Instructions:
			result = append(result, openai.SystemMessage(msg.Content))
		case messages.ToolResponse:
			result = append(result, openai.ToolMessage(msg.ToolCallID, msg.Content))
		case messages.UserMessage:
			if message.Sender != "" {
				user = message.Sender
			}
			result = append(result, openai.UserMessageParts(openai.TextPart(msg.Content)))
		case messages.ToolCallMessage:
			tcd := make([]openai.ChatCompletionMessageToolCallParam, len(msg.ToolCalls))
			for i, tc := range msg.ToolCalls {
				tcd[i] = openai.ChatCompletionMessageToolCallParam{
					ID:   openai.String(tc.ID),
					Type: openai.F(openai.ChatCompletionMessageToolCallTypeFunction),
					Function: openai.F(openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      openai.String(tc.Name),
						Arguments: openai.String(tc.Arguments),
					}),
				}
			}
			param := openai.ChatCompletionMessageParam{
				Role:      openai.F(openai.ChatCompletionMessageParamRoleAssistant),
				ToolCalls: openai.F[any](tcd),
			}
			if msg.Content != "" {
				param.Content = openai.F[any](msg.Content)
			}
			result = append(result, param)
		case messages.AssistantMessage:
			am := openai.ChatCompletionAssistantMessageParam{
				Role: openai.F(openai.ChatCompletionAssistantMessageParamRoleAssistant),
			}
			if msg.Content != "" {
				am.Content.Value = append(am.Content.Value, openai.TextPart(msg.Content))
			}
			if msg.Refusal != "" {
				am.Refusal = openai.String(msg.Refusal)
			}
			result = append(result, am)
		}
	}
	return result, user
}

func completionChunkToStreamEvent(chunk *openai.ChatCompletionChunk, command *provider.CompletionParams) provider.StreamEvent {
	if len(chunk.Choices) == 0 {
		return provider.Delim{RunID: command.RunID, TurnID: command.Thread.ID(), Delim: provider.DelimEmpty}
	}

	choice := chunk.Choices[0].Delta
	if len(choice.ToolCalls) > 0 {
		tcd := make([]messages.ToolCallData, len(choice.ToolCalls))
		for i, tc := range choice.ToolCalls {
			tcd[i] = messages.ToolCallData{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			}
		}

		return provider.Chunk[messages.ToolCallMessage]{
			RunID:  command.RunID,
			TurnID: command.Thread.ID(),
			Chunk: messages.ToolCallMessage{
				Content:   choice.Content,
				ToolCalls: tcd,
			},
			Timestamp: strfmt.DateTime(time.Now()),
		}
	}

	return provider.Chunk[messages.AssistantMessage]{
		RunID:  command.RunID,
		TurnID: command.Thread.ID(),
		Chunk: messages.AssistantMessage{
			Content: choice.Content,
			Refusal: choice.Refusal,
		},
		Timestamp: strfmt.DateTime(time.Now()),
	}
}

func completionToStreamEvent(chat *openai.ChatCompletion, usage memory.Usage, command *provider.CompletionParams) provider.StreamEvent {
	if len(chat.Choices) == 0 {
		return provider.Delim{RunID: command.RunID, TurnID: command.Thread.ID(), Delim: provider.DelimEmpty}
	}

	choice := chat.Choices[0].Message
	if len(choice.ToolCalls) > 0 {
		tcd := make([]messages.ToolCallData, len(choice.ToolCalls))
		for i, tc := range choice.ToolCalls {
			tcd[i] = messages.ToolCallData{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			}
		}

		return provider.Response[messages.ToolCallMessage]{
			RunID:  command.RunID,
			TurnID: command.Thread.ID(),
			Response: messages.ToolCallMessage{
				Content:   choice.Content,
				ToolCalls: tcd,
			},
			Usage:     usage,
			Timestamp: strfmt.DateTime(time.Now()),
		}
	}

	return provider.Response[messages.AssistantMessage]{
		RunID:  command.RunID,
		TurnID: command.Thread.ID(),
		Response: messages.AssistantMessage{
			Content: choice.Content,
			Refusal: choice.Refusal,
		},
		Usage:     usage,
		Timestamp: strfmt.DateTime(time.Now()),
	}
}
