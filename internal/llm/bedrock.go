package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"

	"resume-parser/internal/prompt"
	"resume-parser/internal/schema"
)

// BedrockCaller invokes a Bedrock model through the Converse API with a
// single forced tool whose input schema is the registered resume schema, so
// the model's answer arrives as a structured document rather than free text.
type BedrockCaller struct {
	client  *bedrockruntime.Client
	modelID string
}

// NewBedrockCaller wraps an already-configured Bedrock runtime client.
func NewBedrockCaller(client *bedrockruntime.Client, modelID string) *BedrockCaller {
	return &BedrockCaller{client: client, modelID: modelID}
}

// Invoke sends one Converse request and returns the tool-use input as raw
// JSON. If the model ignored the forced tool and answered in text, the text
// is fence-stripped and returned for the validator to judge.
func (b *BedrockCaller) Invoke(ctx context.Context, req prompt.Request) (json.RawMessage, error) {
	out, err := b.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(b.modelID),
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: req.System},
		},
		Messages: []types.Message{{
			Role: types.ConversationRoleUser,
			Content: []types.ContentBlock{
				&types.ContentBlockMemberText{Value: req.User},
			},
		}},
		ToolConfig: &types.ToolConfiguration{
			Tools: []types.Tool{
				&types.ToolMemberToolSpec{Value: types.ToolSpecification{
					Name:        aws.String(schema.ToolName),
					Description: aws.String("Record the structured candidate data extracted from a resume."),
					InputSchema: &types.ToolInputSchemaMemberJson{
						Value: document.NewLazyDocument(schema.Resume().JSONSchema()),
					},
				}},
			},
			ToolChoice: &types.ToolChoiceMemberTool{
				Value: types.SpecificToolChoice{Name: aws.String(schema.ToolName)},
			},
		},
	})
	if err != nil {
		return nil, classifyBedrock(err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, Transient(fmt.Errorf("unexpected converse output type %T", out.Output))
	}

	for _, block := range msg.Value.Content {
		if use, ok := block.(*types.ContentBlockMemberToolUse); ok {
			raw, err := use.Value.Input.MarshalSmithyDocument()
			if err != nil {
				return nil, fmt.Errorf("decode tool input: %w", err)
			}
			return json.RawMessage(raw), nil
		}
	}
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			return ExtractJSON(text.Value), nil
		}
	}
	return nil, Transient(errors.New("empty response from model"))
}

func classifyBedrock(err error) error {
	var (
		denied      *types.AccessDeniedException
		throttling  *types.ThrottlingException
		unavailable *types.ServiceUnavailableException
		modelTime   *types.ModelTimeoutException
		notReady    *types.ModelNotReadyException
		internal    *types.InternalServerException
	)
	switch {
	case errors.As(err, &denied):
		return Denied(err)
	case errors.As(err, &throttling),
		errors.As(err, &unavailable),
		errors.As(err, &modelTime),
		errors.As(err, &notReady),
		errors.As(err, &internal):
		return Transient(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Transient(err)
	}
	// Credential problems surface as generic API errors, not typed
	// exceptions.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException", "InvalidSignatureException", "ExpiredTokenException":
			return Denied(err)
		}
	}
	return err
}
