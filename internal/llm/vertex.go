package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"resume-parser/internal/prompt"
	"resume-parser/internal/schema"
)

// VertexCaller invokes a Gemini model on Vertex AI with a response schema
// generated from the registered resume schema, so the model returns JSON in
// the registered shape.
type VertexCaller struct {
	model *genai.GenerativeModel
}

// NewVertexCaller configures a generative model for deterministic
// structured extraction.
func NewVertexCaller(client *genai.Client, modelID string) *VertexCaller {
	model := client.GenerativeModel(modelID)
	model.SetTemperature(0.2)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(4096)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(prompt.SystemInstruction)},
	}
	model.GenerationConfig.ResponseMIMEType = "application/json"
	model.GenerationConfig.ResponseSchema = vertexSchema(schema.Resume())
	return &VertexCaller{model: model}
}

// Invoke sends one generation request and returns the model's JSON output.
func (v *VertexCaller) Invoke(ctx context.Context, req prompt.Request) (json.RawMessage, error) {
	resp, err := v.model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return nil, classifyVertex(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, Transient(errors.New("no response candidates returned"))
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return nil, Transient(errors.New("empty response from model"))
	}
	return ExtractJSON(sb.String()), nil
}

// classifyVertex sorts Vertex failures by message text; the SDK does not
// expose typed exceptions for these conditions.
func classifyVertex(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission"),
		strings.Contains(msg, "unauthenticated"),
		strings.Contains(msg, "403"):
		return Denied(err)
	case strings.Contains(msg, "resourceexhausted"),
		strings.Contains(msg, "429"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "unavailable"),
		strings.Contains(msg, "deadline"),
		strings.Contains(msg, "internal error"),
		strings.Contains(msg, "500"),
		strings.Contains(msg, "503"):
		return Transient(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Transient(err)
	}
	return err
}

// vertexSchema converts a registered object definition into the genai
// schema form.
func vertexSchema(o *schema.Object) *genai.Schema {
	properties := make(map[string]*genai.Schema, len(o.Fields))
	var required []string
	for _, f := range o.Fields {
		properties[f.Name] = vertexField(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: o.Doc,
		Properties:  properties,
		Required:    required,
	}
}

func vertexField(f schema.Field) *genai.Schema {
	switch f.Kind {
	case schema.Integer:
		return &genai.Schema{Type: genai.TypeInteger, Description: f.Doc}
	case schema.Number:
		return &genai.Schema{Type: genai.TypeNumber, Description: f.Doc}
	case schema.StringArray:
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: f.Doc,
			Items:       &genai.Schema{Type: genai.TypeString},
		}
	case schema.ObjectArray:
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: f.Doc,
			Items:       vertexSchema(f.Elem),
		}
	default:
		return &genai.Schema{Type: genai.TypeString, Description: f.Doc}
	}
}
