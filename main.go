package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"cloud.google.com/go/vertexai/genai"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/joho/godotenv"

	"resume-parser/internal/api"
	"resume-parser/internal/config"
	"resume-parser/internal/extract"
	"resume-parser/internal/llm"
	"resume-parser/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	caller, err := newCaller(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize %s provider: %v", cfg.Provider, err)
	}

	client := llm.NewClient(caller, llm.RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   cfg.RetryBaseDelay,
		MaxDelay:    cfg.RetryMaxDelay,
	}, cfg.RequestTimeout)

	pipe := pipeline.New(extract.NewPDFExtractor(cfg.MaxInputBytes), client)
	server := api.NewServer(pipe, cfg.MaxInputBytes, cfg.RequestTimeout)

	fmt.Printf("Starting Resume Parser on port %s (provider: %s)...\n", cfg.Port, cfg.Provider)
	fmt.Printf("Endpoints:\n")
	fmt.Printf("  POST /resume/parse - Upload a PDF resume, get structured JSON\n")
	fmt.Printf("  GET /health - Health check\n")

	if err := http.ListenAndServe(":"+cfg.Port, server.Router()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// newCaller resolves provider credentials once; the resulting caller is
// read-only for the life of the process.
func newCaller(ctx context.Context, cfg *config.Config) (llm.Caller, error) {
	switch cfg.Provider {
	case config.ProviderBedrock:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		return llm.NewBedrockCaller(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID), nil
	case config.ProviderVertex:
		client, err := genai.NewClient(ctx, cfg.GoogleCloudProject, cfg.GoogleCloudLocation)
		if err != nil {
			return nil, fmt.Errorf("create Vertex AI client: %w", err)
		}
		return llm.NewVertexCaller(client, cfg.VertexModelID), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
