// Package config resolves all service settings once at process start. The
// resulting struct is read-only afterwards; nothing in the pipeline looks
// up configuration on its own.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Supported model providers.
const (
	ProviderBedrock = "bedrock"
	ProviderVertex  = "vertex"
)

// Config holds every runtime setting of the service.
type Config struct {
	Provider string

	// Bedrock
	AWSRegion      string
	BedrockModelID string

	// Vertex AI
	GoogleCloudProject  string
	GoogleCloudLocation string
	VertexModelID       string

	MaxInputBytes  int64
	RequestTimeout time.Duration
	MaxAttempts    int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	Port string
}

// Default returns the production defaults.
func Default() *Config {
	return &Config{
		Provider:            ProviderBedrock,
		AWSRegion:           "eu-west-2",
		BedrockModelID:      "anthropic.claude-3-7-sonnet-20250219-v1:0",
		GoogleCloudLocation: "us-central1",
		VertexModelID:       "gemini-1.5-flash",
		MaxInputBytes:       10 << 20, // 10 MB
		RequestTimeout:      120 * time.Second,
		MaxAttempts:         3,
		RetryBaseDelay:      500 * time.Millisecond,
		RetryMaxDelay:       8 * time.Second,
		Port:                "8080",
	}
}

// FromEnv returns the defaults overridden by environment variables.
func FromEnv() *Config {
	c := Default()
	setString(&c.Provider, "PROVIDER")
	setString(&c.AWSRegion, "AWS_REGION")
	setString(&c.BedrockModelID, "BEDROCK_MODEL_ID")
	setString(&c.GoogleCloudProject, "GOOGLE_CLOUD_PROJECT")
	setString(&c.GoogleCloudLocation, "GOOGLE_CLOUD_LOCATION")
	setString(&c.VertexModelID, "VERTEX_MODEL_ID")
	setInt64(&c.MaxInputBytes, "MAX_INPUT_BYTES")
	setDuration(&c.RequestTimeout, "REQUEST_TIMEOUT")
	setInt(&c.MaxAttempts, "MAX_ATTEMPTS")
	setDuration(&c.RetryBaseDelay, "RETRY_BASE_DELAY")
	setDuration(&c.RetryMaxDelay, "RETRY_MAX_DELAY")
	setString(&c.Port, "PORT")
	return c
}

// Validate checks the configuration is usable before anything connects.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderBedrock:
		if c.AWSRegion == "" {
			return fmt.Errorf("AWS_REGION is required for the bedrock provider")
		}
		if c.BedrockModelID == "" {
			return fmt.Errorf("BEDROCK_MODEL_ID is required for the bedrock provider")
		}
	case ProviderVertex:
		if c.GoogleCloudProject == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for the vertex provider")
		}
		if c.VertexModelID == "" {
			return fmt.Errorf("VERTEX_MODEL_ID is required for the vertex provider")
		}
	default:
		return fmt.Errorf("unknown provider %q (want %q or %q)", c.Provider, ProviderBedrock, ProviderVertex)
	}
	if c.MaxInputBytes <= 0 {
		return fmt.Errorf("MAX_INPUT_BYTES must be positive")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("MAX_ATTEMPTS must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
