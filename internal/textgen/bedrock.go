package textgen

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"etlmap/internal/errors"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 2048
)

// BedrockConfig configures the Bedrock-backed generator.
type BedrockConfig struct {
	ModelID   string        // Bedrock model ID (required)
	Region    string        // AWS region (required)
	Timeout   time.Duration // Request timeout (default 60s)
	MaxTokens int           // Max tokens for the response (default 2048)
}

// BedrockAPI abstracts the Bedrock Converse call for testing.
type BedrockAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Bedrock is a Generator backed by the AWS Bedrock runtime.
type Bedrock struct {
	api       BedrockAPI
	modelID   string
	timeout   time.Duration
	maxTokens int
}

// NewBedrock creates a Bedrock generator using the standard AWS
// credential chain.
func NewBedrock(ctx context.Context, cfg BedrockConfig) (*Bedrock, error) {
	if cfg.ModelID == "" {
		return nil, errors.New(errors.GeneratorUnavailable, "model ID is required")
	}
	if cfg.Region == "" {
		return nil, errors.New(errors.GeneratorUnavailable, "region is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, errors.Wrap(errors.GeneratorUnavailable, "loading AWS config", err)
	}

	return NewBedrockWithAPI(bedrockruntime.NewFromConfig(awsCfg), cfg), nil
}

// NewBedrockWithAPI creates a generator with a pre-configured API
// implementation. Used for testing with mock clients.
func NewBedrockWithAPI(api BedrockAPI, cfg BedrockConfig) *Bedrock {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	return &Bedrock{
		api:       api,
		modelID:   cfg.ModelID,
		timeout:   timeout,
		maxTokens: maxTokens,
	}
}

// Generate sends the prompt via the Converse API and returns the
// concatenated text blocks of the response.
func (b *Bedrock) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	out, err := b.api.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(b.modelID),
		Messages: []brtypes.Message{
			{
				Role: brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberText{Value: prompt},
				},
			},
		},
		InferenceConfig: &brtypes.InferenceConfiguration{
			MaxTokens: aws.Int32(int32(b.maxTokens)),
		},
	})
	if err != nil {
		return "", errors.Wrap(errors.GeneratorUnavailable, "bedrock converse failed", err)
	}

	msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New(errors.GeneratorUnavailable, "bedrock returned no message output")
	}

	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New(errors.GeneratorUnavailable, "bedrock returned empty response")
	}

	return sb.String(), nil
}
