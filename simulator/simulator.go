// Package simulator serves single-call inference against a Bedrock model or
// provisioned throughput endpoint, the way a distilled model is exercised
// after deployment.
package simulator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/klmuthu/bedrock-distill/pkg/llm"
)

// ModelInvoker is the slice of the Bedrock runtime client the simulator
// needs.
type ModelInvoker interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// ErrorResponse represents an error returned to the caller.
type ErrorResponse struct {
	Error string `json:"error"`
}

// InvokeRequest is the body accepted by POST /invoke.
type InvokeRequest struct {
	Context  string `json:"context"`
	Question string `json:"question"`
	System   string `json:"system,omitempty"`
}

// InvokeResponse carries the model's answer markup.
type InvokeResponse struct {
	Answer     string `json:"answer"`
	StopReason string `json:"stop_reason,omitempty"`
}

// Simulator forwards context/question pairs to a Bedrock endpoint, composing
// prompts exactly the way the prepared dataset does so the deployed model
// sees the distribution it was trained on.
type Simulator struct {
	config  Config
	invoker ModelInvoker
	logger  *zap.Logger
	server  *fiber.App
}

// New creates a Simulator backed by the default AWS credentials chain.
func New(ctx context.Context, config Config, region string, logger *zap.Logger) (*Simulator, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("could not load AWS config: %w", err)
	}

	return NewWithInvoker(config, bedrockruntime.NewFromConfig(awsCfg), logger), nil
}

// NewWithInvoker creates a Simulator with an explicit invoker.
func NewWithInvoker(config Config, invoker ModelInvoker, logger *zap.Logger) *Simulator {
	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
	})

	s := &Simulator{
		config:  config,
		invoker: invoker,
		logger:  logger,
		server:  app,
	}

	app.Post("/invoke", s.handleInvoke)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	return s
}

// Run starts the simulator server on the configured listening address.
func (s *Simulator) Run() error {
	s.logger.Info("starting simulator server",
		zap.String("listen", s.config.ListenAddr),
		zap.String("model", s.config.ModelArn),
	)

	return s.server.Listen(s.config.ListenAddr)
}

// handleInvoke forwards one question to the model endpoint.
func (s *Simulator) handleInvoke(c *fiber.Ctx) error {
	startTime := time.Now()

	var req InvokeRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.Error("failed to parse request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "question is required"})
	}

	system := req.System
	if system == "" {
		system = s.config.System
	}

	prompt := llm.UserPrompt(req.Context, req.Question)
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(s.config.ModelArn),
		Messages: []brtypes.Message{{
			Role:    brtypes.ConversationRoleUser,
			Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: prompt}},
		}},
		InferenceConfig: inferenceConfig(),
	}
	if system != "" {
		input.System = []brtypes.SystemContentBlock{&brtypes.SystemContentBlockMemberText{Value: system}}
	}

	s.logger.Debug("forwarding invocation",
		zap.String("model", s.config.ModelArn),
		zap.String("question_preview", truncate(req.Question, 80)),
	)

	out, err := s.invoker.Converse(c.Context(), input)
	if err != nil {
		s.logger.Error("model invocation failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "model invocation failed"})
	}

	answer := extractText(out)
	s.logger.Debug("model responded",
		zap.String("answer_preview", truncate(answer, 100)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return c.JSON(InvokeResponse{
		Answer:     answer,
		StopReason: string(out.StopReason),
	})
}

// inferenceConfig converts the fixed generation parameters to the Converse
// shape. Top-k is not part of the common Converse configuration and is left
// to the model default here.
func inferenceConfig() *brtypes.InferenceConfiguration {
	opts := llm.DefaultInferenceOptions()

	cfg := &brtypes.InferenceConfiguration{
		StopSequences: opts.Stop,
	}
	if opts.Temperature != nil {
		cfg.Temperature = aws.Float32(float32(*opts.Temperature))
	}
	if opts.TopP != nil {
		cfg.TopP = aws.Float32(float32(*opts.TopP))
	}

	return cfg
}

// extractText concatenates the text blocks of the model's response message.
func extractText(out *bedrockruntime.ConverseOutput) string {
	msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}

	var b strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}
	return b.String()
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
