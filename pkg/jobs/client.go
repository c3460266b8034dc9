// Package jobs wraps the Bedrock control-plane calls the workflow submits
// and polls: distillation jobs, batch inference jobs, and provisioned
// throughput. Submission and polling are single synchronous calls; fault
// tolerance is the managed service's concern.
package jobs

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"go.uber.org/zap"
)

// Client drives Bedrock model customization, batch inference and
// provisioned throughput.
type Client struct {
	bedrock *bedrock.Client
	logger  *zap.Logger
}

// New builds a Client using the default credentials chain.
func New(ctx context.Context, region string, logger *zap.Logger) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("could not load AWS config: %w", err)
	}

	return &Client{
		bedrock: bedrock.NewFromConfig(awsCfg),
		logger:  logger,
	}, nil
}

// Status is the uniform view over the job kinds this client tracks. State
// carries the service's status enum verbatim; Message is only set on
// failure; OutputURI and ModelArn are only set once the service reports
// them.
type Status struct {
	State     string
	Message   string
	OutputURI string
	ModelArn  string
}
