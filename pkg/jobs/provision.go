package jobs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"go.uber.org/zap"
)

// ProvisionSpec describes a dedicated-capacity endpoint for a custom model.
type ProvisionSpec struct {
	Name       string
	ModelID    string
	ModelUnits int32
}

// Provision creates provisioned throughput for a custom model and returns
// the provisioned model ARN. Without a commitment duration the capacity can
// be deleted at any time, which suits evaluation runs.
func (c *Client) Provision(ctx context.Context, spec ProvisionSpec) (string, error) {
	out, err := c.bedrock.CreateProvisionedModelThroughput(ctx, &bedrock.CreateProvisionedModelThroughputInput{
		ProvisionedModelName: aws.String(spec.Name),
		ModelId:              aws.String(spec.ModelID),
		ModelUnits:           aws.Int32(spec.ModelUnits),
	})
	if err != nil {
		return "", fmt.Errorf("could not provision throughput %s: %w", spec.Name, err)
	}

	arn := aws.ToString(out.ProvisionedModelArn)
	c.logger.Info("provisioned throughput requested",
		zap.String("name", spec.Name),
		zap.String("arn", arn),
		zap.Int32("units", spec.ModelUnits),
	)
	return arn, nil
}

// ProvisionStatus polls a provisioned throughput endpoint once.
func (c *Client) ProvisionStatus(ctx context.Context, arn string) (Status, error) {
	out, err := c.bedrock.GetProvisionedModelThroughput(ctx, &bedrock.GetProvisionedModelThroughputInput{
		ProvisionedModelId: aws.String(arn),
	})
	if err != nil {
		return Status{}, fmt.Errorf("could not get provisioned throughput %s: %w", arn, err)
	}

	return Status{
		State:    string(out.Status),
		Message:  aws.ToString(out.FailureMessage),
		ModelArn: aws.ToString(out.ModelArn),
	}, nil
}
