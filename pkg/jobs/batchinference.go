package jobs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"go.uber.org/zap"
)

// BatchInferenceSpec describes one offline batch inference job over a
// prepared JSONL input file.
type BatchInferenceSpec struct {
	JobName string
	ModelID string
	RoleArn string

	// InputURI points at the JSONL records; OutputURI receives the results.
	InputURI  string
	OutputURI string
}

// SubmitBatchInference starts a model invocation job and returns its ARN.
func (c *Client) SubmitBatchInference(ctx context.Context, spec BatchInferenceSpec) (string, error) {
	out, err := c.bedrock.CreateModelInvocationJob(ctx, &bedrock.CreateModelInvocationJobInput{
		JobName: aws.String(spec.JobName),
		ModelId: aws.String(spec.ModelID),
		RoleArn: aws.String(spec.RoleArn),
		InputDataConfig: &types.ModelInvocationJobInputDataConfigMemberS3InputDataConfig{
			Value: types.ModelInvocationJobS3InputDataConfig{S3Uri: aws.String(spec.InputURI)},
		},
		OutputDataConfig: &types.ModelInvocationJobOutputDataConfigMemberS3OutputDataConfig{
			Value: types.ModelInvocationJobS3OutputDataConfig{S3Uri: aws.String(spec.OutputURI)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("could not submit batch inference job %s: %w", spec.JobName, err)
	}

	arn := aws.ToString(out.JobArn)
	c.logger.Info("batch inference job submitted",
		zap.String("job", spec.JobName),
		zap.String("arn", arn),
		zap.String("model", spec.ModelID),
	)
	return arn, nil
}

// InvocationStatus polls a batch inference job once.
func (c *Client) InvocationStatus(ctx context.Context, arn string) (Status, error) {
	out, err := c.bedrock.GetModelInvocationJob(ctx, &bedrock.GetModelInvocationJobInput{
		JobIdentifier: aws.String(arn),
	})
	if err != nil {
		return Status{}, fmt.Errorf("could not get batch inference job %s: %w", arn, err)
	}

	status := Status{
		State:   string(out.Status),
		Message: aws.ToString(out.Message),
	}
	if cfg, ok := out.OutputDataConfig.(*types.ModelInvocationJobOutputDataConfigMemberS3OutputDataConfig); ok {
		status.OutputURI = aws.ToString(cfg.Value.S3Uri)
	}
	return status, nil
}
