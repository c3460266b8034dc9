package jobs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"go.uber.org/zap"
)

// DistillationSpec describes one distillation job: a teacher model whose
// responses train a smaller student model on the prepared dataset.
type DistillationSpec struct {
	JobName         string
	CustomModelName string
	RoleArn         string

	// TeacherModel generates the responses the student is trained to
	// imitate; StudentModel is the base model being customized.
	TeacherModel string
	StudentModel string

	// TrainingDataURI and OutputURI are S3 locations.
	TrainingDataURI string
	OutputURI       string

	// MaxResponseLength caps the teacher's generated responses.
	MaxResponseLength int32
}

// SubmitDistillation starts a model customization job of type DISTILLATION
// and returns its ARN.
func (c *Client) SubmitDistillation(ctx context.Context, spec DistillationSpec) (string, error) {
	out, err := c.bedrock.CreateModelCustomizationJob(ctx, &bedrock.CreateModelCustomizationJobInput{
		JobName:             aws.String(spec.JobName),
		CustomModelName:     aws.String(spec.CustomModelName),
		RoleArn:             aws.String(spec.RoleArn),
		BaseModelIdentifier: aws.String(spec.StudentModel),
		CustomizationType:   types.CustomizationTypeDistillation,
		CustomizationConfig: &types.CustomizationConfigMemberDistillationConfig{
			Value: types.DistillationConfig{
				TeacherModelConfig: &types.TeacherModelConfig{
					TeacherModelIdentifier:        aws.String(spec.TeacherModel),
					MaxResponseLengthForInference: aws.Int32(spec.MaxResponseLength),
				},
			},
		},
		TrainingDataConfig: &types.TrainingDataConfig{S3Uri: aws.String(spec.TrainingDataURI)},
		OutputDataConfig:   &types.OutputDataConfig{S3Uri: aws.String(spec.OutputURI)},
	})
	if err != nil {
		return "", fmt.Errorf("could not submit distillation job %s: %w", spec.JobName, err)
	}

	arn := aws.ToString(out.JobArn)
	c.logger.Info("distillation job submitted",
		zap.String("job", spec.JobName),
		zap.String("arn", arn),
		zap.String("teacher", spec.TeacherModel),
		zap.String("student", spec.StudentModel),
	)
	return arn, nil
}

// CustomizationStatus polls a customization job once.
func (c *Client) CustomizationStatus(ctx context.Context, arn string) (Status, error) {
	out, err := c.bedrock.GetModelCustomizationJob(ctx, &bedrock.GetModelCustomizationJobInput{
		JobIdentifier: aws.String(arn),
	})
	if err != nil {
		return Status{}, fmt.Errorf("could not get customization job %s: %w", arn, err)
	}

	status := Status{
		State:    string(out.Status),
		Message:  aws.ToString(out.FailureMessage),
		ModelArn: aws.ToString(out.OutputModelArn),
	}
	if out.OutputDataConfig != nil {
		status.OutputURI = aws.ToString(out.OutputDataConfig.S3Uri)
	}
	return status, nil
}
