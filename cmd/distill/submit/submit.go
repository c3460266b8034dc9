package submitcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klmuthu/bedrock-distill/cmd/distill/ledgerpath"
	"github.com/klmuthu/bedrock-distill/pkg/config"
	"github.com/klmuthu/bedrock-distill/pkg/jobs"
	"github.com/klmuthu/bedrock-distill/pkg/logger"
	"github.com/klmuthu/bedrock-distill/pkg/storage/sqlite"
)

const submitLongDesc string = `Submit a job to the managed Bedrock service.

Submitted job ARNs are recorded in the local ledger so "distill status" can
poll them later. Submission is a single synchronous call; the service owns
retries and fault tolerance.`

const submitShortDesc string = "Submit a distillation or batch inference job"

// NewSubmitCmd groups the job-kind subcommands.
func NewSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: submitShortDesc,
		Long:  submitLongDesc,
	}

	cmd.AddCommand(newDistillationCmd(), newBatchCmd())

	return cmd
}

// track opens the ledger and records a freshly submitted job.
func track(ctx context.Context, ledgerFlag string, job *sqlite.JobRecord) error {
	path, err := ledgerpath.Resolve(ledgerFlag)
	if err != nil {
		return err
	}

	ledger, err := sqlite.NewDriver(ctx, path)
	if err != nil {
		return err
	}
	defer ledger.Close()

	return ledger.Put(ctx, job)
}

type distillationCommander struct {
	configPath        string
	region            string
	roleArn           string
	teacherModel      string
	studentModel      string
	customModelName   string
	trainingURI       string
	outputURI         string
	maxResponseLength int32
	ledgerPath        string
	debug             bool
}

func newDistillationCmd() *cobra.Command {
	cmder := &distillationCommander{}

	cmd := &cobra.Command{
		Use:   "distillation <job-name>",
		Short: "Submit a model distillation job",
		Long: `Submit a model customization job of type DISTILLATION.

The teacher model's responses over the prepared training data teach the
student model. Training data and output are S3 URIs.

Example:
  distill submit distillation squad-distill-1 \
    --training-data s3://my-distill-data/input/train.jsonl \
    --output s3://my-distill-data/output/ \
    --custom-model-name squad-distilled`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", config.DefaultPath, "Path to the TOML run configuration")
	cmd.Flags().StringVar(&cmder.region, "region", "", "AWS region")
	cmd.Flags().StringVar(&cmder.roleArn, "role-arn", "", "IAM role the service assumes")
	cmd.Flags().StringVar(&cmder.teacherModel, "teacher-model", "", "Teacher model identifier")
	cmd.Flags().StringVar(&cmder.studentModel, "student-model", "", "Student (base) model identifier")
	cmd.Flags().StringVar(&cmder.customModelName, "custom-model-name", "", "Name of the resulting custom model")
	cmd.Flags().StringVar(&cmder.trainingURI, "training-data", "", "S3 URI of the prepared training JSONL")
	cmd.Flags().StringVar(&cmder.outputURI, "output", "", "S3 URI the job writes to")
	cmd.Flags().Int32Var(&cmder.maxResponseLength, "max-response-length", 1000, "Cap on teacher response length")
	cmd.Flags().StringVarP(&cmder.ledgerPath, "ledger", "l", "", "Path to the job ledger")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *distillationCommander) run(ctx context.Context, cmd *cobra.Command, jobName string) error {
	cfg, err := config.Load(c.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	spec := jobs.DistillationSpec{
		JobName:           jobName,
		CustomModelName:   c.customModelName,
		RoleArn:           config.Merge(c.roleArn, cfg.RoleArn),
		TeacherModel:      config.Merge(c.teacherModel, cfg.TeacherModel),
		StudentModel:      config.Merge(c.studentModel, cfg.StudentModel),
		TrainingDataURI:   c.trainingURI,
		OutputURI:         c.outputURI,
		MaxResponseLength: c.maxResponseLength,
	}
	if spec.CustomModelName == "" {
		spec.CustomModelName = jobName
	}
	if err := requireAll(map[string]string{
		"--role-arn":      spec.RoleArn,
		"--teacher-model": spec.TeacherModel,
		"--student-model": spec.StudentModel,
		"--training-data": spec.TrainingDataURI,
		"--output":        spec.OutputURI,
	}); err != nil {
		return err
	}

	log := logger.NewLogger(c.debug)
	defer log.Sync()

	client, err := jobs.New(ctx, config.Merge(c.region, cfg.Region), log)
	if err != nil {
		return err
	}

	arn, err := client.SubmitDistillation(ctx, spec)
	if err != nil {
		return err
	}

	if err := track(ctx, c.ledgerPath, &sqlite.JobRecord{
		ARN:      arn,
		Kind:     sqlite.KindDistillation,
		Name:     jobName,
		Status:   "InProgress",
		InputURI: spec.TrainingDataURI,
	}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Submitted distillation job %s\n  %s\n", jobName, arn)
	return nil
}

type batchCommander struct {
	configPath string
	region     string
	roleArn    string
	modelID    string
	inputURI   string
	outputURI  string
	ledgerPath string
	debug      bool
}

func newBatchCmd() *cobra.Command {
	cmder := &batchCommander{}

	cmd := &cobra.Command{
		Use:   "batch <job-name>",
		Short: "Submit a batch inference job",
		Long: `Submit a model invocation job over a prepared JSONL input file.

Example:
  distill submit batch squad-eval-1 --model amazon.nova-micro-v1:0 \
    --input s3://my-distill-data/batch/input.jsonl \
    --output s3://my-distill-data/batch/output/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", config.DefaultPath, "Path to the TOML run configuration")
	cmd.Flags().StringVar(&cmder.region, "region", "", "AWS region")
	cmd.Flags().StringVar(&cmder.roleArn, "role-arn", "", "IAM role the service assumes")
	cmd.Flags().StringVar(&cmder.modelID, "model", "", "Model id or custom model ARN to invoke")
	cmd.Flags().StringVar(&cmder.inputURI, "input", "", "S3 URI of the prepared JSONL records")
	cmd.Flags().StringVar(&cmder.outputURI, "output", "", "S3 URI the job writes to")
	cmd.Flags().StringVarP(&cmder.ledgerPath, "ledger", "l", "", "Path to the job ledger")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *batchCommander) run(ctx context.Context, cmd *cobra.Command, jobName string) error {
	cfg, err := config.Load(c.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	spec := jobs.BatchInferenceSpec{
		JobName:   jobName,
		ModelID:   c.modelID,
		RoleArn:   config.Merge(c.roleArn, cfg.RoleArn),
		InputURI:  c.inputURI,
		OutputURI: c.outputURI,
	}
	if err := requireAll(map[string]string{
		"--role-arn": spec.RoleArn,
		"--model":    spec.ModelID,
		"--input":    spec.InputURI,
		"--output":   spec.OutputURI,
	}); err != nil {
		return err
	}

	log := logger.NewLogger(c.debug)
	defer log.Sync()

	client, err := jobs.New(ctx, config.Merge(c.region, cfg.Region), log)
	if err != nil {
		return err
	}

	arn, err := client.SubmitBatchInference(ctx, spec)
	if err != nil {
		return err
	}

	if err := track(ctx, c.ledgerPath, &sqlite.JobRecord{
		ARN:      arn,
		Kind:     sqlite.KindBatchInference,
		Name:     jobName,
		Status:   "Submitted",
		InputURI: spec.InputURI,
	}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Submitted batch inference job %s\n  %s\n", jobName, arn)
	return nil
}

func requireAll(values map[string]string) error {
	for flag, value := range values {
		if value == "" {
			return fmt.Errorf("%s is required (flag or config)", flag)
		}
	}
	return nil
}
