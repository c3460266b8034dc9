package statuscmder

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

const statusLongDesc string = `Show tracked jobs, or poll one job's status.

Without arguments, lists every job in the local ledger. With an ARN, makes a
single status call to the service, prints the result, and records the new
state in the ledger. Run it again to poll again; there is no retry loop.

Examples:
  distill status
  distill status arn:aws:bedrock:us-east-1:123456789012:model-customization-job/abc123`

const statusShortDesc string = "List tracked jobs or poll one"

type statusCommander struct {
	configPath string
	region     string
	ledgerPath string
	debug      bool
}

func NewStatusCmd() *cobra.Command {
	cmder := &statusCommander{}

	cmd := &cobra.Command{
		Use:   "status [job-arn]",
		Short: statusShortDesc,
		Long:  statusLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmder.list(cmd.Context(), cmd)
			}
			return cmder.poll(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", config.DefaultPath, "Path to the TOML run configuration")
	cmd.Flags().StringVar(&cmder.region, "region", "", "AWS region")
	cmd.Flags().StringVarP(&cmder.ledgerPath, "ledger", "l", "", "Path to the job ledger")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *statusCommander) openLedger(ctx context.Context) (*sqlite.Driver, error) {
	path, err := ledgerpath.Resolve(c.ledgerPath)
	if err != nil {
		return nil, err
	}
	return sqlite.NewDriver(ctx, path)
}

func (c *statusCommander) list(ctx context.Context, cmd *cobra.Command) error {
	ledger, err := c.openLedger(ctx)
	if err != nil {
		return err
	}
	defer ledger.Close()

	tracked, err := ledger.List(ctx)
	if err != nil {
		return err
	}

	if len(tracked) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tracked jobs.")
		return nil
	}

	for _, job := range tracked {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-12s %s\n  %s\n", job.Kind, job.Status, job.Name, job.ARN)
		if job.OutputURI != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  output: %s\n", job.OutputURI)
		}
	}

	return nil
}

func (c *statusCommander) poll(ctx context.Context, cmd *cobra.Command, arn string) error {
	ledger, err := c.openLedger(ctx)
	if err != nil {
		return err
	}
	defer ledger.Close()

	job, err := ledger.Get(ctx, arn)
	if err != nil {
		return err
	}

	cfg, err := config.Load(c.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	log := logger.NewLogger(c.debug)
	defer log.Sync()

	client, err := jobs.New(ctx, config.Merge(c.region, cfg.Region), log)
	if err != nil {
		return err
	}

	var status jobs.Status
	switch job.Kind {
	case sqlite.KindDistillation:
		status, err = client.CustomizationStatus(ctx, arn)
	case sqlite.KindBatchInference:
		status, err = client.InvocationStatus(ctx, arn)
	case sqlite.KindProvisioning:
		status, err = client.ProvisionStatus(ctx, arn)
	default:
		return fmt.Errorf("unknown job kind %q for %s", job.Kind, arn)
	}
	if err != nil {
		return err
	}

	if err := ledger.UpdateStatus(ctx, arn, status.State, status.OutputURI); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", job.Name, status.State)
	if status.Message != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  message: %s\n", status.Message)
	}
	if status.OutputURI != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  output: %s\n", status.OutputURI)
	}
	if status.ModelArn != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  model: %s\n", status.ModelArn)
	}

	return nil
}
