package provisioncmder

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

const provisionLongDesc string = `Create a provisioned throughput endpoint for a custom model.

A distilled model needs dedicated capacity before it can serve real-time
requests. The returned ARN is tracked in the ledger; poll it with
"distill status" until it reports InService, then point the simulator at it.

Example:
  distill provision my-endpoint --model arn:aws:bedrock:us-east-1:123456789012:custom-model/abc --units 1`

const provisionShortDesc string = "Provision throughput for a custom model"

type provisionCommander struct {
	configPath string
	region     string
	modelID    string
	units      int32
	ledgerPath string
	debug      bool
}

func NewProvisionCmd() *cobra.Command {
	cmder := &provisionCommander{}

	cmd := &cobra.Command{
		Use:   "provision <name>",
		Short: provisionShortDesc,
		Long:  provisionLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", config.DefaultPath, "Path to the TOML run configuration")
	cmd.Flags().StringVar(&cmder.region, "region", "", "AWS region")
	cmd.Flags().StringVar(&cmder.modelID, "model", "", "Custom model ARN to provision")
	cmd.Flags().Int32Var(&cmder.units, "units", 1, "Model units of dedicated capacity")
	cmd.Flags().StringVarP(&cmder.ledgerPath, "ledger", "l", "", "Path to the job ledger")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *provisionCommander) run(ctx context.Context, cmd *cobra.Command, name string) error {
	if c.modelID == "" {
		return fmt.Errorf("--model is required")
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

	arn, err := client.Provision(ctx, jobs.ProvisionSpec{
		Name:       name,
		ModelID:    c.modelID,
		ModelUnits: c.units,
	})
	if err != nil {
		return err
	}

	path, err := ledgerpath.Resolve(c.ledgerPath)
	if err != nil {
		return err
	}
	ledger, err := sqlite.NewDriver(ctx, path)
	if err != nil {
		return err
	}
	defer ledger.Close()

	if err := ledger.Put(ctx, &sqlite.JobRecord{
		ARN:    arn,
		Kind:   sqlite.KindProvisioning,
		Name:   name,
		Status: "Creating",
	}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Provisioning %s\n  %s\n", name, arn)
	return nil
}
