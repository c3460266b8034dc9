package uploadcmder

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/klmuthu/bedrock-distill/pkg/config"
	"github.com/klmuthu/bedrock-distill/pkg/logger"
	"github.com/klmuthu/bedrock-distill/pkg/objectstore"
)

const uploadLongDesc string = `Upload local files to the workflow bucket.

The bucket is created when it does not already exist. Each file lands under
--prefix joined with its base name, or under an explicit --key when exactly
one file is given.

Examples:
  distill upload train.jsonl --bucket my-distill-data --prefix input
  distill upload batch.jsonl --bucket my-distill-data --key batch/input.jsonl`

const uploadShortDesc string = "Upload files to the workflow bucket"

type uploadCommander struct {
	configPath string
	region     string
	bucket     string
	endpoint   string
	prefix     string
	key        string
	debug      bool
}

func NewUploadCmd() *cobra.Command {
	cmder := &uploadCommander{}

	cmd := &cobra.Command{
		Use:   "upload [files...]",
		Short: uploadShortDesc,
		Long:  uploadLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args)
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", config.DefaultPath, "Path to the TOML run configuration")
	cmd.Flags().StringVar(&cmder.region, "region", "", "AWS region")
	cmd.Flags().StringVar(&cmder.bucket, "bucket", "", "Bucket name")
	cmd.Flags().StringVar(&cmder.endpoint, "endpoint", "", "Custom S3 endpoint (MinIO)")
	cmd.Flags().StringVar(&cmder.prefix, "prefix", "", "Key prefix for uploaded files")
	cmd.Flags().StringVar(&cmder.key, "key", "", "Explicit object key (single file only)")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *uploadCommander) run(ctx context.Context, cmd *cobra.Command, files []string) error {
	cfg, err := config.Load(c.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}

	bucket := config.Merge(c.bucket, cfg.Bucket)
	if bucket == "" {
		return fmt.Errorf("a bucket is required (flag --bucket or config)")
	}
	region := config.Merge(c.region, cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	if c.key != "" && len(files) != 1 {
		return fmt.Errorf("--key applies to exactly one file, got %d", len(files))
	}

	log := logger.NewLogger(c.debug)
	defer log.Sync()

	store, err := objectstore.New(ctx, region, bucket, c.endpoint, log)
	if err != nil {
		return err
	}

	if err := store.EnsureBucket(ctx); err != nil {
		return err
	}

	for _, file := range files {
		key := c.key
		if key == "" {
			key = path.Join(c.prefix, filepath.Base(file))
		}
		if err := store.Upload(ctx, file, key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s -> s3://%s/%s\n", file, bucket, key)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d files to s3://%s\n", len(files), bucket)
	return nil
}
