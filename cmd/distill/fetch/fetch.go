package fetchcmder

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

const fetchLongDesc string = `Download results from the workflow bucket.

With --recursive, fetches every object under the given prefix, preserving
the key structure below it. Otherwise fetches the single object at the key.

Examples:
  distill fetch batch/output/ --bucket my-distill-data --dir results --recursive
  distill fetch batch/output/input.jsonl.out --bucket my-distill-data --dir results`

const fetchShortDesc string = "Download job results for offline evaluation"

type fetchCommander struct {
	configPath string
	region     string
	bucket     string
	endpoint   string
	dir        string
	recursive  bool
	debug      bool
}

func NewFetchCmd() *cobra.Command {
	cmder := &fetchCommander{}

	cmd := &cobra.Command{
		Use:   "fetch <key-or-prefix>",
		Short: fetchShortDesc,
		Long:  fetchLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", config.DefaultPath, "Path to the TOML run configuration")
	cmd.Flags().StringVar(&cmder.region, "region", "", "AWS region")
	cmd.Flags().StringVar(&cmder.bucket, "bucket", "", "Bucket name")
	cmd.Flags().StringVar(&cmder.endpoint, "endpoint", "", "Custom S3 endpoint (MinIO)")
	cmd.Flags().StringVarP(&cmder.dir, "dir", "d", ".", "Local directory to download into")
	cmd.Flags().BoolVarP(&cmder.recursive, "recursive", "r", false, "Fetch everything under the prefix")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *fetchCommander) run(ctx context.Context, cmd *cobra.Command, keyOrPrefix string) error {
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

	log := logger.NewLogger(c.debug)
	defer log.Sync()

	store, err := objectstore.New(ctx, region, bucket, c.endpoint, log)
	if err != nil {
		return err
	}

	if c.recursive {
		count, err := store.DownloadPrefix(ctx, keyOrPrefix, c.dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d objects from s3://%s/%s into %s\n", count, bucket, keyOrPrefix, c.dir)
		return nil
	}

	local := filepath.Join(c.dir, path.Base(keyOrPrefix))
	if err := store.Download(ctx, keyOrPrefix, local); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Fetched s3://%s/%s to %s\n", bucket, keyOrPrefix, local)
	return nil
}
