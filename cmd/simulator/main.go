package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"github.com/klmuthu/bedrock-distill/pkg/logger"
	"github.com/klmuthu/bedrock-distill/simulator"
)

func main() {
	// Parse command line flags
	listenAddr := flag.String("listen", ":8080", "Address to listen on")
	region := flag.String("region", "us-east-1", "AWS region of the model endpoint")
	modelArn := flag.String("model", "", "Model ID or provisioned throughput ARN to invoke")
	system := flag.String("system", "", "Default system prompt when requests omit one")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Set up logger
	logger := logger.NewLogger(*debug)
	defer logger.Sync()

	if *modelArn == "" {
		logger.Fatal("-model is required")
	}

	logger.Info("distill simulator starting",
		zap.String("listen", *listenAddr),
		zap.String("region", *region),
		zap.String("model", *modelArn),
		zap.Bool("debug", *debug),
	)

	config := simulator.Config{
		ListenAddr: *listenAddr,
		ModelArn:   *modelArn,
		System:     *system,
	}

	s, err := simulator.New(context.Background(), config, *region, logger)
	if err != nil {
		logger.Fatal("failed to create simulator", zap.Error(err))
	}

	if err := s.Run(); err != nil {
		logger.Fatal("simulator server failed", zap.Error(err))
	}
}
