package main

import (
	"os"

	"github.com/spf13/cobra"

	fetchcmder "github.com/klmuthu/bedrock-distill/cmd/distill/fetch"
	preparecmder "github.com/klmuthu/bedrock-distill/cmd/distill/prepare"
	provisioncmder "github.com/klmuthu/bedrock-distill/cmd/distill/provision"
	statuscmder "github.com/klmuthu/bedrock-distill/cmd/distill/status"
	submitcmder "github.com/klmuthu/bedrock-distill/cmd/distill/submit"
	uploadcmder "github.com/klmuthu/bedrock-distill/cmd/distill/upload"
)

const rootLongDesc string = `distill drives a managed model-distillation workflow end to end:
prepare a question-answering dataset into JSONL request records, move files
to and from object storage, submit distillation and batch inference jobs,
track them in a local ledger, and download results for offline evaluation.

All heavy computation runs in the managed service; distill prepares
payloads, makes the calls, and moves the files.`

func main() {
	root := &cobra.Command{
		Use:   "distill",
		Short: "Drive a Bedrock model-distillation workflow",
		Long:  rootLongDesc,
	}

	root.AddCommand(
		preparecmder.NewPrepareCmd(),
		uploadcmder.NewUploadCmd(),
		submitcmder.NewSubmitCmd(),
		statuscmder.NewStatusCmd(),
		provisioncmder.NewProvisionCmd(),
		fetchcmder.NewFetchCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
