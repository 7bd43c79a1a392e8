package main

import (
	"github.com/spf13/cobra"

	"github.com/adverant/nexus/nid-worker/internal/output"
	"github.com/adverant/nexus/nid-worker/internal/queue"
)

var (
	frontPath string
	backPath  string
	noCache   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run OCR on one card and print the extracted fields",
	Example: `  nid-worker extract --front card_front.jpg --back card_back.jpg
  nid-worker extract --front f.png --back b.png -o yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		front, err := queue.ReadImage(frontPath)
		if err != nil {
			return err
		}
		back, err := queue.ReadImage(backPath)
		if err != nil {
			return err
		}

		proc, err := newProcessor(cfg, !noCache)
		if err != nil {
			return err
		}

		result, err := proc.Process(cmd.Context(), front, back)
		if err != nil {
			return err
		}

		return output.Write(cmd.OutOrStdout(), format, result)
	},
}

func init() {
	extractCmd.Flags().StringVar(&frontPath, "front", "", "front side image")
	extractCmd.Flags().StringVar(&backPath, "back", "", "back side image")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the OCR result cache")
	_ = extractCmd.MarkFlagRequired("front")
	_ = extractCmd.MarkFlagRequired("back")
}
