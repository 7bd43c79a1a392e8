package main

import (
	"github.com/spf13/cobra"

	"github.com/adverant/nexus/nid-worker/internal/logging"
	"github.com/adverant/nexus/nid-worker/internal/output"
	"github.com/adverant/nexus/nid-worker/internal/processor"
	"github.com/adverant/nexus/nid-worker/internal/queue"
)

var batchConcurrency int

type batchReport struct {
	Results  []queue.Result         `json:"results" yaml:"results"`
	Unpaired []string               `json:"unpaired,omitempty" yaml:"unpaired,omitempty"`
	Cache    []processor.CacheStats `json:"cache" yaml:"cache"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process every <id>_front / <id>_back image pair in a directory",
	Long: `Batch pairs <id>_front.<ext> with <id>_back.<ext> in the given directory and
processes the cards on WORKER_CONCURRENCY workers. The OCR result cache is
shared by all workers, so duplicate images are recognized once.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.NewLogger("batch")

		jobs, unpaired, err := queue.DiscoverJobs(args[0], cfg.AllowedExtensions)
		if err != nil {
			return err
		}
		for _, id := range unpaired {
			logger.Warn("skipping card with a missing side", "card", id)
		}

		proc, err := newProcessor(cfg, true)
		if err != nil {
			return err
		}

		concurrency := cfg.WorkerConcurrency
		if batchConcurrency > 0 {
			concurrency = batchConcurrency
		}

		pool, err := queue.NewPool(&queue.PoolConfig{
			Concurrency:       concurrency,
			ProcessingTimeout: cfg.ProcessingTimeout,
			Processor:         proc,
			Logger:            logging.NewLogger("job-pool"),
		})
		if err != nil {
			return err
		}

		report := batchReport{
			Results:  pool.Run(cmd.Context(), jobs),
			Unpaired: unpaired,
			Cache:    proc.CacheStats(),
		}
		return output.Write(cmd.OutOrStdout(), format, report)
	},
}

func init() {
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "worker count (default: WORKER_CONCURRENCY)")
}
