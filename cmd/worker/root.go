package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adverant/nexus/nid-worker/internal/config"
	"github.com/adverant/nexus/nid-worker/internal/logging"
	"github.com/adverant/nexus/nid-worker/internal/output"
)

var (
	envFile      string
	outputFormat string

	cfg    *config.Config
	format output.Format
)

var rootCmd = &cobra.Command{
	Use:   "nid-worker",
	Short: "Extract fields from Bangladeshi NID card images",
	Long: `nid-worker runs OCR over the front and back of a national ID card and
extracts structured fields from the recognized text.

Front side: name, date of birth, NID number
Back side:  address, blood group

Configuration comes from the environment, optionally seeded from --env-file.`,
	Version:      GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&envFile, "env-file", ".env", "environment file to load before reading configuration",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "json", "output format: json or yaml",
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		envErr := godotenv.Load(envFile)

		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logging.Configure(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		if envErr != nil {
			logging.NewLogger("nid-worker").Debug(
				"env file not loaded, using system environment variables",
				"env_file", envFile,
			)
		}

		format = output.ParseFormat(outputFormat)
		return nil
	}

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)
}
