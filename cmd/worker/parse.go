package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/adverant/nexus/nid-worker/internal/nid"
	"github.com/adverant/nexus/nid-worker/internal/output"
)

var (
	parseSide string
	parseText bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [token-stream.json|-]",
	Short: "Extract fields from an already recognized token stream",
	Long: `Parse reads a token stream as JSON ({"success": true, "tokens": [{"text": ...}]})
from a file or stdin and runs the field extractors for one card side.
No OCR is performed.`,
	Example: `  nid-worker parse --side front tokens.json
  cat back.json | nid-worker parse --side back -`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open token stream: %w", err)
			}
			defer f.Close()
			in = f
		}

		stream, err := decodeStream(in)
		if err != nil {
			return err
		}

		if parseText {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), nid.FormattedText(stream, "\n"))
			return err
		}

		switch parseSide {
		case "front":
			return output.Write(cmd.OutOrStdout(), format, nid.ParseFront(stream))
		case "back":
			return output.Write(cmd.OutOrStdout(), format, nid.ParseBack(stream))
		default:
			return fmt.Errorf("--side must be front or back, got %q", parseSide)
		}
	},
}

func decodeStream(r io.Reader) (nid.TokenStream, error) {
	var stream nid.TokenStream
	if err := json.NewDecoder(r).Decode(&stream); err != nil {
		return nid.TokenStream{}, fmt.Errorf("failed to decode token stream: %w", err)
	}
	return stream, nil
}

func init() {
	parseCmd.Flags().StringVar(&parseSide, "side", "front", "card side: front or back")
	parseCmd.Flags().BoolVar(&parseText, "text", false, "print the cleaned raw text instead of fields")
}
