// ABOUTME: Chunks command dumps the segmented document with metadata
// ABOUTME: Debugging aid for inspecting chunking and extraction quality
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var chunksLimit int

// NewChunksCmd creates the chunks command
func NewChunksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "Show how the document was segmented",
		Long: `Ingest the configured document and print every segment with its
extracted metadata: section path, terms, concepts and code/instruction
flags. Useful for debugging retrieval quality.

Examples:
  docagent chunks
  docagent chunks --limit 10
  docagent chunks --format json`,
		RunE: runChunks,
	}

	cmd.Flags().IntVar(&chunksLimit, "limit", 0, "Show only the first N segments (0 = all)")

	return cmd
}

func runChunks(cmd *cobra.Command, args []string) error {
	if chunksLimit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", chunksLimit)
	}

	_, _, _, ret, err := buildRetriever(cmd.Context())
	if err != nil {
		return err
	}

	segments := ret.Segments()
	if chunksLimit > 0 && len(segments) > chunksLimit {
		segments = segments[:chunksLimit]
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(segments, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "POS\tSECTION\tTERMS\tFLAGS\tPREVIEW\n")
	fmt.Fprintf(w, "---\t-------\t-----\t-----\t-------\n")
	for _, seg := range segments {
		var flags []string
		if seg.IsCode {
			flags = append(flags, "code")
		}
		if seg.IsInstruction {
			flags = append(flags, "howto")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			seg.Position,
			truncate(strings.Join(seg.SectionPath, " > "), 40),
			truncate(strings.Join(seg.Terms, ", "), 30),
			strings.Join(flags, ","),
			truncate(strings.ReplaceAll(seg.Content, "\n", " "), 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d segment(s)\n", len(segments))
	}
	return nil
}
