package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newCacheCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the frame cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show frame cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := s.store.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("reading cache stats: %w", err)
			}
			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, stats)
			}
			fmt.Fprintf(out, "Cache file:  %s\n", s.store.Path())
			fmt.Fprintf(out, "Frames:      %s\n", humanize.Comma(stats.Entries))
			fmt.Fprintf(out, "Videos:      %s\n", humanize.Comma(stats.Files))
			fmt.Fprintf(out, "Size:        %s\n", humanize.Bytes(uint64(stats.Bytes)))
			return nil
		},
	})
	return cmd
}
