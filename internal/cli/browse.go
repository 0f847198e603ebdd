package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vaultview/internal/filesystem"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ls PATH",
		Short: "List a directory by display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := filesystem.ReadDir(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, nodes)
			}

			for _, n := range nodes {
				marker := " "
				if n.IsEncoded {
					marker = color.YellowString("*")
				}
				name := n.Name
				if n.IsDir {
					name = color.BlueString(n.Name + "/")
				}
				fmt.Fprintf(out, "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func newVideosCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "videos PATH",
		Short: "List every video below a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videos, err := filesystem.ListVideos(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, videos)
			}
			for _, v := range videos {
				fmt.Fprintln(out, v)
			}
			return nil
		},
	}
}
