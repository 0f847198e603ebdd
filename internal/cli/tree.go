package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vaultview/internal/namecodec"
	"vaultview/internal/obfuscator"
)

func newTreeCmd(opts *options, dir obfuscator.Direction) *cobra.Command {
	var dryRun bool

	short := "Encode every name in a directory tree"
	if dir == obfuscator.Decode {
		short = "Decode every name in a directory tree"
	}

	cmd := &cobra.Command{
		Use:   dir.String() + " PATH",
		Short: short,
		Long: short + `.

Renames happen in place, parents before children. A failure stops the walk
and lists the renames already committed; nothing is rolled back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if dryRun {
				steps, err := obfuscator.Plan(args[0], dir)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(out, steps)
				}
				fmt.Fprintf(out, "%s would rename %d entries:\n", dir, len(steps))
				printSteps(out, steps)
				return nil
			}

			run := obfuscator.Apply
			if dir == obfuscator.Decode {
				run = obfuscator.Revert
			}
			res, err := run(args[0])
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(out, res)
			}
			printSteps(out, res.Steps)
			fmt.Fprintf(out, "%s %d entries renamed, root is now %s\n",
				color.GreenString("Done:"), len(res.Steps), res.Root)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the renames without performing them")
	return cmd
}

type canEncodeResult struct {
	Path        string `json:"path"`
	EncodedPath string `json:"encodedPath"`
	Length      int    `json:"length"`
	CanEncode   bool   `json:"canEncode"`
}

func newCanEncodeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "can-encode PATH",
		Short: "Check whether a path stays under the length limit once encoded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoded := namecodec.EncodedPath(args[0])
			res := canEncodeResult{
				Path:        args[0],
				EncodedPath: encoded,
				Length:      len(encoded),
				CanEncode:   namecodec.CanEncode(args[0]),
			}
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), res)
			}

			verdict := color.GreenString("yes")
			if !res.CanEncode {
				verdict = color.RedString("no")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d of %d characters)\n", verdict, res.Length, namecodec.MaxPathLength-1)
			return nil
		},
	}
}
