// Package cli implements the vaultctl command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vaultview/internal/extractor"
	"vaultview/internal/framecache"
	"vaultview/internal/frames"
	"vaultview/internal/logging"
	"vaultview/internal/obfuscator"
	"vaultview/internal/startup"
	"vaultview/internal/workers"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitPartial = 2
)

type options struct {
	json    bool
	verbose bool
}

// Run executes vaultctl with the process arguments and returns an exit code.
func Run() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}

	var walkErr *obfuscator.WalkError
	if errors.As(err, &walkErr) {
		fmt.Fprintf(stderr, "%s %v\n", color.RedString("Error:"), walkErr)
		if len(walkErr.Committed) > 0 {
			fmt.Fprintf(stderr, "%d renames were committed before the failure:\n", len(walkErr.Committed))
			printSteps(stderr, walkErr.Committed)
		}
		return ExitPartial
	}

	fmt.Fprintf(stderr, "%s %v\n", color.RedString("Error:"), err)
	return ExitFailure
}

// NewRootCmd builds the vaultctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Obfuscate media folders and extract video frames",
		Long:          "vaultctl encodes and decodes directory trees in place and extracts cached video frames using ffmpeg.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case opts.verbose:
				logging.SetLevel(logging.LevelDebug)
			case os.Getenv("LOG_LEVEL") == "" && os.Getenv("DEBUG") == "":
				logging.SetLevel(logging.LevelWarn)
			}
		},
	}
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print results as JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newTreeCmd(opts, obfuscator.Encode),
		newTreeCmd(opts, obfuscator.Decode),
		newCanEncodeCmd(opts),
		newFrameCmd(),
		newProbeCmd(opts),
		newPlanCmd(opts),
		newListCmd(opts),
		newVideosCmd(opts),
		newSheetCmd(),
		newCacheCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

// session holds the frame cache and decoder for commands that extract frames.
type session struct {
	store     *framecache.Store
	pool      *workers.Pool
	extractor *extractor.Extractor
	frames    *frames.Coordinator
}

func openSession(ctx context.Context, needCache bool) (*session, error) {
	cfg, err := startup.ResolveConfig()
	if err != nil {
		return nil, err
	}

	s := &session{pool: workers.NewPool(cfg.FrameWorkers)}
	s.extractor = extractor.New(extractor.Config{
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
	}, s.pool)

	if needCache {
		store, err := framecache.Open(ctx, cfg.CachePath)
		if err != nil {
			return nil, err
		}
		s.store = store
		s.frames = frames.NewCoordinator(store, s.extractor)
	}
	return s, nil
}

func (s *session) Close() {
	s.pool.Wait()
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logging.Warn("Failed to close frame cache: %v", err)
		}
	}
}

func newVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print vaultctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := startup.GetBuildInfo()
			if opts.json {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "vaultctl %s (commit %s, built %s, %s %s/%s)\n",
				info.Version, info.Commit, info.BuildTime, info.GoVersion, info.OS, info.Arch)
			return nil
		},
	}
}
