package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"vaultview/internal/contactsheet"
	"vaultview/internal/sampling"
)

func newFrameCmd() *cobra.Command {
	var (
		at     float64
		output string
	)

	cmd := &cobra.Command{
		Use:   "frame PATH",
		Short: "Extract one JPEG frame, using the frame cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if at < 0 {
				return fmt.Errorf("--at must not be negative")
			}
			if output == "" && isTerminal(cmd.OutOrStdout()) {
				return errTerminalOutput
			}

			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			data, err := s.frames.ExtractFrame(cmd.Context(), args[0], at)
			if err != nil {
				return err
			}
			return writeImage(cmd.OutOrStdout(), output, data)
		},
	}
	cmd.Flags().Float64Var(&at, "at", 0, "instant in seconds")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JPEG to this file instead of stdout")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newProbeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "probe PATH",
		Short: "Show video metadata from ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			info, err := s.extractor.Probe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, info)
			}

			duration := time.Duration(info.DurationSecs * float64(time.Second)).Round(time.Millisecond)
			fmt.Fprintf(out, "Duration:    %s\n", duration)
			fmt.Fprintf(out, "Size:        %s\n", humanize.Bytes(uint64(info.FileSizeBytes)))
			if info.Width > 0 {
				fmt.Fprintf(out, "Resolution:  %dx%d\n", info.Width, info.Height)
			}
			if info.DisplayAspectRatio != "" {
				fmt.Fprintf(out, "Aspect:      %s\n", info.DisplayAspectRatio)
			}
			if info.Codec != "" {
				fmt.Fprintf(out, "Codec:       %s\n", info.Codec)
			}
			if info.Bitrate > 0 {
				fmt.Fprintf(out, "Bitrate:     %s\n", humanize.SI(float64(info.Bitrate), "bps"))
			}
			if info.FrameRate != "" {
				fmt.Fprintf(out, "Frame rate:  %s fps\n", info.FrameRate)
			}
			return nil
		},
	}
}

// samplingFlags holds the flags shared by plan and sheet.
type samplingFlags struct {
	mode    string
	count   int
	minutes float64
}

func (f *samplingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "sampling mode: fixed or interval")
	cmd.Flags().IntVar(&f.count, "count", 0, "number of frames in fixed mode")
	cmd.Flags().Float64Var(&f.minutes, "minutes", 0, "minutes between frames in interval mode")
	_ = cmd.MarkFlagRequired("mode")
}

func (f *samplingFlags) instants(cmd *cobra.Command, duration float64) ([]float64, error) {
	mode, err := sampling.ParseMode(f.mode)
	if err != nil {
		return nil, err
	}
	var params sampling.Params
	if cmd.Flags().Changed("count") {
		params.Count = &f.count
	}
	if cmd.Flags().Changed("minutes") {
		params.Minutes = &f.minutes
	}
	return sampling.Instants(duration, mode, params)
}

func newPlanCmd(opts *options) *cobra.Command {
	var (
		flags    samplingFlags
		duration float64
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the sample instants for a video duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instants, err := flags.instants(cmd, duration)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.json {
				return writeJSON(out, instants)
			}
			for _, t := range instants {
				fmt.Fprintln(out, formatSeconds(t))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&duration, "duration", 0, "video duration in seconds")
	_ = cmd.MarkFlagRequired("duration")
	flags.register(cmd)
	return cmd
}

func newSheetCmd() *cobra.Command {
	var (
		flags   samplingFlags
		output  string
		columns int
		width   int
	)

	cmd := &cobra.Command{
		Use:   "sheet PATH",
		Short: "Render a contact sheet of sampled frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			info, err := s.extractor.Probe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			instants, err := flags.instants(cmd, info.DurationSecs)
			if err != nil {
				return err
			}
			batch, err := s.frames.ExtractFrames(cmd.Context(), args[0], instants)
			if err != nil {
				return err
			}

			sheet, err := contactsheet.Render(batch, contactsheet.Options{Columns: columns, TileWidth: width})
			if err != nil {
				return err
			}
			if err := writeImage(cmd.OutOrStdout(), output, sheet); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d frames, %s\n", len(batch), humanize.Bytes(uint64(len(sheet))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output JPEG file")
	cmd.Flags().IntVar(&columns, "columns", 0, "tiles per row")
	cmd.Flags().IntVar(&width, "width", 0, "tile width in pixels")
	_ = cmd.MarkFlagRequired("output")
	flags.register(cmd)
	return cmd
}
