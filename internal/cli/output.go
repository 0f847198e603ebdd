package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"golang.org/x/term"

	"vaultview/internal/obfuscator"
)

var errTerminalOutput = errors.New("refusing to write binary image data to a terminal; use -o FILE")

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeImage writes data to path, or to w when path is empty or "-".
func writeImage(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		if isTerminal(w) {
			return errTerminalOutput
		}
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func printSteps(w io.Writer, steps []obfuscator.Step) {
	for _, s := range steps {
		kind := "file"
		if s.IsDir {
			kind = color.BlueString("dir ")
		}
		fmt.Fprintf(w, "  %s %s -> %s\n", kind, s.From, s.To)
	}
}

func formatSeconds(secs float64) string {
	return strconv.FormatFloat(secs, 'f', -1, 64)
}
