package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/rexview/internal/highlight"
	"github.com/zjrosen/rexview/internal/ui/matchview"
	"github.com/zjrosen/rexview/internal/ui/styles"
)

var matchCmd = &cobra.Command{
	Use:   "match PATTERN [FILE]",
	Short: "Highlight matches without the interactive UI",
	Long: `Highlight every match of PATTERN in FILE, or in standard input when FILE
is omitted.

Examples:
  rexview match '\d+' notes.txt          # print the text with matches highlighted
  cat notes.txt | rexview match --count '\d+'
  rexview match --json '(?<=\$)\d+' prices.txt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMatch,
}

var (
	matchCount bool
	matchJSON  bool
	matchColor string
)

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().BoolVar(&matchCount, "count", false, "print only the number of matches")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "print matches, segments and count as JSON")
	matchCmd.Flags().StringVar(&matchColor, "color", "auto", "highlight matches: auto, always or never")
}

func runMatch(cmd *cobra.Command, args []string) error {
	profile, err := colorProfile(matchColor, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	env, err := newEnvironment(cmd.Context(), "rexview-match")
	if err != nil {
		return err
	}
	defer env.Close()

	text, err := readInput(cmd.InOrStdin(), args[1:])
	if err != nil {
		return err
	}

	res, err := env.highlighter.Apply(env.ctx, args[0], text)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case matchJSON:
		return writeJSON(out, res)
	case matchCount:
		_, err := fmt.Fprintln(out, res.Count)
		return err
	default:
		return writeHighlighted(out, res, profile)
	}
}

// readInput reads the named file, or r when no file is given.
func readInput(r io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0]) // #nosec G304 -- path is supplied by the user
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// colorProfile resolves --color. "auto" asks termenv whether w is a color
// terminal.
func colorProfile(mode string, w io.Writer) (termenv.Profile, error) {
	switch mode {
	case "auto":
		return termenv.NewOutput(w).EnvColorProfile(), nil
	case "always":
		return termenv.ANSI256, nil
	case "never":
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("invalid --color %q: want auto, always or never", mode)
	}
}

func writeHighlighted(w io.Writer, res highlight.Result, profile termenv.Profile) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	body := matchview.RenderWith(res.Segments, 0, r.NewStyle(), styles.MatchStyleFor(r))
	_, err := io.WriteString(w, body)
	return err
}

// jsonResult is the --json output shape.
type jsonResult struct {
	Pattern  string              `json:"pattern"`
	Flags    string              `json:"flags"`
	Count    int                 `json:"count"`
	Matches  []highlight.Match   `json:"matches"`
	Segments []highlight.Segment `json:"segments"`
}

func writeJSON(w io.Writer, res highlight.Result) error {
	out := jsonResult{
		Pattern:  res.Pattern,
		Flags:    cfg.Match.Flags,
		Count:    res.Count,
		Matches:  res.Matches,
		Segments: res.Segments,
	}
	if out.Matches == nil {
		out.Matches = []highlight.Match{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
