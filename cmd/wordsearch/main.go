// Package main provides the CLI entrypoint for wordsearch.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsearch/internal/config"
	"github.com/verte-zerg/wordsearch/internal/generator"
	"github.com/verte-zerg/wordsearch/internal/model"
	"github.com/verte-zerg/wordsearch/internal/puzzle"
	"github.com/verte-zerg/wordsearch/internal/render"
	"github.com/verte-zerg/wordsearch/internal/store"
	"github.com/verte-zerg/wordsearch/internal/wordfind"
)

const (
	formatJSON = "json"
	formatText = "text"
)

var (
	genFile          string
	genDimensions    string
	genCount         int
	genBackwards     bool
	genOrientations  []string
	genRules         string
	genHidden        string
	genSolve         bool
	genSeed          int64
	genUnderfill     string
	genMaxAttempts   int
	genPreferOverlap bool
	genNoFill        bool
	genFormat        string
	genReveal        bool
	genHistory       bool
	genVerbose       bool
)

func main() {
	rootCmd := newRootCmd()
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		logErrf("error: %v\n", err)
		if errors.Is(err, puzzle.ErrConfiguration) {
			logErrln(cmd.UsageString())
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordsearch",
		Short:         "Word search puzzle generator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerateCmd,
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", puzzle.ErrConfiguration, err)
	})

	flags := rootCmd.Flags()
	flags.StringVarP(&genFile, "file", "f", "", "word list, one word per line (- for stdin)")
	flags.StringVarP(&genDimensions, "dimensions", "d", "", "grid size as WxH or N")
	flags.IntVarP(&genCount, "count", "c", 0, "number of words to place")
	flags.BoolVarP(&genBackwards, "backwards", "b", false, "place words only in reversed orientations")
	flags.StringSliceVar(&genOrientations, "orientations", nil, "comma-separated orientations to use instead of the default set")
	flags.StringVarP(&genRules, "rules", "r", "", "JSON rules file: [{\"size\":N,\"count\":M}, ...]")
	flags.StringVarP(&genHidden, "hidden", "H", "", "extra word hidden in the grid but not listed")
	flags.BoolVarP(&genSolve, "solve", "s", false, "include the solution")
	flags.Int64Var(&genSeed, "seed", 0, "random seed (0 picks one from the clock)")
	flags.StringVar(&genUnderfill, "underfill", string(model.UnderfillSilent), "when the corpus runs short: silent, warn or error")
	flags.IntVar(&genMaxAttempts, "max-attempts", wordfind.DefaultMaxAttempts, "grid placement attempts before giving up")
	flags.BoolVar(&genPreferOverlap, "prefer-overlap", false, "prefer locations that share letters")
	flags.BoolVar(&genNoFill, "no-fill", false, "leave unused cells blank")
	flags.StringVar(&genFormat, "format", formatJSON, "output format: json or text")
	flags.BoolVar(&genReveal, "reveal", false, "highlight the solution in text output")
	flags.BoolVar(&genHistory, "history", true, "save the puzzle to the history database")
	flags.BoolVarP(&genVerbose, "verbose", "v", false, "log selection progress to stderr")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newLengthsCmd())

	return rootCmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "file", &genFile, fileCfg.Puzzle.File)
	applyStringConfig(cmd, "dimensions", &genDimensions, fileCfg.Puzzle.Dimensions)
	applyIntConfig(cmd, "count", &genCount, fileCfg.Puzzle.Count)
	applyBoolConfig(cmd, "backwards", &genBackwards, fileCfg.Puzzle.Backwards)
	applySliceConfig(cmd, "orientations", &genOrientations, fileCfg.Puzzle.Orientations)
	applyStringConfig(cmd, "rules", &genRules, fileCfg.Puzzle.Rules)
	applyBoolConfig(cmd, "solve", &genSolve, fileCfg.Puzzle.Solve)
	applyStringConfig(cmd, "underfill", &genUnderfill, fileCfg.Puzzle.Underfill)
	applyIntConfig(cmd, "max-attempts", &genMaxAttempts, fileCfg.Puzzle.MaxAttempts)
	applyBoolConfig(cmd, "prefer-overlap", &genPreferOverlap, fileCfg.Puzzle.PreferOverlap)
	applyStringConfig(cmd, "format", &genFormat, fileCfg.Puzzle.Format)
	applyBoolConfig(cmd, "history", &genHistory, fileCfg.History.Enabled)

	if err := validateFormat(genFormat); err != nil {
		return err
	}

	seed := genSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := model.Config{
		WordFile:      genFile,
		DimensionSpec: genDimensions,
		Count:         genCount,
		Backwards:     genBackwards,
		Orientations:  genOrientations,
		RulesFile:     genRules,
		Hidden:        strings.TrimSpace(genHidden),
		Solve:         genSolve || (genReveal && genFormat == formatText),
		Seed:          seed,
		Underfill:     model.UnderfillPolicy(genUnderfill),
		MaxAttempts:   genMaxAttempts,
		PreferOverlap: genPreferOverlap,
		FillBlanks:    !genNoFill,
	}
	if cfg.RulesFile == "" {
		cfg.Rules = fileCfg.Puzzle.RuleSet
	}

	rnd := rand.New(rand.NewSource(seed))
	opts := []puzzle.Option{
		puzzle.WithStdin(cmd.InOrStdin()),
		puzzle.WithWarnf(logErrf),
	}
	if genVerbose {
		opts = append(opts, puzzle.WithLogf(logErrf))
	}
	pipeline := puzzle.New(generator.NewWithRand(rnd), wordfind.New(rnd), opts...)
	result, err := pipeline.Run(cfg)
	if err != nil {
		return err
	}

	if err := writeResult(cmd.OutOrStdout(), result, genFormat, genReveal); err != nil {
		return err
	}

	if genHistory {
		rec := model.PuzzleRecord{
			CreatedAt: time.Now(),
			Backwards: cfg.Backwards,
			Seed:      seed,
			WordFile:  cfg.WordFile,
			Result:    result,
		}
		savePuzzle(historyPath(fileCfg), rec)
	}
	return nil
}

func writeResult(w io.Writer, result model.Result, format string, reveal bool) error {
	if format == formatText {
		opts := render.TextOptions{
			Reveal: reveal,
			Color:  render.ShouldUseColor(w),
			Width:  render.TerminalWidth(),
		}
		if err := render.Text(w, result, opts); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	return puzzle.WriteJSON(w, result)
}

func savePuzzle(path string, rec model.PuzzleRecord) {
	st, err := store.Open(path)
	if err != nil {
		logErrf("warning: failed to open history db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	id, err := st.InsertPuzzle(context.Background(), rec)
	if err != nil {
		logErrf("warning: failed to save puzzle: %v\n", err)
		return
	}
	if genVerbose {
		logErrf("Saved puzzle #%d\n", id)
	}
}

func historyPath(fileCfg config.FileConfig) string {
	if fileCfg.History.Path != nil && *fileCfg.History.Path != "" {
		return *fileCfg.History.Path
	}
	return config.DefaultDBPath()
}

func openHistory() (*store.Store, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	st, err := store.Open(historyPath(fileCfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatText:
		return nil
	default:
		return fmt.Errorf("%w: --format must be json or text", puzzle.ErrConfiguration)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applySliceConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordsearch configuration
# Uncomment a value to enable it. CLI flags override config values.

[puzzle]
# file = "words.txt"       # Word list, one word per line
# dimensions = "15x10"     # Grid size as WxH or N
# count = 20               # Words to place
# backwards = false        # Only reversed orientations
# orientations = ["horizontal", "vertical"]  # Overrides the default set
# rules = "rules.json"     # JSON rules file
# solve = false            # Include the solution
# underfill = %q      # silent, warn or error
# max-attempts = %d         # Grid placement attempts
# prefer-overlap = false   # Prefer locations that share letters
# format = %q          # json or text

# Inline rules, used when no rules file is set.
# [[puzzle.rule]]
# size = 5
# count = 3

[history]
# enabled = true           # Save generated puzzles
# path = %q
`,
		model.UnderfillSilent,
		wordfind.DefaultMaxAttempts,
		formatJSON,
		config.DefaultDBPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
