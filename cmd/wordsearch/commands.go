package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsearch/internal/historyui"
	"github.com/verte-zerg/wordsearch/internal/model"
	"github.com/verte-zerg/wordsearch/internal/puzzle"
	"github.com/verte-zerg/wordsearch/internal/stats"
	"github.com/verte-zerg/wordsearch/internal/store"
	"github.com/verte-zerg/wordsearch/internal/tui"
	"github.com/verte-zerg/wordsearch/internal/wordfind"
	"github.com/verte-zerg/wordsearch/internal/wordlist"
)

var (
	historyLast   int
	historyBrowse bool

	showFormat string
	showReveal bool

	playInput string

	lengthsFile       string
	lengthsDimensions string
	lengthsRules      string
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved puzzles",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N puzzles")
	cmd.Flags().BoolVar(&historyBrowse, "browse", false, "browse puzzles interactively and play one")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := openHistory()
	if err != nil {
		return err
	}
	defer closeStore(st)

	puzzles, err := st.ListPuzzles(context.Background(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list puzzles: %w", err)
	}
	if historyBrowse {
		return browseHistory(st, puzzles)
	}
	age := func(p model.PuzzleSummary) string {
		return humanize.Time(p.CreatedAt)
	}
	return stats.RenderHistoryTable(cmd.OutOrStdout(), puzzles, age)
}

func browseHistory(st *store.Store, puzzles []model.PuzzleSummary) error {
	load := func(id int64) (model.Result, error) {
		rec, err := st.GetPuzzle(context.Background(), id)
		if err != nil {
			return model.Result{}, err
		}
		return rec.Result, nil
	}
	browser := historyui.NewModel(puzzles, load)
	if _, err := tea.NewProgram(browser, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	id := browser.Selected()
	if id == 0 {
		return nil
	}
	result, err := load(id)
	if err != nil {
		return fmt.Errorf("failed to load puzzle %d: %w", id, err)
	}
	return playPuzzle(result)
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved puzzle",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowCmd,
	}
	cmd.Flags().StringVar(&showFormat, "format", formatJSON, "output format: json or text")
	cmd.Flags().BoolVar(&showReveal, "reveal", false, "highlight the solution in text output")
	return cmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	if err := validateFormat(showFormat); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	st, err := openHistory()
	if err != nil {
		return err
	}
	defer closeStore(st)

	rec, err := st.GetPuzzle(context.Background(), id)
	if err != nil {
		return fmt.Errorf("failed to load puzzle %d: %w", id, err)
	}
	result := rec.Result
	if showReveal && len(result.Solution) == 0 {
		result.Solution = solvePlacements(result)
	}
	return writeResult(cmd.OutOrStdout(), result, showFormat, showReveal)
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [id]",
		Short: "Hunt for words in a saved puzzle",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlayCmd,
	}
	cmd.Flags().StringVar(&playInput, "input", "", "read the puzzle from a JSON record file")
	return cmd
}

func runPlayCmd(_ *cobra.Command, args []string) error {
	result, err := loadPlayPuzzle(args)
	if err != nil {
		return err
	}
	return playPuzzle(result)
}

func playPuzzle(result model.Result) error {
	m := tui.NewModel(result, solvePlacements(result))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadPlayPuzzle(args []string) (model.Result, error) {
	if playInput != "" {
		if len(args) > 0 {
			return model.Result{}, fmt.Errorf("%w: use either an id or --input", puzzle.ErrConfiguration)
		}
		file, err := os.Open(playInput)
		if err != nil {
			return model.Result{}, fmt.Errorf("failed to open puzzle: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				// Best-effort close for read-only puzzle file.
				_ = cerr
			}
		}()
		return puzzle.ReadJSON(file)
	}

	st, err := openHistory()
	if err != nil {
		return model.Result{}, err
	}
	defer closeStore(st)

	var rec model.PuzzleRecord
	if len(args) == 0 {
		rec, err = st.LatestPuzzle(context.Background())
	} else {
		id, perr := parseID(args[0])
		if perr != nil {
			return model.Result{}, perr
		}
		rec, err = st.GetPuzzle(context.Background(), id)
	}
	if errors.Is(err, store.ErrNotFound) && len(args) == 0 {
		return model.Result{}, fmt.Errorf("no saved puzzles yet; generate one first")
	}
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to load puzzle: %w", err)
	}
	return rec.Result, nil
}

// solvePlacements locates the visible words and the hidden word in the grid.
func solvePlacements(result model.Result) []model.Placement {
	words := append([]string(nil), result.Words...)
	if result.Hidden != "" {
		words = append(words, result.Hidden)
	}
	return wordfind.New(nil).Solve(result.Grid, words).Found
}

func newLengthsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lengths",
		Short: "Show the word-length histogram of a word list",
		Args:  cobra.NoArgs,
		RunE:  runLengthsCmd,
	}
	cmd.Flags().StringVarP(&lengthsFile, "file", "f", "", "word list, one word per line (- for stdin)")
	cmd.Flags().StringVarP(&lengthsDimensions, "dimensions", "d", "", "only count words that fit this grid")
	cmd.Flags().StringVarP(&lengthsRules, "rules", "r", "", "check a rules file against the word list")
	return cmd
}

func runLengthsCmd(cmd *cobra.Command, _ []string) error {
	if lengthsFile == "" {
		return fmt.Errorf("%w: --file is required", puzzle.ErrConfiguration)
	}
	var (
		words []string
		err   error
	)
	if lengthsFile == puzzle.StdinPath {
		words, err = wordlist.LoadWordsFrom(cmd.InOrStdin())
	} else {
		words, err = wordlist.LoadWords(lengthsFile)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to load word list: %v", puzzle.ErrResource, err)
	}
	if lengthsDimensions != "" {
		dims, err := model.ParseDimensions(lengthsDimensions)
		if err != nil {
			return fmt.Errorf("%w: %v", puzzle.ErrConfiguration, err)
		}
		words = wordlist.FilterByLength(words, dims.MaxWordLength())
	}

	out := cmd.OutOrStdout()
	buckets := stats.LengthHistogram(words)
	if err := stats.RenderLengthTable(out, buckets); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if lengthsRules == "" {
		return nil
	}
	rules, err := wordlist.LoadRules(lengthsRules)
	if err != nil {
		if errors.Is(err, wordlist.ErrInvalidRules) {
			return fmt.Errorf("%w: %v", puzzle.ErrConfiguration, err)
		}
		return fmt.Errorf("%w: failed to load rules: %v", puzzle.ErrResource, err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCoverageTable(out, stats.RuleCoverage(buckets, rules)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid puzzle id %q", puzzle.ErrConfiguration, arg)
	}
	return id, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}
