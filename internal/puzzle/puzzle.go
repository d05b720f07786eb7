// Package puzzle runs the word-selection pipeline and assembles puzzle records.
package puzzle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/wordsearch/internal/generator"
	"github.com/verte-zerg/wordsearch/internal/model"
	"github.com/verte-zerg/wordsearch/internal/wordfind"
	"github.com/verte-zerg/wordsearch/internal/wordlist"
)

// StdinPath selects standard input as the word source.
const StdinPath = "-"

// Stage is a pipeline state. Stages only move forward.
type Stage string

const (
	StageInit             Stage = "init"
	StageDimensionsParsed Stage = "dimensions-parsed"
	StageCorpusLoaded     Stage = "corpus-loaded"
	StageSelected         Stage = "selected"
	StageHiddenInjected   Stage = "hidden-injected"
	StageGridGenerated    Stage = "grid-generated"
	StageSolved           Stage = "solved"
	StageAssembled        Stage = "assembled"
)

// Engine builds and solves grids.
type Engine interface {
	Generate(words []string, opts wordfind.Options) (wordfind.Outcome, error)
	Solve(grid model.Grid, words []string) wordfind.Solution
}

// Pipeline turns a Config into a Result.
type Pipeline struct {
	selector *generator.Selector
	engine   Engine
	stdin    io.Reader
	logf     func(format string, args ...any)
	warnf    func(format string, args ...any)
	onStage  func(Stage)
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithStdin sets the reader used when the word file is "-".
func WithStdin(r io.Reader) Option {
	return func(p *Pipeline) { p.stdin = r }
}

// WithLogf receives progress lines.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(p *Pipeline) { p.logf = logf }
}

// WithWarnf receives warnings such as underfill notices.
func WithWarnf(warnf func(format string, args ...any)) Option {
	return func(p *Pipeline) { p.warnf = warnf }
}

// WithStageHook is called every time the pipeline enters a stage.
func WithStageHook(hook func(Stage)) Option {
	return func(p *Pipeline) { p.onStage = hook }
}

// New returns a Pipeline using selector for word choice and engine for grids.
func New(selector *generator.Selector, engine Engine, opts ...Option) *Pipeline {
	p := &Pipeline{
		selector: selector,
		engine:   engine,
		stdin:    os.Stdin,
		logf:     func(string, ...any) {},
		warnf:    func(string, ...any) {},
		onStage:  func(Stage) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes every stage in order and stops at the first failure.
func (p *Pipeline) Run(cfg model.Config) (model.Result, error) {
	stage := StageInit
	enter := func(next Stage) {
		stage = next
		p.onStage(next)
	}
	enter(StageInit)
	if err := validateConfig(cfg); err != nil {
		return model.Result{}, configErrorf(stage, "%v", err)
	}

	orientations, err := resolveOrientations(cfg)
	if err != nil {
		return model.Result{}, wrapError(ErrConfiguration, stage, err)
	}

	dims, err := model.ParseDimensions(cfg.DimensionSpec)
	if err != nil {
		return model.Result{}, wrapError(ErrConfiguration, stage, err)
	}
	if err := checkHidden(cfg.Hidden, dims); err != nil {
		return model.Result{}, wrapError(ErrConfiguration, stage, err)
	}
	enter(StageDimensionsParsed)

	words, err := p.loadWords(cfg.WordFile)
	if err != nil {
		return model.Result{}, wrapError(ErrResource, stage, err)
	}
	rules, err := loadRules(cfg)
	if err != nil {
		kind := ErrResource
		if errors.Is(err, wordlist.ErrInvalidRules) {
			kind = ErrConfiguration
		}
		return model.Result{}, wrapError(kind, stage, err)
	}
	p.logf("Words loaded: %s\n", humanize.Comma(int64(len(words))))
	corpus := wordlist.FilterByLength(words, dims.MaxWordLength())
	p.logf("Words that fit board: %s\n", humanize.Comma(int64(len(corpus))))
	p.logf("Words to put on board: %s\n", humanize.Comma(int64(cfg.Count)))
	corpus = withoutHidden(corpus, cfg.Hidden)
	enter(StageCorpusLoaded)

	sel := p.selector.Select(corpus, rules, cfg.Count)
	for i, rule := range rules {
		p.logf("Rule: size %d count %d claimed %d\n", rule.Size, rule.Count, sel.RuleClaims[i])
	}
	if short := sel.Shortfall(); short > 0 {
		msg := fmt.Sprintf("selected %d of %d requested words (corpus exhausted)", len(sel.Words), sel.Requested)
		switch cfg.Underfill {
		case model.UnderfillError:
			return model.Result{}, wrapError(ErrUnderfill, stage, errors.New(msg))
		case model.UnderfillWarn:
			p.warnf("warning: %s\n", msg)
		}
	}
	enter(StageSelected)

	placed := placementWords(sel.Words, cfg.Hidden)
	if cfg.Hidden != "" {
		enter(StageHiddenInjected)
	}

	outcome, err := p.engine.Generate(placed, engineOptions(cfg, dims, orientations))
	if err != nil {
		return model.Result{}, wrapError(ErrConfiguration, stage, err)
	}
	if outcome.Unsatisfiable {
		return model.Result{}, wrapError(ErrGeneration, stage,
			fmt.Errorf("could not place %d words in a %s grid", len(placed), dims))
	}
	enter(StageGridGenerated)

	var solution *wordfind.Solution
	if cfg.Solve {
		sol := p.engine.Solve(outcome.Grid, placed)
		solution = &sol
		enter(StageSolved)
	}

	result := Assemble(dims, sel.Words, outcome.Grid, solution, cfg.Hidden)
	enter(StageAssembled)
	return result, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.WordFile == "" {
		return fmt.Errorf("--file is required")
	}
	if cfg.DimensionSpec == "" {
		return fmt.Errorf("--dimensions is required")
	}
	if cfg.Count <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	switch cfg.Underfill {
	case "", model.UnderfillSilent, model.UnderfillWarn, model.UnderfillError:
	default:
		return fmt.Errorf("--underfill must be one of silent, warn, error")
	}
	if cfg.MaxAttempts < 0 {
		return fmt.Errorf("--max-attempts must be >= 0")
	}
	return nil
}

func (p *Pipeline) loadWords(path string) ([]string, error) {
	if path == StdinPath {
		words, err := wordlist.LoadWordsFrom(p.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to load word list from stdin: %w", err)
		}
		return words, nil
	}
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	return words, nil
}

func loadRules(cfg model.Config) ([]model.Rule, error) {
	if cfg.RulesFile == "" {
		return cfg.Rules, nil
	}
	rules, err := wordlist.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules %s: %w", cfg.RulesFile, err)
	}
	return rules, nil
}

func resolveOrientations(cfg model.Config) ([]wordfind.Orientation, error) {
	if len(cfg.Orientations) == 0 {
		return wordfind.DefaultOrientations(cfg.Backwards), nil
	}
	out := make([]wordfind.Orientation, 0, len(cfg.Orientations))
	for _, name := range cfg.Orientations {
		o, err := wordfind.ParseOrientation(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func engineOptions(cfg model.Config, dims model.Dimensions, orientations []wordfind.Orientation) wordfind.Options {
	return wordfind.Options{
		Width:         dims.Width,
		Height:        dims.Height,
		Orientations:  orientations,
		FillBlanks:    cfg.FillBlanks,
		MaxAttempts:   cfg.MaxAttempts,
		PreferOverlap: cfg.PreferOverlap,
	}
}
