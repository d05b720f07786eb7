package puzzle

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/verte-zerg/wordsearch/internal/generator"
	"github.com/verte-zerg/wordsearch/internal/model"
	"github.com/verte-zerg/wordsearch/internal/wordfind"
)

type fakeEngine struct {
	unsatisfiable bool
	generated     [][]string
	generateOpts  []wordfind.Options
	solved        [][]string
}

func (f *fakeEngine) Generate(words []string, opts wordfind.Options) (wordfind.Outcome, error) {
	f.generated = append(f.generated, append([]string(nil), words...))
	f.generateOpts = append(f.generateOpts, opts)
	if f.unsatisfiable {
		return wordfind.Outcome{Unsatisfiable: true}, nil
	}
	grid := make(model.Grid, opts.Height)
	for y := range grid {
		grid[y] = make([]string, opts.Width)
		for x := range grid[y] {
			grid[y][x] = "x"
		}
	}
	return wordfind.Outcome{Grid: grid}, nil
}

func (f *fakeEngine) Solve(_ model.Grid, words []string) wordfind.Solution {
	f.solved = append(f.solved, append([]string(nil), words...))
	sol := wordfind.Solution{}
	for i, w := range words {
		sol.Found = append(sol.Found, model.Placement{Word: w, X: 0, Y: i, Orientation: "horizontal"})
	}
	return sol
}

func writeWords(t *testing.T, words ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(strings.Join(words, "\r\n")+"\r\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	return path
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	return path
}

func newTestPipeline(engine Engine, opts ...Option) *Pipeline {
	return New(generator.NewWithRand(rand.New(rand.NewSource(1))), engine, opts...)
}

func sorted(words []string) []string {
	out := append([]string(nil), words...)
	sort.Strings(out)
	return out
}

func contains(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}

func TestRunRandomSelection(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine)
	result, err := p.Run(model.Config{
		WordFile:      writeWords(t, "cat", "dog", "elephant"),
		DimensionSpec: "10",
		Count:         2,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Width != 10 || result.Height != 10 {
		t.Fatalf("unexpected dimensions %dx%d", result.Width, result.Height)
	}
	if len(result.Words) != 2 || result.Words[0] == result.Words[1] {
		t.Fatalf("expected 2 distinct words, got %v", result.Words)
	}
	for _, w := range result.Words {
		if !contains([]string{"cat", "dog", "elephant"}, w) {
			t.Fatalf("unexpected word %q", w)
		}
	}
	if result.Solution != nil {
		t.Fatalf("solution should be absent when not solving")
	}
	if result.Hidden != "" {
		t.Fatalf("hidden should be empty")
	}
}

func TestRunLengthFilter(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine)
	result, err := p.Run(model.Config{
		WordFile:      writeWords(t, "cat", "tiger", "apple", "elephant", "hippopotamus"),
		DimensionSpec: "5x7",
		Count:         10,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	got := sorted(result.Words)
	want := []string{"apple", "cat", "tiger"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	opts := engine.generateOpts[0]
	if opts.Width != 5 || opts.Height != 7 {
		t.Fatalf("unexpected engine size %dx%d", opts.Width, opts.Height)
	}
}

func TestRunRulesExactMatch(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine)
	result, err := p.Run(model.Config{
		WordFile:      writeWords(t, "cat", "tiger"),
		DimensionSpec: "8",
		Count:         2,
		RulesFile:     writeRules(t, `[{"size":3,"count":1},{"size":5,"count":1}]`),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := sorted(result.Words); len(got) != 2 || got[0] != "cat" || got[1] != "tiger" {
		t.Fatalf("expected [cat tiger], got %v", got)
	}
}

func TestRunRuleRequestsMoreThanAvailable(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine)
	result, err := p.Run(model.Config{
		WordFile:      writeWords(t, "cat", "dog", "tiger", "zebra", "lemon"),
		DimensionSpec: "8",
		Count:         2,
		RulesFile:     writeRules(t, `[{"size":3,"count":5}]`),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := sorted(result.Words); len(got) != 2 || got[0] != "cat" || got[1] != "dog" {
		t.Fatalf("expected both 3-letter words, got %v", got)
	}
}

func TestRunHiddenWordWithSolve(t *testing.T) {
	engine := &fakeEngine{}
	p := newTestPipeline(engine)
	result, err := p.Run(model.Config{
		WordFile:      writeWords(t, "cat", "dog", "ZEBRA", "owl"),
		DimensionSpec: "6",
		Count:         3,
		Hidden:        "ZEBRA",
		Solve:         true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if contains(result.Words, "ZEBRA") {
		t.Fatalf("hidden word leaked into visible words %v", result.Words)
	}
	if len(result.Words) != 3 {
		t.Fatalf("expected 3 visible words, got %v", result.Words)
	}
	if result.Hidden != "ZEBRA" {
		t.Fatalf("expected hidden ZEBRA, got %q", result.Hidden)
	}
	if !contains(engine.generated[0], "ZEBRA") {
		t.Fatalf("placement request missing hidden word: %v", engine.generated[0])
	}
	if len(engine.generated[0]) != 4 {
		t.Fatalf("expected 4 placement words, got %v", engine.generated[0])
	}
	if !contains(engine.solved[0], "ZEBRA") {
		t.Fatalf("solver request missing hidden word: %v", engine.solved[0])
	}
	if len(result.Solution) != 4 {
		t.Fatalf("expected 4 placements, got %d", len(result.Solution))
	}
}

func TestRunOrientationOverride(t *testing.T) {
	engine := &fakeEngine{}
	_, err := newTestPipeline(engine).Run(model.Config{
		WordFile:      writeWords(t, "cat", "dog"),
		DimensionSpec: "5",
		Count:         2,
		Backwards:     true,
		Orientations:  []string{"horizontal", " verticalUp "},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	got := engine.generateOpts[0].Orientations
	want := []wordfind.Orientation{wordfind.Horizontal, wordfind.VerticalUp}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRunUnknownOrientation(t *testing.T) {
	engine := &fakeEngine{}
	_, err := newTestPipeline(engine).Run(model.Config{
		WordFile:      writeWords(t, "cat"),
		DimensionSpec: "5",
		Count:         1,
		Orientations:  []string{"sideways"},
	})
	if !errors.Is(err, ErrConfiguration) || !errors.Is(err, wordfind.ErrUnknownOrientation) {
		t.Fatalf("expected configuration error for unknown orientation, got %v", err)
	}
	if len(engine.generated) != 0 {
		t.Fatalf("engine should not run")
	}
}

func TestRunHiddenWordExcludedIgnoringCase(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		engine := &fakeEngine{}
		p := New(generator.NewWithRand(rand.New(rand.NewSource(seed))), engine)
		result, err := p.Run(model.Config{
			WordFile:      writeWords(t, "cat", "dog", "zebra", "ZEBRA"),
			DimensionSpec: "6",
			Count:         3,
			Hidden:        "Zebra",
		})
		if err != nil {
			t.Fatalf("seed %d: Run failed: %v", seed, err)
		}
		for _, w := range result.Words {
			if strings.EqualFold(w, "zebra") {
				t.Fatalf("seed %d: hidden word leaked as %q in %v", seed, w, result.Words)
			}
		}
		if len(result.Words) != 2 {
			t.Fatalf("seed %d: expected 2 visible words, got %v", seed, result.Words)
		}
	}
}

func TestRunHiddenWordNeverSelected(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		engine := &fakeEngine{}
		p := New(generator.NewWithRand(rand.New(rand.NewSource(seed))), engine)
		result, err := p.Run(model.Config{
			WordFile:      writeWords(t, "cat", "dog", "zebra"),
			DimensionSpec: "6",
			Count:         3,
			Hidden:        "zebra",
		})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if contains(result.Words, "zebra") {
			t.Fatalf("seed %d: hidden word selected: %v", seed, result.Words)
		}
		count := 0
		for _, w := range engine.generated[0] {
			if w == "zebra" {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("seed %d: expected hidden word once in placement, got %v", seed, engine.generated[0])
		}
	}
}

func TestRunHiddenWordTooLong(t *testing.T) {
	p := newTestPipeline(&fakeEngine{})
	_, err := p.Run(model.Config{
		WordFile:      writeWords(t, "cat"),
		DimensionSpec: "4",
		Count:         1,
		Hidden:        "elephant",
	})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestRunGenerationFailure(t *testing.T) {
	engine := &fakeEngine{unsatisfiable: true}
	p := newTestPipeline(engine)
	_, err := p.Run(model.Config{
		WordFile:      writeWords(t, "cat", "dog"),
		DimensionSpec: "3",
		Count:         2,
	})
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	if errors.Is(err, ErrConfiguration) {
		t.Fatalf("generation failure must not look like a configuration error")
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.Stage != StageSelected {
		t.Fatalf("expected failure after selection, got %+v", perr)
	}
}

func TestRunConfigurationErrors(t *testing.T) {
	path := writeWords(t, "cat")
	cases := []struct {
		name string
		cfg  model.Config
	}{
		{"MissingFile", model.Config{DimensionSpec: "5", Count: 1}},
		{"MissingDimensions", model.Config{WordFile: path, Count: 1}},
		{"ZeroCount", model.Config{WordFile: path, DimensionSpec: "5"}},
		{"BadDimensions", model.Config{WordFile: path, DimensionSpec: "5xq", Count: 1}},
		{"BadUnderfill", model.Config{WordFile: path, DimensionSpec: "5", Count: 1, Underfill: "loud"}},
		{"BadRules", model.Config{WordFile: path, DimensionSpec: "5", Count: 1, RulesFile: writeRules(t, `[{"size":-1,"count":1}]`)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := &fakeEngine{}
			_, err := newTestPipeline(engine).Run(tc.cfg)
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
			if len(engine.generated) != 0 {
				t.Fatalf("engine should not be called")
			}
		})
	}
}

func TestRunResourceErrors(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		cfg  model.Config
	}{
		{"MissingWords", model.Config{WordFile: filepath.Join(dir, "none.txt"), DimensionSpec: "5", Count: 1}},
		{"MissingRules", model.Config{WordFile: writeWords(t, "cat"), DimensionSpec: "5", Count: 1, RulesFile: filepath.Join(dir, "none.json")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTestPipeline(&fakeEngine{}).Run(tc.cfg)
			if !errors.Is(err, ErrResource) {
				t.Fatalf("expected ErrResource, got %v", err)
			}
			if !errors.Is(err, os.ErrNotExist) {
				t.Fatalf("expected underlying not-exist error, got %v", err)
			}
		})
	}
}

func TestRunUnderfillPolicies(t *testing.T) {
	path := writeWords(t, "cat", "dog")

	var warnings []string
	warnf := func(format string, args ...any) { warnings = append(warnings, fmt.Sprintf(format, args...)) }

	result, err := newTestPipeline(&fakeEngine{}, WithWarnf(warnf)).Run(model.Config{WordFile: path, DimensionSpec: "5", Count: 5})
	if err != nil {
		t.Fatalf("silent underfill failed: %v", err)
	}
	if len(result.Words) != 2 || len(warnings) != 0 {
		t.Fatalf("expected silent underfill, got words %v warnings %v", result.Words, warnings)
	}

	_, err = newTestPipeline(&fakeEngine{}, WithWarnf(warnf)).Run(model.Config{WordFile: path, DimensionSpec: "5", Count: 5, Underfill: model.UnderfillWarn})
	if err != nil {
		t.Fatalf("warn underfill failed: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "2 of 5") {
		t.Fatalf("expected one warning, got %v", warnings)
	}

	_, err = newTestPipeline(&fakeEngine{}).Run(model.Config{WordFile: path, DimensionSpec: "5", Count: 5, Underfill: model.UnderfillError})
	if !errors.Is(err, ErrUnderfill) {
		t.Fatalf("expected ErrUnderfill, got %v", err)
	}
}

func TestRunReadsStdin(t *testing.T) {
	stdin := strings.NewReader("cat\r\ndog\r\n")
	result, err := newTestPipeline(&fakeEngine{}, WithStdin(stdin)).Run(model.Config{WordFile: StdinPath, DimensionSpec: "5", Count: 2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := sorted(result.Words); len(got) != 2 || got[0] != "cat" || got[1] != "dog" {
		t.Fatalf("unexpected words %v", got)
	}
}

func TestRunStagesMoveForward(t *testing.T) {
	var stages []Stage
	p := newTestPipeline(&fakeEngine{}, WithStageHook(func(s Stage) { stages = append(stages, s) }))
	_, err := p.Run(model.Config{
		WordFile:      writeWords(t, "cat", "dog"),
		DimensionSpec: "5",
		Count:         1,
		Hidden:        "owl",
		Solve:         true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []Stage{StageInit, StageDimensionsParsed, StageCorpusLoaded, StageSelected, StageHiddenInjected, StageGridGenerated, StageSolved, StageAssembled}
	if len(stages) != len(want) {
		t.Fatalf("expected stages %v, got %v", want, stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("expected stages %v, got %v", want, stages)
		}
	}
}

func TestRunVerboseLog(t *testing.T) {
	var buf bytes.Buffer
	logf := func(format string, args ...any) { fmt.Fprintf(&buf, format, args...) }
	_, err := newTestPipeline(&fakeEngine{}, WithLogf(logf)).Run(model.Config{
		WordFile:      writeWords(t, "cat", "dog", "elephant"),
		DimensionSpec: "4",
		Count:         1,
		Rules:         []model.Rule{{Size: 3, Count: 1}},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Words loaded: 3", "Words that fit board: 2", "Rule: size 3 count 1 claimed 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %q: %s", want, out)
		}
	}
}
