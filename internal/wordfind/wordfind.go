// Package wordfind lays words into a letter grid and finds them again.
package wordfind

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/wordsearch/internal/model"
)

const (
	// DefaultMaxAttempts bounds fresh placement attempts before giving up.
	DefaultMaxAttempts = 3
	// DefaultFillLetters is the alphabet used to fill unused cells.
	DefaultFillLetters = "abcdefghijklmnoprstuvwy"
)

var (
	// ErrInvalidOptions indicates a grid configuration the engine cannot use.
	ErrInvalidOptions = errors.New("wordfind: invalid options")
)

// Options configures a Generate call.
type Options struct {
	Width         int
	Height        int
	Orientations  []Orientation
	FillBlanks    bool
	MaxAttempts   int
	PreferOverlap bool
	FillLetters   string
}

// Outcome is either a finished grid or an unsatisfiable placement request.
type Outcome struct {
	Grid          model.Grid
	Unsatisfiable bool
}

// Solution lists placements found by Solve.
type Solution struct {
	Found    []model.Placement `json:"found"`
	NotFound []string          `json:"notFound"`
}

// Engine generates and solves word-search grids.
type Engine struct {
	rnd *rand.Rand
}

// New returns an Engine drawing from rnd. A nil rnd is seeded from the clock.
func New(rnd *rand.Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rnd: rnd}
}

type location struct {
	x, y    int
	orient  Orientation
	overlap int
}

// Generate places every word, longest first, retrying from an empty grid up to
// MaxAttempts times. When no attempt places all words the outcome is unsatisfiable.
func (e *Engine) Generate(words []string, opts Options) (Outcome, error) {
	if err := validateOptions(&opts); err != nil {
		return Outcome{}, err
	}
	ordered := make([][]rune, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		ordered = append(ordered, []rune(w))
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		cells, ok := e.fill(ordered, opts)
		if !ok {
			continue
		}
		if opts.FillBlanks {
			e.fillBlanks(cells, []rune(opts.FillLetters))
		}
		return Outcome{Grid: toGrid(cells)}, nil
	}
	return Outcome{Unsatisfiable: true}, nil
}

func validateOptions(opts *Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("%w: width and height must be > 0", ErrInvalidOptions)
	}
	if len(opts.Orientations) == 0 {
		return fmt.Errorf("%w: no orientations", ErrInvalidOptions)
	}
	for _, o := range opts.Orientations {
		if _, ok := steps[o]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownOrientation, o)
		}
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.FillLetters == "" {
		opts.FillLetters = DefaultFillLetters
	}
	return nil
}

func (e *Engine) fill(words [][]rune, opts Options) ([][]rune, bool) {
	cells := make([][]rune, opts.Height)
	for y := range cells {
		cells[y] = make([]rune, opts.Width)
	}
	for _, word := range words {
		locs := findLocations(cells, word, opts.Orientations)
		if len(locs) == 0 {
			return nil, false
		}
		if opts.PreferOverlap {
			locs = maxOverlap(locs)
		}
		loc := locs[e.rnd.Intn(len(locs))]
		place(cells, word, loc)
	}
	return cells, true
}

func findLocations(cells [][]rune, word []rune, orientations []Orientation) []location {
	var locs []location
	height := len(cells)
	width := len(cells[0])
	for _, o := range orientations {
		st := steps[o]
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				overlap, ok := fits(cells, word, x, y, st)
				// A word fully covered by earlier letters would hide inside another word.
				if !ok || overlap == len(word) {
					continue
				}
				locs = append(locs, location{x: x, y: y, orient: o, overlap: overlap})
			}
		}
	}
	return locs
}

func fits(cells [][]rune, word []rune, x, y int, st step) (int, bool) {
	height := len(cells)
	width := len(cells[0])
	endX := x + st.dx*(len(word)-1)
	endY := y + st.dy*(len(word)-1)
	if endX < 0 || endX >= width || endY < 0 || endY >= height {
		return 0, false
	}
	overlap := 0
	for i, r := range word {
		cx, cy := x+st.dx*i, y+st.dy*i
		switch cells[cy][cx] {
		case 0:
		case r:
			overlap++
		default:
			return 0, false
		}
	}
	return overlap, true
}

func maxOverlap(locs []location) []location {
	best := 0
	for _, l := range locs {
		best = max(best, l.overlap)
	}
	out := locs[:0:0]
	for _, l := range locs {
		if l.overlap == best {
			out = append(out, l)
		}
	}
	return out
}

func place(cells [][]rune, word []rune, loc location) {
	st := steps[loc.orient]
	for i, r := range word {
		cells[loc.y+st.dy*i][loc.x+st.dx*i] = r
	}
}

func (e *Engine) fillBlanks(cells [][]rune, letters []rune) {
	for y := range cells {
		for x := range cells[y] {
			if cells[y][x] == 0 {
				cells[y][x] = letters[e.rnd.Intn(len(letters))]
			}
		}
	}
}

func toGrid(cells [][]rune) model.Grid {
	grid := make(model.Grid, len(cells))
	for y, row := range cells {
		grid[y] = make([]string, len(row))
		for x, r := range row {
			if r == 0 {
				grid[y][x] = ""
				continue
			}
			grid[y][x] = string(r)
		}
	}
	return grid
}

// Solve locates each word in grid, scanning rows top to bottom and every
// orientation. Overlap counts cells shared with other found words.
func (e *Engine) Solve(grid model.Grid, words []string) Solution {
	cells := fromGrid(grid)
	sol := Solution{Found: []model.Placement{}, NotFound: []string{}}
	for _, w := range words {
		word := []rune(w)
		loc, ok := locate(cells, word)
		if !ok {
			sol.NotFound = append(sol.NotFound, w)
			continue
		}
		sol.Found = append(sol.Found, model.Placement{Word: w, X: loc.x, Y: loc.y, Orientation: string(loc.orient)})
	}
	countOverlaps(sol.Found)
	return sol
}

func fromGrid(grid model.Grid) [][]rune {
	cells := make([][]rune, len(grid))
	for y, row := range grid {
		cells[y] = make([]rune, len(row))
		for x, s := range row {
			r, _ := utf8.DecodeRuneInString(s)
			if s == "" {
				r = 0
			}
			cells[y][x] = r
		}
	}
	return cells
}

func locate(cells [][]rune, word []rune) (location, bool) {
	if len(word) == 0 || len(cells) == 0 || len(cells[0]) == 0 {
		return location{}, false
	}
	for y := range cells {
		for x := range cells[y] {
			if cells[y][x] != word[0] {
				continue
			}
			for _, o := range AllOrientations {
				if matches(cells, word, x, y, steps[o]) {
					return location{x: x, y: y, orient: o}, true
				}
			}
		}
	}
	return location{}, false
}

func matches(cells [][]rune, word []rune, x, y int, st step) bool {
	for i, r := range word {
		cx, cy := x+st.dx*i, y+st.dy*i
		if cy < 0 || cy >= len(cells) || cx < 0 || cx >= len(cells[cy]) {
			return false
		}
		if cells[cy][cx] != r {
			return false
		}
	}
	return true
}

// Cells returns the grid coordinates covered by a placement as [x, y] pairs.
func Cells(p model.Placement) [][2]int {
	st, ok := steps[Orientation(p.Orientation)]
	if !ok {
		return nil
	}
	n := utf8.RuneCountInString(p.Word)
	out := make([][2]int, n)
	for i := 0; i < n; i++ {
		out[i] = [2]int{p.X + st.dx*i, p.Y + st.dy*i}
	}
	return out
}

func countOverlaps(found []model.Placement) {
	usage := map[[2]int]int{}
	for _, p := range found {
		for _, c := range Cells(p) {
			usage[c]++
		}
	}
	for i := range found {
		overlap := 0
		for _, c := range Cells(found[i]) {
			if usage[c] > 1 {
				overlap++
			}
		}
		found[i].Overlap = overlap
	}
}
