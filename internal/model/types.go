// Package model defines shared data structures.
package model

import (
	"encoding/json"
	"time"
)

// UnderfillPolicy controls what happens when selection cannot reach the requested count.
type UnderfillPolicy string

const (
	UnderfillSilent UnderfillPolicy = "silent"
	UnderfillWarn   UnderfillPolicy = "warn"
	UnderfillError  UnderfillPolicy = "error"
)

// Config defines puzzle generation settings.
type Config struct {
	WordFile      string
	DimensionSpec string
	Count         int
	Backwards     bool
	// Orientations overrides the default set chosen by Backwards when non-empty.
	Orientations  []string
	RulesFile     string
	Rules         []Rule
	Hidden        string
	Solve         bool
	Seed          int64
	Underfill     UnderfillPolicy
	MaxAttempts   int
	PreferOverlap bool
	FillBlanks    bool
}

// Rule asks for Count words of exactly Size letters.
type Rule struct {
	Size  int `json:"size"`
	Count int `json:"count"`
}

// Grid is a row-major matrix of single-letter cells.
type Grid [][]string

// Placement locates a word inside a grid.
type Placement struct {
	Word        string `json:"word"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Orientation string `json:"orientation"`
	Overlap     int    `json:"overlap"`
}

// Result is the emitted puzzle record. A nil Solution means solving was not
// requested; an empty one means it was requested and nothing was found.
type Result struct {
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	Words    []string    `json:"words"`
	Grid     Grid        `json:"grid"`
	Solution []Placement `json:"solution,omitempty"`
	Hidden   string      `json:"hidden,omitempty"`
}

// MarshalJSON keeps an empty, non-nil Solution as "solution":[].
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := struct {
		plain
		Solution *[]Placement `json:"solution,omitempty"`
	}{plain: plain(r)}
	if r.Solution != nil {
		out.Solution = &r.Solution
	}
	return json.Marshal(out)
}

// PuzzleRecord is a stored puzzle with its generation metadata.
type PuzzleRecord struct {
	ID        int64
	CreatedAt time.Time
	Backwards bool
	Seed      int64
	WordFile  string
	Result    Result
}

// PuzzleSummary is a listing row for stored puzzles.
type PuzzleSummary struct {
	ID        int64
	CreatedAt time.Time
	Width     int
	Height    int
	WordCount int
	Hidden    bool
	Solved    bool
}

// LengthBucket counts corpus words of one length.
type LengthBucket struct {
	Length int
	Words  int
}
