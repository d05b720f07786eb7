package wordfind

import (
	"errors"
	"fmt"
)

// Orientation names a direction a word can be laid along.
type Orientation string

const (
	Horizontal     Orientation = "horizontal"
	HorizontalBack Orientation = "horizontalBack"
	Vertical       Orientation = "vertical"
	VerticalUp     Orientation = "verticalUp"
	Diagonal       Orientation = "diagonal"
	DiagonalUp     Orientation = "diagonalUp"
	DiagonalBack   Orientation = "diagonalBack"
	DiagonalUpBack Orientation = "diagonalUpBack"
)

// ErrUnknownOrientation is returned for orientation names the engine does not know.
var ErrUnknownOrientation = errors.New("wordfind: unknown orientation")

type step struct {
	dx, dy int
}

var steps = map[Orientation]step{
	Horizontal:     {dx: 1, dy: 0},
	HorizontalBack: {dx: -1, dy: 0},
	Vertical:       {dx: 0, dy: 1},
	VerticalUp:     {dx: 0, dy: -1},
	Diagonal:       {dx: 1, dy: 1},
	DiagonalBack:   {dx: -1, dy: 1},
	DiagonalUp:     {dx: 1, dy: -1},
	DiagonalUpBack: {dx: -1, dy: -1},
}

// AllOrientations lists every supported orientation in a fixed order.
var AllOrientations = []Orientation{
	Horizontal, HorizontalBack,
	Vertical, VerticalUp,
	Diagonal, DiagonalBack,
	DiagonalUp, DiagonalUpBack,
}

var (
	forwardOrientations  = []Orientation{Horizontal, Vertical, Diagonal, DiagonalBack, DiagonalUp}
	backwardOrientations = []Orientation{HorizontalBack, VerticalUp, DiagonalUpBack}
)

// DefaultOrientations returns the forward set, or the reversed set when backwards is true.
func DefaultOrientations(backwards bool) []Orientation {
	if backwards {
		return append([]Orientation(nil), backwardOrientations...)
	}
	return append([]Orientation(nil), forwardOrientations...)
}

// ParseOrientation validates an orientation name.
func ParseOrientation(name string) (Orientation, error) {
	o := Orientation(name)
	if _, ok := steps[o]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOrientation, name)
	}
	return o, nil
}
