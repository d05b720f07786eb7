package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDimensions is returned for malformed width/height specifications.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Dimensions is a validated grid size.
type Dimensions struct {
	Width  int
	Height int
}

// ParseDimensions parses "N" or "WxH" into Dimensions.
func ParseDimensions(spec string) (Dimensions, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Dimensions{}, fmt.Errorf("%w: empty value", ErrInvalidDimensions)
	}
	parts := strings.Split(spec, "x")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return Dimensions{}, fmt.Errorf("%w: %q (want N or WxH)", ErrInvalidDimensions, spec)
	}
	width, err := parseSide(parts[0])
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: width %v", ErrInvalidDimensions, err)
	}
	height, err := parseSide(parts[1])
	if err != nil {
		return Dimensions{}, fmt.Errorf("%w: height %v", ErrInvalidDimensions, err)
	}
	return Dimensions{Width: width, Height: height}, nil
}

func parseSide(token string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", token)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d must be > 0", n)
	}
	return n, nil
}

// MaxWordLength is the longest word that fits in either direction.
func (d Dimensions) MaxWordLength() int {
	return min(d.Width, d.Height)
}

// String formats the dimensions as WxH.
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}
