package puzzle

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/verte-zerg/wordsearch/internal/model"
	"github.com/verte-zerg/wordsearch/internal/wordfind"
)

// Assemble builds the output record. The visible word list is copied so later
// changes to words do not leak into the result.
func Assemble(dims model.Dimensions, words []string, grid model.Grid, solution *wordfind.Solution, hidden string) model.Result {
	result := model.Result{
		Width:  dims.Width,
		Height: dims.Height,
		Words:  append([]string{}, words...),
		Grid:   grid,
		Hidden: hidden,
	}
	if solution != nil {
		result.Solution = append([]model.Placement{}, solution.Found...)
	}
	return result
}

// WriteJSON writes the record as a single JSON line.
func WriteJSON(w io.Writer, result model.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// ReadJSON decodes a record written by WriteJSON.
func ReadJSON(r io.Reader) (model.Result, error) {
	var result model.Result
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return model.Result{}, fmt.Errorf("failed to decode result: %w", err)
	}
	if result.Width <= 0 || result.Height <= 0 || len(result.Grid) == 0 {
		return model.Result{}, fmt.Errorf("result has no grid")
	}
	return result, nil
}
