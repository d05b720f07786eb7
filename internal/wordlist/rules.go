package wordlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/verte-zerg/wordsearch/internal/model"
)

// ErrInvalidRules is returned for malformed or out-of-range rule files.
var ErrInvalidRules = errors.New("invalid rules")

// LoadRules reads a JSON rules file. Read failures are returned unwrapped
// so callers can tell them apart from ErrInvalidRules.
func LoadRules(path string) ([]model.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRules(data)
}

// ParseRules decodes a JSON array of {size, count} objects in order.
func ParseRules(data []byte) ([]model.Rule, error) {
	var rules []model.Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	for i, r := range rules {
		if r.Size <= 0 {
			return nil, fmt.Errorf("%w: rule %d: size must be > 0", ErrInvalidRules, i)
		}
		if r.Count < 0 {
			return nil, fmt.Errorf("%w: rule %d: count must be >= 0", ErrInvalidRules, i)
		}
	}
	return rules, nil
}
