// Package generator selects puzzle words from a corpus.
package generator

import (
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/wordsearch/internal/model"
)

// Selector picks words using a single random source.
type Selector struct {
	rnd *rand.Rand
}

// New returns a Selector seeded with the current time.
func New() *Selector {
	return &Selector{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithRand returns a Selector drawing from rnd.
func NewWithRand(rnd *rand.Rand) *Selector {
	return &Selector{rnd: rnd}
}

// Selection is the outcome of a selection pass.
type Selection struct {
	Words     []string
	Requested int
	// RuleClaims holds how many words each rule claimed, in rule order.
	RuleClaims []int
}

// Shortfall is how many requested words could not be supplied.
func (s Selection) Shortfall() int {
	if len(s.Words) >= s.Requested {
		return 0
	}
	return s.Requested - len(s.Words)
}

// Select runs the quota pass followed by a top-up when rules are given,
// or plain random sampling otherwise. pool is not modified.
func (s *Selector) Select(pool []string, rules []model.Rule, count int) Selection {
	if len(rules) == 0 {
		return Selection{Words: s.Sample(pool, count), Requested: count}
	}
	selected, remaining, claims := s.Quota(pool, rules)
	selected = s.TopUp(selected, remaining, count)
	return Selection{Words: selected, Requested: count, RuleClaims: claims}
}

// Quota applies rules in order. Each rule shuffles the words of its size that
// are still in the pool and claims up to rule.Count of them. It returns the
// claimed words in rule order, the pool without them, and per-rule claim counts.
func (s *Selector) Quota(pool []string, rules []model.Rule) ([]string, []string, []int) {
	remaining := append([]string(nil), pool...)
	var selected []string
	claims := make([]int, 0, len(rules))
	for _, rule := range rules {
		var taken []string
		taken, remaining = s.claim(remaining, rule)
		selected = append(selected, taken...)
		claims = append(claims, len(taken))
	}
	return selected, remaining, claims
}

func (s *Selector) claim(pool []string, rule model.Rule) ([]string, []string) {
	var bucket, rest []string
	for _, word := range pool {
		if utf8.RuneCountInString(word) == rule.Size {
			bucket = append(bucket, word)
		} else {
			rest = append(rest, word)
		}
	}
	s.shuffle(bucket)
	n := min(rule.Count, len(bucket))
	// Unclaimed bucket words go back to the pool.
	rest = append(rest, bucket[n:]...)
	return bucket[:n:n], rest
}

// TopUp shuffles remaining and appends words until selected holds count words
// or remaining runs out.
func (s *Selector) TopUp(selected, remaining []string, count int) []string {
	need := count - len(selected)
	if need <= 0 {
		return selected
	}
	return append(selected, s.Sample(remaining, need)...)
}

// Sample returns up to count words drawn uniformly without replacement.
func (s *Selector) Sample(pool []string, count int) []string {
	if count <= 0 || len(pool) == 0 {
		return []string{}
	}
	shuffled := append([]string(nil), pool...)
	s.shuffle(shuffled)
	n := min(count, len(shuffled))
	return shuffled[:n:n]
}

func (s *Selector) shuffle(words []string) {
	s.rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
