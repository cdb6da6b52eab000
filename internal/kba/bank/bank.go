// Package bank holds the immutable KBA question catalog and the selection
// policy for building quiz sessions out of it.
package bank

import (
	"fmt"
	"math/rand/v2"

	"guardian/internal/kba"
)

// Bank is the loaded question catalog. Load once at startup; all methods are
// safe for concurrent use because the catalog is never mutated after New.
type Bank struct {
	questions  []kba.Question
	byCategory map[kba.Category][]kba.Question
}

// New validates and indexes a catalog. An empty catalog is a deployment
// configuration error and refuses to construct.
func New(questions []kba.Question) (*Bank, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}
	seen := make(map[string]bool, len(questions))
	byCategory := make(map[kba.Category][]kba.Question)
	for _, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question with empty id")
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, fmt.Errorf("question %q: correct index out of range", q.ID)
		}
		seen[q.ID] = true
		byCategory[q.Category] = append(byCategory[q.Category], q)
	}
	return &Bank{questions: questions, byCategory: byCategory}, nil
}

// Default returns a bank loaded with the built-in catalog.
func Default() (*Bank, error) {
	return New(defaultCatalog)
}

// Size reports the number of questions in the catalog.
func (b *Bank) Size() int { return len(b.questions) }

// Select picks count questions for a session: first one question per distinct
// category in random category order, then random unused questions to fill any
// remaining slots, finally shuffled so position reveals nothing about
// category. Returns fewer than count only when the whole catalog is smaller.
func (b *Bank) Select(count int) []kba.Question {
	if count <= 0 {
		return nil
	}

	categories := kba.Categories()
	rand.Shuffle(len(categories), func(i, j int) {
		categories[i], categories[j] = categories[j], categories[i]
	})
	if len(categories) > count {
		categories = categories[:count]
	}

	picked := make([]kba.Question, 0, count)
	used := make(map[string]bool, count)
	for _, cat := range categories {
		pool := b.byCategory[cat]
		if len(pool) == 0 {
			continue
		}
		q := pool[rand.IntN(len(pool))]
		picked = append(picked, q)
		used[q.ID] = true
	}

	for len(picked) < count {
		remaining := make([]kba.Question, 0, len(b.questions))
		for _, q := range b.questions {
			if !used[q.ID] {
				remaining = append(remaining, q)
			}
		}
		if len(remaining) == 0 {
			break
		}
		q := remaining[rand.IntN(len(remaining))]
		picked = append(picked, q)
		used[q.ID] = true
	}

	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked
}
