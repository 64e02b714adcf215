// Package challenge provides the verification questions used to gate
// registration against automated submissions.
package challenge

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/atinyakov/feather/internal/models"
)

var (
	// ErrEmptyCatalog is returned when a bank is built without questions.
	ErrEmptyCatalog = errors.New("challenge catalog is empty")
	// ErrCatalogMismatch is returned when questions and answers differ in length.
	ErrCatalogMismatch = errors.New("challenge questions and answers differ in length")
	// ErrInvalidIndex is returned by Check for an index outside the catalog.
	ErrInvalidIndex = errors.New("invalid question index")
	// ErrMismatch is returned by Check when the answer is wrong.
	ErrMismatch = errors.New("wrong answer, please try again")
)

// Bank holds an immutable catalog of questions and their canonical answers.
// It is safe for concurrent use.
type Bank struct {
	questions []string
	answers   []string

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBank copies the catalog and returns a Bank drawing indices from src.
// A nil src is replaced by a time seeded PCG source.
func NewBank(questions, answers []string, src rand.Source) (*Bank, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(questions) != len(answers) {
		return nil, ErrCatalogMismatch
	}
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1|1)
	}
	return &Bank{
		questions: append([]string(nil), questions...),
		answers:   append([]string(nil), answers...),
		rnd:       rand.New(src),
	}, nil
}

// Size returns the number of questions in the catalog.
func (b *Bank) Size() int {
	return len(b.questions)
}

// Pick returns a uniformly drawn question.
func (b *Bank) Pick() models.Question {
	b.mu.Lock()
	i := b.rnd.IntN(len(b.questions))
	b.mu.Unlock()

	return models.Question{Index: i, Text: b.questions[i]}
}

// Validate reports whether answer is the canonical answer for index.
// Comparison is exact: case sensitive, no trimming.
func (b *Bank) Validate(index int, answer string) bool {
	return b.Check(index, answer) == nil
}

// Check is Validate with the reason for a rejection.
func (b *Bank) Check(index int, answer string) error {
	if index < 0 || index >= len(b.answers) {
		return ErrInvalidIndex
	}
	if b.answers[index] != answer {
		return ErrMismatch
	}
	return nil
}
