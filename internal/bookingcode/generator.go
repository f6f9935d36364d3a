// Package bookingcode mints the 8-character check-in codes printed on tickets.
package bookingcode

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"regexp"

	apperrors "go-gin-cinema-booking/pkg/app_errors"
)

const (
	Length             = 8
	Alphabet           = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultMaxAttempts = 20
)

// bytes >= rejectAbove would bias the modulo towards the first letters
const rejectAbove = 256 - 256%len(Alphabet)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// ClaimFunc tries to persist a candidate code. It must return
// apperrors.ErrDuplicateBookingCode when the code is already taken.
type ClaimFunc func(ctx context.Context, code string) error

type Generator struct {
	source      io.Reader
	maxAttempts int
}

func New() *Generator {
	return NewWithSource(rand.Reader, DefaultMaxAttempts)
}

func NewWithSource(source io.Reader, maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{source: source, maxAttempts: maxAttempts}
}

// Next draws one candidate code without checking uniqueness.
func (g *Generator) Next() (string, error) {
	code := make([]byte, 0, Length)
	buf := make([]byte, Length*2)

	for len(code) < Length {
		if _, err := io.ReadFull(g.source, buf); err != nil {
			return "", fmt.Errorf("read random source: %w", err)
		}
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			code = append(code, Alphabet[int(b)%len(Alphabet)])
			if len(code) == Length {
				break
			}
		}
	}
	return string(code), nil
}

// Generate re-rolls until claim accepts a code. The claim (a unique insert)
// is the authority; there is no separate pre-check.
func (g *Generator) Generate(ctx context.Context, claim ClaimFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code, err := g.Next()
		if err != nil {
			return "", err
		}

		err = claim(ctx, code)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicateBookingCode) {
			return "", err
		}
	}

	return "", &apperrors.ExhaustedError{Operation: "generate booking code", Attempts: g.maxAttempts}
}

func Valid(code string) bool {
	return codePattern.MatchString(code)
}
