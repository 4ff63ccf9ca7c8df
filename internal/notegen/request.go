// Package notegen builds study-note generation requests and sends them to a
// hosted language model.
package notegen

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Level is the complexity a note is written for.
type Level string

// Levels, in ascending order. The zero Level leaves complexity unspecified.
const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
)

// DefaultLevel is used by callers that always want a level.
const DefaultLevel = Intermediate

// Levels lists every valid non-zero level.
var Levels = []Level{Beginner, Intermediate, Advanced}

// ErrInvalidLevel is returned when parsing an unknown level name.
var ErrInvalidLevel = errors.New("invalid level")

// ParseLevel matches s against level names case-insensitively; the empty
// string parses as the zero Level.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, level := range Levels {
		if strings.EqualFold(s, string(level)) {
			return level, nil
		}
	}
	return "", fmt.Errorf("%w %q, want one of %v", ErrInvalidLevel, s, Levels)
}

// Request describes a note to generate.
type Request struct {
	Subject string
	Topic   string
	Level   Level
}

// ErrMissingField is returned by Request.Validate.
var ErrMissingField = errors.New("missing required field")

// Validate returns an error if the request lacks a subject or topic.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Subject) == "" {
		return fmt.Errorf("%w: subject", ErrMissingField)
	}
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("%w: topic", ErrMissingField)
	}
	return nil
}

// Prompt renders the model prompt for the request.
func (r Request) Prompt() string {
	var sb strings.Builder
	sb.WriteString("Generate comprehensive yet simple and well-structured study notes for the following:\n")
	fmt.Fprintf(&sb, "Subject: %s\n", r.Subject)
	fmt.Fprintf(&sb, "Topic: %s\n", r.Topic)
	if r.Level != "" {
		fmt.Fprintf(&sb, "Level: %s\n", r.Level)
	}
	sb.WriteString(`
Structure the notes using:
- A clear title
- An introductory overview
- Key concepts (use bullet points)
- Detailed explanation of sub-topics
- Important formulas or dates (if applicable)
- A brief summary or conclusion
`)
	if r.Level != "" {
		fmt.Fprintf(&sb, "\nPitch the depth and vocabulary for a %s learner.\n", strings.ToLower(string(r.Level)))
	}
	sb.WriteString("\nUse professional but easy-to-understand language. Return the response in Markdown format.\n")
	return sb.String()
}

// Generator produces markdown notes for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc is a functional adaptor for Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

// Generate calls the receiver function pointer.
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) { return f(ctx, req) }

// Error is a failed generation. Its message is meant for display; the
// underlying cause is available through errors.Unwrap.
type Error struct {
	Err error
}

// Message is the user facing text of every generation failure.
const Message = "Failed to generate notes. Please try again later."

func (e *Error) Error() string { return Message }

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// ErrEmptyResponse is the cause recorded when the model returns no text.
var ErrEmptyResponse = errors.New("model returned no text")
