package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Task is the domain model for a tracked task.
// One Task is one line in the backing file.
type Task struct {
	ID          int
	Title       string
	Description string
	Priority    int
	Deadline    string
	Done        bool
}

// ErrMalformedLine is wrapped by every Decode failure.
var ErrMalformedLine = errors.New("malformed task line")

// field order on disk: id, title, description, priority, deadline, done
const numFields = 6

// Encode renders the task as a single comma-separated line (no newline).
func (t Task) Encode() string {
	done := "0"
	if t.Done {
		done = "1"
	}
	fields := []string{
		strconv.Itoa(t.ID),
		escapeField(t.Title),
		escapeField(t.Description),
		strconv.Itoa(t.Priority),
		escapeField(t.Deadline),
		done,
	}
	return strings.Join(fields, ",")
}

// Decode parses a line produced by Encode.
//
// Decoding is lenient: missing trailing fields default to their zero value
// and extra fields are ignored, so older and newer files both load. The id
// must still be a positive integer.
func Decode(line string) (Task, error) {
	parts := splitFields(line)
	for len(parts) < numFields {
		parts = append(parts, "")
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Task{}, fmt.Errorf("%w: id %q: not a number", ErrMalformedLine, parts[0])
	}
	if id <= 0 {
		return Task{}, fmt.Errorf("%w: id %d: must be positive", ErrMalformedLine, id)
	}

	priority := 0
	if p := strings.TrimSpace(parts[3]); p != "" {
		priority, err = strconv.Atoi(p)
		if err != nil {
			return Task{}, fmt.Errorf("%w: priority %q: not a number", ErrMalformedLine, parts[3])
		}
	}

	return Task{
		ID:          id,
		Title:       parts[1],
		Description: parts[2],
		Priority:    priority,
		Deadline:    parts[4],
		Done:        strings.TrimSpace(parts[5]) == "1",
	}, nil
}
