// Package questions loads the fixed question list submitted on every iteration.
package questions

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultPath is the question file read from the working directory.
const DefaultPath = "questions.txt"

// ErrSourceUnavailable reports that the question file cannot be read.
var ErrSourceUnavailable = errors.New("question source unavailable")

// Load reads path and returns its non-blank lines in file order.
// Kept lines are returned verbatim apart from a trailing carriage return.
func Load(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	return Parse(string(data)), nil
}

// Parse splits content into lines and drops the blank ones.
func Parse(content string) []string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
