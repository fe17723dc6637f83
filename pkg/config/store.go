package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Keys persisted in the env file.
const (
	KeyDomain = "DOMAIN"
	KeyAPIKey = "GAIA_API_KEY"
)

// Store persists KEY=VALUE settings in a dotenv file.
// Set only touches the line of the key it writes; every other line is
// copied through byte for byte.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultEnvFile
	}
	return &Store{path: path}
}

// Load reads every stored key. A missing file is an empty store.
func (s *Store) Load() (map[string]string, error) {
	values, err := godotenv.Read(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return values, nil
}

// Get returns the stored value for key and whether it is set to a non-empty string.
func (s *Store) Get(key string) (string, bool, error) {
	values, err := s.Load()
	if err != nil {
		return "", false, err
	}
	value := values[key]
	return value, value != "", nil
}

// Set upserts key and writes the file immediately. The first line
// assigning key is replaced in place, later duplicates are dropped, and
// a missing key is appended.
func (s *Store) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty key")
	}

	content, mode, err := s.readRaw()
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(upsertLine(content, key, value)), mode); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) readRaw() (string, fs.FileMode, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", 0o600, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("stat %s: %w", s.path, err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", 0, fmt.Errorf("read %s: %w", s.path, err)
	}
	return string(data), info.Mode().Perm(), nil
}

func upsertLine(content, key, value string) string {
	entry := formatEntry(key, value)
	if content == "" {
		return entry + "\n"
	}

	lines := strings.Split(content, "\n")
	// A trailing newline leaves one empty element that must stay last.
	trailing := lines[len(lines)-1] == ""
	if trailing {
		lines = lines[:len(lines)-1]
	}

	out := make([]string, 0, len(lines)+1)
	replaced := false
	for _, line := range lines {
		if !assigns(line, key) {
			out = append(out, line)
			continue
		}
		if !replaced {
			out = append(out, entry)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, entry)
	}
	return strings.Join(out, "\n") + "\n"
}

// assigns reports whether line is a KEY=... (optionally "export KEY=...") assignment of key.
func assigns(line, key string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	trimmed = strings.TrimPrefix(trimmed, "export ")
	rest, ok := strings.CutPrefix(trimmed, key)
	if !ok {
		return false
	}
	return strings.HasPrefix(strings.TrimLeft(rest, " \t"), "=")
}

// formatEntry double-quotes value so godotenv reads it back verbatim:
// no integer coercion and no ${VAR} expansion.
func formatEntry(key, value string) string {
	escaped := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		`$`, `\$`,
		"\n", `\n`,
		"\r", `\r`,
	).Replace(value)
	return key + `="` + escaped + `"`
}
