package config

import (
	"errors"
	"fmt"
)

// ErrConfigMissing reports that the domain or API key is unset at run time.
var ErrConfigMissing = errors.New("configuration missing")

// Settings is the in-memory copy of the persisted domain and API key.
// The menu edits it through Store so memory and file stay in step.
type Settings struct {
	Domain string
	APIKey string
}

// LoadSettings reads the stored values and falls back to the process
// environment for keys the file does not carry.
func LoadSettings(store *Store, getenv func(string) string) (*Settings, error) {
	values, err := store.Load()
	if err != nil {
		return nil, err
	}
	settings := &Settings{
		Domain: values[KeyDomain],
		APIKey: values[KeyAPIKey],
	}
	if getenv != nil {
		if _, ok := values[KeyDomain]; !ok {
			settings.Domain = getenv(KeyDomain)
		}
		if _, ok := values[KeyAPIKey]; !ok {
			settings.APIKey = getenv(KeyAPIKey)
		}
	}
	return settings, nil
}

// HasAPIKey reports whether an API key is set.
func (s *Settings) HasAPIKey() bool {
	return s.APIKey != ""
}

// Validate checks that both the API key and the domain are set.
func (s *Settings) Validate() error {
	if s.APIKey == "" {
		return fmt.Errorf("%w: GAIA API KEY is not set, please add it first", ErrConfigMissing)
	}
	if s.Domain == "" {
		return fmt.Errorf("%w: domain is not set, please set it first", ErrConfigMissing)
	}
	return nil
}

// SetDomain adopts domain and persists it. An empty domain unsets it.
func (s *Settings) SetDomain(store *Store, domain string) error {
	if err := store.Set(KeyDomain, domain); err != nil {
		return err
	}
	s.Domain = domain
	return nil
}

// SetAPIKey adopts and persists a non-empty key. It reports false and
// leaves the current key untouched when key is empty.
func (s *Settings) SetAPIKey(store *Store, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	if err := store.Set(KeyAPIKey, key); err != nil {
		return false, err
	}
	s.APIKey = key
	return true, nil
}
