package fieldstore

import (
	"errors"
	"strings"

	"reshareshing/internal/prompt"
)

// Store resolves field values from a Backend, asking the operator on a miss.
type Store struct {
	backend  Backend
	prompter prompt.Prompter
}

func New(backend Backend, prompter prompt.Prompter) *Store {
	return &Store{backend: backend, prompter: prompter}
}

// GetOrPrompt returns the cached value for key. On a miss it asks with
// promptText and persists the trimmed answer, empty answers included.
func (s *Store) GetOrPrompt(key, promptText string) (string, error) {
	v, err := s.backend.Load(key)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	return s.askAndSave(key, promptText)
}

// GetOrPromptForced behaves like GetOrPrompt when force is false. When force
// is true and a value is cached, the operator is asked again; an empty answer
// keeps the cached value.
func (s *Store) GetOrPromptForced(key, promptText string, force bool) (string, error) {
	cached, err := s.backend.Load(key)
	if errors.Is(err, ErrNotFound) {
		return s.askAndSave(key, promptText)
	}
	if err != nil {
		return "", err
	}
	if !force {
		return cached, nil
	}
	answer, err := s.prompter.Ask(promptText)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return cached, nil
	}
	if err := s.backend.Save(key, answer); err != nil {
		return "", err
	}
	return answer, nil
}

// ResetAll drops every cached value so the next lookup prompts again.
func (s *Store) ResetAll() error {
	return s.backend.Clear()
}

func (s *Store) askAndSave(key, promptText string) (string, error) {
	answer, err := s.prompter.Ask(promptText)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if err := s.backend.Save(key, answer); err != nil {
		return "", err
	}
	return answer, nil
}
