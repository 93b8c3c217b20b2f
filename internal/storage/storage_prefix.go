package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrNoGuild is returned when a guild setting is requested outside a guild.
var ErrNoGuild = errors.New("not in a guild")

// GetPrefix returns the guild's custom prefix, or "" when none is set.
func (s *Storage) GetPrefix(guildID string) (string, error) {
	if guildID == "" {
		return "", ErrNoGuild
	}
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return "", err
	}
	return record.Prefix, nil
}

// SetPrefix stores a custom prefix. An empty prefix restores the default.
func (s *Storage) SetPrefix(guildID, prefix string) error {
	if guildID == "" {
		return ErrNoGuild
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.Prefix = strings.TrimSpace(prefix)
	s.ds.Add(guildID, record)
	return nil
}

// PrefixFunc returns a prefix callback that falls back to def for guilds
// without a custom prefix. Outside a guild it yields def as well.
func (s *Storage) PrefixFunc(def string) func(ctx context.Context, guildID string) (string, error) {
	return func(_ context.Context, guildID string) (string, error) {
		if guildID == "" {
			return def, nil
		}
		p, err := s.GetPrefix(guildID)
		if err != nil {
			return "", err
		}
		if p == "" {
			return def, nil
		}
		return p, nil
	}
}
