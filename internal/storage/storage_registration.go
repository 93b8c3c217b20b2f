package storage

// GetCommandsHash returns the hash of the command definitions last registered
// in the guild.
func (s *Storage) GetCommandsHash(guildID string) (string, error) {
	if guildID == "" {
		return "", ErrNoGuild
	}
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return "", err
	}
	return record.CommandsHash, nil
}

// SetCommandsHash remembers the registered definitions so an unchanged set is
// not pushed again on the next start.
func (s *Storage) SetCommandsHash(guildID, hash string) error {
	if guildID == "" {
		return ErrNoGuild
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}
	record.CommandsHash = hash
	s.ds.Add(guildID, record)
	return nil
}
