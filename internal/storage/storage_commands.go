package storage

// AppendCommandToHistory records a command run, keeping the most recent entries.
func (s *Storage) AppendCommandToHistory(guildID string, command CommandHistoryRecord) error {
	if guildID == "" {
		return ErrNoGuild
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandsHistoryList = append(record.CommandsHistoryList, command)
	if n := len(record.CommandsHistoryList); n > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[n-commandHistoryLimit:]
	}
	s.ds.Add(guildID, record)
	return nil
}

// FetchCommandHistory returns the recorded command runs, oldest first.
func (s *Storage) FetchCommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	if guildID == "" {
		return nil, ErrNoGuild
	}
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistoryList, nil
}
