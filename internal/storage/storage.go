// Package storage keeps per-guild bot settings in a JSON datastore.
package storage

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/keshon/datastore"
)

const commandHistoryLimit = 50

type Storage struct {
	ds *datastore.DataStore
	// mu serializes read-modify-write cycles on guild records.
	mu sync.Mutex
}

type CommandHistoryRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Surface   string    `json:"surface"`
	Datetime  time.Time `json:"datetime"`
}

type Record struct {
	Prefix              string                 `json:"prefix,omitempty"`
	CommandsHash        string                 `json:"commands_hash,omitempty"`
	CommandsHistoryList []CommandHistoryRecord `json:"cmd_history"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, fmt.Errorf("open datastore: %w", err)
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// getOrCreateGuildRecord returns a copy of the guild's record. Values loaded
// from disk come back as generic maps, so they are round-tripped through JSON.
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		record := &Record{CommandsHistoryList: []CommandHistoryRecord{}}
		s.ds.Add(guildID, record)
		return record, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var record Record
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling to *Record: %w", err)
	}
	if record.CommandsHistoryList == nil {
		record.CommandsHistoryList = []CommandHistoryRecord{}
	}
	return &record, nil
}
