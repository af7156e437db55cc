package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// sessionFileName is the fixed key the signed-in user id lives under,
// the local-disk analog of a browser local-storage entry.
const sessionFileName = "synapse-session.json"

type session struct {
	UserID string `json:"user_id"`
}

// sessionStore persists the session to a JSON file, thread-safe and
// written atomically (temp file + rename).
type sessionStore struct {
	mu       sync.RWMutex
	filePath string
}

func newSessionStore(dataDir string) (*sessionStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &sessionStore{filePath: filepath.Join(dataDir, sessionFileName)}, nil
}

// load reads the stored session. A missing file is not an error; it reads
// back as an empty session.
func (s *sessionStore) load() (session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sess session
	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return sess, nil
		}
		return sess, err
	}
	defer file.Close()

	err = json.NewDecoder(file).Decode(&sess)
	return sess, err
}

func (s *sessionStore) save(sess session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tempFile := s.filePath + ".tmp"
	file, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(file).Encode(sess); err != nil {
		file.Close()
		os.Remove(tempFile)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	// Atomic rename
	return os.Rename(tempFile, s.filePath)
}

func (s *sessionStore) clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
