// Package chatfile provides a file-backed conversation store.
//
// The whole store is one JSON document mapping document names to their
// conversation logs. Every mutation rewrites the file through a temp
// file plus atomic rename, so a crash mid-write leaves the previous
// durable state intact. An unparsable file at startup is preserved
// under a .corrupted suffix and the store starts empty.
package chatfile

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/ports/driven"
	"github.com/Iamzain804/Lumina-PDF-Bot/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ConversationStore = (*Store)(nil)

// backupTimeLayout names timestamped backup files.
const backupTimeLayout = "20060102_150405"

// Store is the durable per-document message log.
type Store struct {
	mu      sync.RWMutex
	path    string
	history map[string]*domain.Conversation
}

// NewStore creates a conversation store persisted at path, loading any
// existing history. A file that exists but cannot be parsed is moved
// aside with a .corrupted suffix and the store starts empty; this is
// recovery, not an error.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	s := &Store{
		path:    path,
		history: make(map[string]*domain.Conversation),
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the durable file path.
func (s *Store) Path() string {
	return s.path
}

// Append adds a timestamped message to a document's log and persists
// the entire store.
func (s *Store) Append(doc string, role domain.Role, content string, metadata map[string]any) (domain.Message, error) {
	if !role.Valid() {
		return domain.Message{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	conv, ok := s.history[doc]
	if !ok {
		conv = &domain.Conversation{CreatedAt: now}
		s.history[doc] = conv
	}

	msg := domain.Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: now,
		Metadata:  metadata,
	}
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = now

	if err := s.save(); err != nil {
		// Roll the in-memory append back so memory and disk agree.
		conv.Messages = conv.Messages[:len(conv.Messages)-1]
		if len(conv.Messages) == 0 {
			delete(s.history, doc)
		}
		return domain.Message{}, err
	}

	return msg, nil
}

// History returns the most recent limit messages in chronological order,
// or the full log when limit <= 0.
func (s *Store) History(doc string, limit int) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.history[doc]
	if !ok {
		return nil
	}

	msgs := conv.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Documents returns the names of all documents with a log, sorted.
func (s *Store) Documents() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.history))
	for name := range s.history {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes one document's log after a best-effort backup.
func (s *Store) Clear(doc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.backup()
	delete(s.history, doc)
	return s.save()
}

// ClearAll removes every document's log after a best-effort backup.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.backup()
	s.history = make(map[string]*domain.Conversation)
	return s.save()
}

// Export serializes a document's log as JSON or CSV.
func (s *Store) Export(doc string, format domain.ExportFormat) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.history[doc]
	if !ok {
		conv = &domain.Conversation{}
	}

	switch format {
	case domain.ExportJSON:
		data, err := json.MarshalIndent(conv, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding conversation: %w", err)
		}
		return string(data), nil

	case domain.ExportCSV:
		var sb strings.Builder
		w := csv.NewWriter(&sb)
		if err := w.Write([]string{"Role", "Content", "Timestamp"}); err != nil {
			return "", fmt.Errorf("writing csv header: %w", err)
		}
		for _, msg := range conv.Messages {
			record := []string{string(msg.Role), msg.Content, msg.Timestamp.Format(time.RFC3339)}
			if err := w.Write(record); err != nil {
				return "", fmt.Errorf("writing csv row: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return "", fmt.Errorf("flushing csv: %w", err)
		}
		return strings.TrimRight(sb.String(), "\n"), nil

	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// Stats summarises a document's log.
func (s *Store) Stats(doc string) domain.ConversationStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.history[doc]
	if !ok {
		return domain.ConversationStats{}
	}

	return domain.ConversationStats{
		MessageCount:     len(conv.Messages),
		FirstMessageTime: conv.CreatedAt,
		LastMessageTime:  conv.UpdatedAt,
	}
}

// load reads the durable file into memory. Corruption is recovered by
// preserving the unreadable file and starting empty.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: reading %s: %v", domain.ErrPersistence, s.path, err)
	}

	var history map[string]*domain.Conversation
	if err := json.Unmarshal(data, &history); err != nil {
		corrupted := s.path + ".corrupted"
		if renameErr := os.Rename(s.path, corrupted); renameErr != nil {
			logger.Warn("Could not preserve corrupted history file: %v", renameErr)
		} else {
			logger.Warn("Conversation history unreadable (%v); preserved as %s", err, corrupted)
		}
		return nil
	}

	for name, conv := range history {
		if conv == nil {
			delete(history, name)
		}
	}
	s.history = history
	return nil
}

// save writes the whole store durably. Caller must hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding history: %v", domain.ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", domain.ErrPersistence, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing history: %v", domain.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", domain.ErrPersistence, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing history file: %v", domain.ErrPersistence, err)
	}
	return nil
}

// backup copies the current durable file to a timestamped sibling.
// Best-effort: failures are logged, never propagated, and must not
// block the mutation that requested the backup.
func (s *Store) backup() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("History backup skipped: %v", err)
		}
		return
	}

	backupPath := s.path + ".backup_" + time.Now().UTC().Format(backupTimeLayout)
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		logger.Warn("History backup failed: %v", err)
		return
	}
	logger.Debug("History backed up to %s", backupPath)
}
