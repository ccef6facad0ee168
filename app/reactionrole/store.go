package reactionrole

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Store persists the single reaction-role binding.
type Store interface {
	// Load reads the persisted binding. An absent or unparseable file is
	// reported as "no binding", never as an error.
	Load() (Binding, bool)
	// Save writes the binding, replacing any previous contents. The caller
	// decides what a failed save means; Save itself never retries.
	Save(binding Binding) error
}

// FileStore keeps the binding as a small human-readable JSON document at a
// fixed path. A single writer is assumed; there is no cross-process lock.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a FileStore backed by the given path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Load() (Binding, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read reaction-role state file, starting without a binding",
				slog.String("path", s.path),
				slog.Any("error", err))
		}
		return Binding{}, false
	}

	var binding Binding
	if err := json.Unmarshal(data, &binding); err != nil {
		s.logger.Warn("Reaction-role state file is malformed, starting without a binding",
			slog.String("path", s.path),
			slog.Any("error", err))
		return Binding{}, false
	}
	if !binding.Valid() {
		s.logger.Warn("Reaction-role state file is incomplete, starting without a binding",
			slog.String("path", s.path))
		return Binding{}, false
	}
	return binding, true
}

func (s *FileStore) Save(binding Binding) error {
	data, err := json.MarshalIndent(binding, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reaction-role binding: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write reaction-role state file: %w", err)
	}
	return nil
}
