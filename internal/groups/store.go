package groups

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"multilaunch/internal/settings"
)

// Settings is the persistence backend the store reads from
type Settings interface {
	GetString(key string) (string, error)
	Subscribe(key string, fn func()) *settings.Subscription
}

// Store exposes the current group mapping and keeps it in sync with the
// persisted value. Readers always see a complete mapping: reloads replace
// the pointer, never the contents.
type Store struct {
	settings Settings
	key      string
	logger   *slog.Logger

	current atomic.Pointer[Mapping]

	mu  sync.Mutex
	sub *settings.Subscription
}

// NewStore loads the mapping stored under key and subscribes to its changes.
// Access or parse problems are logged and the default mapping installed.
func NewStore(s Settings, key string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	st := &Store{
		settings: s,
		key:      key,
		logger:   logger,
	}
	def := Default()
	st.current.Store(&def)

	// Subscribe before the first read so no change is missed in between
	st.sub = s.Subscribe(key, func() {
		if err := st.Reload(); err != nil {
			st.logError(err)
			return
		}
		st.logger.Debug("group config reloaded", "groups", st.Current().Len())
	})

	if err := st.Reload(); err != nil {
		st.logError(err)
	}
	return st
}

// Reload re-reads the persisted text and swaps in the new mapping. The
// default mapping is installed when the text is unreadable or malformed,
// and the cause is returned for logging.
func (s *Store) Reload() error {
	raw, err := s.settings.GetString(s.key)
	if err != nil {
		def := Default()
		s.current.Store(&def)
		return err
	}

	m, err := Load(raw)
	s.current.Store(&m)
	return err
}

// Current returns the mapping snapshot in effect
func (s *Store) Current() Mapping {
	return *s.current.Load()
}

// Get looks a group up by exact, case-sensitive name
func (s *Store) Get(name string) (TokenList, bool) {
	return s.Current().Get(name)
}

// Close releases the change subscription. No reload happens after Close.
func (s *Store) Close() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()
	sub.Close()
}

func (s *Store) logError(err error) {
	var parseErr *ConfigParseError
	var accessErr *settings.AccessError
	switch {
	case errors.As(err, &parseErr):
		s.logger.Warn("group config malformed, using defaults", "key", s.key, "error", err)
	case errors.As(err, &accessErr):
		s.logger.Warn("group config unavailable, using defaults", "key", s.key, "error", err)
	default:
		s.logger.Warn("group config reload failed", "key", s.key, "error", err)
	}
}
