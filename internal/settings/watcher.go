package settings

import (
	"os"
	"time"
)

// DefaultPollInterval is how often Watch checks the settings file
const DefaultPollInterval = 500 * time.Millisecond

// Watch starts polling the settings file for changes made by other
// processes. Changed keys are re-read and their subscribers notified.
// It is a no-op for memory stores or if the watcher is already running.
func (s *Store) Watch(interval time.Duration) {
	if s.path == "" {
		return
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.poll(interval, s.stop, s.done)
}

// Close stops the watcher and waits for it to exit
func (s *Store) Close() error {
	s.watchMu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.watchMu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	return nil
}

func (s *Store) poll(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for _, key := range s.refresh() {
				s.notify(key)
			}
		}
	}
}

// refresh re-reads the file if it changed on disk and returns the keys
// whose values differ from what the store held.
func (s *Store) refresh() []string {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil // File might be temporarily unavailable during save
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	values, err := decode(data)
	if err != nil {
		return nil
	}
	s.modTime = info.ModTime()
	s.size = info.Size()

	var changed []string
	for key, def := range s.schema {
		oldVal, oldOK := s.values[key]
		newVal, newOK := values[key]
		if !oldOK {
			oldVal = def
		}
		if !newOK {
			newVal = def
		}
		if oldVal != newVal {
			changed = append(changed, key)
		}
	}
	s.values = values
	return changed
}
