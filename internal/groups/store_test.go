package groups

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"multilaunch/internal/settings"

	"github.com/google/go-cmp/cmp"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestNewStore_LoadsPersistedGroups(t *testing.T) {
	s := settings.NewMemory(nil)
	s.SetString(settings.KeyGroups, `{"work": ["firefox", "calc"]}`)

	st := NewStore(s, settings.KeyGroups, nil)
	defer st.Close()

	tokens, ok := st.Get("work")
	if !ok {
		t.Fatal("expected group work")
	}
	if diff := cmp.Diff(TokenList{"firefox", "calc"}, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestNewStore_MalformedFallsBackAndLogs(t *testing.T) {
	s := settings.NewMemory(nil)
	s.SetString(settings.KeyGroups, `{"work": [`)

	var buf bytes.Buffer
	st := NewStore(s, settings.KeyGroups, newTestLogger(&buf))
	defer st.Close()

	if st.Current().Len() != 0 {
		t.Errorf("expected default mapping, got %v", st.Current().Names())
	}
	if !strings.Contains(buf.String(), "malformed") {
		t.Errorf("expected parse error to be logged, got %q", buf.String())
	}
}

func TestNewStore_AccessErrorFallsBack(t *testing.T) {
	s := settings.NewMemory(settings.Schema{"other": ""})

	var buf bytes.Buffer
	st := NewStore(s, settings.KeyGroups, newTestLogger(&buf))
	defer st.Close()

	if st.Current().Len() != 0 {
		t.Errorf("expected default mapping")
	}
	if !strings.Contains(buf.String(), "unavailable") {
		t.Errorf("expected access error to be logged, got %q", buf.String())
	}

	err := st.Reload()
	var accessErr *settings.AccessError
	if !errors.As(err, &accessErr) {
		t.Errorf("expected *settings.AccessError, got %v", err)
	}
}

func TestStore_ReloadsOnChangeNotification(t *testing.T) {
	s := settings.NewMemory(nil)
	st := NewStore(s, settings.KeyGroups, nil)
	defer st.Close()

	if _, ok := st.Get("dev"); ok {
		t.Fatal("group should not exist yet")
	}

	s.SetString(settings.KeyGroups, `{"dev": ["code"]}`)

	if _, ok := st.Get("dev"); !ok {
		t.Error("store should reload after change notification")
	}
}

func TestStore_CloseStopsReloading(t *testing.T) {
	s := settings.NewMemory(nil)
	st := NewStore(s, settings.KeyGroups, nil)
	st.Close()
	st.Close()

	s.SetString(settings.KeyGroups, `{"dev": ["code"]}`)

	if _, ok := st.Get("dev"); ok {
		t.Error("closed store must not reload")
	}
}

func TestStore_SnapshotUnaffectedByReload(t *testing.T) {
	s := settings.NewMemory(nil)
	s.SetString(settings.KeyGroups, `{"a": ["1"]}`)
	st := NewStore(s, settings.KeyGroups, nil)
	defer st.Close()

	snapshot := st.Current()
	s.SetString(settings.KeyGroups, `{"b": ["2"]}`)

	if _, ok := snapshot.Get("a"); !ok {
		t.Error("held snapshot must stay intact")
	}
	if _, ok := st.Get("b"); !ok {
		t.Error("store should expose the new mapping")
	}
}

func TestStore_ConcurrentReadsDuringReload(t *testing.T) {
	s := settings.NewMemory(nil)
	st := NewStore(s, settings.KeyGroups, nil)
	defer st.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				s.SetString(settings.KeyGroups, `{"a": ["1", "2"]}`)
			} else {
				s.SetString(settings.KeyGroups, `{"b": ["3"]}`)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			m := st.Current()
			for _, g := range m.Groups() {
				if len(g.Tokens) == 0 {
					t.Errorf("observed partial group %q", g.Name)
				}
			}
		}
	}()
	wg.Wait()
}

// orderedSettings records the order in which the store touches the backend
type orderedSettings struct {
	*settings.Store
	calls []string
}

func (o *orderedSettings) GetString(key string) (string, error) {
	o.calls = append(o.calls, "get")
	return o.Store.GetString(key)
}

func (o *orderedSettings) Subscribe(key string, fn func()) *settings.Subscription {
	o.calls = append(o.calls, "subscribe")
	return o.Store.Subscribe(key, fn)
}

func TestNewStore_SubscribesBeforeFirstRead(t *testing.T) {
	s := &orderedSettings{Store: settings.NewMemory(nil)}
	st := NewStore(s, settings.KeyGroups, nil)
	defer st.Close()

	if diff := cmp.Diff([]string{"subscribe", "get"}, s.calls); diff != "" {
		t.Errorf("backend calls mismatch (-want +got):\n%s", diff)
	}

	s.SetString(settings.KeyGroups, `{"late": ["calc"]}`)
	if _, ok := st.Get("late"); !ok {
		t.Error("a write after construction should reach the store")
	}
}
