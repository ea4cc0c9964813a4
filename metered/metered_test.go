package metered

import (
	"errors"
	"fmt"
	"testing"

	"github.com/discochess/sift"
	"github.com/discochess/sift/stats"
)

// spyCollector records every event for assertions.
type spyCollector struct {
	hits       int
	misses     int
	insertions int
	rejections int
	evictions  int
	lastSize   int
}

var _ stats.Collector = (*spyCollector)(nil)

func (s *spyCollector) RecordHit()       { s.hits++ }
func (s *spyCollector) RecordMiss()      { s.misses++ }
func (s *spyCollector) RecordInsertion() { s.insertions++ }
func (s *spyCollector) RecordRejection() { s.rejections++ }
func (s *spyCollector) RecordEviction()  { s.evictions++ }
func (s *spyCollector) SetSize(n int)    { s.lastSize = n }

func TestNew_InvalidCapacity(t *testing.T) {
	if _, err := New[string, int](0); !errors.Is(err, sift.ErrInvalidCapacity) {
		t.Errorf("New(0) error = %v, want ErrInvalidCapacity", err)
	}
}

func TestCache_CountsHitsAndMisses(t *testing.T) {
	cache, err := New[string, int](4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cache.Insert("a", 1)

	cache.Get("a")
	cache.Get("a")
	cache.Get("gone")

	s := cache.Stats()
	if s.Hits != 2 {
		t.Errorf("Stats().Hits = %d, want 2", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("Stats().Misses = %d, want 1", s.Misses)
	}
	if s.Size != 1 {
		t.Errorf("Stats().Size = %d, want 1", s.Size)
	}
}

func TestStats_HitRate(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{name: "no lookups", stats: Stats{}, want: 0},
		{name: "all hits", stats: Stats{Hits: 10}, want: 100},
		{name: "three quarters", stats: Stats{Hits: 3, Misses: 1}, want: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.HitRate(); got != tt.want {
				t.Errorf("HitRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCache_CountsInsertionsAndEvictions(t *testing.T) {
	cache, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cache.Insert("a", 1)
	cache.Insert("b", 2)
	cache.Insert("c", 3) // evicts a

	s := cache.Stats()
	if s.Insertions != 3 {
		t.Errorf("Stats().Insertions = %d, want 3", s.Insertions)
	}
	if s.Evictions != 1 {
		t.Errorf("Stats().Evictions = %d, want 1", s.Evictions)
	}
	if s.Size != 2 {
		t.Errorf("Stats().Size = %d, want 2", s.Size)
	}
}

func TestCache_UpdateInPlaceIsNotEviction(t *testing.T) {
	cache, err := New[string, int](2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cache.Insert("a", 1)
	cache.Insert("b", 2)

	// The cache is full, but updating an existing key displaces nothing.
	cache.Insert("a", 10)

	s := cache.Stats()
	if s.Evictions != 0 {
		t.Errorf("Stats().Evictions = %d, want 0", s.Evictions)
	}
	if s.Insertions != 3 {
		t.Errorf("Stats().Insertions = %d, want 3", s.Insertions)
	}
}

func TestCache_CountsRejections(t *testing.T) {
	never := func(string, int) bool { return false }
	cache, err := New[string, int](2, WithEvictFilter[string, int](never))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cache.Insert("a", 1)
	cache.Insert("b", 2)

	wasNew, stored := cache.Insert("c", 3)
	if wasNew || stored {
		t.Errorf("Insert() = (%v, %v), want (false, false)", wasNew, stored)
	}

	s := cache.Stats()
	if s.Rejections != 1 {
		t.Errorf("Stats().Rejections = %d, want 1", s.Rejections)
	}
	if s.Insertions != 2 {
		t.Errorf("Stats().Insertions = %d, want 2", s.Insertions)
	}
	if cache.ContainsKey("c") {
		t.Error("c should not have been inserted")
	}
}

func TestCache_ForwardsToCollector(t *testing.T) {
	spy := &spyCollector{}
	cache, err := New[string, int](2, WithCollector[string, int](spy))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cache.Insert("a", 1)
	cache.Insert("b", 2)
	cache.Insert("c", 3) // evicts a
	cache.Get("b")
	cache.Get("gone")
	cache.Update("c", func(v *int) { *v++ })

	if spy.insertions != 3 {
		t.Errorf("collector insertions = %d, want 3", spy.insertions)
	}
	if spy.evictions != 1 {
		t.Errorf("collector evictions = %d, want 1", spy.evictions)
	}
	if spy.hits != 2 {
		t.Errorf("collector hits = %d, want 2", spy.hits)
	}
	if spy.misses != 1 {
		t.Errorf("collector misses = %d, want 1", spy.misses)
	}
	if spy.lastSize != 2 {
		t.Errorf("collector lastSize = %d, want 2", spy.lastSize)
	}
}

func TestCache_Remove(t *testing.T) {
	spy := &spyCollector{}
	cache, err := New[string, int](4, WithCollector[string, int](spy))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cache.Insert("a", 1)

	v, ok := cache.Remove("a")
	if !ok || v != 1 {
		t.Errorf("Remove(a) = (%d, %v), want (1, true)", v, ok)
	}
	if spy.lastSize != 0 {
		t.Errorf("collector lastSize = %d, want 0", spy.lastSize)
	}
}

func TestCache_Evict(t *testing.T) {
	cache, err := New[string, int](4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cache.Insert("a", 1)
	cache.Insert("b", 2)

	key, value, ok := cache.Evict()
	if !ok {
		t.Fatal("Evict() ok = false, want true")
	}
	if key != "a" || value != 1 {
		t.Errorf("Evict() = (%q, %d), want (a, 1)", key, value)
	}
	if got := cache.Stats().Evictions; got != 1 {
		t.Errorf("Stats().Evictions = %d, want 1", got)
	}
}

func TestCache_Clear(t *testing.T) {
	cache, err := New[string, int](4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cache.Insert("a", 1)
	cache.Get("a")

	cache.Clear()

	s := cache.Stats()
	if s.Size != 0 {
		t.Errorf("Stats().Size = %d, want 0", s.Size)
	}
	// Lifetime counters survive a Clear.
	if s.Hits != 1 {
		t.Errorf("Stats().Hits = %d, want 1", s.Hits)
	}
}

func TestCache_Close(t *testing.T) {
	cache, err := New[string, int](4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// First close should succeed.
	if err := cache.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// Second close should return ErrClosed.
	if err := cache.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("Close() second call error = %v, want ErrClosed", err)
	}

	// The cache stays usable; only the summary is one-shot.
	cache.Insert("a", 1)
	if v, ok := cache.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) after Close = (%d, %v), want (1, true)", v, ok)
	}
}

func TestCache_KeysDelegates(t *testing.T) {
	cache, err := New[string, int](8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		cache.Insert(fmt.Sprintf("k%d", i), i)
	}

	keys := cache.Keys()
	if len(keys) != 3 || keys[0] != "k0" || keys[2] != "k2" {
		t.Errorf("Keys() = %v, want [k0 k1 k2]", keys)
	}
	if got := len(cache.Values()); got != 3 {
		t.Errorf("len(Values()) = %d, want 3", got)
	}
	if got := cache.Capacity(); got != 8 {
		t.Errorf("Capacity() = %d, want 8", got)
	}
}
