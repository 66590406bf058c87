package corpus

import (
	"sync"
	"testing"
)

func TestIndexContains(t *testing.T) {
	t.Parallel()

	idx := NewIndex("password", "123456", "Password", "123456", " spaced ")

	testCases := []struct {
		name     string
		password string
		want     bool
	}{
		{"exact match", "password", true},
		{"case is significant", "PASSWORD", false},
		{"distinct case variant stored", "Password", true},
		{"whitespace is significant", "spaced", false},
		{"whitespace kept verbatim", " spaced ", true},
		{"not present", "correct horse", false},
		{"empty string not present", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := idx.Contains(tc.password); got != tc.want {
				t.Errorf("Contains(%q) = %v, want %v", tc.password, got, tc.want)
			}
		})
	}

	if idx.Len() != 4 {
		t.Errorf("expected duplicates to collapse to 4 entries, got %d", idx.Len())
	}
}

func TestIndexEmpty(t *testing.T) {
	t.Parallel()

	t.Run("empty index contains nothing", func(t *testing.T) {
		t.Parallel()
		idx := NewIndex()
		if !idx.Empty() {
			t.Error("expected empty index")
		}
		if idx.Contains("") || idx.Contains("password") {
			t.Error("empty index must not contain anything")
		}
	})

	t.Run("nil index contains nothing", func(t *testing.T) {
		t.Parallel()
		var idx *Index
		if idx.Contains("password") {
			t.Error("nil index must not contain anything")
		}
		if idx.Len() != 0 {
			t.Errorf("expected length 0, got %d", idx.Len())
		}
	})
}

func TestIndexConcurrentReads(t *testing.T) {
	t.Parallel()

	idx := NewIndex("alpha", "beta", "gamma")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if !idx.Contains("beta") {
					t.Error("expected beta to be present")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	b := NewBuilder(-1)
	if !b.Add("one") {
		t.Error("expected first add to be new")
	}
	if b.Add("one") {
		t.Error("expected duplicate add to report false")
	}
	b.Add("two")
	if b.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", b.Len())
	}

	idx := b.Build()
	if !idx.Contains("one") || !idx.Contains("two") || idx.Len() != 2 {
		t.Errorf("unexpected index contents, len=%d", idx.Len())
	}
}
