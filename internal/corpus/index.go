package corpus

// Index is an immutable set of known passwords.
// Lookups use exact string equality: case and whitespace are significant.
type Index struct {
	entries map[string]struct{}
}

// NewIndex builds an Index from entries. Duplicates are collapsed and the
// order of entries is irrelevant. The empty string is stored like any other
// value; callers that do not want it must filter it out first.
func NewIndex(entries ...string) *Index {
	idx := &Index{entries: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		idx.entries[e] = struct{}{}
	}
	return idx
}

// newIndexFromSet takes ownership of set without copying it.
func newIndexFromSet(set map[string]struct{}) *Index {
	if set == nil {
		set = make(map[string]struct{})
	}
	return &Index{entries: set}
}

// Contains reports whether password is in the corpus.
// A nil Index contains nothing.
func (i *Index) Contains(password string) bool {
	if i == nil {
		return false
	}
	_, ok := i.entries[password]
	return ok
}

// Len returns the number of distinct passwords.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Empty reports whether the index holds no passwords.
func (i *Index) Empty() bool {
	return i.Len() == 0
}

// Builder accumulates passwords for an Index. It is not safe for concurrent
// use; the Index it builds is.
type Builder struct {
	set map[string]struct{}
}

// NewBuilder returns a Builder sized for about sizeHint passwords.
func NewBuilder(sizeHint int) *Builder {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Builder{set: make(map[string]struct{}, sizeHint)}
}

// Add inserts password. It reports whether the password was new.
func (b *Builder) Add(password string) bool {
	if _, ok := b.set[password]; ok {
		return false
	}
	b.set[password] = struct{}{}
	return true
}

// Len returns the number of distinct passwords added so far.
func (b *Builder) Len() int {
	return len(b.set)
}

// Build returns the Index. The Builder must not be used afterwards.
func (b *Builder) Build() *Index {
	idx := newIndexFromSet(b.set)
	b.set = nil
	return idx
}
