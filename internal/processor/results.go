package processor

import (
	"sort"
	"sync"
)

// Results maps each file path to its outcome. Every worker writes to it,
// so all access goes through mu.
type Results struct {
	mu      sync.Mutex
	entries map[string]Outcome
	frozen  bool
}

func NewResults() *Results {
	return &Results{entries: make(map[string]Outcome)}
}

// Insert records the outcome for path. The first write for a path wins and
// Insert reports whether this call stored it. Inserting after Freeze panics.
func (r *Results) Insert(path string, o Outcome) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		panic("processor: insert into frozen results")
	}
	if _, ok := r.entries[path]; ok {
		return false
	}
	r.entries[path] = o
	return true
}

// Freeze marks the results complete.
func (r *Results) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

func (r *Results) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Results) Get(path string) (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.entries[path]
	return o, ok
}

// Sorted returns every entry ordered by path.
func (r *Results) Sorted() []Entry {
	r.mu.Lock()
	entries := make([]Entry, 0, len(r.entries))
	for path, o := range r.entries {
		entries = append(entries, Entry{Path: path, Outcome: o})
	}
	r.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

func (r *Results) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{Processed: len(r.entries)}
	for _, o := range r.entries {
		if !o.OK() {
			s.Errors++
		}
	}
	return s
}
