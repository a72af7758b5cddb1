package casefile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Repository loads cases from a directory of JSON files and caches them in
// memory. The first access scans the directory; later reads are served from
// the cache until [Repository.Reload] invalidates it.
//
// All methods are safe for concurrent use. Readers always observe either the
// fully-old or the fully-new cache — never a partially populated one.
type Repository struct {
	dir string

	mu    sync.RWMutex
	cases map[string]*Case // nil until the first scan
}

// NewRepository creates a Repository over the given case directory.
// The directory is not scanned until the first read.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// LoadAll returns every case keyed by ID, scanning the directory on first use.
//
// A malformed case file is skipped and logged rather than failing the whole
// load; one bad record must not take every other case offline.
func (r *Repository) LoadAll() (map[string]*Case, error) {
	r.mu.RLock()
	cached := r.cases
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another goroutine may have completed the scan while we waited.
	if r.cases != nil {
		return r.cases, nil
	}

	loaded, err := r.scan()
	if err != nil {
		return nil, err
	}
	r.cases = loaded
	return loaded, nil
}

// Get returns the case with the given ID, or [ErrNotFound].
func (r *Repository) Get(id string) (*Case, error) {
	cases, err := r.LoadAll()
	if err != nil {
		return nil, err
	}
	c, ok := cases[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c, nil
}

// List returns all cases ordered by ID.
func (r *Repository) List() ([]*Case, error) {
	cases, err := r.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]*Case, 0, len(cases))
	for _, c := range cases {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Reload invalidates the cache so the next read re-scans the directory.
// Reads already in flight keep their old snapshot.
func (r *Repository) Reload() {
	r.mu.Lock()
	r.cases = nil
	r.mu.Unlock()
}

// scan reads every *.json file in the case directory. Must be called with
// r.mu held for writing.
func (r *Repository) scan() (map[string]*Case, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("case directory does not exist", "dir", r.dir)
			return map[string]*Case{}, nil
		}
		return nil, fmt.Errorf("casefile: read case directory %q: %w", r.dir, err)
	}

	cases := make(map[string]*Case)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		c, err := loadCaseFile(path)
		if err != nil {
			slog.Warn("skipping malformed case file", "path", path, "err", err)
			continue
		}
		if _, exists := cases[c.ID]; exists {
			slog.Warn("skipping case file with duplicate id", "path", path, "id", c.ID)
			continue
		}
		cases[c.ID] = c
	}

	slog.Info("loaded cases", "dir", r.dir, "count", len(cases))
	return cases, nil
}

// loadCaseFile reads and parses one case record from disk.
func loadCaseFile(path string) (*Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("casefile: open %q: %w", path, err)
	}
	defer f.Close()

	c, err := DecodeCase(f)
	if err != nil {
		return nil, fmt.Errorf("casefile: parse %q: %w", path, err)
	}
	return c, nil
}
