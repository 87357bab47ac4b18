package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/signadot/x12-format/go-x12/debug"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]*TransactionSet)
)

//go:embed catalog/*.yaml
var catalog embed.FS

func init() {
	if err := registerFS(catalog, "catalog"); err != nil {
		panic(err)
	}
}

// Register adds a transaction set to the global registry.
func Register(ts *TransactionSet) error {
	if ts == nil {
		return fmt.Errorf("cannot register nil transaction set")
	}
	if err := ts.check(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[ts.ID]; exists {
		return fmt.Errorf("transaction set %q already registered", ts.ID)
	}
	registry[ts.ID] = ts
	if debug.Schema() {
		debug.Logf("schema: registered %s\n", ts)
	}
	return nil
}

// RegisterFile parses a YAML spec file and registers it.
func RegisterFile(path string) (*TransactionSet, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ts, err := ParseTransactionSet(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ts, Register(ts)
}

func registerFS(fsys fs.FS, dir string) error {
	ents, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, ent := range ents {
		d, err := fs.ReadFile(fsys, dir+"/"+ent.Name())
		if err != nil {
			return err
		}
		ts, err := ParseTransactionSet(d)
		if err != nil {
			return fmt.Errorf("%s: %w", ent.Name(), err)
		}
		if err := Register(ts); err != nil {
			return err
		}
	}
	return nil
}

// Lookup finds a registered transaction set by its ST01 identifier.
func Lookup(id string) (*TransactionSet, error) {
	mu.RLock()
	defer mu.RUnlock()
	ts := registry[id]
	if ts == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownTransactionSet, id)
	}
	return ts, nil
}

// All returns all registered transaction sets ordered by ID.
func All() []*TransactionSet {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]*TransactionSet, 0, len(registry))
	for _, v := range registry {
		result = append(result, v)
	}
	slices.SortFunc(result, func(a, b *TransactionSet) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}
