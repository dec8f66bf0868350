package rules

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

//go:embed games/*.hcl
var builtinFS embed.FS

// ErrGameNotFound matches every *NotFoundError.
var ErrGameNotFound = errors.New("game not found")

// NotFoundError is returned by Lookup for an unregistered variation.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("game not found: %q", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrGameNotFound
}

// Factory creates the model and view rules of a variation. Each Lookup
// calls both, so every game gets fresh rules and a fresh stack model.
type Factory struct {
	NewModelRules func() (ModelRules, error)
	NewViewRules  func(ModelRules) (ViewRules, error)
}

// Registry maps variation names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	titles    map[string]string
	logger    *log.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
		logger:    logger.WithPrefix("rules"),
	}
}

// DefaultRegistry returns a registry holding the built-in variations.
func DefaultRegistry(logger *log.Logger) (*Registry, error) {
	r := NewRegistry(logger)
	entries, err := builtinFS.ReadDir("games")
	if err != nil {
		return nil, fmt.Errorf("read built-in games: %w", err)
	}
	for _, e := range entries {
		name := path.Join("games", e.Name())
		src, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read built-in game %s: %w", name, err)
		}
		if err := r.LoadSource(src, name); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name, title string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		r.logger.Warn("Replacing registered game", "game", name)
	}
	if title == "" {
		title = name
	}
	r.factories[name] = f
	r.titles[name] = title
}

// RegisterVariation registers a variation declared in HCL.
func (r *Registry) RegisterVariation(cfg GameConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	// Fail at registration rather than at first lookup.
	if _, err := NewVariation(cfg); err != nil {
		return err
	}

	newView := dropRules[cfg.DropRules]
	r.Register(cfg.Name, cfg.Title, Factory{
		NewModelRules: func() (ModelRules, error) {
			return NewVariation(cfg)
		},
		NewViewRules: func(m ModelRules) (ViewRules, error) {
			return newView(m), nil
		},
	})
	return nil
}

// LoadSource registers every variation in an HCL document.
func (r *Registry) LoadSource(src []byte, filename string) error {
	games, err := ParseVariations(src, filename)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	for _, g := range games {
		if err := r.RegisterVariation(g); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		r.logger.Debug("Registered game", "game", g.Name, "file", filename)
	}
	return nil
}

// LoadFiles registers the variations in each file. A file that is missing
// or invalid is logged and skipped; the number of files loaded is returned.
func (r *Registry) LoadFiles(paths []string) int {
	loaded := 0
	for _, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			r.logger.Warn("Skipping game file", "file", p, "error", err)
			continue
		}
		if err := r.LoadSource(src, p); err != nil {
			r.logger.Warn("Skipping game file", "file", p, "error", err)
			continue
		}
		loaded++
	}
	return loaded
}

// Lookup instantiates the named variation.
func (r *Registry) Lookup(name string) (*Game, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	model, err := f.NewModelRules()
	if err != nil {
		return nil, fmt.Errorf("game %s: model rules: %w", name, err)
	}
	viewRules, err := f.NewViewRules(model)
	if err != nil {
		return nil, fmt.Errorf("game %s: view rules: %w", name, err)
	}
	return &Game{ModelRules: model, ViewRules: viewRules}, nil
}

// Info is a registry listing entry.
type Info struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns name and title for every registered variation, sorted by name.
func (r *Registry) List() []Info {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Info, 0, len(names))
	for _, n := range names {
		out = append(out, Info{Name: n, Title: r.titles[n]})
	}
	return out
}
