package modules

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/2beens/athletepro/internal/userdata"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const genericSubtitle = "System module"

// Action is something the user can do from a module, with the CLI command
// that does it.
type Action struct {
	Label   string `json:"label"`
	Command string `json:"command"`
}

type Module struct {
	ID       string                `json:"id"`
	Title    string                `json:"title"`
	Subtitle string                `json:"subtitle"`
	Actions  []Action              `json:"actions,omitempty"`
	Series   []userdata.SeriesName `json:"series,omitempty"`
	// Generic is set for ids nothing was registered for.
	Generic bool `json:"generic,omitempty"`
}

type Factory func() Module

// Registry maps module ids to factories. Modules are plain values built
// on demand, nothing is evaluated from strings.
type Registry struct {
	mutex     sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

func (r *Registry) Register(id string, factory Factory) error {
	id = normalizeID(id)
	if id == "" {
		return errors.New("module id cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("module %s: nil factory", id)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.factories[id]; ok {
		return fmt.Errorf("module %s already registered", id)
	}
	r.factories[id] = factory
	return nil
}

func (r *Registry) Lookup(id string) (Module, bool) {
	id = normalizeID(id)

	r.mutex.RLock()
	factory, ok := r.factories[id]
	r.mutex.RUnlock()

	if !ok {
		return Module{}, false
	}
	m := factory()
	m.ID = id
	return m, true
}

// Resolve never fails: ids without a factory get a generic module titled
// after the id.
func (r *Registry) Resolve(id string) Module {
	if m, ok := r.Lookup(id); ok {
		return m
	}
	id = normalizeID(id)
	return Module{
		ID:       id,
		Title:    titleFromID(id),
		Subtitle: genericSubtitle,
		Generic:  true,
	}
}

// IDs returns the registered ids, sorted.
func (r *Registry) IDs() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func titleFromID(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_'
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}
