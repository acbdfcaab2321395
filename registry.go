package hxtree

import (
	"fmt"
	"sort"
	"sync"
)

// Factory returns a new zero widget of one kind. It must return a pointer
// so session decoding can fill it in.
type Factory func() Widget

// Kinds maps widget kind names to factories. Decoding a session tree needs
// every kind it contains to be registered.
//
// Registration is explicit:
//
//	kinds := hxtree.NewKinds()
//	components.Register(kinds)
//	kinds.Register(func() hxtree.Widget { return &CounterGroup{} })
type Kinds struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewKinds creates an empty kind registry.
func NewKinds() *Kinds {
	return &Kinds{factories: make(map[string]Factory)}
}

// Register adds factories. Panics on an empty kind name or when a kind is
// registered twice, since both are programming mistakes caught at startup.
func (k *Kinds) Register(factories ...Factory) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, f := range factories {
		kind := f().Kind()
		if kind == "" {
			panic("hxtree: widget kind must not be empty")
		}
		if _, exists := k.factories[kind]; exists {
			panic(fmt.Sprintf("hxtree: kind collision for %q", kind))
		}
		k.factories[kind] = f
	}
}

// New instantiates a zero widget of the given kind.
func (k *Kinds) New(kind string) (Widget, error) {
	k.mu.RLock()
	f, ok := k.factories[kind]
	k.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return f(), nil
}

// Names returns the registered kind names in sorted order.
func (k *Kinds) Names() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	names := make([]string, 0, len(k.factories))
	for name := range k.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
