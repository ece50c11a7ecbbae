package cmd

import "sort"

// DefaultRegistry is the global registry commands register into from init().
var DefaultRegistry = NewRegistry()

// Registry stores commands by name and alias. It does not perform dispatch;
// each adapter looks up commands and invokes them with its own context.
type Registry struct {
	byName  map[string]Command
	primary map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Command),
		primary: make(map[string]Command),
	}
}

// Register adds a command under its name and any aliases. Usually called
// from init() or adapter setup. Later registrations win on collision.
func (r *Registry) Register(c Command) {
	r.primary[c.Name()] = c
	r.byName[c.Name()] = c
	if a, ok := Root(c).(Aliaser); ok {
		for _, alias := range a.Aliases() {
			r.byName[alias] = c
		}
	}
}

// Get returns the command registered under the given name or alias, or nil.
func (r *Registry) Get(name string) Command {
	return r.byName[name]
}

// GetAll returns all registered commands, one entry per primary name,
// sorted by name.
func (r *Registry) GetAll() []Command {
	list := make([]Command, 0, len(r.primary))
	for _, c := range r.primary {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
