package keymap

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys, for help
}

// NewResolver builds a resolver from layers of bindings. A key bound in a
// later layer shadows the earlier binding, and the shadowed action loses
// that key.
func NewResolver(layers ...[]Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, layer := range layers {
		for _, b := range layer {
			for _, key := range b.Keys {
				r.bindings[key] = b.Action
			}
		}
	}
	// Rebuild the reverse index from the winners only.
	for _, layer := range layers {
		for _, b := range layer {
			for _, key := range b.Keys {
				if r.bindings[key] == b.Action && !contains(r.byAction[b.Action], key) {
					r.byAction[b.Action] = append(r.byAction[b.Action], key)
				}
			}
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
