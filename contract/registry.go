package contract

import (
	"github.com/wippyai/nativeobjects/errors"
)

// Registry is the generation-time list of contracts, in registration order.
// It is not safe for concurrent mutation; build it once, then read it from any goroutine.
type Registry struct {
	byName    map[string]*Contract
	contracts []*Contract
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Contract)}
}

// Register adds c. Contract names are unique within a registry.
func (r *Registry) Register(c *Contract) error {
	if c == nil || c.Name == "" {
		return errors.InvalidInput(errors.PhaseLoad, "contract must have a name")
	}
	if _, exists := r.byName[c.Name]; exists {
		return errors.DuplicateContract(c.Name)
	}
	r.byName[c.Name] = c
	r.contracts = append(r.contracts, c)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(contracts ...*Contract) *Registry {
	for _, c := range contracts {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup finds a contract by name.
func (r *Registry) Lookup(name string) (*Contract, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Contracts returns the registered contracts in registration order.
func (r *Registry) Contracts() []*Contract {
	out := make([]*Contract, len(r.contracts))
	copy(out, r.contracts)
	return out
}

// Len returns the number of registered contracts.
func (r *Registry) Len() int {
	return len(r.contracts)
}
