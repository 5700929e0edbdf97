package contract

import (
	"go/token"
	"slices"

	"go.uber.org/zap"

	"github.com/wippyai/nativeobjects/errors"
)

// Slot is one entry of a flattened contract.
type Slot struct {
	Owner  *Contract
	Method *Method
	Index  int
}

// FlattenedList is the ordered method sequence of a contract; position is slot index.
type FlattenedList struct {
	Contract *Contract
	Slots    []Slot
}

// Len returns the number of slots.
func (l *FlattenedList) Len() int {
	return len(l.Slots)
}

// Names returns the method names in slot order.
func (l *FlattenedList) Names() []string {
	names := make([]string, len(l.Slots))
	for i, s := range l.Slots {
		names[i] = s.Method.Name
	}
	return names
}

// FlattenOptions controls how unsupported members are treated.
type FlattenOptions struct {
	// SkipUnsupported skips non-method members with a warning instead of rejecting the contract.
	SkipUnsupported bool
}

// Flatten orders all methods of c and its bases into one slot sequence.
func Flatten(c *Contract, opts FlattenOptions) (*FlattenedList, error) {
	if c == nil {
		return nil, errors.InvalidInput(errors.PhaseFlatten, "nil contract")
	}

	order, err := linearize(c)
	if err != nil {
		return nil, err
	}

	list := &FlattenedList{Contract: c}
	owners := make(map[string]*Contract)

	for _, owner := range order {
		for _, m := range owner.Members {
			path := []string{owner.Name, m.Name}

			if m.Kind.pseudo() {
				continue
			}
			if m.Kind != MemberMethod {
				if opts.SkipUnsupported {
					Logger().Warn("skipping non-method member",
						zap.String("contract", owner.Name),
						zap.String("member", m.Name),
						zap.Stringer("kind", m.Kind))
					continue
				}
				return nil, errors.UnsupportedMember(path, m.Kind.String())
			}
			if m.Method == nil {
				return nil, errors.InvalidData(errors.PhaseFlatten, path, "method member without signature")
			}
			if err := checkMethod(owner, m.Method); err != nil {
				return nil, err
			}
			if prev, ok := owners[m.Method.Name]; ok {
				return nil, errors.DuplicateMethod([]string{c.Name}, m.Method.Name, prev.Name, owner.Name)
			}

			owners[m.Method.Name] = owner
			list.Slots = append(list.Slots, Slot{
				Index:  len(list.Slots),
				Owner:  owner,
				Method: m.Method,
			})
		}
	}

	Logger().Debug("flattened contract",
		zap.String("contract", c.Name),
		zap.Int("bases", len(order)-1),
		zap.Strings("slots", list.Names()))

	return list, nil
}

// linearize returns c's base closure, ancestors before descendants, c last.
func linearize(root *Contract) ([]*Contract, error) {
	const (
		unvisited = iota
		active
		done
	)

	var (
		order []*Contract
		stack []string
		state = make(map[*Contract]int)
	)

	var visit func(c *Contract) error
	visit = func(c *Contract) error {
		switch state[c] {
		case done:
			return nil
		case active:
			start := slices.Index(stack, c.Name)
			return errors.Cycle(append(slices.Clone(stack[start:]), c.Name))
		}

		state[c] = active
		stack = append(stack, c.Name)

		for _, base := range c.Bases {
			if base == nil {
				return errors.InvalidData(errors.PhaseFlatten, []string{c.Name}, "nil base contract")
			}
			if err := visit(base); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		state[c] = done
		order = append(order, c)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return order, nil
}

func checkMethod(owner *Contract, m *Method) error {
	path := []string{owner.Name, m.Name}

	if !token.IsIdentifier(m.Name) || !token.IsExported(m.Name) {
		return errors.InvalidData(errors.PhaseFlatten, path, "method name must be an exported Go identifier")
	}

	names := make(map[string]bool, len(m.Params))
	for i, p := range m.Params {
		if p.Type.WIT == nil {
			return errors.New(errors.PhaseFlatten, errors.KindInvalidData).
				Path(path...).
				Detail("parameter %d has no type", i).
				Build()
		}
		if p.Name == "" {
			continue
		}
		if !token.IsIdentifier(p.Name) {
			return errors.New(errors.PhaseFlatten, errors.KindInvalidData).
				Path(owner.Name, m.Name, p.Name).
				Detail("parameter %d name is not a Go identifier", i).
				Build()
		}
		if names[p.Name] {
			return errors.New(errors.PhaseFlatten, errors.KindInvalidData).
				Path(owner.Name, m.Name, p.Name).
				Detail("duplicate parameter name").
				Build()
		}
		names[p.Name] = true
	}
	return nil
}
