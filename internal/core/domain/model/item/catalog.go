package item

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"stateflow/internal/pkg/errs"
	"stateflow/internal/pkg/guard"
)

// ErrCatalogIsNotConstructed is returned when a Catalog instance was not
// created through the NewCatalog factory method.
var ErrCatalogIsNotConstructed = errors.New("Catalog must be created via NewCatalog constructor")

// Catalog is the static definition of an item's state space: the set of
// states, the directed graph of allowed transitions between them, and an
// optional maximum duration an item may spend in each state.
//
// A Catalog is immutable once constructed and is shared read-only by every
// engine invocation. Changing the state space requires a new process
// configuration, not a runtime API.
//
// A state with no outgoing edges is terminal: once an item reaches it, no
// further transitions are allowed.
type Catalog struct {
	initial  State
	allowed  map[State]map[State]struct{}
	timeouts map[State]time.Duration

	guard guard.ConstructorGuard
}

// NewCatalog creates a validated Catalog.
//
// The transitions map enumerates every state as a key; the value lists its
// allowed target states (an empty list marks the state terminal). Every
// target must itself be a key, the initial state must be a member, and every
// timeout must reference a member with a positive duration.
func NewCatalog(
	initial State,
	transitions map[State][]State,
	timeouts map[State]time.Duration,
) (*Catalog, error) {
	if len(transitions) == 0 {
		return nil, errs.NewValueIsRequiredError("transitions")
	}
	if err := initial.Validate(); err != nil {
		return nil, err
	}

	allowed := make(map[State]map[State]struct{}, len(transitions))
	for from := range transitions {
		if err := from.Validate(); err != nil {
			return nil, err
		}
		allowed[from] = make(map[State]struct{})
	}

	if _, ok := allowed[initial]; !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"initial state",
			fmt.Errorf("%q is not declared in the transition table", initial),
		)
	}

	for from, targets := range transitions {
		for _, to := range targets {
			if _, ok := allowed[to]; !ok {
				return nil, errs.NewValueIsInvalidErrorWithCause(
					"transitions",
					fmt.Errorf("target %q of %q is not declared in the transition table", to, from),
				)
			}
			allowed[from][to] = struct{}{}
		}
	}

	catalogTimeouts := make(map[State]time.Duration, len(timeouts))
	for state, limit := range timeouts {
		if _, ok := allowed[state]; !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"timeouts",
				fmt.Errorf("state %q is not declared in the transition table", state),
			)
		}
		if limit <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"timeouts",
				fmt.Errorf("timeout of state %q must be positive, got %s", state, limit),
			)
		}
		catalogTimeouts[state] = limit
	}

	return &Catalog{
		initial:  initial,
		allowed:  allowed,
		timeouts: catalogTimeouts,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Catalog was created through NewCatalog.
func (c *Catalog) Validate() error {
	if c == nil {
		return ErrCatalogIsNotConstructed
	}
	return c.guard.Validate(ErrCatalogIsNotConstructed)
}

// Initial returns the designated initial state for new items.
func (c *Catalog) Initial() State {
	return c.initial
}

// Contains reports whether the state is a member of the catalog.
func (c *Catalog) Contains(state State) bool {
	_, ok := c.allowed[state]
	return ok
}

// IsAllowed reports whether a transition from one state to another is
// present in the transition table. Unknown states are never allowed.
func (c *Catalog) IsAllowed(from, to State) bool {
	targets, ok := c.allowed[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// IsTerminal reports whether the state is a member with no outgoing edges.
func (c *Catalog) IsTerminal(state State) bool {
	targets, ok := c.allowed[state]
	return ok && len(targets) == 0
}

// TimeoutFor returns the maximum duration an item may spend in the state,
// and whether such a limit is configured.
func (c *Catalog) TimeoutFor(state State) (time.Duration, bool) {
	limit, ok := c.timeouts[state]
	return limit, ok
}

// States returns all member states in lexical order.
func (c *Catalog) States() []State {
	states := make([]State, 0, len(c.allowed))
	for state := range c.allowed {
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

// TerminalStates returns all terminal states in lexical order.
func (c *Catalog) TerminalStates() []State {
	states := make([]State, 0)
	for state, targets := range c.allowed {
		if len(targets) == 0 {
			states = append(states, state)
		}
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}
