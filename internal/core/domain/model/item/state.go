package item

import (
	"strings"

	"stateflow/internal/pkg/errs"
)

// State is one member of a closed, catalog-defined set of phases an item can
// be in. The set itself is not fixed at compile time: it is supplied as
// configuration through the Catalog, which keeps the engine generic across
// domains. A State on its own only guarantees it carries a non-blank name;
// membership is checked against a Catalog.
type State string

// NewState creates a State from its name. The name must not be blank.
func NewState(name string) (State, error) {
	s := State(name)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate rejects blank state names.
func (s State) Validate() error {
	if strings.TrimSpace(string(s)) == "" {
		return errs.NewValueIsRequiredError("state name")
	}
	return nil
}

// String returns the state's name.
func (s State) String() string {
	return string(s)
}
