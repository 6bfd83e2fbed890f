package item

import (
	"fmt"
	"time"

	"stateflow/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// catalogDocument is the YAML shape of a catalog configuration:
//
//	initial: Pending
//	states:
//	  Pending:
//	    transitions: [Processing, Cancelled]
//	    timeout: 30m
//	  Processing:
//	    transitions: [Completed, Failed]
//	    timeout: 2h
//	  Completed: {}
//	  Failed: {}
//	  Cancelled: {}
type catalogDocument struct {
	Initial string                   `yaml:"initial"`
	States  map[string]stateDocument `yaml:"states"`
}

type stateDocument struct {
	Transitions []string `yaml:"transitions"`
	Timeout     string   `yaml:"timeout"`
}

// ParseCatalog builds a Catalog from its YAML configuration document.
// Timeouts use Go duration syntax ("30s", "5m", "2h").
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("catalog document", err)
	}

	transitions := make(map[State][]State, len(doc.States))
	timeouts := make(map[State]time.Duration)

	for name, stateDoc := range doc.States {
		state := State(name)
		targets := make([]State, 0, len(stateDoc.Transitions))
		for _, target := range stateDoc.Transitions {
			targets = append(targets, State(target))
		}
		transitions[state] = targets

		if stateDoc.Timeout != "" {
			limit, err := time.ParseDuration(stateDoc.Timeout)
			if err != nil {
				return nil, errs.NewValueIsInvalidErrorWithCause(
					"catalog document",
					fmt.Errorf("timeout of state %q: %w", name, err),
				)
			}
			timeouts[state] = limit
		}
	}

	return NewCatalog(State(doc.Initial), transitions, timeouts)
}
