// Package validation provides the pluggable business-rule pipeline the
// transition engine runs before committing a transition. Checks are supplied
// at construction as an ordered list; the pipeline runs every check and
// merges their findings so a caller sees all violated rules in one report,
// not just the first.
package validation

import (
	"context"
	"time"

	"stateflow/internal/core/domain/model/item"
)

// Result is the immutable outcome of one validation attempt. Errors are
// accumulated in check order and intentionally not deduplicated.
type Result struct {
	valid       bool
	errors      []string
	validatedAt time.Time
}

// Valid produces a passing result.
func Valid() Result {
	return Result{valid: true, validatedAt: time.Now().UTC()}
}

// Invalid produces a failing result carrying one or more rule violations.
// With no violations it degenerates to a passing result.
func Invalid(violations ...string) Result {
	if len(violations) == 0 {
		return Valid()
	}
	return Result{
		valid:       false,
		errors:      append([]string(nil), violations...),
		validatedAt: time.Now().UTC(),
	}
}

// IsValid reports whether every check passed.
func (r Result) IsValid() bool {
	return r.valid
}

// Errors returns a copy of the violations in check order.
func (r Result) Errors() []string {
	return append([]string(nil), r.errors...)
}

// ValidatedAt returns when the result was produced.
func (r Result) ValidatedAt() time.Time {
	return r.validatedAt
}

// merge folds another result into this one, keeping violation order.
func (r Result) merge(other Result) Result {
	merged := Result{
		valid:       r.valid && other.valid,
		errors:      append(append([]string(nil), r.errors...), other.errors...),
		validatedAt: other.validatedAt,
	}
	if merged.validatedAt.IsZero() {
		merged.validatedAt = r.validatedAt
	}
	return merged
}

// Validator is a single business-rule check. Implementations read the item's
// state and history but never mutate it. Side effects (external lookups) are
// permitted but must be idempotent: a retried validation must not charge an
// external resource twice.
type Validator interface {
	Validate(ctx context.Context, it *item.Item, target item.State) Result
}

// Func adapts an ordinary function to the Validator interface.
type Func func(ctx context.Context, it *item.Item, target item.State) Result

// Validate calls the wrapped function.
func (f Func) Validate(ctx context.Context, it *item.Item, target item.State) Result {
	return f(ctx, it, target)
}

// Pipeline is an ordered set of validators. It is immutable after
// construction and safe to share across concurrent engine invocations.
type Pipeline struct {
	validators []Validator
}

// NewPipeline creates a pipeline running the given validators in order.
// A pipeline with zero validators always passes.
func NewPipeline(validators ...Validator) Pipeline {
	return Pipeline{validators: append([]Validator(nil), validators...)}
}

// Len returns the number of registered validators.
func (p Pipeline) Len() int {
	return len(p.validators)
}

// Run executes every validator in registration order, without
// short-circuiting on the first failure, and merges all findings into a
// single Result.
func (p Pipeline) Run(ctx context.Context, it *item.Item, target item.State) Result {
	result := Valid()
	for _, validator := range p.validators {
		result = result.merge(validator.Validate(ctx, it, target))
	}
	return result
}
