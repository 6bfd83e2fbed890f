package item_test

import (
	"testing"
	"time"

	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *item.Catalog {
	t.Helper()

	catalog, err := item.NewCatalog(
		"Initial",
		map[item.State][]item.State{
			"Initial":    {"Processing"},
			"Processing": {"Completed", "Failed"},
			"Completed":  {},
			"Failed":     {},
		},
		map[item.State]time.Duration{
			"Processing": 30 * time.Minute,
		},
	)
	require.NoError(t, err)
	return catalog
}

func TestNewCatalog(t *testing.T) {
	t.Run("valid_catalog", func(t *testing.T) {
		catalog := newTestCatalog(t)

		require.NoError(t, catalog.Validate())
		assert.Equal(t, item.State("Initial"), catalog.Initial())
	})

	t.Run("empty_transition_table_is_rejected", func(t *testing.T) {
		_, err := item.NewCatalog("Initial", nil, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("initial_state_must_be_declared", func(t *testing.T) {
		_, err := item.NewCatalog(
			"Missing",
			map[item.State][]item.State{"Initial": {}},
			nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("transition_target_must_be_declared", func(t *testing.T) {
		_, err := item.NewCatalog(
			"Initial",
			map[item.State][]item.State{"Initial": {"Ghost"}},
			nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("timeout_state_must_be_declared", func(t *testing.T) {
		_, err := item.NewCatalog(
			"Initial",
			map[item.State][]item.State{"Initial": {}},
			map[item.State]time.Duration{"Ghost": time.Minute},
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("timeout_must_be_positive", func(t *testing.T) {
		_, err := item.NewCatalog(
			"Initial",
			map[item.State][]item.State{"Initial": {}},
			map[item.State]time.Duration{"Initial": -time.Second},
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("blank_state_name_is_rejected", func(t *testing.T) {
		_, err := item.NewCatalog(
			"Initial",
			map[item.State][]item.State{"Initial": {}, "  ": {}},
			nil,
		)

		require.Error(t, err)
	})
}

func TestCatalog_IsAllowed(t *testing.T) {
	catalog := newTestCatalog(t)

	t.Run("declared_edge_is_allowed", func(t *testing.T) {
		assert.True(t, catalog.IsAllowed("Initial", "Processing"))
		assert.True(t, catalog.IsAllowed("Processing", "Completed"))
	})

	t.Run("missing_edge_is_not_allowed", func(t *testing.T) {
		assert.False(t, catalog.IsAllowed("Initial", "Completed"))
		assert.False(t, catalog.IsAllowed("Completed", "Initial"))
	})

	t.Run("unknown_states_are_never_allowed", func(t *testing.T) {
		assert.False(t, catalog.IsAllowed("Ghost", "Processing"))
		assert.False(t, catalog.IsAllowed("Initial", "Ghost"))
	})
}

func TestCatalog_IsTerminal(t *testing.T) {
	catalog := newTestCatalog(t)

	assert.True(t, catalog.IsTerminal("Completed"))
	assert.True(t, catalog.IsTerminal("Failed"))
	assert.False(t, catalog.IsTerminal("Initial"))
	assert.False(t, catalog.IsTerminal("Ghost"))
}

func TestCatalog_TimeoutFor(t *testing.T) {
	catalog := newTestCatalog(t)

	limit, ok := catalog.TimeoutFor("Processing")
	assert.True(t, ok)
	assert.Equal(t, 30*time.Minute, limit)

	_, ok = catalog.TimeoutFor("Initial")
	assert.False(t, ok)
}

func TestCatalog_States(t *testing.T) {
	catalog := newTestCatalog(t)

	assert.Equal(t,
		[]item.State{"Completed", "Failed", "Initial", "Processing"},
		catalog.States())
	assert.Equal(t,
		[]item.State{"Completed", "Failed"},
		catalog.TerminalStates())
}

func TestCatalog_Validate(t *testing.T) {
	t.Run("nil_catalog_is_invalid", func(t *testing.T) {
		var catalog *item.Catalog
		require.Error(t, catalog.Validate())
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		catalog := &item.Catalog{}
		err := catalog.Validate()
		require.Error(t, err)
		assert.Equal(t, item.ErrCatalogIsNotConstructed, err)
	})
}

func TestParseCatalog(t *testing.T) {
	t.Run("parses_full_document", func(t *testing.T) {
		doc := []byte(`
initial: Pending
states:
  Pending:
    transitions: [Processing, Cancelled]
    timeout: 30m
  Processing:
    transitions: [Completed, Failed]
    timeout: 2h
  Completed: {}
  Failed: {}
  Cancelled: {}
`)

		catalog, err := item.ParseCatalog(doc)

		require.NoError(t, err)
		assert.Equal(t, item.State("Pending"), catalog.Initial())
		assert.True(t, catalog.IsAllowed("Pending", "Processing"))
		assert.True(t, catalog.IsTerminal("Cancelled"))

		limit, ok := catalog.TimeoutFor("Processing")
		assert.True(t, ok)
		assert.Equal(t, 2*time.Hour, limit)
	})

	t.Run("rejects_malformed_yaml", func(t *testing.T) {
		_, err := item.ParseCatalog([]byte("{{not yaml"))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_bad_duration", func(t *testing.T) {
		doc := []byte(`
initial: A
states:
  A:
    timeout: soon
`)

		_, err := item.ParseCatalog(doc)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_undeclared_initial", func(t *testing.T) {
		doc := []byte(`
initial: Ghost
states:
  A: {}
`)

		_, err := item.ParseCatalog(doc)

		require.Error(t, err)
	})
}
