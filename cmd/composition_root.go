package cmd

import (
	"log/slog"

	"stateflow/internal/adapters/out/eventbus"
	"stateflow/internal/adapters/out/postgres"
	"stateflow/internal/core/application/usecases/commands"
	"stateflow/internal/core/application/usecases/queries"
	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/validation"
	"stateflow/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the application's object graph: the unit-of-work
// factory, the state catalog, the validation pipeline, and the event
// dispatcher all handlers share.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	catalog    *item.Catalog
	pipeline   validation.Pipeline
	dispatcher *eventbus.Dispatcher
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph. Validators are registered at
// composition time; the pipeline is immutable afterwards.
func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	catalog *item.Catalog,
	pipeline validation.Pipeline,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    catalog,
		pipeline:   pipeline,
		dispatcher: eventbus.NewDispatcher(logger),
		logger:     logger,
	}
}

// EventDispatcher exposes the dispatcher so callers can register listeners.
func (c *CompositionRoot) EventDispatcher() *eventbus.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateCreateItemCommandHandler() commands.CreateItemCommandHandler {
	var f commands.ItemUoWFactory = FuncItemUoWFactory(func() commands.ItemUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateItemCommandHandler(f, c.catalog)
}

func (c *CompositionRoot) CreateAttemptTransitionCommandHandler() commands.AttemptTransitionCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAttemptTransitionCommandHandler(f, c.catalog, c.pipeline, c.dispatcher)
}

func (c *CompositionRoot) CreateGetItemQueryHandler() queries.GetItemQueryHandler {
	return queries.NewGetItemQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditTrailQueryHandler() queries.GetAuditTrailQueryHandler {
	return queries.NewGetAuditTrailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleItemsQueryHandler() queries.GetStaleItemsQueryHandler {
	return queries.NewGetStaleItemsQueryHandler(c.gormDB, c.catalog)
}

func (c *CompositionRoot) CreateJobManager(schedule string) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetStaleItemsQueryHandler(), schedule, c.logger)
}

type FuncItemUoWFactory func() commands.ItemUoW

func (f FuncItemUoWFactory) Create() commands.ItemUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
