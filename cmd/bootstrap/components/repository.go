package components

import (
	repo_impl "salon-scheduler/internal/infra/repository"
	"salon-scheduler/internal/infra/uow"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(commands.UnitOfWork)),
		),
		// Pool-backed repository for the read side; writes go through the
		// unit of work, which builds tx-scoped repositories itself.
		fx.Annotate(
			repo_impl.NewAppointmentRepository,
			fx.As(new(queries.AppointmentReadStore)),
		),
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserRepository)),
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) repo_impl.DBTX {
	return pool
}
