package components

import (
	"context"

	"salon-scheduler/internal/handler"
	"salon-scheduler/internal/handler/api"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewAppointmentHandler,
		api.NewCatalogHandler,
		middleware.NewAuthMiddleware,
		NewAuthRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)

// NewAuthRateLimiter throttles credential endpoints only; booking traffic
// is not rate limited.
func NewAuthRateLimiter(lc fx.Lifecycle, cfg config.Config) *middleware.RateLimiter {
	rl := middleware.NewRateLimiter(cfg.Booking.AuthRateRPS, cfg.Booking.AuthRateBurst)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			rl.Stop()
			return nil
		},
	})
	return rl
}
