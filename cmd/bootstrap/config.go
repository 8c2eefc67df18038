package bootstrap

import (
	"time"
	_ "time/tzdata" // APP_TIMEZONE must resolve on images without zoneinfo

	"reservebook/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewLocation,
	),
)

// NewLocation is the zone form input is read in and timestamps are rendered in.
func NewLocation(cfg config.Config) (*time.Location, error) {
	return cfg.App.Location()
}
