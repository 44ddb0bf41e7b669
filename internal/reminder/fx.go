package reminder

import (
	"github.com/omarwahbi/VetSync-sub002/internal/reminder/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reminder.service",
	fx.Provide(service.New),
)
