package clinic

import (
	"github.com/omarwahbi/VetSync-sub002/internal/clinic/repository"
	"github.com/omarwahbi/VetSync-sub002/internal/clinic/service"
	"go.uber.org/fx"
)

var Module = fx.Module("clinic.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
