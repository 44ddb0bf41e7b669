package pet

import (
	"github.com/omarwahbi/VetSync-sub002/internal/pet/repository"
	"github.com/omarwahbi/VetSync-sub002/internal/pet/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pet.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
