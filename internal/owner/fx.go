package owner

import (
	"github.com/omarwahbi/VetSync-sub002/internal/owner/repository"
	"github.com/omarwahbi/VetSync-sub002/internal/owner/service"
	"go.uber.org/fx"
)

var Module = fx.Module("owner.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
