package visit

import (
	"github.com/omarwahbi/VetSync-sub002/internal/visit/query"
	"github.com/omarwahbi/VetSync-sub002/internal/visit/repository"
	"github.com/omarwahbi/VetSync-sub002/internal/visit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("visit.service",
	fx.Provide(query.NewBuilder),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
