package auth

import (
	"go.uber.org/fx"

	"github.com/omarwahbi/VetSync-sub002/internal/auth/repository"
	"github.com/omarwahbi/VetSync-sub002/internal/auth/service"
	"github.com/omarwahbi/VetSync-sub002/internal/auth/session"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)
