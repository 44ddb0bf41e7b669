package dispatch

import (
	"github.com/omarwahbi/VetSync-sub002/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("dispatch",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config, log *zap.Logger) Provider {
	if cfg.Dispatch.Provider == "smtp" && cfg.Dispatch.SMTPHost != "" {
		return NewSMTP(SMTPConfig{
			Host:     cfg.Dispatch.SMTPHost,
			Port:     cfg.Dispatch.SMTPPort,
			Username: cfg.Dispatch.SMTPUser,
			Password: cfg.Dispatch.SMTPPass,
			From:     cfg.Dispatch.From,
		})
	}
	return NewLog(log)
}
