package dispatch

import (
	"context"

	"go.uber.org/zap"
)

// LogProvider records deliveries instead of sending them. Default for
// development and the provider under test.
type LogProvider struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *LogProvider {
	return &LogProvider{log: log.Named("dispatch.log")}
}

func (p *LogProvider) Deliver(ctx context.Context, reminder Reminder) error {
	p.log.Info("reminder delivered",
		zap.String("clinic_id", reminder.ClinicID.String()),
		zap.String("visit_id", reminder.VisitID.String()),
		zap.String("owner_email", reminder.OwnerEmail),
		zap.Time("visit_date", reminder.VisitDate),
	)
	return nil
}
