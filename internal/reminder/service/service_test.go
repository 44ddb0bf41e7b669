package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clinicdomain "github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
	clinicrepo "github.com/omarwahbi/VetSync-sub002/internal/clinic/repository"
	"github.com/omarwahbi/VetSync-sub002/internal/clinicctx"
	"github.com/omarwahbi/VetSync-sub002/internal/clock"
	"github.com/omarwahbi/VetSync-sub002/internal/dispatch"
	ownerdomain "github.com/omarwahbi/VetSync-sub002/internal/owner/domain"
	ownerrepo "github.com/omarwahbi/VetSync-sub002/internal/owner/repository"
	petdomain "github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
	petrepo "github.com/omarwahbi/VetSync-sub002/internal/pet/repository"
	"github.com/omarwahbi/VetSync-sub002/internal/reminder/domain"
	visitdomain "github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
	visitrepo "github.com/omarwahbi/VetSync-sub002/internal/visit/repository"
	"github.com/omarwahbi/VetSync-sub002/internal/visit/query"
)

type recordingDispatcher struct {
	delivered []dispatch.Reminder
	failWith  error
}

func (d *recordingDispatcher) Deliver(_ context.Context, reminder dispatch.Reminder) error {
	if d.failWith != nil {
		return d.failWith
	}
	d.delivered = append(d.delivered, reminder)
	return nil
}

type cycleFixture struct {
	svc        domain.Service
	db         *gorm.DB
	clk        *clock.FakeClock
	dispatcher *recordingDispatcher
	node       *snowflake.Node
}

func newCycleFixture(t *testing.T) *cycleFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "reminder.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&clinicdomain.Clinic{},
		&ownerdomain.Owner{},
		&petdomain.Pet{},
		&visitdomain.Visit{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	dispatcher := &recordingDispatcher{}

	svc := New(Params{
		DB:         db,
		Log:        log,
		Clock:      clk,
		Builder:    query.NewBuilder(log),
		ClinicRepo: clinicrepo.Provide(),
		VisitRepo:  visitrepo.Provide(),
		PetRepo:    petrepo.Provide(),
		OwnerRepo:  ownerrepo.Provide(),
		Dispatcher: dispatcher,
	})

	return &cycleFixture{svc: svc, db: db, clk: clk, dispatcher: dispatcher, node: node}
}

func (f *cycleFixture) createClinic(t *testing.T, mutate func(*clinicdomain.Clinic)) *clinicdomain.Clinic {
	t.Helper()
	end := f.clk.Now().Add(30 * 24 * time.Hour)
	clinic := &clinicdomain.Clinic{
		ID:                   f.node.Generate(),
		Name:                 "Riverside Vet",
		Timezone:             "UTC",
		IsActive:             true,
		CanSendReminders:     true,
		SubscriptionEndDate:  &end,
		ReminderMonthlyLimit: 10,
		UsagePeriod:          "2024-06",
	}
	if mutate != nil {
		mutate(clinic)
	}
	require.NoError(t, f.db.Create(clinic).Error)
	return clinic
}

func (f *cycleFixture) createVisit(t *testing.T, clinicID snowflake.ID, mutate func(*visitdomain.Visit)) *visitdomain.Visit {
	t.Helper()

	owner := &ownerdomain.Owner{
		ID:        f.node.Generate(),
		ClinicID:  clinicID,
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     "dana@example.com",
	}
	require.NoError(t, f.db.Create(owner).Error)

	pet := &petdomain.Pet{
		ID:       f.node.Generate(),
		ClinicID: clinicID,
		OwnerID:  owner.ID,
		Name:     "Biscuit",
		Species:  "dog",
	}
	require.NoError(t, f.db.Create(pet).Error)

	due := f.clk.Now().Add(2 * time.Hour)
	visit := &visitdomain.Visit{
		ID:                f.node.Generate(),
		ClinicID:          clinicID,
		PetID:             pet.ID,
		VisitDate:         f.clk.Now().Add(-30 * 24 * time.Hour),
		VisitType:         "vaccination",
		NextReminderDate:  &due,
		IsReminderEnabled: true,
	}
	if mutate != nil {
		mutate(visit)
	}
	require.NoError(t, f.db.Create(visit).Error)
	return visit
}

func (f *cycleFixture) reloadClinic(t *testing.T, id snowflake.ID) clinicdomain.Clinic {
	t.Helper()
	var clinic clinicdomain.Clinic
	require.NoError(t, f.db.Where("id = ?", id).First(&clinic).Error)
	return clinic
}

func (f *cycleFixture) reloadVisit(t *testing.T, id snowflake.ID) visitdomain.Visit {
	t.Helper()
	var visit visitdomain.Visit
	require.NoError(t, f.db.Where("id = ?", id).First(&visit).Error)
	return visit
}

func TestRunCycleDispatchesAndAppliesPairedWrite(t *testing.T) {
	f := newCycleFixture(t)
	clinic := f.createClinic(t, nil)
	visit := f.createVisit(t, clinic.ID, nil)

	stats, err := f.svc.RunCycle(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, stats.Clinics)
	require.Equal(t, 1, stats.Candidates)
	require.Equal(t, 1, stats.Dispatched)
	require.Equal(t, 0, stats.Failures)
	require.Len(t, f.dispatcher.delivered, 1)
	require.Equal(t, "Biscuit", f.dispatcher.delivered[0].PetName)
	require.Equal(t, "Dana Reyes", f.dispatcher.delivered[0].OwnerName)

	// The sent flag and usage counter moved together.
	require.True(t, f.reloadVisit(t, visit.ID).ReminderSent)
	require.Equal(t, 1, f.reloadClinic(t, clinic.ID).RemindersSentThisPeriod)
}

func TestRunCycleAlreadySentVisitIsNotCandidate(t *testing.T) {
	f := newCycleFixture(t)
	clinic := f.createClinic(t, nil)
	f.createVisit(t, clinic.ID, func(v *visitdomain.Visit) {
		v.ReminderSent = true
	})

	stats, err := f.svc.RunCycle(context.Background())
	require.NoError(t, err)

	require.Equal(t, 0, stats.Candidates)
	require.Equal(t, 0, stats.Dispatched)
	require.Empty(t, f.dispatcher.delivered)
}

func TestRunCycleDeniesOverQuota(t *testing.T) {
	f := newCycleFixture(t)
	clinic := f.createClinic(t, func(c *clinicdomain.Clinic) {
		c.ReminderMonthlyLimit = 1
		c.RemindersSentThisPeriod = 1
	})
	visit := f.createVisit(t, clinic.ID, nil)

	stats, err := f.svc.RunCycle(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, stats.Candidates)
	require.Equal(t, 0, stats.Dispatched)
	require.Equal(t, 1, stats.Denied[domain.DeniedQuotaExceeded])
	require.False(t, f.reloadVisit(t, visit.ID).ReminderSent)
}

func TestRunCycleRollsOverStaleUsagePeriod(t *testing.T) {
	f := newCycleFixture(t)
	clinic := f.createClinic(t, func(c *clinicdomain.Clinic) {
		c.UsagePeriod = "2024-05"
		c.RemindersSentThisPeriod = 10 // at the limit in the old period
	})
	f.createVisit(t, clinic.ID, nil)

	stats, err := f.svc.RunCycle(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, stats.Dispatched)

	reloaded := f.reloadClinic(t, clinic.ID)
	require.Equal(t, "2024-06", reloaded.UsagePeriod)
	require.Equal(t, 1, reloaded.RemindersSentThisPeriod)
}

func TestRunCycleDeliveryFailureLeavesStateUntouched(t *testing.T) {
	f := newCycleFixture(t)
	clinic := f.createClinic(t, nil)
	visit := f.createVisit(t, clinic.ID, nil)
	f.dispatcher.failWith = errors.New("smtp unavailable")

	stats, err := f.svc.RunCycle(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, stats.Failures)
	require.Equal(t, 0, stats.Dispatched)
	require.False(t, f.reloadVisit(t, visit.ID).ReminderSent)
	require.Equal(t, 0, f.reloadClinic(t, clinic.ID).RemindersSentThisPeriod)
}

func TestRunCycleSkipsInactiveClinics(t *testing.T) {
	f := newCycleFixture(t)
	clinic := f.createClinic(t, func(c *clinicdomain.Clinic) {
		c.IsActive = false
	})
	f.createVisit(t, clinic.ID, nil)

	stats, err := f.svc.RunCycle(context.Background())
	require.NoError(t, err)

	require.Equal(t, 0, stats.Clinics)
	require.Empty(t, f.dispatcher.delivered)
}

func TestPreviewReturnsDecisionWithoutDispatching(t *testing.T) {
	f := newCycleFixture(t)
	clinic := f.createClinic(t, func(c *clinicdomain.Clinic) {
		c.CanSendReminders = false
	})
	visit := f.createVisit(t, clinic.ID, nil)

	ctx := clinicctx.WithClinicID(context.Background(), clinic.ID)
	evaluation, err := f.svc.Preview(ctx, visit.ID.String())
	require.NoError(t, err)

	require.False(t, evaluation.Eligible)
	require.Equal(t, domain.DeniedRemindersDisabledForClinic, evaluation.Reason)
	require.Equal(t, "2024-06", evaluation.Period)
	require.Empty(t, f.dispatcher.delivered)
	require.False(t, f.reloadVisit(t, visit.ID).ReminderSent)
}

func TestPreviewRequiresClinicScope(t *testing.T) {
	f := newCycleFixture(t)
	clinic := f.createClinic(t, nil)
	visit := f.createVisit(t, clinic.ID, nil)

	_, err := f.svc.Preview(context.Background(), visit.ID.String())
	require.ErrorIs(t, err, domain.ErrInvalidClinic)
}
