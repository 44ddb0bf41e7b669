package service

import (
	"context"
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
	ownerdomain "github.com/omarwahbi/VetSync-sub002/internal/owner/domain"
	petdomain "github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
	petrepo "github.com/omarwahbi/VetSync-sub002/internal/pet/repository"
	"github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/visit/query"
	visitrepo "github.com/omarwahbi/VetSync-sub002/internal/visit/repository"
)

type listFixture struct {
	svc  domain.Service
	db   *gorm.DB
	clk  *clock.FakeClock
	node *snowflake.Node
}

func newListFixture(t *testing.T) *listFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "visit.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&clinicdomain.Clinic{},
		&ownerdomain.Owner{},
		&petdomain.Pet{},
		&domain.Visit{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:         db,
		Log:        log,
		GenID:      node,
		Clock:      clk,
		Repo:       visitrepo.Provide(),
		PetRepo:    petrepo.Provide(),
		ClinicRepo: clinicrepo.Provide(),
		Builder:    query.NewBuilder(log),
	})

	return &listFixture{svc: svc, db: db, clk: clk, node: node}
}

func (f *listFixture) createClinic(t *testing.T) *clinicdomain.Clinic {
	t.Helper()
	clinic := &clinicdomain.Clinic{
		ID:       f.node.Generate(),
		Name:     "Riverside Vet",
		Timezone: "UTC",
		IsActive: true,
	}
	require.NoError(t, f.db.Create(clinic).Error)
	return clinic
}

func (f *listFixture) createVisit(t *testing.T, clinicID snowflake.ID, mutate func(*domain.Visit)) *domain.Visit {
	t.Helper()

	owner := &ownerdomain.Owner{
		ID:        f.node.Generate(),
		ClinicID:  clinicID,
		FirstName: "Dana",
		LastName:  "Reyes",
	}
	require.NoError(t, f.db.Create(owner).Error)

	pet := &petdomain.Pet{
		ID:       f.node.Generate(),
		ClinicID: clinicID,
		OwnerID:  owner.ID,
		Name:     "Biscuit",
	}
	require.NoError(t, f.db.Create(pet).Error)

	visit := &domain.Visit{
		ID:        f.node.Generate(),
		ClinicID:  clinicID,
		PetID:     pet.ID,
		VisitDate: f.clk.Now(),
		VisitType: "checkup",
		CreatedAt: f.clk.Now(),
		UpdatedAt: f.clk.Now(),
	}
	if mutate != nil {
		mutate(visit)
	}
	require.NoError(t, f.db.Create(visit).Error)
	return visit
}

func TestListReturnsVisitsAcrossAllDates(t *testing.T) {
	f := newListFixture(t)
	clinic := f.createClinic(t)
	ctx := clinicctx.WithClinicID(context.Background(), clinic.ID)

	f.createVisit(t, clinic.ID, func(v *domain.Visit) {
		v.VisitDate = f.clk.Now().AddDate(-1, 0, 0)
	})
	f.createVisit(t, clinic.ID, func(v *domain.Visit) {
		v.VisitDate = f.clk.Now().AddDate(0, 2, 0)
	})

	resp, err := f.svc.List(ctx, domain.ListVisitRequest{})
	require.NoError(t, err)

	// No date window: past and far-future visits both come back.
	require.Len(t, resp.Visits, 2)
	require.Nil(t, resp.Window)
}

func TestListNarrowsByTypeAndReminderFlag(t *testing.T) {
	f := newListFixture(t)
	clinic := f.createClinic(t)
	ctx := clinicctx.WithClinicID(context.Background(), clinic.ID)

	f.createVisit(t, clinic.ID, func(v *domain.Visit) {
		v.VisitType = "surgery"
		v.IsReminderEnabled = true
	})
	f.createVisit(t, clinic.ID, func(v *domain.Visit) {
		v.VisitType = "checkup"
	})

	surgery := "surgery"
	resp, err := f.svc.List(ctx, domain.ListVisitRequest{VisitType: &surgery})
	require.NoError(t, err)
	require.Len(t, resp.Visits, 1)
	require.Equal(t, "surgery", resp.Visits[0].VisitType)

	enabled := true
	resp, err = f.svc.List(ctx, domain.ListVisitRequest{ReminderEnabled: &enabled})
	require.NoError(t, err)
	require.Len(t, resp.Visits, 1)
	require.True(t, resp.Visits[0].IsReminderEnabled)
}

func TestListScopedToClinic(t *testing.T) {
	f := newListFixture(t)
	clinic := f.createClinic(t)
	other := f.createClinic(t)
	f.createVisit(t, other.ID, nil)

	resp, err := f.svc.List(clinicctx.WithClinicID(context.Background(), clinic.ID), domain.ListVisitRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Visits)
}

func TestListRequiresClinicScope(t *testing.T) {
	f := newListFixture(t)

	_, err := f.svc.List(context.Background(), domain.ListVisitRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidClinic)
}

func TestDueTodayReportsWindow(t *testing.T) {
	f := newListFixture(t)
	clinic := f.createClinic(t)
	ctx := clinicctx.WithClinicID(context.Background(), clinic.ID)

	f.createVisit(t, clinic.ID, nil)

	resp, err := f.svc.DueToday(ctx, domain.DueTodayRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Visits, 1)
	require.NotNil(t, resp.Window)
	require.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), resp.Window.Start)
}