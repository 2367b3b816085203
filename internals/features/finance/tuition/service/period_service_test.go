// file: internals/features/finance/tuition/service/period_service_test.go
package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesgo_backend/internals/features/finance/tuition/model"
	"lesgo_backend/internals/features/finance/tuition/service"
)

func TestPeriodCreate(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewPeriodService(db)
	ctx := context.Background()

	t.Run("lahir CREATED", func(t *testing.T) {
		p, err := svc.Create(ctx, service.CreatePeriodInput{
			Name:      "Maret 2026",
			Month:     3,
			Year:      2026,
			StartDate: marchStart,
			EndDate:   marchEnd,
		})
		require.NoError(t, err)
		assert.True(t, p.IsCreated())
		assert.Nil(t, p.TuitionPeriodActivatedAt)
	})

	t.Run("rentang tanggal terbalik ditolak", func(t *testing.T) {
		_, err := svc.Create(ctx, service.CreatePeriodInput{
			Name:      "Salah",
			Month:     3,
			Year:      2026,
			StartDate: marchEnd,
			EndDate:   marchStart,
		})
		assert.ErrorIs(t, err, service.ErrInvalidDateRange)
	})
}

func TestPeriodUpdateOnlyWhenCreated(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewPeriodService(db)
	ctx := context.Background()

	created := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
	name := "Maret 2026 (revisi)"
	p, err := svc.Update(ctx, created.TuitionPeriodID, service.UpdatePeriodInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, p.TuitionPeriodName)

	// begitu ACTIVE, identitas beku
	active := seedPeriod(t, db, model.TuitionPeriodActive,
		marchStart.AddDate(0, 1, 0), marchEnd.AddDate(0, 1, 0))
	_, err = svc.Update(ctx, active.TuitionPeriodID, service.UpdatePeriodInput{Name: &name})
	var st *service.InvalidPeriodStateError
	require.ErrorAs(t, err, &st)
}

func TestPeriodDelete(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewPeriodService(db)
	ctx := context.Background()

	t.Run("CREATED tanpa order boleh dihapus", func(t *testing.T) {
		p := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
		require.NoError(t, svc.Delete(ctx, p.TuitionPeriodID))
		_, err := svc.Get(ctx, p.TuitionPeriodID)
		assert.ErrorIs(t, err, service.ErrPeriodNotFound)
	})

	t.Run("CREATED dengan order tertolak", func(t *testing.T) {
		p := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
		order := model.OrderModel{
			OrderTuitionPeriodID: &p.TuitionPeriodID,
			OrderPayerName:       "Bu Ratna",
		}
		require.NoError(t, db.Create(&order).Error)
		assert.ErrorIs(t, svc.Delete(ctx, p.TuitionPeriodID), service.ErrPeriodHasOrders)
	})

	t.Run("ACTIVE tertolak", func(t *testing.T) {
		p := seedPeriod(t, db, model.TuitionPeriodActive, marchStart, marchEnd)
		err := svc.Delete(ctx, p.TuitionPeriodID)
		var st *service.InvalidPeriodStateError
		require.ErrorAs(t, err, &st)
	})
}

func TestPeriodLifecycleOneWay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// transisi penuh lewat use case, bukan setter langsung:
	// CREATED → (billing commit) → ACTIVE → (reconcile execute) → CLOSED
	period := seedPeriod(t, db, model.TuitionPeriodCreated, marchStart, marchEnd)
	class := seedClass(t, db, "Biologi SMA", 1200000, 0, 8)
	student := seedStudent(t, db, "Ika", nil, strptr("0812007"))
	seedEnrollment(t, db, student, class, marchStart, 0)

	_, err := newBillingService(db).Generate(ctx, period.TuitionPeriodID, service.ModeCommit)
	require.NoError(t, err)
	var p model.TuitionPeriodModel
	require.NoError(t, db.First(&p, "tuition_period_id = ?", period.TuitionPeriodID).Error)
	require.True(t, p.IsActive())

	_, err = newReconcileService(db).Reconcile(ctx, period.TuitionPeriodID, service.ModeExecute)
	require.NoError(t, err)
	require.NoError(t, db.First(&p, "tuition_period_id = ?", period.TuitionPeriodID).Error)
	require.True(t, p.IsClosed())

	// CLOSED terminal: billing & reconcile dua-duanya tertolak
	_, err = newBillingService(db).Generate(ctx, period.TuitionPeriodID, service.ModeCommit)
	var st *service.InvalidPeriodStateError
	require.ErrorAs(t, err, &st)
	_, err = newReconcileService(db).Reconcile(ctx, period.TuitionPeriodID, service.ModeExecute)
	require.ErrorAs(t, err, &st)
}

func TestPeriodContains(t *testing.T) {
	p := model.TuitionPeriodModel{
		TuitionPeriodStartDate: marchStart,
		TuitionPeriodEndDate:   marchEnd,
	}
	assert.True(t, p.Contains(marchStart))
	assert.True(t, p.Contains(marchEnd))
	assert.True(t, p.Contains(marchStart.AddDate(0, 0, 15)))
	assert.False(t, p.Contains(marchStart.Add(-time.Hour)))
	assert.False(t, p.Contains(marchEnd.Add(24*time.Hour)))
}
