package booking

import (
	"context"
	"testing"
	"time"

	"styledecor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminActor     = models.Actor{Email: "admin@styledecor.com", Role: models.RoleAdmin}
	decoratorActor = models.Actor{Email: "deco@styledecor.com", Role: models.RoleDecorator}
)

func seedBooking(t *testing.T, repo *memBookingRepo, status models.BookingStatus, bookingDate string) *models.Booking {
	t.Helper()
	b := &models.Booking{
		ID:            "bk-1",
		ClientEmail:   "client@styledecor.com",
		ServiceName:   "Wedding Decoration",
		Category:      "wedding",
		Location:      "Nairobi",
		BookingDate:   bookingDate,
		TotalCost:     450,
		Status:        status,
		PaymentStatus: models.PaymentPaid,
	}
	if status.Busy() {
		b.DecoratorID = "dec-1"
		b.DecoratorName = "Jane"
		b.DecoratorEmail = decoratorActor.Email
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func newStatusService(repo *memBookingRepo, strict bool, now time.Time) *DefaultStatusService {
	return &DefaultStatusService{
		Repo:             repo,
		Logger:           testLogger(),
		StrictSequencing: strict,
		Now:              func() time.Time { return now },
	}
}

func TestApplyTransitionForwardChain(t *testing.T) {
	day := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		from     models.BookingStatus
		to       models.BookingStatus
		strict   bool
		wantCode string
	}{
		{name: "assigned to materials", from: models.StatusDecoratorAssigned, to: models.StatusMaterialsPrepared},
		{name: "materials to on the way", from: models.StatusMaterialsPrepared, to: models.StatusOnTheWay},
		{name: "on the way to setup", from: models.StatusOnTheWay, to: models.StatusSetupInProgress},
		{name: "setup to completed", from: models.StatusSetupInProgress, to: models.StatusCompleted},
		{name: "lenient jump to completed", from: models.StatusDecoratorAssigned, to: models.StatusCompleted},
		{name: "strict rejects jump", from: models.StatusDecoratorAssigned, to: models.StatusCompleted, strict: true, wantCode: CodeInvalidTransition},
		{name: "strict allows single step", from: models.StatusOnTheWay, to: models.StatusSetupInProgress, strict: true},
		{name: "backward move rejected", from: models.StatusOnTheWay, to: models.StatusMaterialsPrepared, wantCode: CodeInvalidTransition},
		{name: "same status rejected", from: models.StatusMaterialsPrepared, to: models.StatusMaterialsPrepared, wantCode: CodeInvalidTransition},
		{name: "completed is terminal", from: models.StatusCompleted, to: models.StatusSetupInProgress, wantCode: CodeInvalidTransition},
		{name: "cannot enter chain from pending payment", from: models.StatusPendingPayment, to: models.StatusDecoratorAssigned, wantCode: CodeInvalidTransition},
		{name: "cannot leave chain to pending payment", from: models.StatusDecoratorAssigned, to: models.StatusPendingPayment, wantCode: CodeInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemBookingRepo()
			seedBooking(t, repo, tc.from, day.Format(models.BookingDateLayout))
			svc := newStatusService(repo, tc.strict, day)

			updated, err := svc.ApplyTransition(context.Background(), "bk-1", tc.to, adminActor)
			if tc.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantCode, CodeOf(err))
				stored, gerr := repo.GetByID(context.Background(), "bk-1")
				require.NoError(t, gerr)
				assert.Equal(t, tc.from, stored.Status, "rejected transition must not change the booking")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, updated.Status)
		})
	}
}

func TestApplyTransitionUnknownStatus(t *testing.T) {
	repo := newMemBookingRepo()
	svc := newStatusService(repo, false, time.Now())

	_, err := svc.ApplyTransition(context.Background(), "bk-1", "shipped", adminActor)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidTransition, CodeOf(err))
}

func TestApplyTransitionBookingNotFound(t *testing.T) {
	repo := newMemBookingRepo()
	svc := newStatusService(repo, false, time.Now())

	_, err := svc.ApplyTransition(context.Background(), "missing", models.StatusMaterialsPrepared, adminActor)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestDateGate(t *testing.T) {
	bookingDate := "2026-06-10"

	t.Run("on site statuses blocked before the booking date", func(t *testing.T) {
		for _, target := range []models.BookingStatus{models.StatusOnTheWay, models.StatusSetupInProgress, models.StatusCompleted} {
			repo := newMemBookingRepo()
			seedBooking(t, repo, models.StatusMaterialsPrepared, bookingDate)
			svc := newStatusService(repo, false, time.Date(2026, 6, 9, 23, 59, 0, 0, time.UTC))

			_, err := svc.ApplyTransition(context.Background(), "bk-1", target, decoratorActor)
			require.Error(t, err, "target %s", target)
			assert.Equal(t, CodePolicyViolation, CodeOf(err))
		}
	})

	t.Run("allowed from midnight of the booking date", func(t *testing.T) {
		repo := newMemBookingRepo()
		seedBooking(t, repo, models.StatusMaterialsPrepared, bookingDate)
		svc := newStatusService(repo, false, time.Date(2026, 6, 10, 0, 0, 1, 0, time.UTC))

		updated, err := svc.ApplyTransition(context.Background(), "bk-1", models.StatusOnTheWay, decoratorActor)
		require.NoError(t, err)
		assert.Equal(t, models.StatusOnTheWay, updated.Status)
	})

	t.Run("allowed after the booking date", func(t *testing.T) {
		repo := newMemBookingRepo()
		seedBooking(t, repo, models.StatusMaterialsPrepared, bookingDate)
		svc := newStatusService(repo, false, time.Date(2026, 6, 12, 10, 0, 0, 0, time.UTC))

		_, err := svc.ApplyTransition(context.Background(), "bk-1", models.StatusCompleted, decoratorActor)
		require.NoError(t, err)
	})

	t.Run("materials prepared is never date gated", func(t *testing.T) {
		repo := newMemBookingRepo()
		seedBooking(t, repo, models.StatusDecoratorAssigned, bookingDate)
		svc := newStatusService(repo, false, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

		_, err := svc.ApplyTransition(context.Background(), "bk-1", models.StatusMaterialsPrepared, decoratorActor)
		require.NoError(t, err)
	})
}

func TestTransitionAuthorization(t *testing.T) {
	day := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)

	t.Run("assigned decorator may advance", func(t *testing.T) {
		repo := newMemBookingRepo()
		seedBooking(t, repo, models.StatusDecoratorAssigned, day.Format(models.BookingDateLayout))
		svc := newStatusService(repo, false, day)

		_, err := svc.ApplyTransition(context.Background(), "bk-1", models.StatusMaterialsPrepared, decoratorActor)
		require.NoError(t, err)
	})

	t.Run("other decorator is forbidden", func(t *testing.T) {
		repo := newMemBookingRepo()
		seedBooking(t, repo, models.StatusDecoratorAssigned, day.Format(models.BookingDateLayout))
		svc := newStatusService(repo, false, day)

		other := models.Actor{Email: "other@styledecor.com", Role: models.RoleDecorator}
		_, err := svc.ApplyTransition(context.Background(), "bk-1", models.StatusMaterialsPrepared, other)
		require.Error(t, err)
		assert.Equal(t, CodeForbidden, CodeOf(err))
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		repo := newMemBookingRepo()
		seedBooking(t, repo, models.StatusDecoratorAssigned, day.Format(models.BookingDateLayout))
		svc := newStatusService(repo, false, day)

		client := models.Actor{Email: "client@styledecor.com", Role: models.RoleUser}
		_, err := svc.ApplyTransition(context.Background(), "bk-1", models.StatusMaterialsPrepared, client)
		require.Error(t, err)
		assert.Equal(t, CodeForbidden, CodeOf(err))
	})
}

func TestReject(t *testing.T) {
	t.Run("clears decorator fields and frees the date", func(t *testing.T) {
		repo := newMemBookingRepo()
		seedBooking(t, repo, models.StatusMaterialsPrepared, "2026-06-10")
		svc := newStatusService(repo, false, time.Now())

		updated, err := svc.Reject(context.Background(), "bk-1", decoratorActor)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPendingDecorator, updated.Status)
		assert.Empty(t, updated.DecoratorID)
		assert.Empty(t, updated.DecoratorName)
		assert.Empty(t, updated.DecoratorEmail)
		assert.Equal(t, models.PaymentPaid, updated.PaymentStatus, "reject must not touch payment state")

		conflict, err := repo.FindScheduleConflict(context.Background(), "dec-1", "2026-06-10", "")
		require.NoError(t, err)
		assert.Nil(t, conflict, "rejected booking no longer occupies the date")
	})

	t.Run("routed through ApplyTransition target pending-decorator", func(t *testing.T) {
		repo := newMemBookingRepo()
		seedBooking(t, repo, models.StatusDecoratorAssigned, "2026-06-10")
		svc := newStatusService(repo, false, time.Now())

		updated, err := svc.ApplyTransition(context.Background(), "bk-1", models.StatusPendingDecorator, decoratorActor)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPendingDecorator, updated.Status)
		assert.Empty(t, updated.DecoratorEmail)
	})

	t.Run("completed booking cannot be rejected", func(t *testing.T) {
		repo := newMemBookingRepo()
		seedBooking(t, repo, models.StatusCompleted, "2026-06-10")
		svc := newStatusService(repo, false, time.Now())

		_, err := svc.Reject(context.Background(), "bk-1", adminActor)
		require.Error(t, err)
		assert.Equal(t, CodeInvalidTransition, CodeOf(err))
	})

	t.Run("unassigned booking cannot be rejected", func(t *testing.T) {
		repo := newMemBookingRepo()
		seedBooking(t, repo, models.StatusPendingDecorator, "2026-06-10")
		svc := newStatusService(repo, false, time.Now())

		_, err := svc.Reject(context.Background(), "bk-1", adminActor)
		require.Error(t, err)
		assert.Equal(t, CodeInvalidTransition, CodeOf(err))
	})
}

func TestApplyTransitionConcurrentWriters(t *testing.T) {
	day := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	repo := newMemBookingRepo()
	seedBooking(t, repo, models.StatusDecoratorAssigned, day.Format(models.BookingDateLayout))
	svc := newStatusService(repo, false, day)

	// Two writers race the same compare-and-swap; exactly one must win.
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.ApplyTransition(context.Background(), "bk-1", models.StatusMaterialsPrepared, adminActor)
			results <- err
		}()
	}

	var failures int
	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			failures++
			code := CodeOf(err)
			assert.Contains(t, []string{CodeConflict, CodeInvalidTransition}, code)
		}
	}
	assert.Equal(t, 1, failures, "exactly one of two racing transitions must fail")

	stored, err := repo.GetByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusMaterialsPrepared, stored.Status)
}
