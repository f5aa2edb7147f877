package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	bookingRepo "styledecor/database/repository/booking"
	decoratorRepo "styledecor/database/repository/decorator"
	paymentRepo "styledecor/database/repository/payment"
	"styledecor/models"

	"go.uber.org/zap"
)

func testLogger() *zap.Logger { return zap.NewNop() }

// memBookingRepo mirrors the conditional-write semantics of the Mongo
// repository, including the unique (decoratorId, bookingDate) constraint over
// busy statuses, so races observed here match what the store enforces.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *memBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.bookings[b.ID] = *b
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return &b, nil
}

func (r *memBookingRepo) List(_ context.Context, q bookingRepo.Query) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if q.ClientEmail != "" && b.ClientEmail != q.ClientEmail {
			continue
		}
		if q.DecoratorEmail != "" && b.DecoratorEmail != q.DecoratorEmail {
			continue
		}
		if q.Status != "" && b.Status != q.Status {
			continue
		}
		if q.BookingDate != "" && b.BookingDate != q.BookingDate {
			continue
		}
		excluded := false
		for _, s := range q.ExcludeStatuses {
			if b.Status == s {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		out = append(out, b)
	}
	if q.SortByDate {
		sort.Slice(out, func(i, j int) bool { return out[i].BookingDate < out[j].BookingDate })
	}
	return out, nil
}

func (r *memBookingRepo) UpdateDetails(_ context.Context, id string, fields bookingRepo.UpdateFields) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if b.Status != models.StatusPendingPayment {
		return nil, bookingRepo.ErrStaleStatus
	}
	if fields.BookingDate != nil {
		b.BookingDate = *fields.BookingDate
	}
	if fields.Location != nil {
		b.Location = *fields.Location
	}
	b.UpdatedAt = time.Now()
	r.bookings[id] = b
	return &b, nil
}

func (r *memBookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != models.StatusPendingPayment {
		return bookingRepo.ErrStaleStatus
	}
	delete(r.bookings, id)
	return nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if b.Status != from {
		return nil, bookingRepo.ErrStaleStatus
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	r.bookings[id] = b
	return &b, nil
}

func (r *memBookingRepo) AssignDecorator(_ context.Context, id string, ref models.DecoratorRef) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if b.Status != models.StatusPendingDecorator {
		return nil, bookingRepo.ErrStaleStatus
	}
	if r.decoratorBusyLocked(ref.DecoratorID, b.BookingDate, id) {
		return nil, bookingRepo.ErrDecoratorBusy
	}
	b.DecoratorID = ref.DecoratorID
	b.DecoratorName = ref.DecoratorName
	b.DecoratorEmail = ref.DecoratorEmail
	b.Status = models.StatusDecoratorAssigned
	b.UpdatedAt = time.Now()
	r.bookings[id] = b
	return &b, nil
}

func (r *memBookingRepo) ClearDecorator(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if !b.Status.Busy() {
		return nil, bookingRepo.ErrStaleStatus
	}
	b.DecoratorID = ""
	b.DecoratorName = ""
	b.DecoratorEmail = ""
	b.Status = models.StatusPendingDecorator
	b.UpdatedAt = time.Now()
	r.bookings[id] = b
	return &b, nil
}

func (r *memBookingRepo) MarkPaid(_ context.Context, id string) (*models.Booking, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, false, bookingRepo.ErrNotFound
	}
	if b.Status != models.StatusPendingPayment {
		return &b, false, nil
	}
	b.Status = models.StatusPendingDecorator
	b.PaymentStatus = models.PaymentPaid
	b.UpdatedAt = time.Now()
	r.bookings[id] = b
	return &b, true, nil
}

func (r *memBookingRepo) FindScheduleConflict(_ context.Context, decoratorID, bookingDate, excludeBookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == excludeBookingID {
			continue
		}
		if b.DecoratorID == decoratorID && b.BookingDate == bookingDate && b.Status.Busy() {
			conflict := b
			return &conflict, nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) decoratorBusyLocked(decoratorID, bookingDate, excludeID string) bool {
	for _, b := range r.bookings {
		if b.ID == excludeID {
			continue
		}
		if b.DecoratorID == decoratorID && b.BookingDate == bookingDate && b.Status.Busy() {
			return true
		}
	}
	return false
}

// memPaymentRepo emulates the unique transactionId index.
type memPaymentRepo struct {
	mu       sync.Mutex
	payments map[string]models.Payment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: make(map[string]models.Payment)}
}

func (r *memPaymentRepo) GetByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[transactionID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memPaymentRepo) InsertIfAbsent(_ context.Context, payment *models.Payment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[payment.TransactionID]; ok {
		return false, nil
	}
	r.payments[payment.TransactionID] = *payment
	return true, nil
}

func (r *memPaymentRepo) List(_ context.Context, q paymentRepo.Query) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.payments {
		if q.CustomerEmail != "" && p.CustomerEmail != q.CustomerEmail {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

func (r *memPaymentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payments)
}

// memDecoratorRepo holds decorator profiles for assignment tests.
type memDecoratorRepo struct {
	mu         sync.Mutex
	decorators map[string]models.Decorator
}

func newMemDecoratorRepo(decorators ...models.Decorator) *memDecoratorRepo {
	r := &memDecoratorRepo{decorators: make(map[string]models.Decorator)}
	for _, d := range decorators {
		r.decorators[d.ID] = d
	}
	return r
}

func (r *memDecoratorRepo) CreateIfAbsent(_ context.Context, d *models.Decorator) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.decorators {
		if existing.UserID == d.UserID {
			return false, nil
		}
	}
	r.decorators[d.ID] = *d
	return true, nil
}

func (r *memDecoratorRepo) GetByID(_ context.Context, id string) (*models.Decorator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.decorators[id]
	if !ok {
		return nil, decoratorRepo.ErrNotFound
	}
	return &d, nil
}

func (r *memDecoratorRepo) List(_ context.Context, _ decoratorRepo.Filter) ([]models.Decorator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Decorator
	for _, d := range r.decorators {
		out = append(out, d)
	}
	return out, nil
}

func (r *memDecoratorRepo) Top(_ context.Context, limit int) ([]models.Decorator, error) {
	all, _ := r.List(context.Background(), decoratorRepo.Filter{})
	sort.Slice(all, func(i, j int) bool { return all[i].Ratings > all[j].Ratings })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memDecoratorRepo) Approve(_ context.Context, id string, info decoratorRepo.ApprovalInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.decorators[id]
	if !ok {
		return decoratorRepo.ErrNotFound
	}
	d.ApproveStatus = models.ApproveApproved
	d.WorkStatus = models.WorkAvailable
	d.Location = info.Location
	d.Ratings = info.Ratings
	d.Specialties = info.Specialties
	r.decorators[id] = d
	return nil
}

func (r *memDecoratorRepo) Reject(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.decorators[id]
	if !ok {
		return decoratorRepo.ErrNotFound
	}
	d.ApproveStatus = models.ApproveRejected
	d.WorkStatus = ""
	d.Location = ""
	d.Ratings = 0
	d.Specialties = nil
	r.decorators[id] = d
	return nil
}

func (r *memDecoratorRepo) SetWorkStatus(_ context.Context, id, workStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.decorators[id]
	if !ok {
		return decoratorRepo.ErrNotFound
	}
	d.WorkStatus = workStatus
	r.decorators[id] = d
	return nil
}

func (r *memDecoratorRepo) Delete(_ context.Context, id string) (*models.Decorator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.decorators[id]
	if !ok {
		return nil, decoratorRepo.ErrNotFound
	}
	delete(r.decorators, id)
	return &d, nil
}

// stubGateway serves canned checkout sessions.
type stubGateway struct {
	sessions map[string]*CheckoutSession
	err      error
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, _ CheckoutRequest) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return "https://pay.example.com/cs_test", nil
}

func (g *stubGateway) RetrieveSession(_ context.Context, sessionID string) (*CheckoutSession, error) {
	if g.err != nil {
		return nil, g.err
	}
	s, ok := g.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return s, nil
}
