package decorator

import (
	"context"
	"sort"
	"sync"
	"testing"

	decoratorRepo "styledecor/database/repository/decorator"
	userRepo "styledecor/database/repository/user"
	"styledecor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

func (r *memDecoratorRepo) List(_ context.Context, f decoratorRepo.Filter) ([]models.Decorator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Decorator
	for _, d := range r.decorators {
		if f.ApproveStatus != "" && d.ApproveStatus != f.ApproveStatus {
			continue
		}
		if f.WorkStatus != "" && d.WorkStatus != f.WorkStatus {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
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

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserRepo(users ...models.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) CreateIfAbsent(_ context.Context, u *models.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return false, nil
		}
	}
	r.users[u.ID] = *u
	return true, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) RoleOf(_ context.Context, email string) (string, error) {
	u, _ := r.GetByEmail(context.Background(), email)
	if u == nil {
		return models.RoleUser, nil
	}
	return u.Role, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id, role string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	u.Role = role
	r.users[id] = u
	return &u, nil
}

func (r *memUserRepo) Search(_ context.Context, _ string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func newService(decorators *memDecoratorRepo, users *memUserRepo) *DefaultDecoratorService {
	return &DefaultDecoratorService{Repo: decorators, Users: users, Logger: zap.NewNop()}
}

func janeUser() models.User {
	return models.User{ID: "user-1", Email: "jane@styledecor.com", Role: models.RoleUser}
}

func janeApplication() models.Decorator {
	return models.Decorator{
		ID:            "dec-1",
		UserID:        "user-1",
		Name:          "Jane",
		Email:         "jane@styledecor.com",
		ApproveStatus: models.ApprovePending,
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates a pending profile", func(t *testing.T) {
		svc := newService(newMemDecoratorRepo(), newMemUserRepo(janeUser()))

		created, err := svc.Register(context.Background(), RegisterInput{
			UserID: "user-1", Name: "Jane", Email: "jane@styledecor.com",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, models.ApprovePending, created.ApproveStatus)
		assert.Empty(t, created.WorkStatus)
	})

	t.Run("one profile per user", func(t *testing.T) {
		svc := newService(newMemDecoratorRepo(janeApplication()), newMemUserRepo(janeUser()))

		_, err := svc.Register(context.Background(), RegisterInput{
			UserID: "user-1", Name: "Jane", Email: "jane@styledecor.com",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func TestApprove(t *testing.T) {
	t.Run("fills profile and promotes the linked user", func(t *testing.T) {
		decorators := newMemDecoratorRepo(janeApplication())
		users := newMemUserRepo(janeUser())
		svc := newService(decorators, users)

		err := svc.Approve(context.Background(), "dec-1", decoratorRepo.ApprovalInfo{
			Location:    "Nairobi",
			Ratings:     4.7,
			Specialties: []string{"wedding", "corporate"},
		})
		require.NoError(t, err)

		d, err := decorators.GetByID(context.Background(), "dec-1")
		require.NoError(t, err)
		assert.Equal(t, models.ApproveApproved, d.ApproveStatus)
		assert.Equal(t, models.WorkAvailable, d.WorkStatus)
		assert.Equal(t, "Nairobi", d.Location)

		u, err := users.GetByID(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, models.RoleDecorator, u.Role)
	})

	t.Run("unknown decorator", func(t *testing.T) {
		svc := newService(newMemDecoratorRepo(), newMemUserRepo())

		err := svc.Approve(context.Background(), "dec-ghost", decoratorRepo.ApprovalInfo{Location: "Nairobi", Ratings: 4})
		assert.ErrorIs(t, err, decoratorRepo.ErrNotFound)
	})
}

func TestRejectApplication(t *testing.T) {
	decorators := newMemDecoratorRepo(janeApplication())
	users := newMemUserRepo(janeUser())
	svc := newService(decorators, users)

	require.NoError(t, svc.RejectApplication(context.Background(), "dec-1"))

	d, err := decorators.GetByID(context.Background(), "dec-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApproveRejected, d.ApproveStatus)
	assert.Empty(t, d.WorkStatus)
	assert.Empty(t, d.Specialties)

	u, err := users.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role, "rejecting never touches the account role")
}

func TestSetWorkStatus(t *testing.T) {
	decorators := newMemDecoratorRepo(janeApplication())
	svc := newService(decorators, newMemUserRepo())

	require.NoError(t, svc.SetWorkStatus(context.Background(), "dec-1", models.WorkDisabled))
	d, err := decorators.GetByID(context.Background(), "dec-1")
	require.NoError(t, err)
	assert.Equal(t, models.WorkDisabled, d.WorkStatus)

	err = svc.SetWorkStatus(context.Background(), "dec-ghost", models.WorkAvailable)
	assert.ErrorIs(t, err, decoratorRepo.ErrNotFound)
}

func TestDelete(t *testing.T) {
	t.Run("removes the profile and demotes the user", func(t *testing.T) {
		decorator := janeApplication()
		decorator.ApproveStatus = models.ApproveApproved
		user := janeUser()
		user.Role = models.RoleDecorator

		decorators := newMemDecoratorRepo(decorator)
		users := newMemUserRepo(user)
		svc := newService(decorators, users)

		require.NoError(t, svc.Delete(context.Background(), "dec-1"))

		_, err := decorators.GetByID(context.Background(), "dec-1")
		assert.ErrorIs(t, err, decoratorRepo.ErrNotFound)

		u, err := users.GetByID(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, u.Role)
	})

	t.Run("orphaned profile still deletes", func(t *testing.T) {
		decorators := newMemDecoratorRepo(janeApplication())
		svc := newService(decorators, newMemUserRepo())

		require.NoError(t, svc.Delete(context.Background(), "dec-1"))
	})
}
