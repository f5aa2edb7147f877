package decorator

import (
	"context"
	"errors"

	decoratorRepo "styledecor/database/repository/decorator"
	userRepo "styledecor/database/repository/user"
	"styledecor/models"
	"styledecor/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAlreadyExists means a decorator profile already exists for the user.
var ErrAlreadyExists = errors.New("decorator already created for this user")

// RegisterInput is the validated payload for creating a decorator profile.
type RegisterInput struct {
	UserID string
	Name   string
	Email  string
}

// DecoratorService manages decorator profiles and the linked user roles.
type DecoratorService interface {
	Register(ctx context.Context, input RegisterInput) (*models.Decorator, error)
	Get(ctx context.Context, id string) (*models.Decorator, error)
	List(ctx context.Context, f decoratorRepo.Filter) ([]models.Decorator, error)
	Top(ctx context.Context, limit int) ([]models.Decorator, error)
	Approve(ctx context.Context, id string, info decoratorRepo.ApprovalInfo) error
	RejectApplication(ctx context.Context, id string) error
	SetWorkStatus(ctx context.Context, id, workStatus string) error
	Delete(ctx context.Context, id string) error
}

// DefaultDecoratorService implements DecoratorService.
type DefaultDecoratorService struct {
	Repo   decoratorRepo.DecoratorRepository
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

// Register creates a pending decorator profile for the user.
func (s *DefaultDecoratorService) Register(ctx context.Context, input RegisterInput) (*models.Decorator, error) {
	decorator := &models.Decorator{
		ID:            uuid.New().String(),
		UserID:        input.UserID,
		Name:          input.Name,
		Email:         input.Email,
		ApproveStatus: models.ApprovePending,
	}

	created, err := s.Repo.CreateIfAbsent(ctx, decorator)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrAlreadyExists
	}

	s.Logger.Info("decorator profile created",
		zap.String("decoratorId", decorator.ID),
		zap.String("userId", input.UserID),
	)
	return decorator, nil
}

func (s *DefaultDecoratorService) Get(ctx context.Context, id string) (*models.Decorator, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultDecoratorService) List(ctx context.Context, f decoratorRepo.Filter) ([]models.Decorator, error) {
	return s.Repo.List(ctx, f)
}

func (s *DefaultDecoratorService) Top(ctx context.Context, limit int) ([]models.Decorator, error) {
	return s.Repo.Top(ctx, limit)
}

// Approve marks the decorator approved and available, and promotes the
// linked user account to the decorator role.
func (s *DefaultDecoratorService) Approve(ctx context.Context, id string, info decoratorRepo.ApprovalInfo) error {
	decorator, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.Approve(ctx, id, info); err != nil {
		return err
	}

	user, err := s.Users.UpdateRole(ctx, decorator.UserID, models.RoleDecorator)
	if err != nil {
		return err
	}
	utils.InvalidateRole(ctx, user.Email)

	s.Logger.Info("decorator approved",
		zap.String("decoratorId", id),
		zap.String("userEmail", user.Email),
	)
	return nil
}

// RejectApplication marks the decorator rejected and clears profile fields.
// The linked user keeps its current role.
func (s *DefaultDecoratorService) RejectApplication(ctx context.Context, id string) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Repo.Reject(ctx, id)
}

// SetWorkStatus enables or disables an approved decorator.
func (s *DefaultDecoratorService) SetWorkStatus(ctx context.Context, id, workStatus string) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Repo.SetWorkStatus(ctx, id, workStatus)
}

// Delete removes the decorator profile and demotes the linked user account
// back to the user role.
func (s *DefaultDecoratorService) Delete(ctx context.Context, id string) error {
	decorator, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if decorator.UserID != "" {
		user, err := s.Users.UpdateRole(ctx, decorator.UserID, models.RoleUser)
		if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
			return err
		}
		if user != nil {
			utils.InvalidateRole(ctx, user.Email)
		}
	}

	s.Logger.Info("decorator deleted", zap.String("decoratorId", id))
	return nil
}
