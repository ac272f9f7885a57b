package repository

import (
	"context"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/internal/models"
)

// UserRepository handles account data access
type UserRepository struct {
	store UserStore
}

// NewUserRepository creates a new user repository
func NewUserRepository(store UserStore) *UserRepository {
	return &UserRepository{store: store}
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

// Create stores an account
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.CreateUser(ctx, user)
}

// GetByEmail retrieves an account by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.store.GetUserByEmail(ctx, email)
}

// GetByID retrieves an account by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.store.GetUserByID(ctx, id)
}
