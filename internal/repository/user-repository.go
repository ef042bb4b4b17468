package repository

import (
	"context"
	"errors"

	"github.com/alphazero-wd/devzone/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, userID uint) (*domain.User, error)
	// UpdateUser applies the patch (column name -> value, nil clears the
	// column) and returns the row as persisted, read back after the write.
	UpdateUser(ctx context.Context, userID uint, patch map[string]interface{}) (*domain.User, error)
	DeleteUser(ctx context.Context, userID uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.WithContext(ctx).First(user, "email = ?", email).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, userID uint) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.WithContext(ctx).Preload("Avatar").First(user, userID).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, userID uint, patch map[string]interface{}) (*domain.User, error) {
	tx := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).Updates(patch)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindUserByID(ctx, userID)
}

func (r *userRepository) DeleteUser(ctx context.Context, userID uint) error {
	tx := r.db.WithContext(ctx).Delete(&domain.User{}, userID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
