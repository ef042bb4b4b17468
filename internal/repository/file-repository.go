package repository

import (
	"context"
	"errors"

	"github.com/alphazero-wd/devzone/internal/domain"
	"gorm.io/gorm"
)

type FileRepository interface {
	CreateFile(ctx context.Context, file *domain.File) (*domain.File, error)
	DeleteFile(ctx context.Context, fileID uint) error
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) CreateFile(ctx context.Context, file *domain.File) (*domain.File, error) {
	if file == nil {
		return nil, errors.New("nil file")
	}

	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return nil, err
	}

	return file, nil
}

func (r *fileRepository) DeleteFile(ctx context.Context, fileID uint) error {
	tx := r.db.WithContext(ctx).Delete(&domain.File{}, fileID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
