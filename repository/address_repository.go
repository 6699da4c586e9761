package repository

import (
	"context"
	"errors"

	"storefront/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressRepository defines the interface for address book data access
type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id, userID uuid.UUID) (int64, error)
	ClearDefault(ctx context.Context, userID uuid.UUID) error
}

type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) AddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) Create(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *GormAddressRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	return addresses, err
}

func (r *GormAddressRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

func (r *GormAddressRepository) Update(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *GormAddressRepository) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Address{})
	return res.RowsAffected, res.Error
}

// ClearDefault unsets the default flag on all of a user's addresses.
func (r *GormAddressRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		UpdateColumn("is_default", false).Error
}
