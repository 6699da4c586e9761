package services

import (
	"context"
	"errors"

	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AddressService interface {
	CreateAddress(ctx context.Context, userID string, req *models.AddressRequest) (*models.Address, *ServiceError)
	ListAddresses(ctx context.Context, userID string) ([]models.Address, *ServiceError)
	UpdateAddress(ctx context.Context, userID string, addressID uuid.UUID, req *models.AddressRequest) (*models.Address, *ServiceError)
	DeleteAddress(ctx context.Context, userID string, addressID uuid.UUID) *ServiceError
}

type addressServiceImpl struct {
	repo   repository.AddressRepository
	logger *zap.Logger
}

func NewAddressService(repo repository.AddressRepository, logger *zap.Logger) AddressService {
	return &addressServiceImpl{repo: repo, logger: logger}
}

func (s *addressServiceImpl) CreateAddress(ctx context.Context, userID string, req *models.AddressRequest) (*models.Address, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	if req.IsDefault {
		if err := s.repo.ClearDefault(ctx, userUUID); err != nil {
			s.logger.Error("Failed to clear default address", zap.Error(err))
			return nil, &ServiceError{StatusCode: 500, Message: "Failed to save address"}
		}
	}

	address := &models.Address{
		UserID:     userUUID,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}
	if err := s.repo.Create(ctx, address); err != nil {
		s.logger.Error("Failed to create address", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save address"}
	}
	return address, nil
}

func (s *addressServiceImpl) ListAddresses(ctx context.Context, userID string) ([]models.Address, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	addresses, err := s.repo.FindByUser(ctx, userUUID)
	if err != nil {
		s.logger.Error("Failed to list addresses", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to list addresses"}
	}
	return addresses, nil
}

func (s *addressServiceImpl) UpdateAddress(ctx context.Context, userID string, addressID uuid.UUID, req *models.AddressRequest) (*models.Address, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	address, err := s.repo.FindByIDAndUser(ctx, addressID, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Address not found"}
		}
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch address"}
	}

	if req.IsDefault && !address.IsDefault {
		if err := s.repo.ClearDefault(ctx, userUUID); err != nil {
			s.logger.Error("Failed to clear default address", zap.Error(err))
			return nil, &ServiceError{StatusCode: 500, Message: "Failed to save address"}
		}
	}

	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Country = req.Country
	address.IsDefault = req.IsDefault

	if err := s.repo.Update(ctx, address); err != nil {
		s.logger.Error("Failed to update address", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save address"}
	}
	return address, nil
}

func (s *addressServiceImpl) DeleteAddress(ctx context.Context, userID string, addressID uuid.UUID) *ServiceError {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	rows, err := s.repo.Delete(ctx, addressID, userUUID)
	if err != nil {
		s.logger.Error("Failed to delete address", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete address"}
	}
	if rows == 0 {
		return &ServiceError{StatusCode: 404, Message: "Address not found"}
	}
	return nil
}
