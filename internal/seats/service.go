package seats

import (
	"context"
	"errors"
	"fmt"

	"aerobook/internal/shared/apperrors"
	"aerobook/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service interface defines the contract for seat inventory logic
type Service interface {
	GetFlightSeatMap(ctx context.Context, flightID uuid.UUID) ([]Seat, error)
	CountAvailable(ctx context.Context, flightIDs []uuid.UUID, seatIDs []uuid.UUID) (int64, error)
	InvalidateSeatMap(ctx context.Context, flightIDs []uuid.UUID)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService creates a new seat inventory service instance
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func seatMapCacheKey(flightID uuid.UUID) string {
	return fmt.Sprintf("seatmap:%s", flightID)
}

// GetFlightSeatMap returns all seats of a flight, cache-aside with a short
// TTL so lock/release churn shows up quickly.
func (s *service) GetFlightSeatMap(ctx context.Context, flightID uuid.UUID) ([]Seat, error) {
	var seatList []Seat

	if s.cache != nil {
		if err := s.cache.Get(ctx, seatMapCacheKey(flightID), &seatList); err == nil {
			return seatList, nil
		}
	}

	seatList, err := s.repo.GetSeatsByFlightID(ctx, flightID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("flight not found")
		}
		return nil, apperrors.Internal("failed to load seat map", err)
	}

	if len(seatList) == 0 {
		return nil, apperrors.NotFound("no seats found for flight")
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, seatMapCacheKey(flightID), seatList, cache.SeatMapTTL)
	}

	return seatList, nil
}

func (s *service) CountAvailable(ctx context.Context, flightIDs []uuid.UUID, seatIDs []uuid.UUID) (int64, error) {
	count, err := s.repo.CountAvailable(ctx, flightIDs, seatIDs)
	if err != nil {
		return 0, apperrors.Internal("failed to count available seats", err)
	}
	return count, nil
}

// InvalidateSeatMap drops the cached seat maps after a status mutation.
// Cache failures are not surfaced; the next read repopulates.
func (s *service) InvalidateSeatMap(ctx context.Context, flightIDs []uuid.UUID) {
	if s.cache == nil {
		return
	}
	for _, flightID := range flightIDs {
		_ = s.cache.Delete(ctx, seatMapCacheKey(flightID))
	}
}
