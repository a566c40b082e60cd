package favorite

import (
	"context"
	"fmt"

	"github.com/nagoyameshi/go-api-server/internal/restaurant"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/metrics"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

const PerPage = 15

type FavoriteService struct {
	db                 *gorm.DB
	favoriteRepository *FavoriteRepository
	restaurantService  *restaurant.RestaurantService
	metrics            *metrics.Metrics
}

func NewFavoriteService(
	db *gorm.DB,
	favoriteRepository *FavoriteRepository,
	restaurantService *restaurant.RestaurantService,
	m *metrics.Metrics,
) *FavoriteService {
	return &FavoriteService{
		db:                 db,
		favoriteRepository: favoriteRepository,
		restaurantService:  restaurantService,
		metrics:            m,
	}
}

func (s *FavoriteService) List(ctx context.Context, memberID uint32, page pagination.Page) (*ListResponse, error) {
	restaurants, meta, err := s.restaurantService.Favorites(ctx, memberID, page)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Restaurants: restaurants, Meta: meta}, nil
}

// Add is idempotent: adding a favorite twice keeps a single row.
func (s *FavoriteService) Add(ctx context.Context, memberID, restaurantID uint32) error {
	if _, err := s.restaurantService.Summary(ctx, restaurantID); err != nil {
		return err
	}

	added, err := s.favoriteRepository.Add(ctx, s.db, memberID, restaurantID)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	if added {
		s.metrics.Favorite("added")
		logger.FromContext(ctx).Info("Favorite added", "member_id", memberID, "restaurant_id", restaurantID)
	}
	return nil
}

// Remove is idempotent: removing a missing favorite succeeds.
func (s *FavoriteService) Remove(ctx context.Context, memberID, restaurantID uint32) error {
	removed, err := s.favoriteRepository.Remove(ctx, s.db, memberID, restaurantID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if removed {
		s.metrics.Favorite("removed")
		logger.FromContext(ctx).Info("Favorite removed", "member_id", memberID, "restaurant_id", restaurantID)
	}
	return nil
}
