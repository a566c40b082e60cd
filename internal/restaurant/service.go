package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/nagoyameshi/go-api-server/internal/category"
	"github.com/nagoyameshi/go-api-server/internal/model"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"github.com/nagoyameshi/go-api-server/internal/storage"
	"gorm.io/gorm"
)

// homeSectionSize is how many restaurants each home page section shows.
const homeSectionSize = 6

type RestaurantService struct {
	db                   *gorm.DB
	restaurantRepository *RestaurantRepository
	categoryRepository   *category.CategoryRepository
	store                storage.Store
	maxImageBytes        int64
}

func NewRestaurantService(
	db *gorm.DB,
	restaurantRepository *RestaurantRepository,
	categoryRepository *category.CategoryRepository,
	store storage.Store,
	maxImageBytes int64,
) *RestaurantService {
	return &RestaurantService{
		db:                   db,
		restaurantRepository: restaurantRepository,
		categoryRepository:   categoryRepository,
		store:                store,
		maxImageBytes:        maxImageBytes,
	}
}

func (s *RestaurantService) Home(ctx context.Context) (*HomeResponse, error) {
	highlyRated, err := s.restaurantRepository.HighlyRated(ctx, s.db, homeSectionSize)
	if err != nil {
		return nil, fmt.Errorf("평점순 매장 조회 실패: %w", err)
	}
	newest, err := s.restaurantRepository.Newest(ctx, s.db, homeSectionSize)
	if err != nil {
		return nil, fmt.Errorf("신규 매장 조회 실패: %w", err)
	}
	popular, err := s.restaurantRepository.Popular(ctx, s.db, homeSectionSize)
	if err != nil {
		return nil, fmt.Errorf("인기 매장 조회 실패: %w", err)
	}
	categories, err := s.categoryRepository.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("카테고리 조회 실패: %w", err)
	}

	resp := &HomeResponse{Categories: category.NewCategoryResponses(categories)}
	if resp.HighlyRated, err = s.responses(ctx, highlyRated); err != nil {
		return nil, err
	}
	if resp.New, err = s.responses(ctx, newest); err != nil {
		return nil, err
	}
	if resp.Popular, err = s.responses(ctx, popular); err != nil {
		return nil, err
	}
	return resp, nil
}

// Search returns one page of the catalog.
func (s *RestaurantService) Search(ctx context.Context, filter Filter, page pagination.Page) ([]RestaurantResponse, pagination.Meta, error) {
	rows, total, err := s.restaurantRepository.Search(ctx, s.db, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("매장 검색 실패: %w", err)
	}

	restaurants, err := s.responses(ctx, rows)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return restaurants, pagination.NewMeta(page, total), nil
}

// Favorites lists the restaurants memberID has marked as favorite.
func (s *RestaurantService) Favorites(ctx context.Context, memberID uint32, page pagination.Page) ([]RestaurantResponse, pagination.Meta, error) {
	rows, total, err := s.restaurantRepository.FavoritesOf(ctx, s.db, memberID, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("즐겨찾기 목록 조회 실패: %w", err)
	}

	restaurants, err := s.responses(ctx, rows)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return restaurants, pagination.NewMeta(page, total), nil
}

// Get returns a restaurant with its categories and regular holidays. For a
// member viewer it also reports whether the restaurant is a favorite.
func (s *RestaurantService) Get(ctx context.Context, ID uint32, viewer sharedContext.Principal) (*DetailResponse, error) {
	row, err := s.restaurantRepository.FindRowByID(ctx, s.db, ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("매장을 찾을 수 없습니다 restaurantID=%d %w", ID, ErrRestaurantNotFound)
		}
		return nil, fmt.Errorf("매장 조회 실패: %w", err)
	}

	responses, err := s.responses(ctx, []Row{*row})
	if err != nil {
		return nil, err
	}
	restaurant := responses[0]

	holidays, err := s.restaurantRepository.HolidaysOf(ctx, s.db, ID)
	if err != nil {
		return nil, fmt.Errorf("정기휴일 조회 실패: %w", err)
	}
	restaurant.RegularHolidays = NewHolidayResponses(holidays)

	resp := &DetailResponse{Restaurant: restaurant}
	if viewer.IsMember() {
		if resp.IsFavorited, err = s.restaurantRepository.IsFavorited(ctx, s.db, viewer.ID, ID); err != nil {
			return nil, fmt.Errorf("즐겨찾기 조회 실패: %w", err)
		}
	}
	return resp, nil
}

// Summary returns the restaurant without aggregates, for forms that only need
// to name it.
func (s *RestaurantService) Summary(ctx context.Context, ID uint32) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepository.FindByID(ctx, s.db, ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("매장을 찾을 수 없습니다 restaurantID=%d %w", ID, ErrRestaurantNotFound)
		}
		return nil, fmt.Errorf("매장 조회 실패: %w", err)
	}
	return restaurant, nil
}

// ImageURL resolves a stored image reference to a public URL.
func (s *RestaurantService) ImageURL(ref string) string {
	if ref == "" || s.store == nil {
		return ""
	}
	return s.store.URL(ref)
}

func (s *RestaurantService) RegularHolidays(ctx context.Context) ([]HolidayResponse, error) {
	holidays, err := s.restaurantRepository.ListRegularHolidays(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("정기휴일 목록 조회 실패: %w", err)
	}
	return NewHolidayResponses(holidays), nil
}

// responses renders rows, loading every row's categories in one query.
func (s *RestaurantService) responses(ctx context.Context, rows []Row) ([]RestaurantResponse, error) {
	ids := make([]uint32, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	categories, err := s.categoryRepository.FindByRestaurantIDs(ctx, s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("매장 카테고리 조회 실패: %w", err)
	}

	responses := make([]RestaurantResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, newRestaurantResponse(row, s.ImageURL(row.Image), categories[row.ID]))
	}
	return responses, nil
}
