package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/database"
	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/storage"
	"gorm.io/gorm"
)

const imagePrefix = "restaurants"

// Create stores a new restaurant. image may be nil.
func (s *RestaurantService) Create(ctx context.Context, request *RestaurantRequest, image *storage.Image) (uint32, error) {
	log := logger.FromContext(ctx)

	request.normalize()
	if verr := checkRequest(request); verr.HasErrors() {
		return 0, verr
	}

	ref, err := s.putImage(ctx, image)
	if err != nil {
		return 0, err
	}

	restaurant := &model.Restaurant{Image: ref}
	request.apply(restaurant)

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.checkRelations(ctx, tx, request); err != nil {
			return err
		}
		if err := s.restaurantRepository.Create(ctx, tx, restaurant); err != nil {
			return fmt.Errorf("create restaurant: %w", err)
		}
		return s.syncRelations(ctx, tx, restaurant.ID, request)
	})
	if err != nil {
		s.deleteImage(ctx, ref)
		return 0, err
	}

	log.Info("Restaurant created", "restaurant_id", restaurant.ID)
	return restaurant.ID, nil
}

// Update overwrites a restaurant. A nil image keeps the current one.
func (s *RestaurantService) Update(ctx context.Context, ID uint32, request *RestaurantRequest, image *storage.Image) error {
	log := logger.FromContext(ctx)

	request.normalize()
	if verr := checkRequest(request); verr.HasErrors() {
		return verr
	}

	ref, err := s.putImage(ctx, image)
	if err != nil {
		return err
	}

	var previous string
	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		restaurant, err := s.restaurantRepository.FindByID(ctx, tx, ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("매장을 찾을 수 없습니다 restaurantID=%d %w", ID, ErrRestaurantNotFound)
			}
			return fmt.Errorf("매장 조회 실패: %w", err)
		}
		if err := s.checkRelations(ctx, tx, request); err != nil {
			return err
		}

		request.apply(restaurant)
		if ref != "" {
			previous = restaurant.Image
			restaurant.Image = ref
		}

		if err := s.restaurantRepository.Save(ctx, tx, restaurant); err != nil {
			return fmt.Errorf("update restaurant: %w", err)
		}
		return s.syncRelations(ctx, tx, ID, request)
	})
	if err != nil {
		s.deleteImage(ctx, ref)
		return err
	}

	s.deleteImage(ctx, previous)
	log.Info("Restaurant updated", "restaurant_id", ID)
	return nil
}

// Delete removes the restaurant with its reservations, reviews, favorites and links.
func (s *RestaurantService) Delete(ctx context.Context, ID uint32) error {
	var image string
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		restaurant, err := s.restaurantRepository.FindByID(ctx, tx, ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("매장을 찾을 수 없습니다 restaurantID=%d %w", ID, ErrRestaurantNotFound)
			}
			return fmt.Errorf("매장 조회 실패: %w", err)
		}
		image = restaurant.Image

		if err := s.restaurantRepository.Delete(ctx, tx, ID); err != nil {
			return fmt.Errorf("delete restaurant: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.deleteImage(ctx, image)
	logger.FromContext(ctx).Info("Restaurant deleted", "restaurant_id", ID)
	return nil
}

func (s *RestaurantService) putImage(ctx context.Context, image *storage.Image) (string, error) {
	if image == nil {
		return "", nil
	}

	key, contentType, err := storage.ImageKey(imagePrefix, *image, s.maxImageBytes)
	if err != nil {
		verr := sharedError.NewValidationError()
		switch {
		case errors.Is(err, storage.ErrTooLarge):
			verr.Add("image", fmt.Sprintf("imageは%dKB以下のファイルを選択してください。", s.maxImageBytes/1024))
		default:
			verr.Add("image", "imageには画像ファイル(jpg, png, webp, gif)を選択してください。")
		}
		return "", verr
	}

	ref, err := s.store.Put(ctx, key, image.Body, contentType)
	if err != nil {
		return "", fmt.Errorf("이미지 업로드 실패: %w", err)
	}
	return ref, nil
}

func (s *RestaurantService) deleteImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.store.Delete(ctx, ref); err != nil {
		logger.FromContext(ctx).Warn("이미지 삭제 실패", "ref", ref, "error", err)
	}
}

// checkRelations verifies every referenced category and holiday exists.
func (s *RestaurantService) checkRelations(ctx context.Context, tx *gorm.DB, request *RestaurantRequest) error {
	verr := sharedError.NewValidationError()

	count, err := s.categoryRepository.CountByIDs(ctx, tx, request.CategoryIDs)
	if err != nil {
		return fmt.Errorf("check categories: %w", err)
	}
	if count != int64(len(request.CategoryIDs)) {
		verr.Add("category_ids", "存在しないカテゴリが含まれています。")
	}

	count, err = s.restaurantRepository.CountHolidays(ctx, tx, request.RegularHolidayIDs)
	if err != nil {
		return fmt.Errorf("check regular holidays: %w", err)
	}
	if count != int64(len(request.RegularHolidayIDs)) {
		verr.Add("regular_holiday_ids", "存在しない定休日が含まれています。")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (s *RestaurantService) syncRelations(ctx context.Context, tx *gorm.DB, restaurantID uint32, request *RestaurantRequest) error {
	if err := s.restaurantRepository.SyncCategories(ctx, tx, restaurantID, request.CategoryIDs); err != nil {
		return fmt.Errorf("sync categories: %w", err)
	}
	if err := s.restaurantRepository.SyncHolidays(ctx, tx, restaurantID, request.RegularHolidayIDs); err != nil {
		return fmt.Errorf("sync regular holidays: %w", err)
	}
	return nil
}

// checkRequest applies the rules that span two fields.
func checkRequest(request *RestaurantRequest) *sharedError.ValidationError {
	verr := sharedError.NewValidationError()
	if request.LowestPrice != nil && request.HighestPrice != nil && *request.LowestPrice > *request.HighestPrice {
		verr.Add("lowest_price", "lowest_priceはhighest_price以下の値を入力してください。")
		verr.Add("highest_price", "highest_priceはlowest_price以上の値を入力してください。")
	}
	// HH:MM compares correctly as text
	if request.OpeningTime >= request.ClosingTime {
		verr.Add("opening_time", "opening_timeはclosing_timeより前の時刻を入力してください。")
		verr.Add("closing_time", "closing_timeはopening_timeより後の時刻を入力してください。")
	}
	return verr
}

// normalize drops duplicate ids so a repeated form value is not rejected as missing.
func (r *RestaurantRequest) normalize() {
	r.CategoryIDs = unique(r.CategoryIDs)
	r.RegularHolidayIDs = unique(r.RegularHolidayIDs)
}

func (r *RestaurantRequest) apply(restaurant *model.Restaurant) {
	restaurant.Name = r.Name
	restaurant.Description = r.Description
	restaurant.LowestPrice = *r.LowestPrice
	restaurant.HighestPrice = *r.HighestPrice
	restaurant.PostalCode = r.PostalCode
	restaurant.Address = r.Address
	restaurant.OpeningTime = r.OpeningTime
	restaurant.ClosingTime = r.ClosingTime
	restaurant.SeatingCapacity = *r.SeatingCapacity
}

func unique(ids []uint32) []uint32 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint32]struct{}, len(ids))
	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
