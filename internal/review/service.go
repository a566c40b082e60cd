package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/nagoyameshi/go-api-server/internal/access"
	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/restaurant"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/database"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/metrics"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

// Page sizes of the review list. Paid members see more per page.
const (
	FreePageSize    = 3
	PremiumPageSize = 5
)

type ReviewService struct {
	db                *gorm.DB
	reviewRepository  *ReviewRepository
	restaurantService *restaurant.RestaurantService
	checker           access.SubscriptionChecker
	metrics           *metrics.Metrics
}

func NewReviewService(
	db *gorm.DB,
	reviewRepository *ReviewRepository,
	restaurantService *restaurant.RestaurantService,
	checker access.SubscriptionChecker,
	m *metrics.Metrics,
) *ReviewService {
	return &ReviewService{
		db:                db,
		reviewRepository:  reviewRepository,
		restaurantService: restaurantService,
		checker:           checker,
		metrics:           m,
	}
}

// PageSize asks the gate on every call; nothing is cached.
func (s *ReviewService) PageSize(ctx context.Context, viewer sharedContext.Principal) (int, error) {
	if !viewer.IsMember() {
		return FreePageSize, nil
	}
	active, err := s.checker.IsActive(ctx, viewer.ID)
	if err != nil {
		return 0, err
	}
	if active {
		return PremiumPageSize, nil
	}
	return FreePageSize, nil
}

func (s *ReviewService) List(ctx context.Context, restaurantID uint32, viewer sharedContext.Principal, pageNumber int) (*ListResponse, error) {
	r, err := s.restaurantService.Summary(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	size, err := s.PageSize(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("리뷰 페이지 크기 결정 실패: %w", err)
	}
	page := pagination.New(pageNumber, size)

	reviews, total, err := s.reviewRepository.ListByRestaurant(ctx, s.db, restaurantID, page)
	if err != nil {
		return nil, fmt.Errorf("리뷰 목록 조회 실패: %w", err)
	}

	var viewerID uint32
	if viewer.IsMember() {
		viewerID = viewer.ID
	}
	resp := &ListResponse{
		RestaurantID:   r.ID,
		RestaurantName: r.Name,
		Reviews:        make([]ReviewResponse, 0, len(reviews)),
		Meta:           pagination.NewMeta(page, total),
	}
	for _, review := range reviews {
		resp.Reviews = append(resp.Reviews, newReviewResponse(review, viewerID))
	}
	return resp, nil
}

func (s *ReviewService) Create(ctx context.Context, memberID, restaurantID uint32, request *ReviewRequest) (*model.Review, error) {
	if _, err := s.restaurantService.Summary(ctx, restaurantID); err != nil {
		return nil, err
	}

	review := &model.Review{
		Score:        request.Score,
		Content:      request.Content,
		RestaurantID: restaurantID,
		MemberID:     memberID,
	}
	if err := s.reviewRepository.Create(ctx, s.db, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.metrics.Review("created")
	logger.FromContext(ctx).Info("Review created",
		"review_id", review.ID,
		"restaurant_id", restaurantID,
		"member_id", memberID,
	)
	return review, nil
}

// Authorize loads the review addressed under restaurantID and checks that
// principal wrote it. A review of another restaurant is not found.
func (s *ReviewService) Authorize(ctx context.Context, principal sharedContext.Principal, restaurantID, reviewID uint32) (*model.Review, error) {
	return s.authorize(ctx, s.db, principal, restaurantID, reviewID)
}

func (s *ReviewService) Edit(ctx context.Context, principal sharedContext.Principal, restaurantID, reviewID uint32) (*EditResponse, error) {
	review, err := s.Authorize(ctx, principal, restaurantID, reviewID)
	if err != nil {
		return nil, err
	}
	return &EditResponse{Review: newReviewResponse(*review, principal.ID)}, nil
}

func (s *ReviewService) Update(ctx context.Context, principal sharedContext.Principal, restaurantID, reviewID uint32, request *ReviewRequest) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		review, err := s.authorize(ctx, tx, principal, restaurantID, reviewID)
		if err != nil {
			return err
		}

		review.Score = request.Score
		review.Content = request.Content
		if err := s.reviewRepository.Save(ctx, tx, review); err != nil {
			return fmt.Errorf("update review: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.Review("updated")
	logger.FromContext(ctx).Info("Review updated", "review_id", reviewID, "member_id", principal.ID)
	return nil
}

// Delete removes the review and returns the restaurant it belonged to. The
// restaurant id is also returned with ErrNotOwner so the caller can redirect.
func (s *ReviewService) Delete(ctx context.Context, principal sharedContext.Principal, reviewID uint32) (uint32, error) {
	var restaurantID uint32
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		review, err := s.findReview(ctx, tx, reviewID)
		if err != nil {
			return err
		}
		restaurantID = review.RestaurantID

		if err := access.CheckOwner(principal, review.MemberID); err != nil {
			return fmt.Errorf("reviewID=%d %w", reviewID, err)
		}

		if err := s.reviewRepository.Delete(ctx, tx, reviewID); err != nil {
			return fmt.Errorf("delete review: %w", err)
		}
		return nil
	})
	if err != nil {
		return restaurantID, err
	}

	s.metrics.Review("deleted")
	logger.FromContext(ctx).Info("Review deleted", "review_id", reviewID, "member_id", principal.ID)
	return restaurantID, nil
}

func (s *ReviewService) authorize(ctx context.Context, db *gorm.DB, principal sharedContext.Principal, restaurantID, reviewID uint32) (*model.Review, error) {
	review, err := s.findReview(ctx, db, reviewID)
	if err != nil {
		return nil, err
	}
	if review.RestaurantID != restaurantID {
		return nil, fmt.Errorf("reviewID=%d restaurantID=%d %w", reviewID, restaurantID, ErrReviewNotFound)
	}
	if err := access.CheckOwner(principal, review.MemberID); err != nil {
		logger.FromContext(ctx).Warn("리뷰 접근 거부 - not owner", "review_id", reviewID, "member_id", principal.ID)
		return nil, fmt.Errorf("reviewID=%d %w", reviewID, err)
	}
	return review, nil
}

func (s *ReviewService) findReview(ctx context.Context, db *gorm.DB, reviewID uint32) (*model.Review, error) {
	review, err := s.reviewRepository.FindByID(ctx, db, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("리뷰를 찾을 수 없습니다 reviewID=%d %w", reviewID, ErrReviewNotFound)
		}
		return nil, fmt.Errorf("리뷰 조회 실패: %w", err)
	}
	return review, nil
}
