package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/database"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

type CategoryService struct {
	db                 *gorm.DB
	categoryRepository *CategoryRepository
}

func NewCategoryService(db *gorm.DB, categoryRepository *CategoryRepository) *CategoryService {
	return &CategoryService{
		db:                 db,
		categoryRepository: categoryRepository,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepository.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("카테고리 목록 조회 실패: %w", err)
	}
	return NewCategoryResponses(categories), nil
}

func (s *CategoryService) Search(ctx context.Context, keyword string, page pagination.Page) (*AdminListResponse, error) {
	categories, total, err := s.categoryRepository.Search(ctx, s.db, keyword, page)
	if err != nil {
		return nil, fmt.Errorf("카테고리 검색 실패: %w", err)
	}
	return &AdminListResponse{
		Categories: NewCategoryResponses(categories),
		Keyword:    keyword,
		Meta:       pagination.NewMeta(page, total),
	}, nil
}

func (s *CategoryService) Create(ctx context.Context, request *CategoryRequest) (*CategoryResponse, error) {
	log := logger.FromContext(ctx)

	var created model.Category
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		taken, err := s.categoryRepository.IsNameTaken(ctx, tx, request.Name, 0)
		if err != nil {
			return fmt.Errorf("check category name: %w", err)
		}
		if taken {
			return fmt.Errorf("name=%s %w", request.Name, ErrCategoryAlreadyExists)
		}

		created = model.Category{Name: request.Name}
		if err := s.categoryRepository.Create(ctx, tx, &created); err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Category created", "category_id", created.ID)
	resp := NewCategoryResponse(created)
	return &resp, nil
}

func (s *CategoryService) Update(ctx context.Context, ID uint32, request *CategoryRequest) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		category, err := s.categoryRepository.FindByID(ctx, tx, ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("카테고리를 찾을 수 없습니다 categoryID=%d %w", ID, ErrCategoryNotFound)
			}
			return fmt.Errorf("카테고리 조회 실패: %w", err)
		}

		taken, err := s.categoryRepository.IsNameTaken(ctx, tx, request.Name, ID)
		if err != nil {
			return fmt.Errorf("check category name: %w", err)
		}
		if taken {
			return fmt.Errorf("name=%s %w", request.Name, ErrCategoryAlreadyExists)
		}

		category.Name = request.Name
		if err := s.categoryRepository.Save(ctx, tx, category); err != nil {
			return fmt.Errorf("update category: %w", err)
		}

		logger.FromContext(ctx).Info("Category updated", "category_id", ID)
		return nil
	})
}

func (s *CategoryService) Delete(ctx context.Context, ID uint32) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.categoryRepository.FindByID(ctx, tx, ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("카테고리를 찾을 수 없습니다 categoryID=%d %w", ID, ErrCategoryNotFound)
			}
			return fmt.Errorf("카테고리 조회 실패: %w", err)
		}

		if err := s.categoryRepository.Delete(ctx, tx, ID); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}

		logger.FromContext(ctx).Info("Category deleted", "category_id", ID)
		return nil
	})
}
