package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nagoyameshi/go-api-server/internal/auth"
	"github.com/nagoyameshi/go-api-server/internal/category"
	"github.com/nagoyameshi/go-api-server/internal/member"
	"github.com/nagoyameshi/go-api-server/internal/reservation"
	"github.com/nagoyameshi/go-api-server/internal/restaurant"
	"github.com/nagoyameshi/go-api-server/internal/review"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

// Repositories groups what the dashboard counts.
type Repositories struct {
	Admin       *AdminRepository
	Member      *member.MemberRepository
	Restaurant  *restaurant.RestaurantRepository
	Category    *category.CategoryRepository
	Reservation *reservation.ReservationRepository
	Review      *review.ReviewRepository
}

type AdminService struct {
	db       *gorm.DB
	repos    Repositories
	sessions *auth.Sessions
}

func NewAdminService(db *gorm.DB, repos Repositories, sessions *auth.Sessions) *AdminService {
	return &AdminService{
		db:       db,
		repos:    repos,
		sessions: sessions,
	}
}

func (s *AdminService) Login(ctx context.Context, request *auth.LoginRequest) (*auth.TokenResponse, error) {
	log := logger.FromContext(ctx)

	admin, err := s.repos.Admin.FindByEmail(ctx, s.db, request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("관리자 로그인 실패 - email not found", "email", logger.MaskEmail(request.Email))
			return nil, fmt.Errorf("error %w", auth.ErrInCorrectEmailPassword)
		}
		return nil, fmt.Errorf("관리자 로그인 실패: %w", err)
	}

	if err := auth.CheckPassword(admin.Password, request.Password); err != nil {
		log.Warn("관리자 로그인 실패 - invalid password", "email", logger.MaskEmail(request.Email))
		return nil, err
	}

	response, err := s.sessions.Issue(ctx, admin.ID, admin.Email)
	if err != nil {
		return nil, err
	}

	log.Info("관리자 로그인 성공", "admin_id", admin.ID)
	return response, nil
}

func (s *AdminService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	var resp DashboardResponse

	counts := []struct {
		name  string
		count func(context.Context, *gorm.DB) (int64, error)
		dst   *int64
	}{
		{"members", s.repos.Member.Count, &resp.MemberCount},
		{"restaurants", s.repos.Restaurant.Count, &resp.RestaurantCount},
		{"categories", s.repos.Category.Count, &resp.CategoryCount},
		{"reservations", s.repos.Reservation.Count, &resp.ReservationCount},
		{"reviews", s.repos.Review.Count, &resp.ReviewCount},
	}
	for _, c := range counts {
		n, err := c.count(ctx, s.db)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		*c.dst = n
	}
	return &resp, nil
}

// Members searches members by name or kana.
func (s *AdminService) Members(ctx context.Context, keyword string, page pagination.Page) (*MemberListResponse, error) {
	keyword = strings.TrimSpace(keyword)

	members, total, err := s.repos.Member.Search(ctx, s.db, keyword, page)
	if err != nil {
		return nil, fmt.Errorf("회원 검색 실패: %w", err)
	}

	resp := &MemberListResponse{
		Members: make([]MemberResponse, 0, len(members)),
		Keyword: keyword,
		Meta:    pagination.NewMeta(page, total),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, newMemberResponse(m))
	}
	return resp, nil
}

func (s *AdminService) Member(ctx context.Context, ID uint32) (*MemberDetailResponse, error) {
	m, err := s.repos.Member.FindByID(ctx, s.db, ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", ID, member.ErrMemberNotFound)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}
	return &MemberDetailResponse{Member: newMemberResponse(*m)}, nil
}
