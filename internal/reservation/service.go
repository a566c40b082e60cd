package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nagoyameshi/go-api-server/internal/access"
	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/restaurant"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/database"
	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/metrics"
	"github.com/nagoyameshi/go-api-server/internal/shared/pagination"
	"github.com/nagoyameshi/go-api-server/internal/shared/validator"
	"gorm.io/gorm"
)

type ReservationService struct {
	db                    *gorm.DB
	reservationRepository *ReservationRepository
	restaurantService     *restaurant.RestaurantService
	location              *time.Location
	metrics               *metrics.Metrics
}

func NewReservationService(
	db *gorm.DB,
	reservationRepository *ReservationRepository,
	restaurantService *restaurant.RestaurantService,
	location *time.Location,
	m *metrics.Metrics,
) *ReservationService {
	if location == nil {
		location = time.Local
	}
	return &ReservationService{
		db:                    db,
		reservationRepository: reservationRepository,
		restaurantService:     restaurantService,
		location:              location,
		metrics:               m,
	}
}

func (s *ReservationService) List(ctx context.Context, memberID uint32, page pagination.Page) (*ListResponse, error) {
	reservations, total, err := s.reservationRepository.ListByMember(ctx, s.db, memberID, page)
	if err != nil {
		return nil, fmt.Errorf("예약 목록 조회 실패: %w", err)
	}

	resp := &ListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
		Meta:         pagination.NewMeta(page, total),
	}
	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, newReservationResponse(r, s.location, s.restaurantService.ImageURL))
	}
	return resp, nil
}

// CreateForm returns what the reservation form shows about the restaurant.
func (s *ReservationService) CreateForm(ctx context.Context, restaurantID uint32) (*CreateFormResponse, error) {
	r, err := s.restaurantService.Summary(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return &CreateFormResponse{
		Restaurant: RestaurantSummary{
			ID:              r.ID,
			Name:            r.Name,
			ImageURL:        s.restaurantService.ImageURL(r.Image),
			Address:         r.Address,
			OpeningTime:     r.OpeningTime,
			ClosingTime:     r.ClosingTime,
			SeatingCapacity: r.SeatingCapacity,
		},
	}, nil
}

// Create books a table. The date and time are read in the application time zone.
// Capacity and opening hours are not checked.
func (s *ReservationService) Create(ctx context.Context, memberID, restaurantID uint32, request *CreateReservationRequest) (*model.Reservation, error) {
	log := logger.FromContext(ctx)

	reservedAt, err := time.ParseInLocation(
		validator.DateLayout+" "+validator.TimeLayout,
		request.ReservationDate+" "+request.ReservationTime,
		s.location,
	)
	if err != nil {
		verr := sharedError.NewValidationError()
		verr.Add("reservation_date", "reservation_dateとreservation_timeを正しく入力してください。")
		return nil, verr
	}

	if _, err := s.restaurantService.Summary(ctx, restaurantID); err != nil {
		return nil, err
	}

	reservation := &model.Reservation{
		ReservedDatetime: reservedAt,
		NumberOfPeople:   request.NumberOfPeople,
		RestaurantID:     restaurantID,
		MemberID:         memberID,
	}
	if err := s.reservationRepository.Create(ctx, s.db, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.metrics.Reservation("created")
	log.Info("Reservation created",
		"reservation_id", reservation.ID,
		"restaurant_id", restaurantID,
		"member_id", memberID,
	)
	return reservation, nil
}

// Cancel deletes the reservation if principal owns it.
func (s *ReservationService) Cancel(ctx context.Context, principal sharedContext.Principal, reservationID uint32) error {
	log := logger.FromContext(ctx)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepository.FindByID(ctx, tx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("예약을 찾을 수 없습니다 reservationID=%d %w", reservationID, ErrReservationNotFound)
			}
			return fmt.Errorf("예약 조회 실패: %w", err)
		}

		if err := access.CheckOwner(principal, reservation.MemberID); err != nil {
			log.Warn("예약 취소 거부 - not owner", "reservation_id", reservationID, "member_id", principal.ID)
			return fmt.Errorf("reservationID=%d %w", reservationID, err)
		}

		if err := s.reservationRepository.Delete(ctx, tx, reservationID); err != nil {
			return fmt.Errorf("delete reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.Reservation("canceled")
	log.Info("Reservation canceled", "reservation_id", reservationID, "member_id", principal.ID)
	return nil
}
