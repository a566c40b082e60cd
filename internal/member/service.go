package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/nagoyameshi/go-api-server/internal/shared/database"
	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"gorm.io/gorm"
)

type MemberService struct {
	db               *gorm.DB
	memberRepository *MemberRepository
}

func NewMemberService(db *gorm.DB, memberRepository *MemberRepository) *MemberService {
	return &MemberService{
		db:               db,
		memberRepository: memberRepository,
	}
}

func (s *MemberService) GetProfile(ctx context.Context, memberID uint32) (*GetProfileResponse, error) {
	member, err := s.memberRepository.FindByID(ctx, s.db, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}

	return NewProfileResponse(member), nil
}

func (s *MemberService) UpdateProfile(ctx context.Context, memberID uint32, request *UpdateProfileRequest) error {
	log := logger.FromContext(ctx)

	birthday, err := ParseBirthday(request.Birthday)
	if err != nil {
		verr := sharedError.NewValidationError()
		verr.Add("birthday", "birthdayはYYYY-MM-DD形式で入力してください。")
		return verr
	}

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.memberRepository.FindByID(ctx, tx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		if request.Email != member.Email {
			taken, err := s.memberRepository.IsEmailTaken(ctx, tx, request.Email, memberID)
			if err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if taken {
				log.Warn("Email already in use", "email", logger.MaskEmail(request.Email))
				return fmt.Errorf("email %s: %w", logger.MaskEmail(request.Email), ErrMemberAlreadyExists)
			}
		}

		member.Name = request.Name
		member.Kana = request.Kana
		member.Email = request.Email
		member.PostalCode = request.PostalCode
		member.Address = request.Address
		member.PhoneNumber = request.PhoneNumber
		member.Birthday = birthday
		member.Occupation = request.Occupation

		if err := s.memberRepository.Save(ctx, tx, member); err != nil {
			return fmt.Errorf("update member: %w", err)
		}

		log.Info("Member profile updated", "member_id", memberID, "phone_number", logger.MaskPhone(member.PhoneNumber))
		return nil
	})
}
