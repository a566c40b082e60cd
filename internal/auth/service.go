package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/nagoyameshi/go-api-server/internal/member"
	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/database"
	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db               *gorm.DB
	memberRepository *member.MemberRepository
	sessions         *Sessions
}

func NewAuthService(db *gorm.DB, memberRepository *member.MemberRepository, sessions *Sessions) *AuthService {
	return &AuthService{
		db:               db,
		memberRepository: memberRepository,
		sessions:         sessions,
	}
}

func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*TokenResponse, error) {
	log := logger.FromContext(ctx)

	// 1. Find member by email
	member, err := a.memberRepository.FindByEmail(ctx, a.db, request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("로그인 실패 - member email not found", "email", logger.MaskEmail(request.Email))
			return nil, fmt.Errorf("error %w", ErrInCorrectEmailPassword) // Security: don't reveal if email exists
		}
		log.Error("로그인 실패 - 알 수 없는 오류", "error", err)
		return nil, fmt.Errorf("로그인 실패: %w", err)
	}

	// 2. Validate password
	if err := CheckPassword(member.Password, request.Password); err != nil {
		log.Warn("로그인 실패 - invalid password", "email", logger.MaskEmail(request.Email))
		return nil, err
	}

	// 3. Issue the member session
	response, err := a.sessions.Issue(ctx, member.ID, member.Email)
	if err != nil {
		return nil, err
	}

	log.Info("로그인 성공", "email", logger.MaskEmail(request.Email))
	return response, nil
}

func (a *AuthService) Signup(ctx context.Context, request *SignupRequest) (uint32, error) {
	log := logger.FromContext(ctx)

	birthday, err := member.ParseBirthday(request.Birthday)
	if err != nil {
		verr := sharedError.NewValidationError()
		verr.Add("birthday", "birthdayはYYYY-MM-DD形式で入力してください。")
		return 0, verr
	}

	var memberID uint32
	err = database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		exists, err := a.memberRepository.IsExist(ctx, tx, request.Email)
		if err != nil {
			log.Error("Failed to check member existence", "error", err)
			return fmt.Errorf("check member existence: %w", err)
		}
		if exists {
			log.Warn("Member already exists", "email", logger.MaskEmail(request.Email))
			return fmt.Errorf("error %w", member.ErrMemberAlreadyExists)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", "error", err)
			return fmt.Errorf("hash password: %w", err)
		}

		m := model.NewMember(
			request.Name,
			request.Kana,
			request.Email,
			request.PostalCode,
			request.Address,
			request.PhoneNumber,
			string(hashedPassword),
		)
		m.Birthday = birthday
		m.Occupation = request.Occupation
		if err := a.memberRepository.Create(ctx, tx, m); err != nil {
			log.Error("Failed to create member", "error", err)
			return fmt.Errorf("create member: %w", err)
		}

		memberID = m.ID
		log.Info("Member created successfully", "email", logger.MaskEmail(request.Email))
		return nil
	})
	return memberID, err
}
