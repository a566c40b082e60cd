package member

import (
	"time"

	"github.com/nagoyameshi/go-api-server/internal/model"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
)

type GetProfileResponse struct {
	ID          uint32  `json:"id"`
	Name        string  `json:"name"`
	Kana        string  `json:"kana"`
	Email       string  `json:"email"`
	PostalCode  string  `json:"postal_code"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phone_number"`
	Birthday    *string `json:"birthday,omitempty"`
	Occupation  *string `json:"occupation,omitempty"`
	handler.Flash
}

type UpdateProfileRequest struct {
	Name        string  `json:"name" form:"name" binding:"required,max=255"`
	Kana        string  `json:"kana" form:"kana" binding:"required,max=255"`
	Email       string  `json:"email" form:"email" binding:"required,email,max=255"`
	PostalCode  string  `json:"postal_code" form:"postal_code" binding:"required,postal_code"`
	Address     string  `json:"address" form:"address" binding:"required,max=255"`
	PhoneNumber string  `json:"phone_number" form:"phone_number" binding:"required,phone"`
	Birthday    *string `json:"birthday" form:"birthday" binding:"omitempty,date_ymd"`
	Occupation  *string `json:"occupation" form:"occupation" binding:"omitempty,max=255"`
}

func NewProfileResponse(m *model.Member) *GetProfileResponse {
	resp := &GetProfileResponse{
		ID:          m.ID,
		Name:        m.Name,
		Kana:        m.Kana,
		Email:       m.Email,
		PostalCode:  m.PostalCode,
		Address:     m.Address,
		PhoneNumber: m.PhoneNumber,
		Occupation:  m.Occupation,
	}
	if m.Birthday != nil {
		birthday := m.Birthday.Format("2006-01-02")
		resp.Birthday = &birthday
	}
	return resp
}

// ParseBirthday converts the optional YYYY-MM-DD birthday field.
func ParseBirthday(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
