package auth

type SignupRequest struct {
	Name                 string  `json:"name" form:"name" binding:"required,max=255"`
	Kana                 string  `json:"kana" form:"kana" binding:"required,max=255"`
	Email                string  `json:"email" form:"email" binding:"required,email,max=255"`
	PostalCode           string  `json:"postal_code" form:"postal_code" binding:"required,postal_code"`
	Address              string  `json:"address" form:"address" binding:"required,max=255"`
	PhoneNumber          string  `json:"phone_number" form:"phone_number" binding:"required,phone"`
	Birthday             *string `json:"birthday" form:"birthday" binding:"omitempty,date_ymd"`
	Occupation           *string `json:"occupation" form:"occupation" binding:"omitempty,max=255"`
	Password             string  `json:"password" form:"password" binding:"required,min=8,max=72"`
	PasswordConfirmation string  `json:"password_confirmation" form:"password_confirmation" binding:"required,eqfield=Password"`
}

type SignupResponse struct {
	ID uint32 `json:"id"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,max=72"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
