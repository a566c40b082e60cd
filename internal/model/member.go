package model

import "time"

// Member is an end user who reserves, reviews and favorites restaurants.
type Member struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	Name        string     `gorm:"column:name;size:255;not null"`
	Kana        string     `gorm:"column:kana;size:255;not null"` // フリガナ
	Email       string     `gorm:"column:email;size:255;not null;uniqueIndex:idx_members_email"`
	PostalCode  string     `gorm:"column:postal_code;size:7;not null"`
	Address     string     `gorm:"column:address;size:255;not null"`
	PhoneNumber string     `gorm:"column:phone_number;size:20;not null"`
	Birthday    *time.Time `gorm:"column:birthday;type:date"`
	Occupation  *string    `gorm:"column:occupation;size:255"`
	Password    string     `gorm:"column:password;size:60;not null"` // bcrypt hash

	// billing collaborator customer reference, created lazily on first subscription flow
	BillingCustomerID *string `gorm:"column:billing_customer_id;size:255;index"`

	BaseEntity
}

func (*Member) TableName() string {
	return "members"
}

// NewMember creates a new Member. password must already be hashed.
func NewMember(name, kana, email, postalCode, address, phoneNumber, password string) *Member {
	return &Member{
		Name:        name,
		Kana:        kana,
		Email:       email,
		PostalCode:  postalCode,
		Address:     address,
		PhoneNumber: phoneNumber,
		Password:    password,
	}
}
