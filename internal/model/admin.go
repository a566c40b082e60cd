package model

// Admin operates the catalog. Admin sessions never overlap member sessions.
type Admin struct {
	ID       uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Email    string `gorm:"column:email;size:255;not null;uniqueIndex:idx_admins_email"`
	Password string `gorm:"column:password;size:60;not null"`

	BaseEntity
}

func (*Admin) TableName() string {
	return "admins"
}
