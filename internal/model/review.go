package model

type Review struct {
	ID           uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Score        int    `gorm:"column:score;not null"` // 1..5
	Content      string `gorm:"column:content;type:text;not null"`
	RestaurantID uint32 `gorm:"column:restaurant_id;not null;index"`
	MemberID     uint32 `gorm:"column:member_id;not null;index"`

	Member *Member `gorm:"foreignKey:MemberID"`

	BaseEntity
}

func (*Review) TableName() string {
	return "reviews"
}
