package model

import "time"

// Favorite is a (member, restaurant) pair. The composite key makes the set semantics hold in the database.
type Favorite struct {
	MemberID     uint32    `gorm:"column:member_id;primaryKey;autoIncrement:false"`
	RestaurantID uint32    `gorm:"column:restaurant_id;primaryKey;autoIncrement:false;index"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

func (*Favorite) TableName() string {
	return "favorites"
}
