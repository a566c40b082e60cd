package model

import "time"

// Reservation is a member's booking at a restaurant. Immutable once created;
// the only mutation is cancellation (hard delete).
type Reservation struct {
	ID               uint32    `gorm:"column:id;primaryKey;autoIncrement"`
	ReservedDatetime time.Time `gorm:"column:reserved_datetime;not null;index:idx_reservations_member_datetime,priority:2"`
	NumberOfPeople   int       `gorm:"column:number_of_people;not null"`
	RestaurantID     uint32    `gorm:"column:restaurant_id;not null;index"`
	MemberID         uint32    `gorm:"column:member_id;not null;index:idx_reservations_member_datetime,priority:1"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID"`

	BaseEntity
}

func (*Reservation) TableName() string {
	return "reservations"
}
