package model

type Restaurant struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	Name            string `gorm:"column:name;size:255;not null"`
	Image           string `gorm:"column:image;size:255;not null;default:''"` // storage reference
	Description     string `gorm:"column:description;type:text;not null"`
	LowestPrice     int    `gorm:"column:lowest_price;not null"`
	HighestPrice    int    `gorm:"column:highest_price;not null"`
	PostalCode      string `gorm:"column:postal_code;size:7;not null"`
	Address         string `gorm:"column:address;size:255;not null"`
	OpeningTime     string `gorm:"column:opening_time;size:5;not null"` // HH:MM
	ClosingTime     string `gorm:"column:closing_time;size:5;not null"` // HH:MM
	SeatingCapacity int    `gorm:"column:seating_capacity;not null"`

	BaseEntity
}

func (*Restaurant) TableName() string {
	return "restaurants"
}

// CategoryRestaurant links a restaurant to at most three categories.
type CategoryRestaurant struct {
	RestaurantID uint32 `gorm:"column:restaurant_id;primaryKey;autoIncrement:false"`
	CategoryID   uint32 `gorm:"column:category_id;primaryKey;autoIncrement:false;index"`

	BaseEntity
}

func (*CategoryRestaurant) TableName() string {
	return "category_restaurant"
}

// RegularHolidayRestaurant links a restaurant to the weekdays it is closed.
type RegularHolidayRestaurant struct {
	RestaurantID     uint32 `gorm:"column:restaurant_id;primaryKey;autoIncrement:false"`
	RegularHolidayID uint32 `gorm:"column:regular_holiday_id;primaryKey;autoIncrement:false"`

	BaseEntity
}

func (*RegularHolidayRestaurant) TableName() string {
	return "regular_holiday_restaurant"
}
