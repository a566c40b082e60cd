package model

// AllModels lists every table in dependency order.
func AllModels() []any {
	return []any{
		&Member{},
		&Admin{},
		&Category{},
		&RegularHoliday{},
		&Restaurant{},
		&CategoryRestaurant{},
		&RegularHolidayRestaurant{},
		&Reservation{},
		&Review{},
		&Favorite{},
		&BillingCustomer{},
		&BillingSubscription{},
	}
}
