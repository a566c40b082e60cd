package model

// RegularHoliday is a fixed weekday closure. The table is seeded, not edited.
type RegularHoliday struct {
	ID    uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Day   string `gorm:"column:day;size:20;not null"` // 月曜日 ... 日曜日, 不定休
	Value *int   `gorm:"column:value"`                // Carbon weekday number, nil for irregular

	BaseEntity
}

func (*RegularHoliday) TableName() string {
	return "regular_holidays"
}
