package model

type Category struct {
	ID   uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;size:255;not null;uniqueIndex:idx_categories_name"`

	BaseEntity
}

func (*Category) TableName() string {
	return "categories"
}
