package model

type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(200);not null;index" json:"name" validate:"required,min=1,max=200"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Price       float64 `gorm:"not null" json:"price" validate:"gte=0"`
	Quantity    int     `gorm:"not null" json:"quantity" validate:"gte=0"`
}
