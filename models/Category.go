package models

type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(255);not null"`
	Color       string `json:"color" gorm:"type:varchar(16);not null"`
	Description string `json:"description" gorm:"type:text"`
	OwnerID     uint   `json:"ownerId" gorm:"index;not null"`
}
