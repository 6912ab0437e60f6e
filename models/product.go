package models

import "time"

type Product struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Name        string    `gorm:"not null" bson:"name" json:"name"`
	Description string    `gorm:"not null" bson:"description" json:"description"`
	Price       float64   `gorm:"not null" bson:"price" json:"price"`
	Category    string    `gorm:"not null;index" bson:"category" json:"category"`
	Sizes       []string  `gorm:"type:text;serializer:json" bson:"sizes" json:"sizes"`
	Colors      []string  `gorm:"type:text;serializer:json" bson:"colors" json:"colors"`
	ImageURL    string    `gorm:"not null" bson:"imageUrl" json:"imageUrl"`
	InStock     bool      `gorm:"not null" bson:"inStock" json:"inStock"`
	CreatedAt   time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
