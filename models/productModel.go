package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" binding:"required" gorm:"uniqueIndex"`
}

type Product struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Price       float64        `json:"price" binding:"required"`
	CostPrice   float64        `json:"costPrice"`
	Stock       int            `json:"stock"`
	IsActive    bool           `json:"isActive" gorm:"default:true"`
	Material    string         `json:"material"`
	CategoryID  uint           `json:"categoryId" binding:"required"`
	Category    Category       `json:"category"`
	Images      datatypes.JSON `json:"images" gorm:"type:json"`
}
