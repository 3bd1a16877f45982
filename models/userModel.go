package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	gorm.Model
	Name               string    `json:"name"`
	Email              string    `json:"email" gorm:"uniqueIndex"`
	Password           string    `json:"-"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	Role               Role      `json:"role" gorm:"type:varchar(20);default:'CUSTOMER'"`
	PasswordResetToken string    `json:"-"`
	ResetTokenExpires  time.Time `json:"-"`
}

type SignupData struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserSummary is the purchaser shape embedded in composed orders and vouchers.
type UserSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
	}
}
