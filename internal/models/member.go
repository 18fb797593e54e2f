package models

import (
	"time"

	"gorm.io/datatypes"
)

type Member struct {
	ID           uint64                      `gorm:"primarykey" json:"id"`
	UserID       uint64                      `gorm:"uniqueIndex;not null" json:"userId"`
	FirstName    string                      `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName     string                      `gorm:"type:varchar(100);not null" json:"lastName"`
	Email        string                      `gorm:"type:varchar(255)" json:"email"`
	Phone        string                      `gorm:"type:varchar(50)" json:"phone"`
	Promotion    int                         `gorm:"index;not null" json:"promotion"`
	Company      string                      `gorm:"type:varchar(255)" json:"company"`
	Position     string                      `gorm:"type:varchar(255)" json:"position"`
	Location     string                      `gorm:"type:varchar(255)" json:"location"`
	Bio          string                      `gorm:"type:text" json:"bio"`
	LinkedIn     string                      `gorm:"type:varchar(512)" json:"linkedin"`
	Expertise    datatypes.JSONSlice[string] `json:"expertise"`
	ProfileImage *string                     `gorm:"type:varchar(1024)" json:"profileImage"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}
