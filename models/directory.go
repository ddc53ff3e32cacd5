package models

import (
	"time"

	"gorm.io/gorm"
)

// Group represents a community WhatsApp group listing
type Group struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Category    string `json:"category" gorm:"index"`
	Description string `json:"description"`
	InviteLink  string `json:"invite_link" gorm:"not null"`
	MemberCount int    `json:"member_count"`
	Approved    bool   `json:"approved" gorm:"default:false;index"`
}

// Business represents a local business listing
type Business struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Category    string `json:"category" gorm:"index"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Website     string `json:"website"`
	Description string `json:"description"`
	Approved    bool   `json:"approved" gorm:"default:false;index"`
}

// Classified represents a classified ad. Ads expire and drop out of
// public listings after ExpiresAt.
type Classified struct {
	gorm.Model
	Title      string    `json:"title" gorm:"not null"`
	Body       string    `json:"body"`
	PriceCents int64     `json:"price_cents"`
	Category   string    `json:"category" gorm:"index"`
	Contact    string    `json:"contact" gorm:"not null"`
	Approved   bool      `json:"approved" gorm:"default:false;index"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Synagogue represents a shul listing with its minyan schedule
type Synagogue struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Nusach      string `json:"nusach"`
	Address     string `json:"address"`
	Rabbi       string `json:"rabbi"`
	MinyanTimes string `json:"minyan_times"`
	Website     string `json:"website"`
}
