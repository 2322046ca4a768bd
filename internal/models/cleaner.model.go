package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Cleaner struct {
	BaseModel
	Name         string          `gorm:"type:text;not null"         json:"name"`
	Team         string          `gorm:"type:text"                  json:"team"`
	Phone        string          `gorm:"type:text"                  json:"phone"`
	Email        string          `gorm:"type:text"                  json:"email"`
	Rating       decimal.Decimal `gorm:"type:decimal(3,2)"          json:"rating"`
	Available    bool            `gorm:"not null;default:true;index" json:"available"`
	AssignedJobs int             `gorm:"not null;default:0"         json:"assignedJobs"`
	Lat          *float64        `gorm:"type:double precision"      json:"lat,omitempty"`
	Lng          *float64        `gorm:"type:double precision"      json:"lng,omitempty"`
}

func (c *Cleaner) HasLocation() bool {
	return c.Lat != nil && c.Lng != nil
}

func (c *Cleaner) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == 0 || c.Name == "" {
		return gorm.ErrInvalidValue
	}
	return nil
}
