// Package domain contains core types for the customer profile service.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Profile holds the delivery details for a customer. The address fields are
// the live values; quotes snapshot FullAddress at creation time and are not
// affected by later edits here.
type Profile struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"-"`
	Username  string            `gorm:"type:text;not null;uniqueIndex" json:"username"`
	FullName  string            `gorm:"type:text;not null" json:"fullname"`
	Address1  string            `gorm:"type:text;not null" json:"address1"`
	Address2  string            `gorm:"type:text;not null;default:''" json:"address2"`
	City      string            `gorm:"type:text;not null" json:"city"`
	ZipCode   string            `gorm:"type:text;not null" json:"zipcode"`
	State     string            `gorm:"type:text;not null" json:"state"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "profiles" }

// FullAddress renders the single-line delivery address used on quotes.
func (p Profile) FullAddress() string {
	address2 := p.Address2
	if address2 != "" {
		address2 = " " + address2
	}
	var b strings.Builder
	b.WriteString(p.Address1)
	b.WriteString(address2)
	b.WriteString(", ")
	b.WriteString(p.City)
	b.WriteString(", ")
	b.WriteString(p.State)
	b.WriteString(" ")
	b.WriteString(p.ZipCode)
	return b.String()
}
