package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Record is one raw ad-performance row. Multiple rows per (staff, date) are
// allowed; consumers sum them.
type Record struct {
	ID               snowflake.ID      `gorm:"primaryKey" json:"id"`
	Staff            string            `gorm:"not null;index:idx_performance_staff_date" json:"staff"`
	Date             string            `gorm:"not null;index:idx_performance_staff_date" json:"date"` // YYYY-MM-DD
	AdSpend          float64           `gorm:"not null;default:0" json:"ad_spend"`
	CreditCardAmount float64           `gorm:"not null;default:0" json:"credit_card_amount"`
	CreditCardOrders int64             `gorm:"not null;default:0" json:"credit_card_orders"`
	Metadata         datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Record) TableName() string { return "performance_records" }
