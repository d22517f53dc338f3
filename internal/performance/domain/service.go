package domain

import (
	"context"
	"errors"
)

type CreateRecordRequest struct {
	Staff            string         `json:"staff"`
	Date             string         `json:"date"`
	AdSpend          FlexFloat      `json:"ad_spend"`
	CreditCardAmount FlexFloat      `json:"credit_card_amount"`
	CreditCardOrders FlexInt        `json:"credit_card_orders"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

type UpdateRecordRequest struct {
	ID               string    `json:"-"`
	AdSpend          FlexFloat `json:"ad_spend"`
	CreditCardAmount FlexFloat `json:"credit_card_amount"`
	CreditCardOrders FlexInt   `json:"credit_card_orders"`
}

type ListRecordsRequest struct {
	Staff string `form:"staff"`
	Date  string `form:"date"`
	Month string `form:"month"`
	Limit int    `form:"limit,default=100"`
}

type Service interface {
	Create(ctx context.Context, req CreateRecordRequest) (Record, error)
	Update(ctx context.Context, req UpdateRecordRequest) (Record, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, req ListRecordsRequest) ([]Record, error)
}

var (
	ErrInvalidStaff  = errors.New("invalid_staff")
	ErrInvalidDate   = errors.New("invalid_date")
	ErrInvalidMonth  = errors.New("invalid_month")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
