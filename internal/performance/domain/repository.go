package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Reader is the narrow read surface the commission pipeline depends on. It
// returns every row ever written; date and staff filtering happens client-side.
type Reader interface {
	ListAll(ctx context.Context) ([]Record, error)
}

type Repository interface {
	Reader
	FindByID(ctx context.Context, id snowflake.ID) (*Record, error)
	List(ctx context.Context, filter ListFilter) ([]Record, error)
	Insert(ctx context.Context, record *Record) error
	Update(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id snowflake.ID) error
}

type ListFilter struct {
	Staff       string
	Date        string
	MonthPrefix string
	Limit       int
}

// CacheInvalidator is notified after any write so derived commission caches
// for the touched day and month can be dropped.
type CacheInvalidator interface {
	RecordChanged(date string)
}
