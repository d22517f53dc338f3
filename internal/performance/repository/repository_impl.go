package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/teamops/adboard/internal/performance/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListAll(ctx context.Context) ([]domain.Record, error) {
	var records []domain.Record
	err := r.db.WithContext(ctx).
		Order("date ASC, staff ASC, id ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Record, error) {
	var record domain.Record
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Record, error) {
	stmt := r.db.WithContext(ctx).Model(&domain.Record{})
	if filter.Staff != "" {
		stmt = stmt.Where("staff = ?", filter.Staff)
	}
	if filter.Date != "" {
		stmt = stmt.Where("date = ?", filter.Date)
	}
	if filter.MonthPrefix != "" {
		stmt = stmt.Where("date LIKE ?", filter.MonthPrefix+"%")
	}
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}

	var records []domain.Record
	err := stmt.Order("date DESC, staff ASC, id ASC").Find(&records).Error
	return records, err
}

func (r *repository) Insert(ctx context.Context, record *domain.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) Update(ctx context.Context, record *domain.Record) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Record{}).Error
}
