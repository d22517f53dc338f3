package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/teamops/adboard/internal/performance/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Service struct {
	log         *zap.Logger
	repo        domain.Repository
	genID       *snowflake.Node
	invalidator domain.CacheInvalidator
}

type ServiceParam struct {
	fx.In

	Log         *zap.Logger
	Repo        domain.Repository
	GenID       *snowflake.Node
	Invalidator domain.CacheInvalidator `optional:"true"`
}

func New(p ServiceParam) domain.Service {
	return &Service{
		log:         p.Log.Named("performance.service"),
		repo:        p.Repo,
		genID:       p.GenID,
		invalidator: p.Invalidator,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRecordRequest) (domain.Record, error) {
	staff := strings.TrimSpace(req.Staff)
	if staff == "" {
		return domain.Record{}, domain.ErrInvalidStaff
	}
	date, err := normalizeDate(req.Date)
	if err != nil {
		return domain.Record{}, err
	}
	if req.AdSpend < 0 || req.CreditCardAmount < 0 || req.CreditCardOrders < 0 {
		return domain.Record{}, domain.ErrInvalidAmount
	}

	record := domain.Record{
		ID:               s.genID.Generate(),
		Staff:            staff,
		Date:             date,
		AdSpend:          req.AdSpend.Float64(),
		CreditCardAmount: req.CreditCardAmount.Float64(),
		CreditCardOrders: req.CreditCardOrders.Int64(),
		Metadata:         datatypes.JSONMap(req.Metadata),
	}
	if record.Metadata == nil {
		record.Metadata = datatypes.JSONMap{}
	}

	if err := s.repo.Insert(ctx, &record); err != nil {
		return domain.Record{}, err
	}
	s.recordChanged(record.Date)
	return record, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRecordRequest) (domain.Record, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Record{}, domain.ErrInvalidID
	}
	if req.AdSpend < 0 || req.CreditCardAmount < 0 || req.CreditCardOrders < 0 {
		return domain.Record{}, domain.ErrInvalidAmount
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Record{}, err
	}
	if record == nil {
		return domain.Record{}, domain.ErrNotFound
	}

	record.AdSpend = req.AdSpend.Float64()
	record.CreditCardAmount = req.CreditCardAmount.Float64()
	record.CreditCardOrders = req.CreditCardOrders.Int64()

	if err := s.repo.Update(ctx, record); err != nil {
		return domain.Record{}, err
	}
	s.recordChanged(record.Date)
	return *record, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recordChanged(record.Date)
	return nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Record, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Record{}, domain.ErrInvalidID
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Record{}, err
	}
	if record == nil {
		return domain.Record{}, domain.ErrNotFound
	}
	return *record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRecordsRequest) ([]domain.Record, error) {
	filter := domain.ListFilter{
		Staff: strings.TrimSpace(req.Staff),
		Limit: req.Limit,
	}
	if date := strings.TrimSpace(req.Date); date != "" {
		normalized, err := normalizeDate(date)
		if err != nil {
			return nil, err
		}
		filter.Date = normalized
	}
	if month := strings.TrimSpace(req.Month); month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return nil, domain.ErrInvalidMonth
		}
		filter.MonthPrefix = month + "-"
	}
	if filter.Limit <= 0 || filter.Limit > 1000 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) recordChanged(date string) {
	if s.invalidator == nil {
		return
	}
	s.invalidator.RecordChanged(date)
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

func normalizeDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return "", domain.ErrInvalidDate
	}
	return parsed.Format("2006-01-02"), nil
}
