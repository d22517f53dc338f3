package migration

import (
	"errors"

	perfdomain "github.com/teamops/adboard/internal/performance/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// This migration package keeps adboard usable out of the box for local and
// self-hosted environments: the schema is created automatically on startup.
func Run(db *gorm.DB, log *zap.Logger) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	if err := db.AutoMigrate(&perfdomain.Record{}); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

var Module = fx.Module("migration",
	fx.Invoke(Run),
)
