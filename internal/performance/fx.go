package performance

import (
	"github.com/teamops/adboard/internal/performance/domain"
	"github.com/teamops/adboard/internal/performance/repository"
	"github.com/teamops/adboard/internal/performance/service"
	"go.uber.org/fx"
)

var Module = fx.Module("performance.service",
	fx.Provide(
		repository.Provide,
		func(repo domain.Repository) domain.Reader { return repo },
		service.New,
	),
)
