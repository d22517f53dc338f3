package commission

import (
	"github.com/teamops/adboard/internal/commission/domain"
	"github.com/teamops/adboard/internal/commission/service"
	perfdomain "github.com/teamops/adboard/internal/performance/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("commission.service",
	fx.Provide(
		service.New,
		func(s *service.Service) domain.Service { return s },
		func(s *service.Service) perfdomain.CacheInvalidator { return s },
	),
)
