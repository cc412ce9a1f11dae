package audit

import (
	"github.com/intellious/hrms/internal/audit/repository"
	"github.com/intellious/hrms/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
