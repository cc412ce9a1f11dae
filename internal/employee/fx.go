package employee

import (
	"github.com/intellious/hrms/internal/authorization"
	"github.com/intellious/hrms/internal/employee/repository"
	"github.com/intellious/hrms/internal/employee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("employee.service",
	fx.Provide(authorization.NewPolicy),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
