package project

import (
	"github.com/intellious/hrms/internal/project/repository"
	"github.com/intellious/hrms/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
