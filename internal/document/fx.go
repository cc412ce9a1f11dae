package document

import (
	"github.com/intellious/hrms/internal/document/repository"
	"github.com/intellious/hrms/internal/document/service"
	"go.uber.org/fx"
)

var Module = fx.Module("document",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
