package auth

import (
	"github.com/intellious/hrms/internal/auth/repository"
	"github.com/intellious/hrms/internal/auth/service"
	"github.com/intellious/hrms/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(token.NewSigner),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
