package router

import (
	"github.com/devconnect/api/internal/application"
	"github.com/devconnect/api/internal/container"
	pginfra "github.com/devconnect/api/internal/infrastructure/postgres"
	handlers "github.com/devconnect/api/internal/interface/http"
	"github.com/devconnect/api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup after the container is
// populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		repo,
		container.GetJWT(),
		logger,
		container.GetRabbitPub(),
		container.GetES(),
		cfg.ESUsersIndex,
		cfg.MailSendEnabled,
	)
	userSvc := application.NewUserService(
		repo,
		container.GetRedis(),
		container.GetGCS(),
		cfg.GCSBucket,
		logger,
		container.GetES(),
		cfg.ESUsersIndex,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), container.GetJWT()))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), container.GetJWT()))
}
