package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/devconnect/api/internal/interface/http"
	"github.com/devconnect/api/internal/interface/middleware"
	"github.com/devconnect/api/pkg/helpers"
)

// AuthModule wires the auth HTTP surface.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/verify

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/auth/verify", m.Handler.Verify)
	}
}
