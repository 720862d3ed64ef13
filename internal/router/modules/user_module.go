package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/devconnect/api/internal/interface/http"
	"github.com/devconnect/api/internal/interface/middleware"
	"github.com/devconnect/api/pkg/helpers"
)

// UserModule wires the profile subsystem. Every route requires a bearer
// token.
// GET /api/users, GET /api/users/search, GET /api/users/:userId,
// PUT /api/users/profile, POST /api/users/avatar

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/:userId", m.Handler.Get)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/avatar", m.Handler.UploadAvatar)
	}
}
