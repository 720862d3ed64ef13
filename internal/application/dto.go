package application

import (
	"time"

	"github.com/devconnect/api/internal/domain/entity"
)

// UserProfile is the account shape exposed by the API. The password hash is
// not representable here, so no response can leak it.
type UserProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PhotoURL  string    `json:"photoURL"`
	Bio       string    `json:"bio"`
	Skills    []string  `json:"skills"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserProfile(u *entity.User) *UserProfile {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return &UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		PhotoURL:  u.PhotoURL,
		Bio:       u.Bio,
		Skills:    skills,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func NewUserProfiles(users []*entity.User) []*UserProfile {
	out := make([]*UserProfile, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserProfile(u))
	}
	return out
}
