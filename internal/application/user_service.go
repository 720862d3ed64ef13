package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/devconnect/api/internal/domain/repository"
	"github.com/devconnect/api/pkg/helpers"
)

const profileCacheTTL = 5 * time.Minute

// UserService serves the profile subsystem: listing, lookup, profile
// updates, avatar upload, and search. Redis is a read-through cache for
// single-profile reads only; the directory stays the source of truth.
type UserService struct {
	Repo         repository.UserRepository
	Redis        *redis.Client
	GCS          *storage.Client
	GCSBucket    string
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserService(repo repository.UserRepository, rdb *redis.Client, gcs *storage.Client, gcsBucket string, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *UserService {
	return &UserService{
		Repo:         repo,
		Redis:        rdb,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

func profileKey(id string) string {
	return "user:profile:" + id
}

// ListUsers returns everyone except the caller.
func (s *UserService) ListUsers(ctx context.Context, exceptID string) ([]*UserProfile, error) {
	users, err := s.Repo.ListExcept(ctx, exceptID)
	if err != nil {
		return nil, err
	}
	return NewUserProfiles(users), nil
}

// GetUser returns a single profile, served from cache when possible.
func (s *UserService) GetUser(ctx context.Context, id string) (*UserProfile, error) {
	if s.Redis != nil {
		var cached UserProfile
		if hit, err := helpers.RedisGetJSON(ctx, s.Redis, profileKey(id), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	p := NewUserProfile(u)

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileKey(id), p, profileCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("profile cache write failed")
		}
	}
	return p, nil
}

type UpdateProfileInput struct {
	Name     string
	PhotoURL string
	Bio      string
	Skills   []string
}

// UpdateProfile mutates the caller's profile fields and invalidates the
// cached copy.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*UserProfile, error) {
	u, err := s.Repo.UpdateProfile(ctx, userID, repository.ProfileUpdate{
		Name:     in.Name,
		PhotoURL: in.PhotoURL,
		Bio:      in.Bio,
		Skills:   in.Skills,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.invalidateProfile(ctx, userID)
	indexUser(ctx, s.ES, s.ESUsersIndex, s.Logger, u)
	return NewUserProfile(u), nil
}

// UploadAvatar stores the image in GCS and points the profile at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*UserProfile, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("avatar storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	u, err := s.Repo.UpdateProfile(ctx, userID, repository.ProfileUpdate{PhotoURL: url})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.invalidateProfile(ctx, userID)
	indexUser(ctx, s.ES, s.ESUsersIndex, s.Logger, u)
	return NewUserProfile(u), nil
}

// SearchUsers queries the Elasticsearch users index.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	return searchUsers(ctx, s.ES, s.ESUsersIndex, q, size)
}

func (s *UserService) invalidateProfile(ctx context.Context, id string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, profileKey(id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("profile cache invalidation failed")
	}
}
