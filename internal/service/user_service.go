package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/qr-attendance-api/internal/dto"
	"github.com/noah-isme/qr-attendance-api/internal/models"
	"github.com/noah-isme/qr-attendance-api/internal/observability"
	"github.com/noah-isme/qr-attendance-api/internal/repository"
)

const (
	usersCacheKey        = "attendance:users:all"
	usersCacheVersionKey = "attendance:users:version"
)

// UserService exposes the user registry.
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Register(ctx context.Context, req dto.RegisterUserRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, studentID string) error
}

var errStaleUsers = errors.New("users cache version changed")

type userService struct {
	users     repository.UserRepository
	logs      repository.AttendanceLogRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewUserService constructs the user registry service. cache may be nil.
func NewUserService(users repository.UserRepository, logs repository.AttendanceLogRepository, cache *redis.Client, cacheTTL time.Duration, validator *validator.Validate, logger zerolog.Logger) UserService {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &userService{
		users:     users,
		logs:      logs,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validator: validator,
		logger:    logger.With().Str("component", "user_service").Logger(),
		tracer:    otel.Tracer(tracerName),
	}
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "users.list")
	defer span.End()

	if cached, ok := s.cachedUsers(ctx); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	version, versionOK := s.cacheVersion(ctx)

	users, err := s.users.List(ctx)
	if err != nil {
		failSpan(span, err, "list failed")
		return nil, persistenceError("fetch users", err)
	}

	responses := dto.NewUserResponses(users)
	if versionOK {
		s.storeUsers(ctx, responses, version)
	}
	return responses, nil
}

func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest) (dto.UserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "users.register")
	defer span.End()
	span.SetAttributes(attribute.String("student.id", req.StudentID))

	if err := ValidateRegistration(s.validator, req); err != nil {
		failSpan(span, err, "validation failed")
		observability.UsersRegistered().WithLabelValues("invalid").Inc()
		return dto.UserResponse{}, err
	}

	existing, err := s.users.FindByStudentIDOrEmail(ctx, req.StudentID, req.Email)
	switch {
	case err == nil:
		observability.UsersRegistered().WithLabelValues("conflict").Inc()
		span.SetStatus(codes.Error, "duplicate user")
		if existing.StudentID == req.StudentID {
			return dto.UserResponse{}, conflictError("studentId", "Student ID already exists")
		}
		return dto.UserResponse{}, conflictError("email", "Email already exists")
	case !errors.Is(err, repository.ErrNotFound):
		failSpan(span, err, "lookup failed")
		observability.UsersRegistered().WithLabelValues("error").Inc()
		return dto.UserResponse{}, persistenceError("register user", err)
	}

	role := req.Role
	if role == "" {
		role = models.DefaultUserRole
	}

	user := models.User{
		StudentID: req.StudentID,
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		Contact:   req.Contact,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			observability.UsersRegistered().WithLabelValues("conflict").Inc()
			span.SetStatus(codes.Error, "duplicate user")
			return dto.UserResponse{}, &Error{Kind: ErrConflict, Message: "Student ID or email already exists", Err: err}
		}
		failSpan(span, err, "persistence failed")
		observability.UsersRegistered().WithLabelValues("error").Inc()
		return dto.UserResponse{}, persistenceError("register user", err)
	}

	s.invalidateUsers(ctx)
	observability.UsersRegistered().WithLabelValues("created").Inc()
	s.logger.Info().Str("student_id", user.StudentID).Msg("user registered")
	span.SetStatus(codes.Ok, "registered")

	return dto.NewUserResponse(user), nil
}

// Delete removes the user and then every attendance log carrying its student ID.
// The two steps are independent writes; a failure in the second leaves orphaned logs.
func (s *userService) Delete(ctx context.Context, studentID string) error {
	ctx, span := s.tracer.Start(ctx, "users.delete")
	defer span.End()
	span.SetAttributes(attribute.String("student.id", studentID))

	if err := s.users.DeleteByStudentID(ctx, studentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			span.SetStatus(codes.Error, "user not found")
			return notFoundError("User not found")
		}
		failSpan(span, err, "delete failed")
		return persistenceError("delete user", err)
	}

	s.invalidateUsers(ctx)

	removed, err := s.logs.DeleteByStudentID(ctx, studentID)
	if err != nil {
		failSpan(span, err, "cascade failed")
		s.logger.Error().Err(err).Str("student_id", studentID).Msg("user deleted but attendance logs were not")
		return persistenceError("delete user", err)
	}

	s.logger.Info().Str("student_id", studentID).Int64("logs_removed", removed).Msg("user deleted")
	span.SetStatus(codes.Ok, "deleted")
	return nil
}

func (s *userService) cachedUsers(ctx context.Context) ([]dto.UserResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, usersCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read users cache")
		}
		observability.UsersCacheLookups().WithLabelValues("miss").Inc()
		return nil, false
	}

	var users []dto.UserResponse
	if err := json.Unmarshal([]byte(payload), &users); err != nil {
		s.logger.Warn().Err(err).Msg("discarding corrupt users cache entry")
		observability.UsersCacheLookups().WithLabelValues("miss").Inc()
		return nil, false
	}

	observability.UsersCacheLookups().WithLabelValues("hit").Inc()
	return users, true
}

// cacheVersion reads the invalidation counter before the store is queried.
func (s *userService) cacheVersion(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}

	version, err := s.cache.Get(ctx, usersCacheVersionKey).Int64()
	switch {
	case err == nil:
		return version, true
	case errors.Is(err, redis.Nil):
		return 0, true
	default:
		s.logger.Warn().Err(err).Msg("failed to read users cache version")
		return 0, false
	}
}

// storeUsers writes the list only if no invalidation happened since version was read.
func (s *userService) storeUsers(ctx context.Context, users []dto.UserResponse, version int64) {
	payload, err := json.Marshal(users)
	if err != nil {
		return
	}

	err = s.cache.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, usersCacheVersionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleUsers
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, usersCacheKey, payload, s.cacheTTL)
			return nil
		})
		return err
	}, usersCacheVersionKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleUsers), errors.Is(err, redis.TxFailedErr):
		s.logger.Debug().Msg("users changed during list, cache write skipped")
	default:
		s.logger.Warn().Err(err).Msg("failed to write users cache")
	}
}

func (s *userService) invalidateUsers(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_, err := s.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, usersCacheVersionKey)
		pipe.Del(ctx, usersCacheKey)
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate users cache")
	}
}
