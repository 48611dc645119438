package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
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

// cutoffLayout renders instants the way browser clients produce attendance timestamps.
const cutoffLayout = "2006-01-02T15:04:05.000Z07:00"

// ActiveCutoff returns the lower bound for active logs: one calendar day before now,
// in UTC with millisecond precision.
func ActiveCutoff(now time.Time) string {
	return now.AddDate(0, 0, -1).UTC().Format(cutoffLayout)
}

// ArchiveCutoff returns the upper bound for archived logs: midnight of now's day in
// now's location, rendered in UTC.
//
// The two cutoffs are not complementary. A log stamped between ActiveCutoff and
// ArchiveCutoff appears in both lists.
func ArchiveCutoff(now time.Time) string {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()).UTC().Format(cutoffLayout)
}

// AttendanceLogService exposes the attendance log store.
type AttendanceLogService interface {
	ListActive(ctx context.Context) ([]dto.AttendanceLogResponse, error)
	ListArchived(ctx context.Context) ([]dto.AttendanceLogResponse, error)
	Create(ctx context.Context, req dto.CreateAttendanceLogRequest) (dto.AttendanceLogResponse, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
}

type attendanceLogService struct {
	logs      repository.AttendanceLogRepository
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewAttendanceLogService constructs the attendance log service.
func NewAttendanceLogService(logs repository.AttendanceLogRepository, users repository.UserRepository, validator *validator.Validate, logger zerolog.Logger) AttendanceLogService {
	return &attendanceLogService{
		logs:      logs,
		users:     users,
		validator: validator,
		logger:    logger.With().Str("component", "attendance_log_service").Logger(),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
}

func (s *attendanceLogService) ListActive(ctx context.Context) ([]dto.AttendanceLogResponse, error) {
	ctx, span := s.tracer.Start(ctx, "logs.list_active")
	defer span.End()

	cutoff := ActiveCutoff(s.now())
	span.SetAttributes(attribute.String("logs.cutoff", cutoff))

	logs, err := s.logs.ListSince(ctx, cutoff)
	if err != nil {
		failSpan(span, err, "list failed")
		return nil, persistenceError("fetch attendance logs", err)
	}
	return dto.NewAttendanceLogResponses(logs), nil
}

func (s *attendanceLogService) ListArchived(ctx context.Context) ([]dto.AttendanceLogResponse, error) {
	ctx, span := s.tracer.Start(ctx, "logs.list_archived")
	defer span.End()

	cutoff := ArchiveCutoff(s.now())
	span.SetAttributes(attribute.String("logs.cutoff", cutoff))

	logs, err := s.logs.ListBefore(ctx, cutoff)
	if err != nil {
		failSpan(span, err, "list failed")
		return nil, persistenceError("fetch archived logs", err)
	}
	return dto.NewAttendanceLogResponses(logs), nil
}

func (s *attendanceLogService) Create(ctx context.Context, req dto.CreateAttendanceLogRequest) (dto.AttendanceLogResponse, error) {
	ctx, span := s.tracer.Start(ctx, "logs.create")
	defer span.End()
	span.SetAttributes(attribute.String("student.id", req.StudentID))

	if err := ValidateAttendanceLog(s.validator, req); err != nil {
		failSpan(span, err, "validation failed")
		observability.AttendanceLogsRecorded().WithLabelValues("invalid").Inc()
		return dto.AttendanceLogResponse{}, err
	}

	user, err := s.users.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			span.SetStatus(codes.Error, "unknown student")
			observability.AttendanceLogsRecorded().WithLabelValues("unknown_student").Inc()
			return dto.AttendanceLogResponse{}, validationError("studentId", "Student not found")
		}
		failSpan(span, err, "lookup failed")
		observability.AttendanceLogsRecorded().WithLabelValues("error").Inc()
		return dto.AttendanceLogResponse{}, persistenceError("add attendance log", err)
	}

	log := models.AttendanceLog{
		StudentID: req.StudentID,
		Date:      req.Date,
		Status:    req.Status,
		Time:      req.Time,
		Timestamp: req.Timestamp,
		Name:      req.Name,
		Role:      req.Role,
		Contact:   firstNonEmpty(req.Contact, user.Contact),
		Email:     firstNonEmpty(req.Email, user.Email),
	}

	if err := s.logs.Create(ctx, &log); err != nil {
		failSpan(span, err, "persistence failed")
		observability.AttendanceLogsRecorded().WithLabelValues("error").Inc()
		return dto.AttendanceLogResponse{}, persistenceError("add attendance log", err)
	}

	observability.AttendanceLogsRecorded().WithLabelValues("created").Inc()
	span.SetAttributes(attribute.String("log.id", log.ID))
	span.SetStatus(codes.Ok, "recorded")

	return dto.NewAttendanceLogResponse(log), nil
}

func (s *attendanceLogService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "logs.delete")
	defer span.End()
	span.SetAttributes(attribute.String("log.id", id))

	if err := s.logs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			span.SetStatus(codes.Error, "log not found")
			return notFoundError("Attendance log not found")
		}
		failSpan(span, err, "delete failed")
		return persistenceError("delete attendance log", err)
	}
	return nil
}

func (s *attendanceLogService) Clear(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "logs.clear")
	defer span.End()

	removed, err := s.logs.DeleteAll(ctx)
	if err != nil {
		failSpan(span, err, "clear failed")
		return 0, persistenceError("clear attendance logs", err)
	}

	s.logger.Warn().Int64("logs_removed", removed).Msg("attendance logs cleared")
	span.SetAttributes(attribute.Int64("logs.removed", removed))
	return removed, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
