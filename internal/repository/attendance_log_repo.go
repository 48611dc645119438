package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/qr-attendance-api/internal/models"
)

// AttendanceLogRepository persists attendance events.
//
// Cutoff arguments are compared against the stored timestamp text, not parsed times.
type AttendanceLogRepository interface {
	ListSince(ctx context.Context, cutoff string) ([]models.AttendanceLog, error)
	ListBefore(ctx context.Context, cutoff string) ([]models.AttendanceLog, error)
	Create(ctx context.Context, log *models.AttendanceLog) error
	Delete(ctx context.Context, id string) error
	DeleteByStudentID(ctx context.Context, studentID string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type attendanceLogRepository struct {
	db *gorm.DB
}

// NewAttendanceLogRepository constructs an attendance log repository backed by GORM.
func NewAttendanceLogRepository(db *gorm.DB) AttendanceLogRepository {
	return &attendanceLogRepository{db: db}
}

func (r *attendanceLogRepository) ListSince(ctx context.Context, cutoff string) ([]models.AttendanceLog, error) {
	var logs []models.AttendanceLog
	if err := r.db.WithContext(ctx).Where(timestampCondition(r.db, ">=", cutoff)).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *attendanceLogRepository) ListBefore(ctx context.Context, cutoff string) ([]models.AttendanceLog, error) {
	var logs []models.AttendanceLog
	if err := r.db.WithContext(ctx).Where(timestampCondition(r.db, "<", cutoff)).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *attendanceLogRepository) Create(ctx context.Context, log *models.AttendanceLog) error {
	return translateGormError(r.db.WithContext(ctx).Create(log).Error)
}

func (r *attendanceLogRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AttendanceLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *attendanceLogRepository) DeleteByStudentID(ctx context.Context, studentID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("student_id = ?", studentID).Delete(&models.AttendanceLog{})
	return result.RowsAffected, result.Error
}

func (r *attendanceLogRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.AttendanceLog{})
	return result.RowsAffected, result.Error
}

// timestampCondition compares the timestamp column byte-wise. Postgres needs an explicit
// "C" collation for that; SQLite compares TEXT with BINARY collation by default.
func timestampCondition(db *gorm.DB, op, cutoff string) clause.Expr {
	column := "?"
	if db.Dialector.Name() == "postgres" {
		column = `? COLLATE "C"`
	}
	return clause.Expr{
		SQL:  column + " " + op + " ?",
		Vars: []interface{}{clause.Column{Name: "timestamp"}, cutoff},
	}
}
