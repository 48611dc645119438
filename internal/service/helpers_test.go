package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/qr-attendance-api/internal/models"
	"github.com/noah-isme/qr-attendance-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type memoryUserRepo struct {
	users     []models.User
	listCalls int
	lookupErr error
	createErr error
	deleteErr error
	// afterList runs once the snapshot is taken, standing in for a concurrent write.
	afterList func()
}

func (m *memoryUserRepo) List(ctx context.Context) ([]models.User, error) {
	m.listCalls++
	snapshot := append([]models.User(nil), m.users...)
	if m.afterList != nil {
		hook := m.afterList
		m.afterList = nil
		hook()
	}
	return snapshot, nil
}

func (m *memoryUserRepo) FindByStudentIDOrEmail(ctx context.Context, studentID, email string) (models.User, error) {
	if m.lookupErr != nil {
		return models.User{}, m.lookupErr
	}
	for _, user := range m.users {
		if user.StudentID == studentID || user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (m *memoryUserRepo) GetByStudentID(ctx context.Context, studentID string) (models.User, error) {
	if m.lookupErr != nil {
		return models.User{}, m.lookupErr
	}
	for _, user := range m.users {
		if user.StudentID == studentID {
			return user, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (m *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	user.CreatedAt = time.Now()
	m.users = append(m.users, *user)
	return nil
}

func (m *memoryUserRepo) DeleteByStudentID(ctx context.Context, studentID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, user := range m.users {
		if user.StudentID == studentID {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memoryLogRepo struct {
	logs       []models.AttendanceLog
	nextID     int
	lastCutoff string
	listErr    error
	cascadeErr error
	clearErr   error
}

func (m *memoryLogRepo) ListSince(ctx context.Context, cutoff string) ([]models.AttendanceLog, error) {
	m.lastCutoff = cutoff
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.AttendanceLog
	for _, log := range m.logs {
		if log.Timestamp >= cutoff {
			out = append(out, log)
		}
	}
	return out, nil
}

func (m *memoryLogRepo) ListBefore(ctx context.Context, cutoff string) ([]models.AttendanceLog, error) {
	m.lastCutoff = cutoff
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.AttendanceLog
	for _, log := range m.logs {
		if log.Timestamp < cutoff {
			out = append(out, log)
		}
	}
	return out, nil
}

func (m *memoryLogRepo) Create(ctx context.Context, log *models.AttendanceLog) error {
	m.nextID++
	log.ID = fmt.Sprintf("log-%d", m.nextID)
	log.CreatedAt = time.Now()
	m.logs = append(m.logs, *log)
	return nil
}

func (m *memoryLogRepo) Delete(ctx context.Context, id string) error {
	for i, log := range m.logs {
		if log.ID == id {
			m.logs = append(m.logs[:i], m.logs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memoryLogRepo) DeleteByStudentID(ctx context.Context, studentID string) (int64, error) {
	if m.cascadeErr != nil {
		return 0, m.cascadeErr
	}
	kept := m.logs[:0]
	var removed int64
	for _, log := range m.logs {
		if log.StudentID == studentID {
			removed++
			continue
		}
		kept = append(kept, log)
	}
	m.logs = kept
	return removed, nil
}

func (m *memoryLogRepo) DeleteAll(ctx context.Context) (int64, error) {
	if m.clearErr != nil {
		return 0, m.clearErr
	}
	removed := int64(len(m.logs))
	m.logs = nil
	return removed, nil
}
