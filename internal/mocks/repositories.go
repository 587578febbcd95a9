package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tres-colores-api/internal/models"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User
	CreateError error
	GetError    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Users[strings.ToLower(user.Email)] = user
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Users[strings.ToLower(email)], nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, exists := m.Users[strings.ToLower(email)]
	return exists, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// MockEventRepository is a mock implementation of repository.EventRepository
type MockEventRepository struct {
	Events      map[string]*models.Event
	CreateError error
	GetError    error
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		Events: make(map[string]*models.Event),
	}
}

func (m *MockEventRepository) Create(ctx context.Context, event *models.Event) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Events[event.ID] = event
	return nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Events[id], nil
}

func (m *MockEventRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, exists := m.Events[id]
	return exists, nil
}

func (m *MockEventRepository) List(ctx context.Context) ([]*models.Event, error) {
	events := make([]*models.Event, 0, len(m.Events))
	for _, e := range m.Events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Year != events[j].Year {
			return events[i].Year < events[j].Year
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

func (m *MockEventRepository) Update(ctx context.Context, event *models.Event) (bool, error) {
	if _, exists := m.Events[event.ID]; !exists {
		return false, nil
	}
	m.Events[event.ID] = event
	return true, nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, exists := m.Events[id]; !exists {
		return false, nil
	}
	delete(m.Events, id)
	return true, nil
}

func (m *MockEventRepository) Count(ctx context.Context) (int, error) {
	return len(m.Events), nil
}

// MockCommentRepository is a mock implementation of
// repository.CommentRepository. Records are cloned on the way out so tests
// observe stored state, not shared pointers.
type MockCommentRepository struct {
	Comments    map[string]*models.Comment
	CreateError error
	GetError    error
	WriteError  error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string]*models.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	clone := *comment
	m.Comments[comment.ID] = &clone
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	c, exists := m.Comments[id]
	if !exists {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (m *MockCommentRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Comment, error) {
	return m.list(func(c *models.Comment) bool { return c.EventID == eventID }, false), nil
}

func (m *MockCommentRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Comment, error) {
	return m.list(func(c *models.Comment) bool { return c.AuthorID == authorID }, false), nil
}

func (m *MockCommentRepository) ListAll(ctx context.Context) ([]*models.Comment, error) {
	return m.list(func(*models.Comment) bool { return true }, true), nil
}

func (m *MockCommentRepository) list(match func(*models.Comment) bool, newestFirst bool) []*models.Comment {
	var comments []*models.Comment
	for _, c := range m.Comments {
		if match(c) {
			clone := *c
			comments = append(comments, &clone)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			if newestFirst {
				return comments[i].CreatedAt.After(comments[j].CreatedAt)
			}
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments
}

func (m *MockCommentRepository) SetDecision(ctx context.Context, id, status, moderatorID string, decidedAt time.Time) (bool, error) {
	if m.WriteError != nil {
		return false, m.WriteError
	}
	c, exists := m.Comments[id]
	if !exists || c.Status != models.StatusPending {
		return false, nil
	}
	c.Status = status
	c.ModeratedAt = &decidedAt
	c.ModeratedBy = &moderatorID
	c.UpdatedAt = decidedAt
	return true, nil
}

func (m *MockCommentRepository) ResetToPending(ctx context.Context, id, body string) (bool, error) {
	if m.WriteError != nil {
		return false, m.WriteError
	}
	c, exists := m.Comments[id]
	if !exists || c.Status == models.StatusApproved {
		return false, nil
	}
	c.Body = body
	c.Status = models.StatusPending
	c.ModeratedAt = nil
	c.ModeratedBy = nil
	c.UpdatedAt = time.Now()
	return true, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.WriteError != nil {
		return false, m.WriteError
	}
	if _, exists := m.Comments[id]; !exists {
		return false, nil
	}
	delete(m.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Comments), nil
}
