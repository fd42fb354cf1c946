package server

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	mu         sync.Mutex
	users      map[int]*models.User
	profiles   map[int]models.Profile
	moderators map[int]bool
	lifts      map[uuid.UUID]models.Lift
	templates  map[uuid.UUID]models.Template
	logs       []models.WorkoutLog
	reports    map[uuid.UUID]models.Report
	blocks     map[[2]int]bool
	nextUser   int
}

var _ Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:      map[int]*models.User{},
		profiles:   map[int]models.Profile{},
		moderators: map[int]bool{},
		lifts:      map[uuid.UUID]models.Lift{},
		templates:  map[uuid.UUID]models.Template{},
		reports:    map[uuid.UUID]models.Report{},
		blocks:     map[[2]int]bool{},
		nextUser:   1,
	}
}

func (m *memStore) addUser(login string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextUser
	m.nextUser++
	m.users[id] = &models.User{ID: id, Login: login, DisplayName: login}
	return id
}

func (m *memStore) GetOrCreateUser(_ context.Context, login, displayName string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.Login == login {
			return id, nil
		}
	}
	id := m.nextUser
	m.nextUser++
	m.users[id] = &models.User{ID: id, Login: login, DisplayName: displayName}
	return id, nil
}

func (m *memStore) CreateUser(_ context.Context, login, displayName, hash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == login {
			return nil, storage.ErrConflict
		}
	}
	id := m.nextUser
	m.nextUser++
	u := &models.User{ID: id, Login: login, DisplayName: displayName, PasswordHash: hash}
	m.users[id] = u
	return u, nil
}

func (m *memStore) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == login {
			c := *u
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) GetUser(_ context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *memStore) IsModerator(_ context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.moderators[id], nil
}

func (m *memStore) CreateProfile(_ context.Context, p models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[p.UserID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := m.profiles[p.UserID]; ok {
		return storage.ErrConflict
	}
	for _, other := range m.profiles {
		if other.Handle == p.Handle {
			return storage.ErrConflict
		}
	}
	m.profiles[p.UserID] = p
	return nil
}

func (m *memStore) GetProfile(_ context.Context, id int) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) GetProfileByHandle(_ context.Context, handle string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.Handle == handle {
			return &p, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) GetProfiles(_ context.Context, ids []int) (map[int]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[int]models.Profile{}
	for _, id := range ids {
		if p, ok := m.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *memStore) UpdateProfile(_ context.Context, id int, u models.ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return storage.ErrNotFound
	}
	p.DisplayName, p.Bio = u.DisplayName, u.Bio
	m.profiles[id] = p
	return nil
}

func (m *memStore) ListLifts(_ context.Context, uid int) ([]models.Lift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Lift
	for _, l := range m.lifts {
		if l.UserID == uid {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) GetLift(_ context.Context, id uuid.UUID, uid int) (*models.Lift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lifts[id]
	if !ok || l.UserID != uid {
		return nil, storage.ErrNotFound
	}
	return &l, nil
}

func (m *memStore) InsertLift(_ context.Context, uid int, in models.LiftInput) (*models.Lift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := models.Lift{ID: uuid.New(), UserID: uid, Name: in.Name, Config: in.Config(), CreatedAt: time.Now()}
	m.lifts[l.ID] = l
	return &l, nil
}

func (m *memStore) UpdateLift(_ context.Context, id uuid.UUID, uid int, in models.LiftInput) (*models.Lift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lifts[id]
	if !ok || l.UserID != uid {
		return nil, storage.ErrNotFound
	}
	l.Name, l.Config = in.Name, in.Config()
	m.lifts[id] = l
	return &l, nil
}

func (m *memStore) DeleteLift(_ context.Context, id uuid.UUID, uid int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lifts[id]
	if !ok || l.UserID != uid {
		return storage.ErrNotFound
	}
	delete(m.lifts, id)
	return nil
}

func (m *memStore) GetLiftRefs(_ context.Context, ids []uuid.UUID, uid int) ([]models.LiftRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.LiftRef
	for _, id := range ids {
		if l, ok := m.lifts[id]; ok && l.UserID == uid {
			out = append(out, models.LiftRef{ID: l.ID, Name: l.Name})
		}
	}
	return out, nil
}

func (m *memStore) ListTemplates(_ context.Context, uid int) ([]models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Template
	for _, t := range m.templates {
		if t.UserID == uid {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) GetTemplate(_ context.Context, id uuid.UUID, uid int) (*models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok || t.UserID != uid {
		return nil, storage.ErrNotFound
	}
	return &t, nil
}

func (m *memStore) InsertTemplate(_ context.Context, uid int, in models.TemplateInput) (*models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := models.Template{ID: uuid.New(), UserID: uid, Name: in.Name, LiftIDs: in.LiftIDs, MainLiftID: in.MainLiftID}
	m.templates[t.ID] = t
	return &t, nil
}

func (m *memStore) UpdateTemplate(_ context.Context, id uuid.UUID, uid int, in models.TemplateInput) (*models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok || t.UserID != uid {
		return nil, storage.ErrNotFound
	}
	t.Name, t.LiftIDs, t.MainLiftID = in.Name, in.LiftIDs, in.MainLiftID
	m.templates[id] = t
	return &t, nil
}

func (m *memStore) DeleteTemplate(_ context.Context, id uuid.UUID, uid int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok || t.UserID != uid {
		return storage.ErrNotFound
	}
	delete(m.templates, id)
	return nil
}

func (m *memStore) InsertLog(_ context.Context, uid int, in models.LogInput) (*models.WorkoutLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := models.WorkoutLog{
		ID: uuid.New(), UserID: uid, LiftName: in.LiftName,
		TopSetWeight: in.TopSetWeight, TopSetReps: in.TopSetReps,
		BackoffWeight: in.BackoffWeight, BackoffReps: in.BackoffReps,
		Notes: in.Notes, Tags: in.Tags, CreatedAt: time.Now(),
	}
	m.logs = append([]models.WorkoutLog{l}, m.logs...)
	return &l, nil
}

func (m *memStore) GetLog(_ context.Context, id uuid.UUID) (*models.WorkoutLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.logs {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) QueryRecentLogs(_ context.Context, limit int) ([]models.WorkoutLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.logs[:min(limit, len(m.logs))]), nil
}

func (m *memStore) QueryUserLogs(_ context.Context, uid, limit int) ([]models.WorkoutLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.WorkoutLog
	for _, l := range m.logs {
		if l.UserID == uid && len(out) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) InsertReport(_ context.Context, reporter int, in models.ReportInput) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := models.Report{
		ID: uuid.New(), ReporterID: reporter, TargetLogID: in.TargetLogID,
		TargetUserID: in.TargetUserID, Reason: in.Reason, Status: models.ReportOpen,
	}
	m.reports[r.ID] = r
	return &r, nil
}

func (m *memStore) QueryReports(_ context.Context, limit int) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Report
	for _, r := range m.reports {
		if len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) UpdateReportStatus(_ context.Context, id uuid.UUID, status models.ReportStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return storage.ErrNotFound
	}
	r.Status = status
	m.reports[id] = r
	return nil
}

func (m *memStore) InsertBlock(_ context.Context, blocker, blocked int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks[[2]int{blocker, blocked}] = true
	return nil
}

func (m *memStore) ListBlockedIDs(_ context.Context, blocker int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int
	for k := range m.blocks {
		if k[0] == blocker {
			out = append(out, k[1])
		}
	}
	return out, nil
}

func (m *memStore) IsBlocked(_ context.Context, blocker, blocked int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blocks[[2]int{blocker, blocked}], nil
}
