package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Fluxpuck/sero-backend/internal/models"
	"gorm.io/gorm"
)

// MockUserLevelRepository is an in-memory UserLevelRepositoryInterface.
// Transaction holds a mutex for its whole body, mirroring the row-lock
// serialization the real store provides.
type MockUserLevelRepository struct {
	mu      sync.Mutex
	txMu    sync.Mutex
	records map[string]*models.UserLevel
	nextID  uint
}

func NewMockUserLevelRepository() *MockUserLevelRepository {
	return &MockUserLevelRepository{
		records: make(map[string]*models.UserLevel),
		nextID:  1,
	}
}

func levelMockKey(guildID, userID string) string {
	return guildID + "/" + userID
}

func (m *MockUserLevelRepository) FindOrCreate(guildID, userID string) (*models.UserLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := levelMockKey(guildID, userID)
	if rec, ok := m.records[key]; ok {
		cp := *rec
		return &cp, nil
	}
	rec := &models.UserLevel{
		ID:      m.nextID,
		GuildID: guildID,
		UserID:  userID,
		Level:   1,
	}
	m.nextID++
	m.records[key] = rec
	cp := *rec
	return &cp, nil
}

func (m *MockUserLevelRepository) Find(guildID, userID string) (*models.UserLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.records[levelMockKey(guildID, userID)]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserLevelRepository) FindForUpdate(tx *gorm.DB, guildID, userID string) (*models.UserLevel, error) {
	return m.Find(guildID, userID)
}

func (m *MockUserLevelRepository) SaveTx(tx *gorm.DB, record *models.UserLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *record
	m.records[levelMockKey(record.GuildID, record.UserID)] = &cp
	return nil
}

func (m *MockUserLevelRepository) ListByGuild(guildID string, afterID uint, limit int) ([]models.UserLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.UserLevel
	for _, rec := range m.records {
		if rec.GuildID == guildID && rec.ID > afterID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockUserLevelRepository) Transaction(fn func(tx *gorm.DB) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(nil)
}

// MockBoostRepository is an in-memory BoostRepositoryInterface.
type MockBoostRepository struct {
	mu          sync.Mutex
	guildBoosts map[string]*models.GuildBoost
	userBoosts  map[string]*models.UserBoost
}

func NewMockBoostRepository() *MockBoostRepository {
	return &MockBoostRepository{
		guildBoosts: make(map[string]*models.GuildBoost),
		userBoosts:  make(map[string]*models.UserBoost),
	}
}

func (m *MockBoostRepository) UpsertGuildBoost(boost *models.GuildBoost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *boost
	m.guildBoosts[boost.GuildID] = &cp
	return nil
}

func (m *MockBoostRepository) UpsertUserBoost(boost *models.UserBoost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *boost
	m.userBoosts[levelMockKey(boost.GuildID, boost.UserID)] = &cp
	return nil
}

func (m *MockBoostRepository) GetGuildBoost(guildID string) (*models.GuildBoost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.guildBoosts[guildID]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m *MockBoostRepository) GetUserBoost(guildID, userID string) (*models.UserBoost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.userBoosts[levelMockKey(guildID, userID)]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

// MockRankRepository is an in-memory RankRepositoryInterface.
type MockRankRepository struct {
	mu    sync.Mutex
	ranks map[string][]models.GuildRank
}

func NewMockRankRepository() *MockRankRepository {
	return &MockRankRepository{ranks: make(map[string][]models.GuildRank)}
}

func (m *MockRankRepository) Upsert(rank *models.GuildRank) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.ranks[rank.GuildID]
	for i := range list {
		if list[i].Level == rank.Level {
			list[i].RoleID = rank.RoleID
			return nil
		}
	}
	list = append(list, *rank)
	sort.Slice(list, func(i, j int) bool { return list[i].Level < list[j].Level })
	m.ranks[rank.GuildID] = list
	return nil
}

func (m *MockRankRepository) Delete(guildID string, level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.ranks[guildID]
	for i := range list {
		if list[i].Level == level {
			m.ranks[guildID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockRankRepository) ListByGuild(guildID string) ([]models.GuildRank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.GuildRank(nil), m.ranks[guildID]...), nil
}

func (m *MockRankRepository) Find(guildID string, level int) (*models.GuildRank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.ranks[guildID] {
		if r.Level == level {
			cp := r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRankRepository) SetBadge(guildID string, level int, badge string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.ranks[guildID]
	for i := range list {
		if list[i].Level == level {
			list[i].Badge = badge
			return nil
		}
	}
	return errors.New("record not found")
}

// MockCurveRepository serves a fixed curve.
type MockCurveRepository struct {
	entries []models.LevelCurveEntry
}

func NewMockCurveRepository(entries []models.LevelCurveEntry) *MockCurveRepository {
	return &MockCurveRepository{entries: entries}
}

func (m *MockCurveRepository) ListOrdered() ([]models.LevelCurveEntry, error) {
	return append([]models.LevelCurveEntry(nil), m.entries...), nil
}

// MockPublisher records published payloads and signals each publish.
type MockPublisher struct {
	mu       sync.Mutex
	payloads []any
	Signal   chan struct{}
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Signal: make(chan struct{}, 100)}
}

func (m *MockPublisher) Publish(ctx context.Context, channel string, payload any) error {
	m.mu.Lock()
	m.payloads = append(m.payloads, payload)
	m.mu.Unlock()
	m.Signal <- struct{}{}
	return nil
}

func (m *MockPublisher) Payloads() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]any(nil), m.payloads...)
}
