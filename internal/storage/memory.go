package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/bagrikeng/tanlovbot/internal/domain"
)

// Memory is an in-memory TxStore used by tests and local development. WithTx
// snapshots the maps and restores them when fn fails, mirroring the rollback
// semantics of the postgres implementation.
type Memory struct {
	mu           sync.Mutex
	nextID       int64
	participants map[int64]domain.Participant
	addresses    map[int64]domain.Address
	submissions  map[int64]domain.Submission
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextID:       1,
		participants: make(map[int64]domain.Participant),
		addresses:    make(map[int64]domain.Address),
		submissions:  make(map[int64]domain.Submission),
	}
}

func (m *Memory) snapshot() (map[int64]domain.Participant, map[int64]domain.Address, map[int64]domain.Submission, int64) {
	p := make(map[int64]domain.Participant, len(m.participants))
	for k, v := range m.participants {
		p[k] = v
	}
	a := make(map[int64]domain.Address, len(m.addresses))
	for k, v := range m.addresses {
		a[k] = v
	}
	s := make(map[int64]domain.Submission, len(m.submissions))
	for k, v := range m.submissions {
		s[k] = v
	}
	return p, a, s, m.nextID
}

// WithTx runs fn and restores the pre-call snapshot if it returns an error.
func (m *Memory) WithTx(_ context.Context, fn func(Store) error) error {
	m.mu.Lock()
	p, a, s, id := m.snapshot()
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.participants, m.addresses, m.submissions, m.nextID = p, a, s, id
		m.mu.Unlock()
		return err
	}
	return nil
}

// FindParticipant looks a participant up by Telegram identity.
func (m *Memory) FindParticipant(_ context.Context, telegramID int64) (*domain.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.participants {
		if p.TelegramID == telegramID {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

// CreateParticipant inserts a participant and returns its id.
func (m *Memory) CreateParticipant(_ context.Context, rec *domain.Participant) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	cp := *rec
	cp.ID = id
	m.participants[id] = cp
	return id, nil
}

// UpdateParticipant overwrites the mutable fields of a stored participant.
func (m *Memory) UpdateParticipant(_ context.Context, rec *domain.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.participants[rec.ID]
	if !ok {
		return nil
	}
	cur.FullName = rec.FullName
	cur.Workplace = rec.Workplace
	cur.BirthDate = rec.BirthDate
	cur.PassportSeries = rec.PassportSeries
	cur.PhoneNumber = rec.PhoneNumber
	m.participants[rec.ID] = cur
	return nil
}

// GetAddress fetches an address, returning (nil, nil) when absent.
func (m *Memory) GetAddress(_ context.Context, id int64) (*domain.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.addresses[id]; ok {
		cp := a
		return &cp, nil
	}
	return nil, nil
}

// CreateAddress inserts an address and returns its id.
func (m *Memory) CreateAddress(_ context.Context, rec *domain.Address) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	cp := *rec
	cp.ID = id
	m.addresses[id] = cp
	return id, nil
}

// UpdateAddress overwrites a stored address in place.
func (m *Memory) UpdateAddress(_ context.Context, rec *domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.addresses[rec.ID]; !ok {
		return nil
	}
	m.addresses[rec.ID] = *rec
	return nil
}

// CreateSubmission inserts a submission and returns its id.
func (m *Memory) CreateSubmission(_ context.Context, rec *domain.Submission) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	cp := *rec
	cp.ID = id
	m.submissions[id] = cp
	return id, nil
}

// CountSubmissions counts submissions of one participant.
func (m *Memory) CountSubmissions(_ context.Context, participantID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.submissions {
		if s.ParticipantID == participantID {
			n++
		}
	}
	return n, nil
}

// ListParticipants returns all participants ordered by id.
func (m *Memory) ListParticipants(_ context.Context) ([]domain.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Participant, 0, len(m.participants))
	for _, p := range m.participants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListSubmissions returns all submissions ordered by id.
func (m *Memory) ListSubmissions(_ context.Context) ([]domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Submission, 0, len(m.submissions))
	for _, s := range m.submissions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
