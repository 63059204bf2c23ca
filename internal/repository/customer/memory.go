package customer

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"mock-crm/internal/domain"
)

// Memory is a process-local Repository. Records live until the process exits.
type Memory struct {
	mu     sync.RWMutex
	byKey  map[string]domain.Customer
	order  []string
	logger *zap.Logger
}

var _ Repository = (*Memory)(nil)

// NewMemory returns a Memory repository pre-populated with seed, in order.
func NewMemory(logger *zap.Logger, seed ...domain.Customer) (*Memory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Memory{
		byKey:  make(map[string]domain.Customer, len(seed)),
		order:  make([]string, 0, len(seed)),
		logger: logger,
	}
	for _, c := range seed {
		if c.MemberNumber == "" {
			return nil, fmt.Errorf("seed record: member_number: %w", domain.ErrMissingRequiredField)
		}
		if _, exists := m.byKey[c.MemberNumber]; exists {
			return nil, fmt.Errorf("seed record %q: %w", c.MemberNumber, domain.ErrAlreadyExists)
		}
		m.insert(c)
	}
	return m, nil
}

func (m *Memory) List(_ context.Context) ([]domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Customer, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.byKey[key].Clone())
	}
	return out, nil
}

func (m *Memory) Get(_ context.Context, memberNumber string) (*domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.byKey[memberNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := c.Clone()
	return &clone, nil
}

func (m *Memory) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byKey[c.MemberNumber]; exists {
		return nil, domain.ErrAlreadyExists
	}
	m.insert(c)
	m.logger.Debug("customer repo: inserted", zap.String("member_number", c.MemberNumber))

	clone := c.Clone()
	return &clone, nil
}

// Update applies mutate to a working copy under the write lock and stores the
// result only if mutate succeeds.
func (m *Memory) Update(_ context.Context, memberNumber string, mutate MutateFunc) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.byKey[memberNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	working := current.Clone()
	if err := mutate(&working); err != nil {
		return nil, err
	}
	working.MemberNumber = memberNumber
	m.byKey[memberNumber] = working
	m.logger.Debug("customer repo: updated", zap.String("member_number", memberNumber))

	clone := working.Clone()
	return &clone, nil
}

func (m *Memory) insert(c domain.Customer) {
	m.byKey[c.MemberNumber] = c.Clone()
	m.order = append(m.order, c.MemberNumber)
}
