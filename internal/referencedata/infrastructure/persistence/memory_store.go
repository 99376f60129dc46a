package persistence

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/felixgeelhaar/tribunal/internal/referencedata/domain"
)

// MemoryStore holds reference data in maps. It backs tests and the
// callback CLI command.
type MemoryStore struct {
	mu        sync.RWMutex
	venues    map[string]domain.Venue
	languages map[string]domain.Language
	members   map[string]domain.PanelMember
	locations map[string]domain.SchedulingLocation
}

var _ domain.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		venues:    make(map[string]domain.Venue),
		languages: make(map[string]domain.Language),
		members:   make(map[string]domain.PanelMember),
		locations: make(map[string]domain.SchedulingLocation),
	}
}

func (s *MemoryStore) AddVenue(v domain.Venue) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues[v.ID] = v
	return s
}

func (s *MemoryStore) AddLanguage(l domain.Language) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languages[l.Key] = l
	return s
}

func (s *MemoryStore) AddPanelMember(m domain.PanelMember) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = m
	return s
}

func (s *MemoryStore) AddSchedulingLocation(l domain.SchedulingLocation) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[strings.ToLower(l.Name)] = l
	return s
}

func (s *MemoryStore) FindVenueByID(_ context.Context, id string) (*domain.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.venues[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (s *MemoryStore) FindLanguageByKey(_ context.Context, key string) (*domain.Language, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.languages[key]; ok {
		return &l, nil
	}
	return nil, nil
}

func (s *MemoryStore) FindPanelMembersByType(_ context.Context, memberType domain.MemberType) ([]domain.PanelMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var members []domain.PanelMember
	for _, m := range s.members {
		if m.Type == memberType {
			members = append(members, m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

func (s *MemoryStore) FindSchedulingLocationByName(_ context.Context, name string) (*domain.SchedulingLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.locations[strings.ToLower(name)]; ok {
		return &l, nil
	}
	return nil, nil
}
