// Package persistence implements the reference-data store on SQL backends
// and in memory.
package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/tribunal/internal/referencedata/domain"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database"
)

// SQLStore reads reference data from PostgreSQL or SQLite.
type SQLStore struct {
	conn database.Connection
}

var _ domain.Store = (*SQLStore)(nil)

// NewSQLStore creates a store over conn.
func NewSQLStore(conn database.Connection) *SQLStore {
	return &SQLStore{conn: conn}
}

func (s *SQLStore) q(query string) string {
	return database.Rebind(s.conn.Driver(), query)
}

func (s *SQLStore) FindVenueByID(ctx context.Context, id string) (*domain.Venue, error) {
	var v domain.Venue
	err := s.conn.QueryRow(ctx, s.q(`SELECT id, name FROM venues WHERE id = ?`), id).Scan(&v.ID, &v.Name)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find venue %s: %w", id, err)
	}
	return &v, nil
}

func (s *SQLStore) FindLanguageByKey(ctx context.Context, key string) (*domain.Language, error) {
	var l domain.Language
	err := s.conn.QueryRow(ctx, s.q(`SELECT key, description FROM languages WHERE key = ?`), key).
		Scan(&l.Key, &l.Description)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find language %s: %w", key, err)
	}
	return &l, nil
}

func (s *SQLStore) FindPanelMembersByType(ctx context.Context, memberType domain.MemberType) ([]domain.PanelMember, error) {
	rows, err := s.conn.Query(ctx,
		s.q(`SELECT id, name, member_type FROM panel_members WHERE member_type = ? ORDER BY name`),
		string(memberType),
	)
	if err != nil {
		return nil, fmt.Errorf("find %s panel members: %w", memberType, err)
	}
	defer rows.Close()

	var members []domain.PanelMember
	for rows.Next() {
		var (
			m  domain.PanelMember
			mt string
		)
		if err := rows.Scan(&m.ID, &m.Name, &mt); err != nil {
			return nil, err
		}
		m.Type = domain.MemberType(mt)
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *SQLStore) FindSchedulingLocationByName(ctx context.Context, name string) (*domain.SchedulingLocation, error) {
	var l domain.SchedulingLocation
	err := s.conn.QueryRow(ctx,
		s.q(`SELECT id, name FROM scheduling_locations WHERE lower(name) = lower(?)`), name,
	).Scan(&l.ID, &l.Name)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find scheduling location %q: %w", name, err)
	}
	return &l, nil
}
