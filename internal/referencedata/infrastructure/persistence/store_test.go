package persistence_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tribunal/internal/referencedata/domain"
	"github.com/felixgeelhaar/tribunal/internal/referencedata/infrastructure/persistence"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
)

func sqliteStore(t *testing.T) domain.Store {
	t.Helper()
	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: filepath.Join(t.TempDir(), "ref.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	_, err = migrations.Run(ctx, conn, observability.DiscardLogger())
	require.NoError(t, err)
	return persistence.NewSQLStore(conn)
}

func memoryStore() domain.Store {
	return persistence.NewMemoryStore().
		AddVenue(domain.Venue{ID: "1256", Name: "Fox Court"}).
		AddLanguage(domain.Language{Key: "welsh", Description: "Welsh"}).
		AddPanelMember(domain.PanelMember{ID: "6002", Name: "Dr Tom Hughes", Type: domain.MemberMedical}).
		AddPanelMember(domain.PanelMember{ID: "6001", Name: "Dr Priya Shah", Type: domain.MemberMedical}).
		AddPanelMember(domain.PanelMember{ID: "7001", Name: "Mary Lewis", Type: domain.MemberDisability}).
		AddSchedulingLocation(domain.SchedulingLocation{ID: "372653", Name: "Fox Court"})
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) domain.Store{
		"sqlite": sqliteStore,
		"memory": func(*testing.T) domain.Store { return memoryStore() },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := open(t)

			venue, err := store.FindVenueByID(ctx, "1256")
			require.NoError(t, err)
			require.NotNil(t, venue)
			assert.Equal(t, "Fox Court", venue.Name)

			venue, err = store.FindVenueByID(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, venue)

			lang, err := store.FindLanguageByKey(ctx, "welsh")
			require.NoError(t, err)
			require.NotNil(t, lang)
			assert.Equal(t, "Welsh", lang.Description)

			lang, err = store.FindLanguageByKey(ctx, "klingon")
			require.NoError(t, err)
			assert.Nil(t, lang)

			medical, err := store.FindPanelMembersByType(ctx, domain.MemberMedical)
			require.NoError(t, err)
			require.Len(t, medical, 2)
			assert.Equal(t, "Dr Priya Shah", medical[0].Name)
			assert.Equal(t, domain.MemberMedical, medical[0].Type)

			loc, err := store.FindSchedulingLocationByName(ctx, "FOX COURT")
			require.NoError(t, err)
			require.NotNil(t, loc)
			assert.Equal(t, "372653", loc.ID)

			loc, err = store.FindSchedulingLocationByName(ctx, "Nowhere")
			require.NoError(t, err)
			assert.Nil(t, loc)
		})
	}
}
