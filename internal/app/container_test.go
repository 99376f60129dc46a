package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tribunal/internal/callback"
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tribunal/pkg/config"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
)

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppEnv:                "development",
		Timezone:              "Europe/London",
		LocalMode:             true,
		DatabaseDriver:        "sqlite",
		SQLitePath:            filepath.Join(t.TempDir(), "tribunal.db"),
		OutboxPollInterval:    outbox.DefaultProcessorConfig().PollInterval,
		OutboxBatchSize:       10,
		OutboxMaxRetries:      3,
		OutboxCleanupInterval: outbox.DefaultProcessorConfig().CleanupInterval,
		WarningPolicy:         "manual",
		Adjournment:           config.DefaultAdjournmentConfig(),
	}
}

func TestNewContainer_LocalMode(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(ctx, localConfig(t), observability.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.Equal(t, database.DriverSQLite, c.DBDriver)
	assert.Nil(t, c.RedisClient)
	assert.IsType(t, &eventbus.InProcessEventBus{}, c.EventPublisher)
	assert.IsType(t, &outbox.SQLiteRepository{}, c.OutboxRepo)

	health := c.Health.Check(ctx)
	assert.Equal(t, observability.HealthStatusHealthy, health.Status)
	assert.Contains(t, health.Checks, "database")
}

func TestContainer_AdjournCaseEndToEnd(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(ctx, localConfig(t), observability.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	c.Clock = caserecord.FixedClock(caserecord.NewDate(2026, 10, 14))
	c.Dispatcher = callback.NewDispatcher(c.callbackHandlers(), callback.WithLogger(c.Logger))

	held := caserecord.NewDate(2026, 10, 1)
	details := caserecord.CaseDetails{
		ID: "1650000000000003",
		Data: caserecord.CaseData{
			CaseReference: "SC242/26/00003",
			HearingRoute:  caserecord.HearingRouteListAssist,
			Appellant:     caserecord.Name{FirstName: "Alex", LastName: "Moss"},
			Hearings: []caserecord.CollectionItem[caserecord.Hearing]{
				caserecord.NewItem(caserecord.Hearing{HearingID: "h1", HearingDate: &held, VenueID: "1256", VenueName: "Fox Court"}),
			},
			Adjournment: caserecord.Adjournment{
				TypeOfNextHearing:   caserecord.NextHearingFaceToFace,
				NextHearingDateType: caserecord.DateTypeFirstAvailable,
				NextHearingVenue:    caserecord.VenueSame,
				PanelMembers:        []string{"6001"},
				SignedInJudgeName:   "Judge Ann Carter",
			},
		},
	}

	resp, err := c.Dispatcher.Dispatch(ctx, callback.Callback{
		Phase:       callback.AboutToSubmit,
		Event:       callback.EventAdjournCase,
		CaseDetails: details,
	})
	require.NoError(t, err)
	require.Empty(t, resp.Errors)
	require.NotNil(t, resp.Data.ScheduleOverride)
	assert.Equal(t, "372653", resp.Data.ScheduleOverride.SchedulingLocationID)
	assert.Equal(t, "Judge Ann Carter and Dr Priya Shah", resp.Data.Adjournment.PanelDescription)

	pending, err := c.OutboxRepo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, c.OutboxProcessor.ProcessOnce(ctx))
	assert.Equal(t, uint64(1), c.OutboxProcessor.GetStats().PublishedCount)
}

func TestNewContainer_RejectsUnknownWarningPolicy(t *testing.T) {
	cfg := localConfig(t)
	cfg.WarningPolicy = "sometimes"

	_, err := NewContainer(context.Background(), cfg, observability.DiscardLogger())
	require.Error(t, err)
}
