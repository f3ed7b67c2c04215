package activityrepo_test

import (
	"context"
	"testing"
	"time"

	"magicmover/internal/adapters/out/postgres/activityrepo"
	"magicmover/internal/adapters/out/postgres/postgrestest"
	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/kernel"
	"magicmover/internal/core/domain/model/mover"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

// ActivityLogRepositoryIntegrationTestSuite runs GormActivityLogRepository
// against a real PostgreSQL container.
type ActivityLogRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *postgrestest.Database
	repository *activityrepo.GormActivityLogRepository
	now        time.Time
}

func (suite *ActivityLogRepositoryIntegrationTestSuite) SetupSuite() {
	testcontainers.SkipIfProviderIsNotHealthy(suite.T())
	database, err := postgrestest.Start(context.Background())
	if err != nil {
		suite.T().Skipf("postgres container unavailable: %v", err)
	}
	suite.database = database
}

func (suite *ActivityLogRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = activityrepo.NewGormActivityLogRepository(suite.database.DB)
	suite.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *ActivityLogRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *ActivityLogRepositoryIntegrationTestSuite) TestAppend_ThenFindByMover_RestoresDetails() {
	ctx := context.Background()
	moverID := kernel.NewUUID()
	itemID := kernel.NewUUID()
	loading := suite.loadingEntry(moverID, []kernel.UUID{itemID}, "2.5", suite.now)
	ended := suite.entry(moverID, activity.MissionEndedDetails{
		StateChange: activity.StateChange{
			PreviousState: mover.OnMission,
			NewState:      mover.Resting,
			ItemCount:     1,
			TotalWeight:   suite.weight("2.5"),
		},
		CompletedMissions: 3,
	}, suite.now.Add(time.Minute))

	suite.Require().NoError(suite.repository.Append(ctx, loading))
	suite.Require().NoError(suite.repository.Append(ctx, ended))

	entries, err := suite.repository.FindByMover(ctx, moverID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)

	suite.Equal(activity.TypeMissionEnded, entries[0].Type())
	endedDetails, ok := entries[0].Details().(activity.MissionEndedDetails)
	suite.Require().True(ok)
	suite.Equal(3, endedDetails.CompletedMissions)
	suite.Equal("2.5", endedDetails.TotalWeight.String())

	suite.Equal(activity.TypeLoading, entries[1].Type())
	loadingDetails, ok := entries[1].Details().(activity.LoadingDetails)
	suite.Require().True(ok)
	suite.Require().Len(loadingDetails.ItemIDs, 1)
	suite.True(loadingDetails.ItemIDs[0].IsEqual(itemID))
	suite.Equal(mover.Resting, loadingDetails.PreviousState)
	suite.Equal(mover.Loading, loadingDetails.NewState)
}

func (suite *ActivityLogRepositoryIntegrationTestSuite) TestFindByMover_UnknownMover_ReturnsEmpty() {
	entries, err := suite.repository.FindByMover(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *ActivityLogRepositoryIntegrationTestSuite) TestFindByTypeAndItem_MatchesContainedItem() {
	ctx := context.Background()
	sword := kernel.NewUUID()
	shield := kernel.NewUUID()
	first := suite.loadingEntry(kernel.NewUUID(), []kernel.UUID{sword, shield}, "3", suite.now)
	second := suite.loadingEntry(kernel.NewUUID(), []kernel.UUID{sword}, "1", suite.now.Add(time.Minute))
	other := suite.loadingEntry(kernel.NewUUID(), []kernel.UUID{shield}, "2", suite.now)
	for _, e := range []*activity.Entry{second, other, first} {
		suite.Require().NoError(suite.repository.Append(ctx, e))
	}

	testCases := []struct {
		name     string
		t        activity.Type
		itemID   kernel.UUID
		expected []kernel.UUID
	}{
		{name: "item in two loads", t: activity.TypeLoading, itemID: sword, expected: []kernel.UUID{first.ID(), second.ID()}},
		{name: "unknown item", t: activity.TypeLoading, itemID: kernel.NewUUID(), expected: nil},
		{name: "type without item ids", t: activity.TypeMissionEnded, itemID: sword, expected: nil},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			entries, err := suite.repository.FindByTypeAndItem(ctx, tc.t, tc.itemID)

			suite.Require().NoError(err)
			suite.Require().Len(entries, len(tc.expected))
			for i, id := range tc.expected {
				suite.True(entries[i].ID().IsEqual(id))
			}
		})
	}
}

func (suite *ActivityLogRepositoryIntegrationTestSuite) loadingEntry(
	moverID kernel.UUID,
	itemIDs []kernel.UUID,
	total string,
	at time.Time,
) *activity.Entry {
	return suite.entry(moverID, activity.LoadingDetails{
		StateChange: activity.StateChange{
			PreviousState: mover.Resting,
			NewState:      mover.Loading,
			ItemCount:     len(itemIDs),
			TotalWeight:   suite.weight(total),
		},
		ItemIDs: itemIDs,
	}, at)
}

func (suite *ActivityLogRepositoryIntegrationTestSuite) entry(
	moverID kernel.UUID,
	details activity.Details,
	at time.Time,
) *activity.Entry {
	e, err := activity.NewEntry(kernel.NewUUID(), moverID, details, at)
	suite.Require().NoError(err)
	return e
}

func (suite *ActivityLogRepositoryIntegrationTestSuite) weight(v string) kernel.Weight {
	w, err := kernel.WeightFromString(v)
	suite.Require().NoError(err)
	return w
}

func TestActivityLogRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(ActivityLogRepositoryIntegrationTestSuite))
}
