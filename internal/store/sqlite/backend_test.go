package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/store"
	"github.com/vytor/eduplay/internal/store/sqlite"
	"github.com/vytor/eduplay/internal/testutil"
)

type BackendSuite struct {
	suite.Suite
	db      *sql.DB
	backend *sqlite.Backend
}

func (s *BackendSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.backend = sqlite.NewBackend(s.db)
}

func (s *BackendSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *BackendSuite) TestLoad_Missing() {
	data, ok, err := s.backend.Load(context.Background(), "nope")
	s.Require().NoError(err)
	s.Assert().False(ok)
	s.Assert().Nil(data)
}

func (s *BackendSuite) TestSave_Upserts() {
	ctx := context.Background()

	s.Require().NoError(s.backend.Save(ctx, "k", []byte(`[1]`)))
	s.Require().NoError(s.backend.Save(ctx, "k", []byte(`[1,2]`)))

	data, ok, err := s.backend.Load(ctx, "k")
	s.Require().NoError(err)
	s.Assert().True(ok)
	s.Assert().Equal(`[1,2]`, string(data))

	var rows int
	s.Require().NoError(s.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows))
	s.Assert().Equal(1, rows)

	_, found, err := s.backend.UpdatedAt(ctx, "k")
	s.Require().NoError(err)
	s.Assert().True(found)
}

func (s *BackendSuite) TestDeleteAndKeys() {
	ctx := context.Background()
	s.Require().NoError(s.backend.Save(ctx, "b", []byte(`1`)))
	s.Require().NoError(s.backend.Save(ctx, "a", []byte(`2`)))

	keys, err := s.backend.Keys(ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]string{"a", "b"}, keys)

	s.Require().NoError(s.backend.Delete(ctx, "a"))
	s.Require().NoError(s.backend.Delete(ctx, "missing"))

	keys, err = s.backend.Keys(ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]string{"b"}, keys)
}

func (s *BackendSuite) TestStoreOverSQLite_SeedSurvivesReopen() {
	ctx := context.Background()

	first := store.New(s.backend)
	s.Require().NoError(store.EnsureSeed(ctx, first))
	s.Require().NoError(store.Append(ctx, first, store.KeyActivity, models.ActivityEntry{ID: 1, Type: models.ActivityLogin, Message: "hi"}))

	second := store.New(sqlite.NewBackend(s.db))
	s.Require().NoError(store.EnsureSeed(ctx, second))

	log := store.GetOr(ctx, second, store.KeyActivity, models.ActivityLog{})
	s.Require().Len(log, 1)
	s.Assert().Equal("hi", log[0].Message)
	s.Assert().Len(store.GetOr(ctx, second, store.KeyLeaderboard, models.Leaderboard{}), 5)
}

func TestBackendSuite(t *testing.T) {
	suite.Run(t, new(BackendSuite))
}
