package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"qr-service/internal/core/domain"
	"qr-service/internal/core/ports"
)

type TrackedRepositorySuite struct {
	suite.Suite
	db   *gorm.DB
	repo ports.TrackedQRRepository
}

func (s *TrackedRepositorySuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(s.T(), err)
	require.NoError(s.T(), db.AutoMigrate(&domain.TrackedQR{}, &domain.ScanEvent{}))

	s.db = db
	s.repo = NewTrackedQRRepository(db)
}

func (s *TrackedRepositorySuite) TestCreateAndGetByID() {
	tracked := &domain.TrackedQR{ID: "id-1", ShortCode: "abc123", TargetURL: "https://example.com", ManageToken: "tok", CreatedAt: time.Now().UTC()}
	require.NoError(s.T(), s.repo.Create(context.Background(), tracked))

	fetched, err := s.repo.GetByID(context.Background(), "id-1")
	require.NoError(s.T(), err)
	s.Equal("abc123", fetched.ShortCode)
}

func (s *TrackedRepositorySuite) TestCreateRejectsDuplicateShortCode() {
	first := &domain.TrackedQR{ID: "id-1", ShortCode: "dup", TargetURL: "https://example.com", ManageToken: "tok", CreatedAt: time.Now().UTC()}
	second := &domain.TrackedQR{ID: "id-2", ShortCode: "dup", TargetURL: "https://example.com/2", ManageToken: "tok2", CreatedAt: time.Now().UTC()}

	require.NoError(s.T(), s.repo.Create(context.Background(), first))
	err := s.repo.Create(context.Background(), second)
	s.Equal(domain.KindShortCodeTaken, domain.AsDomainError(err).Kind)
}

func (s *TrackedRepositorySuite) TestGetByIDMissingReturnsNotFound() {
	_, err := s.repo.GetByID(context.Background(), "missing")
	s.Equal(domain.KindNotFound, domain.AsDomainError(err).Kind)
}

func (s *TrackedRepositorySuite) TestGetByShortCode() {
	tracked := &domain.TrackedQR{ID: "id-3", ShortCode: "findme", TargetURL: "https://example.com", ManageToken: "tok", CreatedAt: time.Now().UTC()}
	require.NoError(s.T(), s.repo.Create(context.Background(), tracked))

	fetched, err := s.repo.GetByShortCode(context.Background(), "findme")
	require.NoError(s.T(), err)
	s.Equal("id-3", fetched.ID)
}

func (s *TrackedRepositorySuite) TestExistsByShortCode() {
	tracked := &domain.TrackedQR{ID: "id-4", ShortCode: "exists", TargetURL: "https://example.com", ManageToken: "tok", CreatedAt: time.Now().UTC()}
	require.NoError(s.T(), s.repo.Create(context.Background(), tracked))

	exists, err := s.repo.ExistsByShortCode(context.Background(), "exists")
	require.NoError(s.T(), err)
	s.True(exists)

	exists, err = s.repo.ExistsByShortCode(context.Background(), "absent")
	require.NoError(s.T(), err)
	s.False(exists)
}

func (s *TrackedRepositorySuite) TestDelete() {
	tracked := &domain.TrackedQR{ID: "id-5", ShortCode: "deleteme", TargetURL: "https://example.com", ManageToken: "tok", CreatedAt: time.Now().UTC()}
	require.NoError(s.T(), s.repo.Create(context.Background(), tracked))

	require.NoError(s.T(), s.repo.Delete(context.Background(), "id-5"))
	_, err := s.repo.GetByID(context.Background(), "id-5")
	s.Equal(domain.KindNotFound, domain.AsDomainError(err).Kind)
}

func (s *TrackedRepositorySuite) TestDeleteMissingReturnsNotFound() {
	err := s.repo.Delete(context.Background(), "missing")
	s.Equal(domain.KindNotFound, domain.AsDomainError(err).Kind)
}

func (s *TrackedRepositorySuite) TestRecordScanIncrementsCountAndInsertsEvent() {
	tracked := &domain.TrackedQR{ID: "id-6", ShortCode: "scan", TargetURL: "https://example.com", ManageToken: "tok", CreatedAt: time.Now().UTC()}
	require.NoError(s.T(), s.repo.Create(context.Background(), tracked))

	event := &domain.ScanEvent{ScannedAt: time.Now().UTC(), UserAgent: "agent-1"}
	require.NoError(s.T(), s.repo.RecordScan(context.Background(), "id-6", event))

	fetched, err := s.repo.GetByID(context.Background(), "id-6")
	require.NoError(s.T(), err)
	s.Equal(int64(1), fetched.ScanCount)

	events, err := s.repo.RecentScans(context.Background(), "id-6", 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), events, 1)
	s.Equal("agent-1", events[0].UserAgent)
}

func (s *TrackedRepositorySuite) TestRecentScansRespectsLimit() {
	tracked := &domain.TrackedQR{ID: "id-7", ShortCode: "many-scans", TargetURL: "https://example.com", ManageToken: "tok", CreatedAt: time.Now().UTC()}
	require.NoError(s.T(), s.repo.Create(context.Background(), tracked))

	for i := 0; i < 5; i++ {
		event := &domain.ScanEvent{ScannedAt: time.Now().UTC().Add(time.Duration(i) * time.Second)}
		require.NoError(s.T(), s.repo.RecordScan(context.Background(), "id-7", event))
	}

	events, err := s.repo.RecentScans(context.Background(), "id-7", 3)
	require.NoError(s.T(), err)
	s.Len(events, 3)
}

func TestTrackedRepositorySuite(t *testing.T) {
	suite.Run(t, new(TrackedRepositorySuite))
}
