package league_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/standingsfeed/standings-service/errs"
	"github.com/standingsfeed/standings-service/internal/app/fetch"
	"github.com/standingsfeed/standings-service/internal/app/league"
	"github.com/standingsfeed/standings-service/internal/app/league/mocks"
	"github.com/standingsfeed/standings-service/internal/app/models"
	"github.com/standingsfeed/standings-service/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceMocks struct {
	cache     *mocks.ResultCache
	fetcher   *mocks.Fetcher
	extractor *mocks.Extractor
}

func newService(t *testing.T) (*league.Service, serviceMocks) {
	m := serviceMocks{
		cache:     mocks.NewResultCache(t),
		fetcher:   mocks.NewFetcher(t),
		extractor: mocks.NewExtractor(t),
	}

	logger := zerolog.Nop()

	return league.NewService(m.cache, m.fetcher, m.extractor, &logger), m
}

func leagueRequest(overrides ...func(*models.LeagueDataRequest)) models.LeagueDataRequest {
	req := models.LeagueDataRequest{
		LeagueType: "bundesliga",
		SourceURL:  "https://results.example.com/bundesliga",
	}

	for _, override := range overrides {
		override(&req)
	}

	return req
}

func TestService_RequestLeagueData_FreshCacheHit(t *testing.T) {
	service, m := newService(t)

	cached := testutils.FakeSnapshot(func(s *models.LeagueSnapshot) {
		s.LeagueType = "bundesliga"
	})
	m.cache.On("Get", "bundesliga").Return(&cached, true)

	snapshot, err := service.RequestLeagueData(context.Background(), leagueRequest())

	require.NoError(t, err)
	assert.True(t, snapshot.FromCache)
	assert.False(t, snapshot.CacheFallback)
	assert.Equal(t, cached.Teams, snapshot.Teams)
	m.fetcher.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RequestLeagueData_FetchExtractAndCache(t *testing.T) {
	service, m := newService(t)
	req := leagueRequest()

	m.cache.On("Get", "bundesliga").Return(nil, false)
	m.cache.On("Fallback", "bundesliga").Return(nil, false)

	result := &models.FetchResult{URL: req.SourceURL, StatusCode: http.StatusOK, Body: "<table>...</table>"}
	m.fetcher.On("Do", mock.Anything, req.SourceURL, fetch.Options{CallerID: "bundesliga"}).Return(result, nil)

	extracted := testutils.FakeSnapshot(func(s *models.LeagueSnapshot) {
		s.LeagueType = "bundesliga"
		s.Source = req.SourceURL
	})
	m.extractor.On("Extract", models.LeagueType("bundesliga"), req.SourceURL, result.Body).Return(&extracted, nil)
	m.cache.On("Set", "bundesliga", extracted, time.Duration(0)).Return()

	snapshot, err := service.RequestLeagueData(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, snapshot.FromCache)
	assert.Equal(t, extracted.Teams, snapshot.Teams)
}

func TestService_RequestLeagueData_TTLOverride(t *testing.T) {
	service, m := newService(t)

	override := 10 * time.Minute
	req := leagueRequest(func(r *models.LeagueDataRequest) {
		r.TTLOverride = &override
	})

	m.cache.On("Get", "bundesliga").Return(nil, false)
	m.cache.On("Fallback", "bundesliga").Return(nil, false)

	result := &models.FetchResult{URL: req.SourceURL, StatusCode: http.StatusOK, Body: "page"}
	m.fetcher.On("Do", mock.Anything, req.SourceURL, mock.Anything).Return(result, nil)

	extracted := testutils.FakeSnapshot()
	m.extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(&extracted, nil)
	m.cache.On("Set", "bundesliga", extracted, override).Return()

	_, err := service.RequestLeagueData(context.Background(), req)

	require.NoError(t, err)
}

func TestService_RequestLeagueData_FetchFailureServesStaleSnapshot(t *testing.T) {
	service, m := newService(t)
	req := leagueRequest()

	stale := testutils.FakeSnapshot(func(s *models.LeagueSnapshot) {
		s.LeagueType = "bundesliga"
	})

	m.cache.On("Get", "bundesliga").Return(nil, false)
	m.cache.On("Fallback", "bundesliga").Return(&stale, true)
	m.fetcher.On("Do", mock.Anything, req.SourceURL, mock.Anything).
		Return(nil, errs.NewFetchFailedError("fetch failed", http.StatusBadGateway, "bundesliga"))

	snapshot, err := service.RequestLeagueData(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, snapshot.FromCache)
	assert.True(t, snapshot.CacheFallback)
	assert.Equal(t, stale.Teams, snapshot.Teams)
}

func TestService_RequestLeagueData_FetchFailureWithoutFallback(t *testing.T) {
	service, m := newService(t)
	req := leagueRequest()

	m.cache.On("Get", "bundesliga").Return(nil, false)
	m.cache.On("Fallback", "bundesliga").Return(nil, false)
	m.fetcher.On("Do", mock.Anything, req.SourceURL, mock.Anything).
		Return(nil, errs.NewFetchFailedError("fetch failed", http.StatusBadGateway, "bundesliga"))

	_, err := service.RequestLeagueData(context.Background(), req)

	require.Error(t, err)

	var fetchErr errs.FetchFailedError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
	assert.Equal(t, "bundesliga", fetchErr.LeagueType)
}

func TestService_RequestLeagueData_EmptyExtractionServesStaleSnapshot(t *testing.T) {
	service, m := newService(t)
	req := leagueRequest()

	stale := testutils.FakeSnapshot(func(s *models.LeagueSnapshot) {
		s.LeagueType = "bundesliga"
	})

	m.cache.On("Get", "bundesliga").Return(nil, false)
	m.cache.On("Fallback", "bundesliga").Return(&stale, true)

	result := &models.FetchResult{URL: req.SourceURL, StatusCode: http.StatusOK, Body: "<html></html>"}
	m.fetcher.On("Do", mock.Anything, req.SourceURL, mock.Anything).Return(result, nil)
	m.extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.LeagueSnapshot{LeagueType: "bundesliga"}, nil)

	snapshot, err := service.RequestLeagueData(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, snapshot.CacheFallback)
	m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RequestLeagueData_EmptyExtractionWithoutFallback(t *testing.T) {
	service, m := newService(t)
	req := leagueRequest()

	m.cache.On("Get", "bundesliga").Return(nil, false)
	m.cache.On("Fallback", "bundesliga").Return(nil, false)

	result := &models.FetchResult{URL: req.SourceURL, StatusCode: http.StatusOK, Body: "<html></html>"}
	m.fetcher.On("Do", mock.Anything, req.SourceURL, mock.Anything).Return(result, nil)
	m.extractor.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(&models.LeagueSnapshot{LeagueType: "bundesliga"}, nil)

	_, err := service.RequestLeagueData(context.Background(), req)

	require.Error(t, err)

	var noData errs.NoDataError
	require.True(t, errors.As(err, &noData))
	assert.Equal(t, "bundesliga", noData.LeagueType)
}
