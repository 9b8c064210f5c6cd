package core

import (
	"SchoolPick/entity"
	"SchoolPick/internal/ballot"
	"SchoolPick/internal/catalog"
	"SchoolPick/internal/counter"
	"SchoolPick/internal/ranking"
	"SchoolPick/internal/service/directions"
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
)

type countingNotifier struct {
	n atomic.Int32
}

func (c *countingNotifier) Refresh() { c.n.Add(1) }

type fakeRouter struct {
	calls int
}

func (f *fakeRouter) Route(_ context.Context, _ entity.Location, dst []directions.Destination) ([]directions.Result, error) {
	f.calls++
	out := make([]directions.Result, len(dst))
	for i, d := range dst {
		out[i] = directions.Result{SchoolCode: d.SchoolCode, Distance: 1000, Duration: 120, Route: directions.RouteSummary(120)}
	}
	return out, nil
}

type fixture struct {
	core     *Core
	store    *counter.Memory
	notifier *countingNotifier
	router   *fakeRouter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.Default()
	store := counter.NewMemory()
	tally := counter.NewTally(store, false, log)
	router := &fakeRouter{}
	notifier := &countingNotifier{}

	c := New(cat, log)
	c.SetTally(tally)
	c.SetBallotBackend(ballot.NewMemoryBackend())
	c.SetRanking(ranking.NewEngine(cat, tally, router, log))
	c.SetRouter(router)
	c.SetNotifier(notifier)
	c.SetClientConfig("map-key", "https://survey.example.com")

	return &fixture{core: c, store: store, notifier: notifier, router: router}
}

func TestSubmitAndResetNotify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.core.SubmitBallot(ctx, "v1", "soha", "traffic")
	require.NoError(t, err)
	assert.True(t, b.HasVoted)
	assert.Equal(t, int32(1), f.notifier.n.Load())

	_, err = f.core.SubmitBallot(ctx, "v1", "soha", "traffic")
	require.ErrorIs(t, err, ballot.ErrAlreadyVoted)
	assert.Equal(t, int32(1), f.notifier.n.Load(), "rejected ballots change nothing")

	b, err = f.core.ResetBallot(ctx, "v1")
	require.NoError(t, err)
	assert.False(t, b.HasVoted)
	assert.Equal(t, int32(2), f.notifier.n.Load())

	_, err = f.core.ResetBallot(ctx, "v1")
	require.ErrorIs(t, err, ballot.ErrNotVoted)
}

func TestConcurrentSubmitsOfOneVisitorCountOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	var ok atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.core.SubmitBallot(ctx, "same", "unsan", "grade"); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	counts, err := f.core.Counts(ctx, entity.ReasonAll)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["unsan"])
	assert.Empty(t, f.core.visitors.locks, "locks are released")
}

func TestBallotFormRedirectsVotedVisitor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	form, redirect, err := f.core.BallotForm(ctx, "v1")
	require.NoError(t, err)
	assert.False(t, redirect)
	assert.Len(t, form.Schools, 11)
	assert.Len(t, form.Reasons, 7)
	assert.Equal(t, "voting", form.Ballot.State)

	_, err = f.core.SubmitBallot(ctx, "v1", "chang", "employment")
	require.NoError(t, err)

	form, redirect, err = f.core.BallotForm(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, redirect)
	assert.Nil(t, form)
}

func TestCountsCoverEveryCatalogSchool(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Increment(ctx, "grade", "ghost", 4))

	counts, err := f.core.Counts(ctx, "grade")
	require.NoError(t, err)
	assert.Len(t, counts, 11)
	assert.NotContains(t, counts, "ghost")

	_, err = f.core.Counts(ctx, "weather")
	assert.ErrorIs(t, err, ErrUnknownBucket)
}

func TestLeaderboardParsesView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	origin := &entity.Location{Lat: 37.47, Lng: 126.87}

	board, err := f.core.Leaderboard(ctx, "distance", origin, "routing")
	require.NoError(t, err)
	assert.Equal(t, "routing", board.Source)
	assert.Equal(t, 1, f.router.calls)

	_, err = f.core.Leaderboard(ctx, "weather", nil, "")
	assert.ErrorIs(t, err, ranking.ErrUnknownMode)

	_, err = f.core.Leaderboard(ctx, "", nil, "teleport")
	assert.Error(t, err)
}

func TestDirectionsRejectsUnknownSchool(t *testing.T) {
	f := newFixture(t)
	lat, lng := 37.47, 126.87
	point := entity.Point{Lat: &lat, Lng: &lng}

	_, err := f.core.Directions(context.Background(), &entity.DirectionsQuery{
		Origin:       point,
		Destinations: []entity.DirectionsDestination{{SchoolCode: "hogwarts", Location: point}},
	})
	require.ErrorIs(t, err, ErrUnknownSchool)
	assert.Zero(t, f.router.calls)

	results, err := f.core.Directions(context.Background(), &entity.DirectionsQuery{
		Origin:       point,
		Destinations: []entity.DirectionsDestination{{SchoolCode: "soha", Location: point}},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "soha", results[0].SchoolCode)
}

func TestShareQR(t *testing.T) {
	f := newFixture(t)

	png, err := f.core.ShareQR(10)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	f.core.SetClientConfig("", "")
	_, err = f.core.ShareQR(256)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestAuditCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Increment(ctx, entity.ReasonAll, "soha", 1))
	require.NoError(t, f.store.Increment(ctx, "traffic", "closed-school", 2))

	orphans, err := f.core.AuditCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"traffic": {"closed-school"}}, orphans)
}

func TestNotReady(t *testing.T) {
	c := New(catalog.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.BallotStatus(context.Background(), "v1")
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = c.Leaderboard(context.Background(), "", nil, "")
	assert.ErrorIs(t, err, ErrNotReady)
}

// recordingMirror stores what it is given; stored, when set, is what it
// hands back instead.
type recordingMirror struct {
	schools []entity.School
	stored  []entity.School
}

func (m *recordingMirror) SyncSchools(_ context.Context, schools []entity.School) error {
	m.schools = schools
	return nil
}

func (m *recordingMirror) GetAllSchools(_ context.Context) ([]entity.School, error) {
	if m.stored != nil {
		return m.stored, nil
	}
	return m.schools, nil
}

func TestSyncCatalog(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.core.SyncCatalog(context.Background()), "no mirror is fine")

	mirror := &recordingMirror{}
	f.core.SetCatalogMirror(mirror)
	require.NoError(t, f.core.SyncCatalog(context.Background()))
	require.Len(t, mirror.schools, 11)
	assert.Equal(t, "gwangmyeong", mirror.schools[0].Code)
}

func TestSyncCatalogDetectsDrift(t *testing.T) {
	f := newFixture(t)
	schools := catalog.Default().Schools()

	swapped := append([]entity.School(nil), schools...)
	swapped[0], swapped[1] = swapped[1], swapped[0]

	tests := []struct {
		name   string
		stored []entity.School
	}{
		{"missing school", schools[:10]},
		{"unknown school", append(append([]entity.School(nil), schools[:10]...), entity.School{Code: "hogwarts"})},
		{"wrong order", swapped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.core.SetCatalogMirror(&recordingMirror{stored: tt.stored})
			assert.ErrorIs(t, f.core.SyncCatalog(context.Background()), ErrMirrorDrift)
		})
	}
}

func TestLeaderboardOutOfRangeOrigin(t *testing.T) {
	f := newFixture(t)

	board, err := f.core.Leaderboard(context.Background(), "distance", &entity.Location{Lat: 999, Lng: 126.87}, "routing")
	require.NoError(t, err)
	assert.False(t, board.LocationResolved)
	assert.Zero(t, f.router.calls)
}
