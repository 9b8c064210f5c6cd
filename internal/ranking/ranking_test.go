package ranking

import (
	"SchoolPick/entity"
	"SchoolPick/internal/catalog"
	"SchoolPick/internal/counter"
	"SchoolPick/internal/service/directions"
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"math"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func codes(entries []entity.LeaderboardEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.School.Code
	}
	return out
}

var abc = []entity.School{
	{Code: "A", Order: 0},
	{Code: "B", Order: 1},
	{Code: "C", Order: 2},
}

func TestRankByCountTieBreaksOnCatalogOrder(t *testing.T) {
	entries := Rank(ByReason{Code: "all"}, abc, map[string]int64{"A": 3, "B": 3, "C": 1}, nil)
	assert.Equal(t, []string{"A", "B", "C"}, codes(entries))
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}

func TestRankByCountDescending(t *testing.T) {
	entries := Rank(ByReason{Code: "traffic"}, abc, map[string]int64{"A": 1, "C": 7}, nil)
	assert.Equal(t, []string{"C", "A", "B"}, codes(entries))
	assert.Equal(t, int64(0), entries[2].Count, "missing counts are zero")
}

func TestRankByCountAllZeroKeepsCatalogOrder(t *testing.T) {
	entries := Rank(ByReason{Code: "all"}, catalog.Default().Schools(), nil, nil)
	for i, e := range entries {
		assert.Equal(t, i, e.School.Order)
	}
}

func TestRankByCountNegativeTransient(t *testing.T) {
	entries := Rank(ByReason{Code: "all"}, abc, map[string]int64{"A": -1, "B": 0, "C": 2}, nil)
	assert.Equal(t, []string{"C", "B", "A"}, codes(entries))
}

func TestRankByDistanceUnresolvedLast(t *testing.T) {
	schools := []entity.School{{Code: "A"}, {Code: "B"}, {Code: "C"}, {Code: "D"}, {Code: "E"}}
	distances := map[string]entity.DistanceRecord{
		"B": {SchoolCode: "B", Meters: 900, Resolved: true},
		"C": {SchoolCode: "C", Meters: math.NaN(), Resolved: true},
		"D": {SchoolCode: "D", Meters: 300, Resolved: true},
		"E": {SchoolCode: "E", Meters: 300, Resolved: false},
	}

	entries := Rank(ByDistance{}, schools, nil, distances)
	assert.Equal(t, []string{"D", "B", "A", "C", "E"}, codes(entries))
}

func TestRankByDistanceTies(t *testing.T) {
	distances := map[string]entity.DistanceRecord{
		"A": {Meters: 500, Resolved: true},
		"B": {Meters: 100, Resolved: true},
		"C": {Meters: 100, Resolved: true},
	}
	entries := Rank(ByDistance{}, abc, nil, distances)
	assert.Equal(t, []string{"B", "C", "A"}, codes(entries))
}

func TestParseMode(t *testing.T) {
	c := catalog.Default()

	m, err := ParseMode("", c)
	require.NoError(t, err)
	assert.Equal(t, ByReason{Code: entity.ReasonAll}, m)

	m, err = ParseMode("distance", c)
	require.NoError(t, err)
	assert.Equal(t, ByDistance{}, m)

	m, err = ParseMode("grade", c)
	require.NoError(t, err)
	assert.Equal(t, ByReason{Code: "grade"}, m)

	_, err = ParseMode("weather", c)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseSource(t *testing.T) {
	s, err := ParseSource("")
	require.NoError(t, err)
	assert.Equal(t, SourceHaversine, s)

	s, err = ParseSource("routing")
	require.NoError(t, err)
	assert.Equal(t, SourceRouting, s)

	_, err = ParseSource("teleport")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

type stubRouter struct {
	calls   int
	err     error
	results func(dst []directions.Destination) []directions.Result
}

func (s *stubRouter) Route(_ context.Context, _ entity.Location, dst []directions.Destination) ([]directions.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.results(dst), nil
}

type countingCounts struct {
	*counter.Memory
	reads int
}

func (c *countingCounts) Read(ctx context.Context, bucket string) (map[string]int64, error) {
	c.reads++
	return c.Memory.Read(ctx, bucket)
}

func newEngine(t *testing.T, router Router) (*Engine, *countingCounts) {
	t.Helper()
	counts := &countingCounts{Memory: counter.NewMemory()}
	return NewEngine(catalog.Default(), counts, router, discardLogger()), counts
}

// Origin next to 진성고등학교 (jinsung).
var visitor = &entity.Location{Lat: 37.4695, Lng: 126.8768}

func TestEngineCountMode(t *testing.T) {
	e, counts := newEngine(t, nil)
	ctx := context.Background()
	require.NoError(t, counts.Increment(ctx, "traffic", "soha", 2))
	require.NoError(t, counts.Increment(ctx, "traffic", "unsan", 5))
	require.NoError(t, counts.Increment(ctx, entity.ReasonAll, "chang", 9))

	board, err := e.Leaderboard(ctx, Request{Mode: ByReason{Code: "traffic"}})
	require.NoError(t, err)

	assert.Equal(t, "traffic", board.Mode)
	assert.False(t, board.LocationResolved)
	require.Len(t, board.Entries, 11)
	assert.Equal(t, []string{"unsan", "soha", "gwangmyeong"}, codes(board.Entries[:3]))
	assert.Nil(t, board.Entries[0].Distance)
}

func TestEngineCountModeAttachesDistances(t *testing.T) {
	router := &stubRouter{}
	e, _ := newEngine(t, router)

	board, err := e.Leaderboard(context.Background(), Request{Mode: ByReason{Code: entity.ReasonAll}, Origin: visitor, Source: SourceRouting})
	require.NoError(t, err)

	assert.Equal(t, string(SourceHaversine), board.Source)
	assert.Zero(t, router.calls, "count modes never call the routing provider")
	for _, entry := range board.Entries {
		require.NotNil(t, entry.Distance)
		assert.True(t, entry.Distance.Resolved)
	}
	// Counts are all zero, so catalog order is kept.
	assert.Equal(t, "gwangmyeong", board.Entries[0].School.Code)
}

func TestEngineDistanceModeHaversine(t *testing.T) {
	e, counts := newEngine(t, nil)

	board, err := e.Leaderboard(context.Background(), Request{Mode: ByDistance{}, Origin: visitor, Source: SourceHaversine})
	require.NoError(t, err)

	assert.Zero(t, counts.reads, "distance mode does not read counters")
	assert.Equal(t, "jinsung", board.Entries[0].School.Code)
	for i := 1; i < len(board.Entries); i++ {
		assert.LessOrEqual(t, board.Entries[i-1].Distance.Meters, board.Entries[i].Distance.Meters)
	}
	assert.Less(t, board.Entries[0].Distance.Meters, 50.0)
}

func TestEngineDistanceModeWithoutLocation(t *testing.T) {
	e, _ := newEngine(t, nil)

	board, err := e.Leaderboard(context.Background(), Request{Mode: ByDistance{}})
	require.NoError(t, err)

	assert.False(t, board.LocationResolved)
	for i, entry := range board.Entries {
		assert.Equal(t, i, entry.School.Order)
		assert.Nil(t, entry.Distance)
	}
}

func TestEngineOutOfRangeOriginIsUnresolved(t *testing.T) {
	router := &stubRouter{}
	e, _ := newEngine(t, router)
	far := &entity.Location{Lat: 999, Lng: 126.87}

	for _, source := range []Source{SourceHaversine, SourceRouting} {
		board, err := e.Leaderboard(context.Background(), Request{Mode: ByDistance{}, Origin: far, Source: source})
		require.NoError(t, err)

		assert.False(t, board.LocationResolved)
		assert.Empty(t, board.Source)
		for i, entry := range board.Entries {
			assert.Equal(t, i, entry.School.Order)
			assert.Nil(t, entry.Distance)
		}
	}
	assert.Zero(t, router.calls)

	board, err := e.Leaderboard(context.Background(), Request{Mode: ByReason{Code: entity.ReasonAll}, Origin: far})
	require.NoError(t, err)
	assert.False(t, board.LocationResolved)
	assert.Nil(t, board.Entries[0].Distance)
}

func TestEngineDistanceModeRouting(t *testing.T) {
	router := &stubRouter{results: func(dst []directions.Destination) []directions.Result {
		out := make([]directions.Result, len(dst))
		for i, d := range dst {
			// Reverse of catalog order.
			out[i] = directions.Result{SchoolCode: d.SchoolCode, Distance: 10000 - i*500, Duration: 600, Route: directions.RouteSummary(600)}
		}
		return out
	}}
	e, _ := newEngine(t, router)

	board, err := e.Leaderboard(context.Background(), Request{Mode: ByDistance{}, Origin: visitor, Source: SourceRouting})
	require.NoError(t, err)

	assert.Equal(t, 1, router.calls)
	assert.Equal(t, "routing", board.Source)
	assert.Equal(t, "chang", board.Entries[0].School.Code)
	assert.Equal(t, "gwangmyeong", board.Entries[10].School.Code)
	require.NotNil(t, board.Entries[0].Distance.DurationSeconds)
	assert.Equal(t, 600, *board.Entries[0].Distance.DurationSeconds)
	assert.Equal(t, "자동차 10분 소요 예상", board.Entries[0].Distance.Route)
}

func TestEngineRoutingFailure(t *testing.T) {
	e, _ := newEngine(t, &stubRouter{err: errors.New("upstream down")})

	_, err := e.Leaderboard(context.Background(), Request{Mode: ByDistance{}, Origin: visitor, Source: SourceRouting})
	require.Error(t, err)
}

func TestEngineModeSwitchReadsFreshCounts(t *testing.T) {
	e, counts := newEngine(t, nil)
	ctx := context.Background()

	_, err := e.Leaderboard(ctx, Request{Mode: ByReason{Code: "grade"}})
	require.NoError(t, err)
	require.NoError(t, counts.Increment(ctx, "grade", "myeongmun", 1))

	board, err := e.Leaderboard(ctx, Request{Mode: ByReason{Code: "grade"}})
	require.NoError(t, err)
	assert.Equal(t, "myeongmun", board.Entries[0].School.Code)
	assert.Equal(t, 2, counts.reads)
}

func TestDistanceLabel(t *testing.T) {
	assert.Equal(t, "2.34 km", DistanceLabel(2340))
	assert.Equal(t, "500 m", DistanceLabel(500))
}
