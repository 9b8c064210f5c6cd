package ws

import (
	"SchoolPick/entity"
	"context"
	"errors"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeBoard echoes the request back and counts renders per mode. Modes
// listed in delay render slowly.
type fakeBoard struct {
	mu      sync.Mutex
	renders map[string]int
	delay   map[string]time.Duration
}

func (b *fakeBoard) Leaderboard(_ context.Context, mode string, origin *entity.Location, _ string) (*entity.Leaderboard, error) {
	b.mu.Lock()
	if b.renders == nil {
		b.renders = make(map[string]int)
	}
	b.renders[mode]++
	b.mu.Unlock()
	time.Sleep(b.delay[mode])
	if mode == "weather" {
		return nil, errors.New("unknown sort mode")
	}
	return &entity.Leaderboard{Mode: mode, LocationResolved: origin != nil}, nil
}

func (b *fakeBoard) rendered(mode string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renders[mode]
}

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	return startHubWith(t, &fakeBoard{})
}

func startHubWith(t *testing.T, fb *fakeBoard) (*Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := NewHub(fb, log)
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, log, w, r)
	}))
	t.Cleanup(server.Close)
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type board struct {
	Type string             `json:"type"`
	Data entity.Leaderboard `json:"data"`
}

func readBoard(t *testing.T, conn *websocket.Conn) board {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var b board
	require.NoError(t, conn.ReadJSON(&b))
	return b
}

func TestInitialBoardFromQuery(t *testing.T) {
	_, url := startHub(t)
	conn := dial(t, url+"?mode=distance&lat=37.47&lng=126.87")

	b := readBoard(t, conn)
	assert.Equal(t, "leaderboard", b.Type)
	assert.Equal(t, "distance", b.Data.Mode)
	assert.True(t, b.Data.LocationResolved)
}

func TestSelectChangesSubscription(t *testing.T) {
	_, url := startHub(t)
	conn := dial(t, url)
	readBoard(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "select",
		"data": map[string]any{"mode": "traffic"},
	}))
	b := readBoard(t, conn)
	assert.Equal(t, "traffic", b.Data.Mode)
	assert.False(t, b.Data.LocationResolved)
}

func TestRefreshReachesEverySubscriber(t *testing.T) {
	hub, url := startHub(t)
	a := dial(t, url+"?mode=all")
	b := dial(t, url+"?mode=grade")
	readBoard(t, a)
	readBoard(t, b)
	require.Eventually(t, func() bool { return hub.Subscribers() == 2 }, time.Second, 10*time.Millisecond)

	hub.Refresh()
	assert.Equal(t, "all", readBoard(t, a).Data.Mode)
	assert.Equal(t, "grade", readBoard(t, b).Data.Mode)
}

func TestRenderErrorIsSentAsEvent(t *testing.T) {
	_, url := startHub(t)
	conn := dial(t, url+"?mode=weather")

	b := readBoard(t, conn)
	assert.Equal(t, "error", b.Type)
}

func TestRefreshLeavesDistanceSubscribersAlone(t *testing.T) {
	fb := &fakeBoard{}
	hub, url := startHubWith(t, fb)
	near := dial(t, url+"?mode=distance&source=routing&lat=37.47&lng=126.87")
	votes := dial(t, url+"?mode=all")
	readBoard(t, near)
	readBoard(t, votes)
	require.Eventually(t, func() bool { return hub.Subscribers() == 2 }, time.Second, 10*time.Millisecond)

	hub.Refresh()
	assert.Equal(t, "all", readBoard(t, votes).Data.Mode)
	assert.Never(t, func() bool { return fb.rendered("distance") > 1 }, 200*time.Millisecond, 20*time.Millisecond)
	assert.Equal(t, 2, fb.rendered("all"))
}

func TestSlowRenderDoesNotDelayOtherSubscribers(t *testing.T) {
	fb := &fakeBoard{delay: map[string]time.Duration{"traffic": 2 * time.Second}}
	hub, url := startHubWith(t, fb)
	dial(t, url+"?mode=traffic")
	require.Eventually(t, func() bool { return fb.rendered("traffic") == 1 }, time.Second, 10*time.Millisecond)

	started := time.Now()
	conn := dial(t, url+"?mode=all")
	assert.Equal(t, "all", readBoard(t, conn).Data.Mode)
	assert.Less(t, time.Since(started), time.Second)

	hub.Refresh()
	assert.Equal(t, "all", readBoard(t, conn).Data.Mode)
}

func TestOutOfRangeOriginIsIgnored(t *testing.T) {
	_, url := startHub(t)
	conn := dial(t, url+"?mode=distance&lat=999&lng=126.87")

	b := readBoard(t, conn)
	assert.Equal(t, "leaderboard", b.Type)
	assert.False(t, b.Data.LocationResolved)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type": "select",
		"data": map[string]any{"mode": "distance", "lat": 37.47, "lng": 500},
	}))
	assert.False(t, readBoard(t, conn).Data.LocationResolved)
}

func TestSubscriptionOrigin(t *testing.T) {
	lat, lng, bad := 37.47, 126.87, 91.0

	assert.Nil(t, Subscription{}.origin())
	assert.Nil(t, Subscription{Lat: &lat}.origin())
	assert.Nil(t, Subscription{Lat: &bad, Lng: &lng}.origin())
	assert.Equal(t, &entity.Location{Lat: lat, Lng: lng}, Subscription{Lat: &lat, Lng: &lng}.origin())
}
