package core

import (
	"SchoolPick/entity"
	"SchoolPick/internal/ballot"
	"SchoolPick/internal/lib/sl"
	"SchoolPick/internal/ranking"
	"SchoolPick/internal/service/directions"
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	ErrUnknownSchool = errors.New("unknown school")
	ErrUnknownBucket = errors.New("unknown vote bucket")
	ErrNotReady      = errors.New("service is not configured")
	ErrMirrorDrift   = errors.New("catalog mirror differs from catalog")
)

type Catalog interface {
	Schools() []entity.School
	School(code string) (entity.School, bool)
	HasSchool(code string) bool
	Order(code string) int
	HasReason(code string) bool
	HasBucket(code string) bool
	Reasons() []entity.Reason
	Buckets() []entity.Reason
}

// Tally casts and reads votes.
type Tally interface {
	Cast(ctx context.Context, reason, school string) error
	Retract(ctx context.Context, reason, school string) error
	Read(ctx context.Context, bucket string) (map[string]int64, error)
}

type Ranking interface {
	Leaderboard(ctx context.Context, req ranking.Request) (*entity.Leaderboard, error)
}

type Router interface {
	Route(ctx context.Context, origin entity.Location, destinations []directions.Destination) ([]directions.Result, error)
}

// CatalogMirror keeps a copy of the catalog next to the counters.
type CatalogMirror interface {
	SyncSchools(ctx context.Context, schools []entity.School) error
	GetAllSchools(ctx context.Context) ([]entity.School, error)
}

// Notifier is told whenever the counters change.
type Notifier interface {
	Refresh()
}

type Core struct {
	catalog  Catalog
	tally    Tally
	ballots  ballot.Backend
	ranking  Ranking
	router   Router
	notifier Notifier
	mirror   CatalogMirror
	visitors *visitorLocks

	mapApiKey string
	publicURL string
	log       *slog.Logger
}

func New(catalog Catalog, log *slog.Logger) *Core {
	return &Core{
		catalog:  catalog,
		visitors: newVisitorLocks(),
		log:      log.With(sl.Module("core")),
	}
}

func (c *Core) SetTally(tally Tally) {
	c.tally = tally
}

func (c *Core) SetBallotBackend(backend ballot.Backend) {
	c.ballots = backend
}

func (c *Core) SetRanking(r Ranking) {
	c.ranking = r
}

func (c *Core) SetRouter(router Router) {
	c.router = router
}

func (c *Core) SetNotifier(n Notifier) {
	c.notifier = n
}

func (c *Core) SetCatalogMirror(m CatalogMirror) {
	c.mirror = m
}

func (c *Core) SetClientConfig(mapApiKey, publicURL string) {
	c.mapApiKey = mapApiKey
	c.publicURL = publicURL
}

func (c *Core) notify() {
	if c.notifier != nil {
		c.notifier.Refresh()
	}
}

// visitorLocks serialises ballot transitions of one visitor. Entries are
// dropped once nobody holds or waits for them.
type visitorLocks struct {
	mu    sync.Mutex
	locks map[string]*visitorLock
}

type visitorLock struct {
	mu   sync.Mutex
	refs int
}

func newVisitorLocks() *visitorLocks {
	return &visitorLocks{locks: make(map[string]*visitorLock)}
}

func (v *visitorLocks) lock(id string) func() {
	v.mu.Lock()
	l, ok := v.locks[id]
	if !ok {
		l = &visitorLock{}
		v.locks[id] = l
	}
	l.refs++
	v.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		v.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(v.locks, id)
		}
		v.mu.Unlock()
	}
}
