package main

import (
	"SchoolPick/impl/core"
	"SchoolPick/internal/ballot"
	"SchoolPick/internal/catalog"
	"SchoolPick/internal/config"
	"SchoolPick/internal/counter"
	"SchoolPick/internal/database"
	"SchoolPick/internal/http-server/api"
	"SchoolPick/internal/lib/logger"
	"SchoolPick/internal/lib/sl"
	"SchoolPick/internal/ranking"
	"SchoolPick/internal/service/directions"
	"SchoolPick/internal/store/redisstore"
	"SchoolPick/internal/store/sqlstore"
	"SchoolPick/internal/ws"
	"context"
	"flag"
	"github.com/joho/godotenv"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// store is a counter backend that also keeps ballots.
type store interface {
	counter.Store
	ballot.Backend
}

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	// secrets may come from a .env file next to the binary
	_ = godotenv.Load()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting schoolpick", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closer, err := openStore(ctx, conf, lg)
	if err != nil {
		lg.Error("open storage", sl.Err(err))
		return
	}
	defer closer.Close()

	cat := catalog.Default()
	tally := counter.NewTally(st, conf.Storage.AtomicPair, lg)

	kakao := directions.NewKakaoClient(
		conf.Kakao.BaseURL,
		conf.Kakao.RestApiKey,
		time.Duration(conf.Kakao.Timeout)*time.Second,
		conf.Kakao.Retries,
		lg,
	)
	gateway := directions.NewGateway(kakao, lg)
	lg.With(
		slog.String("url", conf.Kakao.BaseURL),
		sl.Secret("rest_api_key", conf.Kakao.RestApiKey),
		sl.Secret("map_api_key", conf.Kakao.MapApiKey),
	).Info("directions gateway initialized")

	handler := core.New(cat, lg)
	handler.SetTally(tally)
	handler.SetBallotBackend(st)
	handler.SetRanking(ranking.NewEngine(cat, tally, gateway, lg))
	handler.SetRouter(gateway)
	handler.SetClientConfig(conf.Kakao.MapApiKey, conf.Listen.PublicURL)

	if mirror, ok := st.(core.CatalogMirror); ok {
		handler.SetCatalogMirror(mirror)
	}

	hub := ws.NewHub(handler, lg)
	handler.SetNotifier(hub)
	go hub.Run(ctx)

	go func() {
		auditCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := handler.SyncCatalog(auditCtx); err != nil {
			lg.Warn("catalog mirror not in sync", sl.Err(err))
		}
		if _, err := handler.AuditCounters(auditCtx); err != nil {
			lg.Warn("counter audit skipped", sl.Err(err))
		}
	}()

	// *** blocking start with http server ***
	err = api.New(ctx, conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Info("service stopped")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func openStore(ctx context.Context, conf *config.Config, lg *slog.Logger) (store, io.Closer, error) {
	switch conf.Storage.Backend {
	case config.BackendMongo:
		db, err := repository.NewMongoClient(conf, lg)
		if err != nil {
			return nil, nil, err
		}
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
		return db, closerFunc(func() error { return db.Close(context.Background()) }), nil

	case config.BackendRedis:
		rs := redisstore.NewClient(conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB, conf.Redis.Prefix)
		if err := rs.Ping(ctx); err != nil {
			lg.Warn("redis not reachable yet", sl.Err(err))
		}
		lg.With(
			slog.String("addr", conf.Redis.Addr),
			slog.Int("db", conf.Redis.DB),
		).Info("redis client initialized")
		return rs, rs, nil

	case config.BackendSQL:
		ss, err := sqlstore.Open(conf.SQL.Driver, conf.SQL.DSN)
		if err != nil {
			return nil, nil, err
		}
		lg.With(
			slog.String("driver", conf.SQL.Driver),
			sl.Secret("dsn", conf.SQL.DSN),
		).Info("sql store initialized")
		return ss, ss, nil
	}

	lg.Warn("using in-memory storage, votes are lost on restart")
	return memoryStore{Memory: counter.NewMemory(), MemoryBackend: ballot.NewMemoryBackend()}, closerFunc(func() error { return nil }), nil
}

type memoryStore struct {
	*counter.Memory
	*ballot.MemoryBackend
}
