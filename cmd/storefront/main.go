package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"NavyaStore/internal/catalog"
	"NavyaStore/internal/shop"
	"NavyaStore/pkg/kit"
)

func main() {
	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")
	jwtSecret := getenv("JWT_SECRET", "dev-secret")
	delay := checkoutDelay()

	source, storage := backends(log)

	notif := shop.LogNotifier{Log: log}
	store := shop.New(shop.Options{
		Storage:  storage,
		Notifier: notif,
		Log:      log,
	})
	checkout := shop.NewCheckout(store, shop.SimulatedProcessor{Delay: delay}, notif, log)

	s := &shop.Server{
		Store:    store,
		Catalog:  &catalog.Server{Source: source, Log: log},
		Checkout: checkout,
		Tokens:   shop.NewTokenMaker(jwtSecret),
		Log:      log,
	}

	reg := prometheus.NewRegistry()
	h := shop.NewHandler(s, shop.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: getenv("METRICS_ENABLED", "true") == "true",
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// backends picks Postgres for both the catalog and state storage when DB_DSN
// is set, otherwise the built-in seed catalog and a local state file.
func backends(log *zap.Logger) (catalog.Source, shop.Storage) {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatal("open db failed", zap.Error(err))
		}
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)

		return catalog.NewPostgresSource(db), shop.NewPostgresStorage(db)
	}

	return catalog.NewMemSource(), shop.NewFileStorage(getenv("STATE_PATH", defaultStatePath()))
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return shop.StorageKey + ".json"
	}
	return filepath.Join(dir, "navya", shop.StorageKey+".json")
}

func checkoutDelay() time.Duration {
	ms, err := strconv.Atoi(getenv("CHECKOUT_DELAY_MS", "2000"))
	if err != nil || ms < 0 {
		ms = 2000
	}
	return time.Duration(ms) * time.Millisecond
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
