package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"route-cost-service/internal/adapters/cache"
	"route-cost-service/internal/adapters/repositories"
	"route-cost-service/internal/adapters/routing"
	"route-cost-service/internal/api"
	"route-cost-service/internal/config"
	"route-cost-service/internal/platform/db"
	"route-cost-service/internal/ports"
	"route-cost-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, OSRM, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/tolls.json")
	port := config.Get("PORT", "8080")
	osrmBaseURL := config.Get("OSRM_BASE_URL", "https://router.project-osrm.org")

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed the catalogs on startup for local runs.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	// Route evaluations are cached so permutation search does not
	// re-query OSRM for orders it has already priced. Redis when
	// configured, local SQLite otherwise.
	var evalCache ports.EvalCache
	if addr := strings.TrimSpace(config.Get("REDIS_ADDR", "")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		evalCache = cache.NewRedisEvalCache(client, 24*time.Hour)
		log.Printf("eval cache backend=redis addr=%s", addr)
	} else {
		evalCache = cache.NewSqliteEvalCache(sqliteDB)
		log.Printf("eval cache backend=sqlite path=%s", dbPath)
	}

	evaluator := routing.NewOSRMEvaluator(osrmBaseURL, evalCache)

	// Toll catalog reads go to Postgres when DATABASE_URL is set,
	// otherwise to the local SQLite file.
	var catalog ports.TollCatalog = repositories.NewSqliteTollCatalog(sqliteDB)
	if databaseURL := strings.TrimSpace(config.Get("DATABASE_URL", "")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		catalog = repositories.NewPgTollCatalog(pg)
		log.Printf("toll catalog backend=postgres")
	}

	planner := services.NewPlanner(evaluator, catalog, services.SearchOptions{
		EvalTimeout:  envDuration("EVAL_TIMEOUT_MS", 12*time.Second),
		RequestDelay: envDuration("REQUEST_DELAY_MS", 200*time.Millisecond),
	})

	vehicles := repositories.NewSqliteVehicleRepository(sqliteDB)
	routes := repositories.NewSqliteRouteRepository(sqliteDB)
	router := api.NewRouter(planner, vehicles, catalog, routes)

	// Timeouts are tuned for cold-cache permutation search (up to 8!
	// sequential OSRM calls on the largest allowed working set).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := config.Get(key, "")
	if raw == "" {
		return fallback
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		log.Printf("invalid %s=%q, using default %s", key, raw, fallback)
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

func openDB(dbPath string) (*sql.DB, error) {
	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := sqliteDB.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqliteDB, nil
}

func initAndSeed(sqliteDB *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(sqliteDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(sqliteDB, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
