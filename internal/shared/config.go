package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	FsqBase string
	FsqKey  string
	FsqRPS  int

	UnsplashBase string
	UnsplashKey  string

	GeoIPBase string

	SearchQuery   string
	DefaultLatLng string
	DefaultLimit  int
	NearLimit     int
	NearRadius    int

	Workers  int
	CacheTTL time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/coffee?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		FsqBase: env("FSQ_BASE_URL", "https://api.foursquare.com/v3"),
		FsqKey:  env("FSQ_API_KEY", ""),
		FsqRPS:  atoi("FSQ_RPS", 5),

		UnsplashBase: env("UNSPLASH_BASE_URL", "https://api.unsplash.com"),
		UnsplashKey:  env("UNSPLASH_ACCESS_KEY", ""),

		GeoIPBase: env("GEOIP_BASE_URL", "http://ip-api.com"),

		SearchQuery:   env("SEARCH_QUERY", "coffee"),
		DefaultLatLng: env("DEFAULT_LATLONG", "43.65267,-79.39545"),
		DefaultLimit:  atoi("DEFAULT_LIMIT", 6),
		NearLimit:     atoi("NEAR_LIMIT", 30),
		NearRadius:    atoi("NEAR_RADIUS_METERS", 1000),

		Workers:  atoi("WARMUP_WORKERS", 8),
		CacheTTL: time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
	if c.FsqKey == "" {
		log.Warn().Msg("FSQ_API_KEY is empty")
	}
	if c.UnsplashKey == "" {
		log.Warn().Msg("UNSPLASH_ACCESS_KEY is empty; image enrichment will fall back to the placeholder")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
