package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string

	// RegulatedMode masks identifiers echoed back to callers.
	RegulatedMode bool

	// TimeZone is the IANA zone whose calendar defines "today" for checks.
	TimeZone string

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	Log       Log
	Audit     Audit
	RateLimit RateLimit
}

// Log configures the slog handler.
type Log struct {
	Level  slog.Level
	Format string // "json" or "text"
}

// Audit configures the ops audit publisher.
type Audit struct {
	// SampleRate is the fraction of successful checks that are audited.
	// Rejections are always audited.
	SampleRate float64
}

// RateLimit configures the per-IP limit on visa checks.
type RateLimit struct {
	// PerMinute is the number of checks one IP may make per minute. Zero
	// disables limiting.
	PerMinute int
}

const (
	defaultAddr              = ":8080"
	defaultEnvironment       = "development"
	defaultTimeZone          = "Asia/Kuwait"
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultRateLimit         = 60
)

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed values fall back to their defaults.
func FromEnv() Server {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) Server {
	env := stringOr(getenv("VISACHECK_ENV"), defaultEnvironment)

	format := strings.ToLower(getenv("LOG_FORMAT"))
	if format != "json" && format != "text" {
		format = "text"
		if env == "production" {
			format = "json"
		}
	}

	return Server{
		Addr:              stringOr(getenv("VISACHECK_ADDR"), defaultAddr),
		Environment:       env,
		RegulatedMode:     getenv("REGULATED_MODE") == "true",
		TimeZone:          stringOr(getenv("VISACHECK_TIMEZONE"), defaultTimeZone),
		ReadHeaderTimeout: durationOr(getenv("READ_HEADER_TIMEOUT"), defaultReadHeaderTimeout),
		ShutdownTimeout:   durationOr(getenv("SHUTDOWN_TIMEOUT"), defaultShutdownTimeout),
		Log: Log{
			Level:  levelOr(getenv("LOG_LEVEL"), slog.LevelInfo),
			Format: format,
		},
		Audit: Audit{
			SampleRate: rateOr(getenv("AUDIT_SAMPLE_RATE"), 1.0),
		},
		RateLimit: RateLimit{
			PerMinute: countOr(getenv("RATE_LIMIT_PER_MINUTE"), defaultRateLimit),
		},
	}
}

// Location resolves TimeZone. Unknown zones fall back to Kuwait's fixed
// UTC+3 offset so the service still starts without tzdata.
func (s Server) Location() *time.Location {
	if loc, err := time.LoadLocation(s.TimeZone); err == nil {
		return loc
	}
	return time.FixedZone("AST", 3*60*60)
}

func stringOr(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func durationOr(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func levelOr(v string, def slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return def
	}
	return level
}

func rateOr(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 || f > 1 {
		return def
	}
	return f
}

func countOr(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return def
	}
	return n
}
