package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/roster-engine/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	DBURL                          string
	DBDisablePreparedBinary        bool
	CacheEnabled                   bool
	CacheTTL                       time.Duration
	CORSAllowedOrigins             []string
	LogLevel                       logging.Level
	SquadSize                      int
	StarterCount                   int
	BudgetCap                      int64
	MaxPerClub                     int
	TransferDeadline               time.Time
	DeadlineLocksCaptaincy         bool
	InternalJobToken               string
	PriceSyncWorkers               int
	PricefeedEnabled               bool
	PricefeedBaseURL               string
	PricefeedToken                 string
	PricefeedTimeout               time.Duration
	PricefeedMaxRetries            int
	PricefeedMaxParallel           int
	PricefeedCircuitEnabled        bool
	PricefeedCircuitFailureCount   int
	PricefeedCircuitOpenTimeout    time.Duration
	PricefeedCircuitHalfOpenMaxReq int
	PprofEnabled                   bool
	PprofAddr                      string
	UptraceEnabled                 bool
	UptraceDSN                     string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeUploadRate            time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	squadSize, err := getEnvAsInt("ROSTER_SQUAD_SIZE", 15)
	if err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_SQUAD_SIZE: %w", err)
	}
	if squadSize < 1 {
		return Config{}, fmt.Errorf("ROSTER_SQUAD_SIZE must be >= 1")
	}
	starterCount, err := getEnvAsInt("ROSTER_STARTER_COUNT", 11)
	if err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_STARTER_COUNT: %w", err)
	}
	if starterCount < 1 || starterCount > squadSize {
		return Config{}, fmt.Errorf("ROSTER_STARTER_COUNT must be between 1 and ROSTER_SQUAD_SIZE")
	}
	budgetCap, err := getEnvAsInt64("ROSTER_BUDGET_CAP", 1000)
	if err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_BUDGET_CAP: %w", err)
	}
	if budgetCap < 1 {
		return Config{}, fmt.Errorf("ROSTER_BUDGET_CAP must be >= 1")
	}
	maxPerClub, err := getEnvAsInt("ROSTER_MAX_PER_CLUB", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse ROSTER_MAX_PER_CLUB: %w", err)
	}
	if maxPerClub < 1 {
		return Config{}, fmt.Errorf("ROSTER_MAX_PER_CLUB must be >= 1")
	}

	transferDeadline, err := parseDeadline(getEnv("TRANSFER_DEADLINE", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse TRANSFER_DEADLINE: %w", err)
	}
	deadlineLocksCaptaincy, err := strconv.ParseBool(getEnv("DEADLINE_LOCKS_CAPTAINCY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DEADLINE_LOCKS_CAPTAINCY: %w", err)
	}

	priceSyncWorkers, err := getEnvAsInt("PRICE_SYNC_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse PRICE_SYNC_WORKERS: %w", err)
	}
	if priceSyncWorkers < 1 {
		return Config{}, fmt.Errorf("PRICE_SYNC_WORKERS must be >= 1")
	}

	pricefeedEnabled, err := strconv.ParseBool(getEnv("PRICEFEED_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PRICEFEED_ENABLED: %w", err)
	}
	pricefeedTimeout, err := time.ParseDuration(getEnv("PRICEFEED_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PRICEFEED_TIMEOUT: %w", err)
	}
	if pricefeedTimeout <= 0 {
		return Config{}, fmt.Errorf("PRICEFEED_TIMEOUT must be > 0")
	}
	pricefeedMaxRetries, err := getEnvAsInt("PRICEFEED_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PRICEFEED_MAX_RETRIES: %w", err)
	}
	if pricefeedMaxRetries < 0 {
		return Config{}, fmt.Errorf("PRICEFEED_MAX_RETRIES must be >= 0")
	}
	pricefeedMaxParallel, err := getEnvAsInt("PRICEFEED_MAX_PARALLEL", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse PRICEFEED_MAX_PARALLEL: %w", err)
	}
	if pricefeedMaxParallel < 1 {
		return Config{}, fmt.Errorf("PRICEFEED_MAX_PARALLEL must be >= 1")
	}
	pricefeedCircuitEnabled, err := strconv.ParseBool(getEnv("PRICEFEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PRICEFEED_CIRCUIT_ENABLED: %w", err)
	}
	pricefeedCircuitFailureCount, err := getEnvAsInt("PRICEFEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PRICEFEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if pricefeedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("PRICEFEED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	pricefeedCircuitOpenTimeout, err := time.ParseDuration(getEnv("PRICEFEED_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PRICEFEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if pricefeedCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("PRICEFEED_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	pricefeedCircuitHalfOpenMaxReq, err := getEnvAsInt("PRICEFEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PRICEFEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if pricefeedCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("PRICEFEED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	pricefeedBaseURL := strings.TrimSpace(getEnv("PRICEFEED_BASE_URL", "https://api.fantasymarket.example/v1"))
	pricefeedToken := strings.TrimSpace(getEnv("PRICEFEED_TOKEN", ""))
	if pricefeedEnabled && pricefeedToken == "" {
		return Config{}, fmt.Errorf("PRICEFEED_TOKEN is required when PRICEFEED_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "roster-engine-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		DBURL:                          strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:        dbDisablePreparedBinary,
		CacheEnabled:                   cacheEnabled,
		CacheTTL:                       cacheTTL,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		SquadSize:                      squadSize,
		StarterCount:                   starterCount,
		BudgetCap:                      budgetCap,
		MaxPerClub:                     maxPerClub,
		TransferDeadline:               transferDeadline,
		DeadlineLocksCaptaincy:         deadlineLocksCaptaincy,
		InternalJobToken:               strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		PriceSyncWorkers:               priceSyncWorkers,
		PricefeedEnabled:               pricefeedEnabled,
		PricefeedBaseURL:               pricefeedBaseURL,
		PricefeedToken:                 pricefeedToken,
		PricefeedTimeout:               pricefeedTimeout,
		PricefeedMaxRetries:            pricefeedMaxRetries,
		PricefeedMaxParallel:           pricefeedMaxParallel,
		PricefeedCircuitEnabled:        pricefeedCircuitEnabled,
		PricefeedCircuitFailureCount:   pricefeedCircuitFailureCount,
		PricefeedCircuitOpenTimeout:    pricefeedCircuitOpenTimeout,
		PricefeedCircuitHalfOpenMaxReq: pricefeedCircuitHalfOpenMaxReq,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseDeadline(v string) (time.Time, error) {
	value := strings.TrimSpace(v)
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
