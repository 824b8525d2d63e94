package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/BTreeMap/NeuroSoma/internal/api"
	"github.com/BTreeMap/NeuroSoma/internal/genai"
	"github.com/BTreeMap/NeuroSoma/internal/lockfile"
	"github.com/BTreeMap/NeuroSoma/internal/messaging"
	"github.com/BTreeMap/NeuroSoma/internal/store"
	"github.com/BTreeMap/NeuroSoma/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for NeuroSoma state data
	DefaultStateDir = "/var/lib/neurosoma"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "neurosoma.db"
)

// logLevel is raised to Debug when model debugging is enabled.
var logLevel = new(slog.LevelVar)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)
	if *flags.genaiDebug {
		logLevel.Set(slog.LevelDebug)
	}

	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	lock, err := acquireStateLock(flags)
	if err != nil {
		slog.Error("Failed to lock state directory", "error", err)
		os.Exit(1)
	}

	storeOpts := buildStoreOptions(flags)
	genaiOpts := buildGenAIOptions(flags)
	twilioOpts := buildTwilioOptions(flags)
	apiOpts := buildAPIOptions(flags)

	slog.Info("Bootstrapping NeuroSoma with configured modules")
	slog.Debug("Module options counts", "store", len(storeOpts), "genai", len(genaiOpts), "twilio", len(twilioOpts), "api", len(apiOpts))
	runErr := api.Run(storeOpts, genaiOpts, twilioOpts, apiOpts)
	if err := lock.Release(); err != nil {
		slog.Warn("Failed to release state directory lock", "error", err)
	}
	if runErr != nil {
		slog.Error("NeuroSoma failed to run", "error", runErr)
		os.Exit(1)
	}
	slog.Info("NeuroSoma exited successfully")
}

// Config holds environment configuration
type Config struct {
	StateDir          string
	DatabaseDSN       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	PlanTTL           time.Duration
	ModelAPIKey       string
	ModelEndpoint     string
	ModelName         string
	GenAIDebug        bool
	APIAddr           string
	EducateRatePerMin int
	PublicURL         string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromNumber  string
}

// Flags holds command line flag values
type Flags struct {
	stateDir         *string
	dbDSN            *string
	redisAddr        *string
	redisPassword    *string
	redisDB          *int
	planTTL          *time.Duration
	modelAPIKey      *string
	modelEndpoint    *string
	modelName        *string
	genaiDebug       *bool
	apiAddr          *string
	educateRate      *int
	publicURL        *string
	twilioAccountSID *string
	twilioAuthToken  *string
	twilioFromNumber *string
}

// initializeLogger sets up structured logging at Info until configuration is read
func initializeLogger() {
	logLevel.Set(slog.LevelInfo)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		StateDir:          os.Getenv("NEUROSOMA_STATE_DIR"),
		DatabaseDSN:       util.FirstEnv("DATABASE_DSN", "DATABASE_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           util.ParseIntEnv("REDIS_DB", 0),
		ModelAPIKey:       util.FirstEnv("HF_API_TOKEN", "OPENAI_API_KEY"),
		ModelEndpoint:     os.Getenv("HF_MEDGEMMA_ENDPOINT"),
		ModelName:         os.Getenv("GENAI_MODEL"),
		GenAIDebug:        util.ParseBoolEnv("GENAI_DEBUG", false),
		APIAddr:           os.Getenv("API_ADDR"),
		EducateRatePerMin: util.ParseIntEnv("EDUCATE_RATE_PER_MIN", api.DefaultEducateRatePerMin),
		PublicURL:         os.Getenv("NEUROSOMA_PUBLIC_URL"),
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber:  os.Getenv("TWILIO_FROM_NUMBER"),
	}

	if ttl := os.Getenv("PLAN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			slog.Warn("invalid PLAN_TTL, keeping plans forever", "value", ttl, "error", err)
		} else {
			config.PlanTTL = d
		}
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No NEUROSOMA_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}

	// Without a database URL or Redis, plans go to SQLite in the state directory
	if config.DatabaseDSN == "" && config.RedisAddr == "" {
		config.DatabaseDSN = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseDSN)
	}

	slog.Debug("environment variables loaded",
		"NEUROSOMA_STATE_DIR", config.StateDir,
		"DATABASE_DSN_SET", config.DatabaseDSN != "",
		"REDIS_ADDR", config.RedisAddr,
		"MODEL_API_KEY_SET", config.ModelAPIKey != "",
		"HF_MEDGEMMA_ENDPOINT_SET", config.ModelEndpoint != "",
		"GENAI_MODEL", config.ModelName,
		"API_ADDR", config.APIAddr,
		"EDUCATE_RATE_PER_MIN", config.EducateRatePerMin,
		"TWILIO_ACCOUNT_SID_SET", config.TwilioAccountSID != "")

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		stateDir:         flag.String("state-dir", config.StateDir, "state directory for NeuroSoma data (overrides $NEUROSOMA_STATE_DIR)"),
		dbDSN:            flag.String("db-dsn", config.DatabaseDSN, "plan store DSN, PostgreSQL URL or SQLite path (overrides $DATABASE_DSN or $DATABASE_URL)"),
		redisAddr:        flag.String("redis-addr", config.RedisAddr, "Redis address for the plan store (overrides $REDIS_ADDR)"),
		redisPassword:    flag.String("redis-password", config.RedisPassword, "Redis password (overrides $REDIS_PASSWORD)"),
		redisDB:          flag.Int("redis-db", config.RedisDB, "Redis logical database (overrides $REDIS_DB)"),
		planTTL:          flag.Duration("plan-ttl", config.PlanTTL, "expiry for plans kept in Redis, 0 keeps them (overrides $PLAN_TTL)"),
		modelAPIKey:      flag.String("model-api-key", config.ModelAPIKey, "bearer token for the model endpoint (overrides $HF_API_TOKEN or $OPENAI_API_KEY)"),
		modelEndpoint:    flag.String("model-endpoint", config.ModelEndpoint, "OpenAI-compatible model endpoint (overrides $HF_MEDGEMMA_ENDPOINT)"),
		modelName:        flag.String("model", config.ModelName, "model name (overrides $GENAI_MODEL)"),
		genaiDebug:       flag.Bool("genai-debug", config.GenAIDebug, "log model calls to the state directory (overrides $GENAI_DEBUG)"),
		apiAddr:          flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		educateRate:      flag.Int("educate-rate", config.EducateRatePerMin, "education requests per client per minute, 0 disables (overrides $EDUCATE_RATE_PER_MIN)"),
		publicURL:        flag.String("public-url", config.PublicURL, "public base URL linked from delivered plans (overrides $NEUROSOMA_PUBLIC_URL)"),
		twilioAccountSID: flag.String("twilio-account-sid", config.TwilioAccountSID, "Twilio account SID (overrides $TWILIO_ACCOUNT_SID)"),
		twilioAuthToken:  flag.String("twilio-auth-token", config.TwilioAuthToken, "Twilio auth token (overrides $TWILIO_AUTH_TOKEN)"),
		twilioFromNumber: flag.String("twilio-from", config.TwilioFromNumber, "Twilio WhatsApp sender number (overrides $TWILIO_FROM_NUMBER)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"redisAddr", *flags.redisAddr,
		"modelEndpoint_set", *flags.modelEndpoint != "",
		"apiAddr", *flags.apiAddr,
		"educateRate", *flags.educateRate)

	// Follow a changed state directory when the DSN is still the default SQLite path
	if *flags.dbDSN == config.DatabaseDSN && config.DatabaseDSN == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "old_state_dir", config.StateDir, "new_state_dir", *flags.stateDir)
	}

	return flags
}

// ensureDirectoriesExist creates the directories needed by the SQLite store and debug logs
func ensureDirectoriesExist(flags Flags) error {
	var dirs []string
	if usesSQLite(flags) {
		dirs = append(dirs, filepath.Dir(*flags.dbDSN))
	}
	if *flags.genaiDebug {
		dirs = append(dirs, *flags.stateDir)
	}
	for _, dir := range dirs {
		slog.Debug("Creating state directory", "dir", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "dir", dir)
			return err
		}
	}
	return nil
}

// usesSQLite reports whether the plan store will be a SQLite file.
func usesSQLite(flags Flags) bool {
	return *flags.redisAddr == "" && *flags.dbDSN != "" && store.DetectDSNType(*flags.dbDSN) == "sqlite3"
}

// acquireStateLock locks the SQLite database directory. Other backends need no lock.
func acquireStateLock(flags Flags) (*lockfile.Lock, error) {
	if !usesSQLite(flags) {
		return nil, nil
	}
	return lockfile.AcquireLock(filepath.Dir(*flags.dbDSN))
}

// buildStoreOptions constructs store configuration options. Redis wins over a DSN.
func buildStoreOptions(flags Flags) []store.Option {
	var storeOpts []store.Option
	switch {
	case *flags.redisAddr != "":
		slog.Debug("Configuring Redis store", "addr", *flags.redisAddr, "db", *flags.redisDB)
		storeOpts = append(storeOpts, store.WithRedis(*flags.redisAddr, *flags.redisPassword, *flags.redisDB))
		if *flags.planTTL > 0 {
			storeOpts = append(storeOpts, store.WithPlanTTL(*flags.planTTL))
		}
	case *flags.dbDSN != "" && store.DetectDSNType(*flags.dbDSN) == "postgres":
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store", "dsn_set", true)
		storeOpts = append(storeOpts, store.WithPostgresDSN(*flags.dbDSN))
	case *flags.dbDSN != "":
		slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", *flags.dbDSN)
		storeOpts = append(storeOpts, store.WithSQLiteDSN(*flags.dbDSN))
	default:
		slog.Debug("No database DSN provided, will use in-memory store")
	}
	return storeOpts
}

// buildGenAIOptions constructs GenAI configuration options
func buildGenAIOptions(flags Flags) []genai.Option {
	var genaiOpts []genai.Option
	if *flags.modelAPIKey != "" {
		genaiOpts = append(genaiOpts, genai.WithAPIKey(*flags.modelAPIKey))
	}
	if *flags.modelEndpoint != "" {
		genaiOpts = append(genaiOpts, genai.WithBaseURL(*flags.modelEndpoint))
	}
	if *flags.modelName != "" {
		genaiOpts = append(genaiOpts, genai.WithModel(*flags.modelName))
	}
	if *flags.genaiDebug {
		genaiOpts = append(genaiOpts, genai.WithDebugMode(true), genai.WithStateDir(*flags.stateDir))
	}
	return genaiOpts
}

// buildTwilioOptions constructs Twilio options. Delivery stays off when nothing is set.
func buildTwilioOptions(flags Flags) []messaging.TwilioOption {
	if *flags.twilioAccountSID == "" && *flags.twilioAuthToken == "" && *flags.twilioFromNumber == "" {
		return nil
	}
	return []messaging.TwilioOption{
		messaging.WithAccountSID(*flags.twilioAccountSID),
		messaging.WithAuthToken(*flags.twilioAuthToken),
		messaging.WithFromNumber(*flags.twilioFromNumber),
	}
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	apiOpts = append(apiOpts, api.WithEducateRateLimit(*flags.educateRate))
	if *flags.publicURL != "" {
		apiOpts = append(apiOpts, api.WithPlanLinkBase(*flags.publicURL))
	}
	return apiOpts
}
