package config // package config loads application configuration from environment variables

import (
    "log"  // log reports configuration errors and halts execution
    "os"   // os provides access to environment variables
    "time" // token lifetimes and latencies

    "github.com/joho/godotenv" // optional .env file for local runs
)

// Backend implementations selectable with API_BACKEND.
const (
    BackendMock   = "mock"
    BackendRemote = "remote"
)

// Storage drivers selectable with STORAGE_DRIVER.
const (
    StorageMemory = "memory"
    StorageRedis  = "redis"
    StorageMySQL  = "mysql"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
    Env          string        // application environment (e.g. "dev", "prod")
    Port         string        // HTTP port of the dev server
    Backend      string        // "mock" or "remote"
    APIBaseURL   string        // base URL of the REST backend for the remote client
    Storage      string        // store behind the mock backend: memory, redis or mysql
    MockLatency  time.Duration // artificial delay of every mock operation
    DBUser       string        // database username
    DBPass       string        // database password (optional)
    DBHost       string        // database host address
    DBPort       string        // database port number
    DBName       string        // database name
    JWTSecret    string        // secret used to sign access tokens
    AccessTTL    time.Duration // access token lifetime
    RefreshTTL   time.Duration // refresh token lifetime
    BcryptCost   int           // bcrypt cost for password hashing
    CookieSecure bool          // set the Secure flag on session cookies
    AMQPURL      string        // RabbitMQ URL; empty disables event publishing
    SeedEmail    string        // instructor account created at startup (optional)
    SeedPassword string        // password of the seeded instructor
    SeedName     string        // display name of the seeded instructor
    AdminEmail   string        // admin account created at startup (optional)
    AdminPass    string        // password of the seeded admin
}

// Load reads configuration values from the environment.  A .env file in
// the working directory is loaded first when present; real environment
// variables win over it.
func Load() Config {
    _ = godotenv.Load()
    return Config{
        Env:           envStr("APP_ENV", "dev"),
        Port:          envStr("APP_PORT", "8080"),
        Backend:       envStr("API_BACKEND", BackendMock),
        APIBaseURL:    envStr("API_BASE_URL", "http://localhost:8080"),
        Storage:       envStr("STORAGE_DRIVER", StorageMemory),
        MockLatency:   envDur("MOCK_LATENCY", 300*time.Millisecond),
        DBUser:        os.Getenv("DB_USER"),
        DBPass:        os.Getenv("DB_PASS"),
        DBHost:        envStr("DB_HOST", "localhost"),
        DBPort:        envStr("DB_PORT", "3306"),
        DBName:        os.Getenv("DB_NAME"),
        JWTSecret:     os.Getenv("JWT_SECRET"),
        AccessTTL:     time.Duration(envInt("ACCESS_TOKEN_TTL_MIN", 15)) * time.Minute,
        RefreshTTL:    time.Duration(envInt("REFRESH_TOKEN_TTL_DAYS", 14)) * 24 * time.Hour,
        BcryptCost:    envInt("BCRYPT_COST", 10),
        CookieSecure:  envBool("COOKIE_SECURE", false),
        AMQPURL:       amqpURL(),
        SeedEmail:     os.Getenv("SEED_INSTRUCTOR_EMAIL"),
        SeedPassword:  os.Getenv("SEED_INSTRUCTOR_PASSWORD"),
        SeedName:      envStr("SEED_INSTRUCTOR_NAME", "Instructor"),
        AdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
        AdminPass:     os.Getenv("SEED_ADMIN_PASSWORD"),
    }
}

// LoadServer is Load plus the variables the dev server cannot run
// without.  Missing values are fatal.
func LoadServer() Config {
    cfg := Load()
    cfg.JWTSecret = must("JWT_SECRET")
    switch cfg.Storage {
    case StorageMemory, StorageRedis:
    case StorageMySQL:
        cfg.DBUser = must("DB_USER")
        cfg.DBName = must("DB_NAME")
    default:
        log.Fatalf("invalid STORAGE_DRIVER: %q", cfg.Storage)
    }
    return cfg
}

// amqpURL mirrors the broker lookup of the consumer: RABBITMQ_URL first,
// then AMQP_URL.  EVENTS_ENABLED=false turns publishing off entirely.
func amqpURL() string {
    if !envBool("EVENTS_ENABLED", true) {
        return ""
    }
    if v := os.Getenv("RABBITMQ_URL"); v != "" {
        return v
    }
    return os.Getenv("AMQP_URL")
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}
