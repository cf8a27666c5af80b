package config

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2/google"
)

// FCMScope is the OAuth2 scope required by the FCM HTTP v1 API.
const FCMScope = "https://www.googleapis.com/auth/firebase.messaging"

var (
	ErrMissingCredentials   = errors.New("FIREBASE_CREDENTIALS is not set")
	ErrMalformedCredentials = errors.New("FIREBASE_CREDENTIALS is malformed")
)

// AppConfig is built once at startup and handed to components by value.
type AppConfig struct {
	Port     string
	Timezone string

	StoreDriver   string // sqlite|mongo
	DBPath        string
	MongoURI      string
	MongoDatabase string

	LogLevel   string
	LogConsole bool

	SweepSchedule  string
	SweepTimeout   time.Duration
	SweepBatchSize int

	PushRatePerSec float64

	Firebase FirebaseConfig
}

// FirebaseConfig carries the parsed service-account credentials.
type FirebaseConfig struct {
	ProjectID   string
	ClientEmail string
	Credentials *google.Credentials
}

// Load reads .env (if any) and the process environment.
func Load(ctx context.Context) (AppConfig, error) {
	_ = godotenv.Load()
	return FromLookup(ctx, os.LookupEnv)
}

// LoadStore is Load without the push credentials, for offline tools such as
// the catalog seeder. Firebase is left zero.
func LoadStore() (AppConfig, error) {
	_ = godotenv.Load()
	return fromLookup(context.Background(), os.LookupEnv, false)
}

// FromLookup builds the config from an arbitrary lookup function.
func FromLookup(ctx context.Context, lookup func(string) (string, bool)) (AppConfig, error) {
	return fromLookup(ctx, lookup, true)
}

func fromLookup(ctx context.Context, lookup func(string) (string, bool), withPush bool) (AppConfig, error) {
	get := func(k, def string) string {
		if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := AppConfig{
		Port:          get("PORT", "8080"),
		Timezone:      get("TZ", "UTC"),
		StoreDriver:   strings.ToLower(get("STORE_DRIVER", "sqlite")),
		DBPath:        get("DB_PATH", "urbanroots.db"),
		MongoURI:      get("MONGO_URI", ""),
		MongoDatabase: get("MONGO_DATABASE", "urbanroots"),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogConsole:    get("LOG_CONSOLE", "true") == "true",
		SweepSchedule: get("SWEEP_SCHEDULE", "*/15 * * * *"),
	}

	var err error
	if cfg.SweepTimeout, err = time.ParseDuration(get("SWEEP_TIMEOUT", "5m")); err != nil {
		return AppConfig{}, fmt.Errorf("SWEEP_TIMEOUT: %w", err)
	}
	if cfg.SweepBatchSize, err = strconv.Atoi(get("SWEEP_BATCH_SIZE", "200")); err != nil || cfg.SweepBatchSize < 0 {
		return AppConfig{}, fmt.Errorf("SWEEP_BATCH_SIZE must be a non-negative integer")
	}
	if cfg.PushRatePerSec, err = strconv.ParseFloat(get("PUSH_RATE_PER_SEC", "50"), 64); err != nil || cfg.PushRatePerSec <= 0 {
		return AppConfig{}, fmt.Errorf("PUSH_RATE_PER_SEC must be a positive number")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return AppConfig{}, fmt.Errorf("TZ: %w", err)
	}

	switch cfg.StoreDriver {
	case "sqlite":
	case "mongo":
		if cfg.MongoURI == "" {
			return AppConfig{}, errors.New("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	default:
		return AppConfig{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if !withPush {
		return cfg, nil
	}
	blob := get("FIREBASE_CREDENTIALS", "")
	if blob == "" {
		return AppConfig{}, ErrMissingCredentials
	}
	if cfg.Firebase, err = ParseFirebaseCredentials(ctx, blob); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

type serviceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// ParseFirebaseCredentials accepts the service-account JSON either raw or base64 encoded.
func ParseFirebaseCredentials(ctx context.Context, blob string) (FirebaseConfig, error) {
	raw := []byte(strings.TrimSpace(blob))
	if !json.Valid(raw) {
		decoded, err := base64.StdEncoding.DecodeString(string(raw))
		if err != nil || !json.Valid(decoded) {
			return FirebaseConfig{}, fmt.Errorf("%w: neither JSON nor base64 JSON", ErrMalformedCredentials)
		}
		raw = decoded
	}

	var sa serviceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return FirebaseConfig{}, fmt.Errorf("%w: %v", ErrMalformedCredentials, err)
	}
	if sa.Type != string(google.ServiceAccount) {
		return FirebaseConfig{}, fmt.Errorf("%w: type %q, want %q", ErrMalformedCredentials, sa.Type, google.ServiceAccount)
	}
	var missing []string
	if sa.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	if sa.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if sa.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if len(missing) > 0 {
		return FirebaseConfig{}, fmt.Errorf("%w: missing %s", ErrMalformedCredentials, strings.Join(missing, ", "))
	}

	if err := checkPrivateKey(sa.PrivateKey); err != nil {
		return FirebaseConfig{}, fmt.Errorf("%w: %v", ErrMalformedCredentials, err)
	}

	creds, err := google.CredentialsFromJSONWithType(ctx, raw, google.ServiceAccount, FCMScope)
	if err != nil {
		return FirebaseConfig{}, fmt.Errorf("%w: %v", ErrMalformedCredentials, err)
	}
	return FirebaseConfig{ProjectID: sa.ProjectID, ClientEmail: sa.ClientEmail, Credentials: creds}, nil
}

// checkPrivateKey parses the key up front; the token source only does so on
// the first token fetch.
func checkPrivateKey(key string) error {
	block, _ := pem.Decode([]byte(key))
	if block == nil {
		return errors.New("private_key is not PEM encoded")
	}
	if _, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		return nil
	}
	if _, err := x509.ParsePKCS1PrivateKey(block.Bytes); err != nil {
		return fmt.Errorf("private_key: %w", err)
	}
	return nil
}
