package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"model-registry-ops/internal/core/domain"
)

const (
	dagshubURL = "https://dagshub.com"

	defaultRepoOwner = "sa-rehman1"
	defaultRepoName  = "Complete_ML_Pipeline_Project"
)

type Config struct {
	Tracking   TrackingConfig
	Registry   RegistryConfig
	Artifacts  ArtifactsConfig
	Evaluation EvaluationConfig
	Scoring    ScoringConfig
	Database   DatabaseConfig
	Server     ServerConfig
	Logger     LoggerConfig
}

// TrackingConfig addresses the MLflow tracking server. Token is sent as
// both basic auth username and password, which is how DagsHub accepts it.
type TrackingConfig struct {
	URI     string
	Token   string
	Timeout time.Duration
}

type RegistryConfig struct {
	ModelName          string
	PromotionPriority  domain.StagePriority
	EvaluationPriority domain.StagePriority
	StrictArchive      bool
	WaitTimeout        time.Duration
	PollInterval       time.Duration
}

type ArtifactsConfig struct {
	ModelInfoPath  string
	VectorizerPath string
	HoldoutPath    string
}

type EvaluationConfig struct {
	Thresholds domain.Thresholds
}

type ScoringConfig struct {
	URL     string
	Timeout time.Duration
}

// DatabaseConfig is optional; an empty URL disables the transition log.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

// Load reads a .env file when present, then the process environment. A
// missing CAPSTONE_TEST token fails with ErrConfiguration before anything
// talks to the network.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	// Defaults
	v.SetDefault("MODEL_NAME", "my_model")
	v.SetDefault("PROMOTION_STAGE_PRIORITY", domain.PromotionPriority.String())
	v.SetDefault("EVALUATION_STAGE_PRIORITY", domain.EvaluationPriority.String())
	v.SetDefault("PROMOTION_STRICT_ARCHIVE", false)
	v.SetDefault("REGISTRY_TIMEOUT", "30s")
	v.SetDefault("REGISTRATION_WAIT_TIMEOUT", "300s")
	v.SetDefault("REGISTRATION_POLL_INTERVAL", "1s")
	v.SetDefault("MODEL_INFO_PATH", "reports/experiment_info.json")
	v.SetDefault("VECTORIZER_PATH", "models/vectorizer.json")
	v.SetDefault("HOLDOUT_PATH", "data/processed/test_bow.csv")
	v.SetDefault("SCORING_URL", "http://127.0.0.1:5001")
	v.SetDefault("SCORING_TIMEOUT", "60s")
	v.SetDefault("EVAL_MIN_ACCURACY", 0.40)
	v.SetDefault("EVAL_MIN_PRECISION", 0.40)
	v.SetDefault("EVAL_MIN_RECALL", 0.40)
	v.SetDefault("EVAL_MIN_F1", 0.40)
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 4)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "text")

	// Env
	v.AutomaticEnv()

	token := v.GetString("CAPSTONE_TEST")
	if token == "" {
		return nil, fmt.Errorf("%w: CAPSTONE_TEST environment variable is not set", domain.ErrConfiguration)
	}

	promotion, err := domain.ParseStagePriority(v.GetString("PROMOTION_STAGE_PRIORITY"))
	if err != nil {
		return nil, fmt.Errorf("%w: PROMOTION_STAGE_PRIORITY: %v", domain.ErrConfiguration, err)
	}
	evaluation, err := domain.ParseStagePriority(v.GetString("EVALUATION_STAGE_PRIORITY"))
	if err != nil {
		return nil, fmt.Errorf("%w: EVALUATION_STAGE_PRIORITY: %v", domain.ErrConfiguration, err)
	}

	cfg := &Config{
		Tracking: TrackingConfig{
			URI:     trackingURI(v),
			Token:   token,
			Timeout: duration(v, "REGISTRY_TIMEOUT", 30*time.Second),
		},
		Registry: RegistryConfig{
			ModelName:          v.GetString("MODEL_NAME"),
			PromotionPriority:  promotion,
			EvaluationPriority: evaluation,
			StrictArchive:      v.GetBool("PROMOTION_STRICT_ARCHIVE"),
			WaitTimeout:        duration(v, "REGISTRATION_WAIT_TIMEOUT", 300*time.Second),
			PollInterval:       duration(v, "REGISTRATION_POLL_INTERVAL", time.Second),
		},
		Artifacts: ArtifactsConfig{
			ModelInfoPath:  v.GetString("MODEL_INFO_PATH"),
			VectorizerPath: v.GetString("VECTORIZER_PATH"),
			HoldoutPath:    v.GetString("HOLDOUT_PATH"),
		},
		Evaluation: EvaluationConfig{
			Thresholds: domain.Thresholds{
				Accuracy:  v.GetFloat64("EVAL_MIN_ACCURACY"),
				Precision: v.GetFloat64("EVAL_MIN_PRECISION"),
				Recall:    v.GetFloat64("EVAL_MIN_RECALL"),
				F1:        v.GetFloat64("EVAL_MIN_F1"),
			},
		},
		Scoring: ScoringConfig{
			URL:     v.GetString("SCORING_URL"),
			Timeout: duration(v, "SCORING_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			ConnMaxLifetime: duration(v, "DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}

// trackingURI mirrors dagshub.init: outside CI, a configured DagsHub repo
// decides the URI. Otherwise MLFLOW_TRACKING_URI, then the project default.
func trackingURI(v *viper.Viper) string {
	owner := v.GetString("DAGSHUB_CRED_OWNER")
	name := v.GetString("DAGSHUB_CRED_NAME")
	if !v.IsSet("GITHUB_ACTIONS") && owner != "" && name != "" {
		return dagshubTrackingURI(owner, name)
	}
	if uri := v.GetString("MLFLOW_TRACKING_URI"); uri != "" {
		return uri
	}
	return dagshubTrackingURI(defaultRepoOwner, defaultRepoName)
}

func dagshubTrackingURI(owner, name string) string {
	return fmt.Sprintf("%s/%s/%s.mlflow", dagshubURL, owner, name)
}

func duration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
