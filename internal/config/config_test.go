package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-registry-ops/internal/core/domain"
)

// cleanEnv blanks every variable the loader reads; viper treats empty
// values as unset.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CAPSTONE_TEST", "GITHUB_ACTIONS", "DAGSHUB_CRED_OWNER", "DAGSHUB_CRED_NAME",
		"MLFLOW_TRACKING_URI", "MODEL_NAME", "PROMOTION_STAGE_PRIORITY", "EVALUATION_STAGE_PRIORITY",
		"PROMOTION_STRICT_ARCHIVE", "REGISTRY_TIMEOUT", "REGISTRATION_WAIT_TIMEOUT",
		"REGISTRATION_POLL_INTERVAL", "EVAL_MIN_ACCURACY", "DATABASE_URL", "SERVER_PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingToken(t *testing.T) {
	cleanEnv(t)

	cfg, err := load(viper.New())
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "CAPSTONE_TEST")
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CAPSTONE_TEST", "s3cret")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Tracking.Token)
	assert.Equal(t, "https://dagshub.com/sa-rehman1/Complete_ML_Pipeline_Project.mlflow", cfg.Tracking.URI)
	assert.Equal(t, 30*time.Second, cfg.Tracking.Timeout)
	assert.Equal(t, "my_model", cfg.Registry.ModelName)
	assert.Equal(t, domain.PromotionPriority, cfg.Registry.PromotionPriority)
	assert.Equal(t, domain.EvaluationPriority, cfg.Registry.EvaluationPriority)
	assert.False(t, cfg.Registry.StrictArchive)
	assert.Equal(t, 300*time.Second, cfg.Registry.WaitTimeout)
	assert.Equal(t, time.Second, cfg.Registry.PollInterval)
	assert.Equal(t, "reports/experiment_info.json", cfg.Artifacts.ModelInfoPath)
	assert.Equal(t, "data/processed/test_bow.csv", cfg.Artifacts.HoldoutPath)
	assert.Equal(t, domain.DefaultThresholds(), cfg.Evaluation.Thresholds)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_DagsHubRepoOutsideCI(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CAPSTONE_TEST", "s3cret")
	t.Setenv("DAGSHUB_CRED_OWNER", "acme")
	t.Setenv("DAGSHUB_CRED_NAME", "sentiment")
	t.Setenv("MLFLOW_TRACKING_URI", "http://mlflow.internal:5000")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "https://dagshub.com/acme/sentiment.mlflow", cfg.Tracking.URI)
}

func TestLoad_TrackingURIInCI(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CAPSTONE_TEST", "s3cret")
	t.Setenv("GITHUB_ACTIONS", "true")
	t.Setenv("DAGSHUB_CRED_OWNER", "acme")
	t.Setenv("DAGSHUB_CRED_NAME", "sentiment")
	t.Setenv("MLFLOW_TRACKING_URI", "http://mlflow.internal:5000")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://mlflow.internal:5000", cfg.Tracking.URI)
}

func TestLoad_Overrides(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CAPSTONE_TEST", "s3cret")
	t.Setenv("MODEL_NAME", "sentiment_clf")
	t.Setenv("PROMOTION_STAGE_PRIORITY", "Staging,Production")
	t.Setenv("PROMOTION_STRICT_ARCHIVE", "true")
	t.Setenv("REGISTRATION_WAIT_TIMEOUT", "2m")
	t.Setenv("EVAL_MIN_ACCURACY", "0.75")
	t.Setenv("DATABASE_URL", "postgres://localhost/registry")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "sentiment_clf", cfg.Registry.ModelName)
	assert.Equal(t, domain.StagePriority{domain.StageStaging, domain.StageProduction}, cfg.Registry.PromotionPriority)
	assert.True(t, cfg.Registry.StrictArchive)
	assert.Equal(t, 2*time.Minute, cfg.Registry.WaitTimeout)
	assert.Equal(t, 0.75, cfg.Evaluation.Thresholds.Accuracy)
	assert.True(t, cfg.Database.Enabled())
}

func TestLoad_InvalidPriority(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CAPSTONE_TEST", "s3cret")
	t.Setenv("EVALUATION_STAGE_PRIORITY", "Production,Canary")

	_, err := load(viper.New())
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "EVALUATION_STAGE_PRIORITY")
}
