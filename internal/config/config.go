// Package config provides configuration management for engramdb. It
// loads settings from environment variables with the ENGRAMDB_ prefix,
// with sensible defaults for all options, and an optional YAML override
// file for deployments that prefer a file over env vars.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for an embedded engramdb
// instance.
type Config struct {
	Storage   StorageConfig
	Embedding EmbeddingConfig
	Index     IndexConfig
	Features  FeaturesConfig
}

// StorageConfig contains persistent-store configuration.
type StorageConfig struct {
	DataPath string // Path to the store directory (default: ./data)
}

// EmbeddingConfig contains the embedding pipeline's tunables.
type EmbeddingConfig struct {
	Model              string  // model descriptor name (default: stub-deterministic)
	CacheSize          int     // LRU cache capacity (default: 1000)
	CircuitMaxFailures int     // consecutive failures before the breaker trips (default: 3)
	CircuitTimeoutSecs int     // seconds the breaker stays open (default: 30)
	RateLimitPerSecond float64 // sustained calls/sec to the embedder (default: 20)
	RateLimitBurst     int     // burst size (default: 5)

	// ReductionMethod selects the dimensionality-reduction stage applied
	// to every embedding before it is indexed: "" (none), "truncation",
	// "random_projection", or "pca" (default: ""). truncation is ready to
	// use immediately; random_projection and pca need DB.TrainReducer
	// called against existing data before they activate.
	ReductionMethod           string
	ReductionTargetDimensions int   // target dimensionality; required when ReductionMethod != "" (default: 0)
	ReductionSeed             int64 // random_projection's fixed projection-matrix seed (default: 0)
}

// IndexConfig contains vector-index tunables.
type IndexConfig struct {
	SizeThreshold int // entry count above which search switches to the approximate graph (default: 2000)
	M             int // ANN graph max neighbors per node (default: 16)
	EfSearch      int // ANN candidate frontier size during search (default: 64)
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	EnableVectorSearch bool // enable the embedding/vector-index pipeline (default: true)
	EnableHybridRanker bool // hybrid-ranker flag (default: true); DB.SearchHybrid does not consult it and always ranks
}

// Load builds a Config from environment variables with ENGRAMDB_-prefixed
// keys and defaults, optionally overlaying a YAML file when yamlPath is
// non-empty.
func Load(yamlPath string) (*Config, error) {
	cfg := buildBaseConfig()

	if yamlPath != "" {
		if err := overlayYAML(cfg, yamlPath); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func buildBaseConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataPath: getEnv("ENGRAMDB_DATA_PATH", "./data"),
		},
		Embedding: EmbeddingConfig{
			Model:                     getEnv("ENGRAMDB_EMBEDDING_MODEL", "stub-deterministic"),
			CacheSize:                 getEnvInt("ENGRAMDB_EMBEDDING_CACHE_SIZE", 1000),
			CircuitMaxFailures:        getEnvInt("ENGRAMDB_EMBEDDING_CIRCUIT_MAX_FAILURES", 3),
			CircuitTimeoutSecs:        getEnvInt("ENGRAMDB_EMBEDDING_CIRCUIT_TIMEOUT_SECONDS", 30),
			RateLimitPerSecond:        getEnvFloat("ENGRAMDB_EMBEDDING_RATE_LIMIT_PER_SECOND", 20),
			RateLimitBurst:            getEnvInt("ENGRAMDB_EMBEDDING_RATE_LIMIT_BURST", 5),
			ReductionMethod:           getEnv("ENGRAMDB_EMBEDDING_REDUCTION_METHOD", ""),
			ReductionTargetDimensions: getEnvInt("ENGRAMDB_EMBEDDING_REDUCTION_TARGET_DIMENSIONS", 0),
			ReductionSeed:             int64(getEnvInt("ENGRAMDB_EMBEDDING_REDUCTION_SEED", 0)),
		},
		Index: IndexConfig{
			SizeThreshold: getEnvInt("ENGRAMDB_INDEX_SIZE_THRESHOLD", 2000),
			M:             getEnvInt("ENGRAMDB_INDEX_M", 16),
			EfSearch:      getEnvInt("ENGRAMDB_INDEX_EF_SEARCH", 64),
		},
		Features: FeaturesConfig{
			EnableVectorSearch: getEnvBool("ENGRAMDB_ENABLE_VECTOR_SEARCH", true),
			EnableHybridRanker: getEnvBool("ENGRAMDB_ENABLE_HYBRID_RANKER", true),
		},
	}
}

// overlayYAML reads a YAML file and merges any fields it sets on top of
// cfg's env-derived values. Fields absent from the file are left
// untouched.
func overlayYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
