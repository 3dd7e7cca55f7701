package domain

const unknownDescription = "Unknown"

// OracleBackend selects where similarity scores come from.
type OracleBackend string

// Available oracle backends.
const (
	// OracleBackendRelevanced queries a relevanced-compatible HTTP server.
	OracleBackendRelevanced OracleBackend = "relevanced"

	// OracleBackendLocal computes cosine similarity over stored centroid vectors.
	OracleBackendLocal OracleBackend = "local"
)

// IsValid returns true if the backend is recognised.
func (b OracleBackend) IsValid() bool {
	switch b {
	case OracleBackendRelevanced, OracleBackendLocal:
		return true
	default:
		return false
	}
}

// IsRemote returns true if this backend talks to a server.
func (b OracleBackend) IsRemote() bool {
	return b == OracleBackendRelevanced
}

// String returns the string representation.
func (b OracleBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b OracleBackend) Description() string {
	switch b {
	case OracleBackendRelevanced:
		return "Relevanced (remote)"
	case OracleBackendLocal:
		return "Local vectors"
	default:
		return unknownDescription
	}
}

// AllOracleBackends returns all available backends.
func AllOracleBackends() []OracleBackend {
	return []OracleBackend{
		OracleBackendRelevanced,
		OracleBackendLocal,
	}
}

// EstimatorSettings controls the estimation pipeline.
type EstimatorSettings struct {
	// K is the default neighbourhood size.
	K int `json:"k" validate:"min=1"`

	// Concurrency bounds the number of in-flight oracle calls.
	Concurrency int `json:"concurrency" validate:"min=1,max=256"`
}

// OracleSettings configures the similarity oracle.
type OracleSettings struct {
	// Backend selects the oracle implementation.
	Backend OracleBackend `json:"backend" validate:"oneof=relevanced local"`

	// BaseURL is the relevanced server URL.
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `json:"timeout_seconds" validate:"min=1"`

	// Rate is the maximum requests per second (0 = unlimited).
	Rate float64 `json:"rate" validate:"gte=0"`

	// Burst is the number of requests allowed above Rate.
	Burst int `json:"burst" validate:"min=1"`
}

// StoreSettings configures local centroid storage.
type StoreSettings struct {
	// DataDir holds the centroid database. Empty means ~/.geodist/data.
	DataDir string `json:"data_dir,omitempty"`
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	// Estimator holds pipeline settings.
	Estimator EstimatorSettings `json:"estimator"`

	// Oracle holds similarity oracle settings.
	Oracle OracleSettings `json:"oracle"`

	// Store holds centroid storage settings.
	Store StoreSettings `json:"store"`
}

// Default settings values.
const (
	DefaultK              = 5
	DefaultConcurrency    = 8
	DefaultOracleURL      = "http://localhost:8097"
	DefaultTimeoutSeconds = 10
	DefaultOracleRate     = 50.0
	DefaultOracleBurst    = 10
)

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Estimator: EstimatorSettings{
			K:           DefaultK,
			Concurrency: DefaultConcurrency,
		},
		Oracle: OracleSettings{
			Backend:        OracleBackendRelevanced,
			BaseURL:        DefaultOracleURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
			Rate:           DefaultOracleRate,
			Burst:          DefaultOracleBurst,
		},
	}
}
