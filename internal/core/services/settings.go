package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driven"
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyEstimatorK           = "estimator.k"
	KeyEstimatorConcurrency = "estimator.concurrency"
	KeyOracleBackend        = "oracle.backend"
	KeyOracleBaseURL        = "oracle.base_url"
	KeyOracleTimeout        = "oracle.timeout_seconds"
	KeyOracleRate           = "oracle.rate"
	KeyOracleBurst          = "oracle.burst"
	KeyStoreDataDir         = "store.data_dir"
)

// settingKind is how a key's string value is parsed.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
)

var settingKinds = map[string]settingKind{
	KeyEstimatorK:           kindInt,
	KeyEstimatorConcurrency: kindInt,
	KeyOracleBackend:        kindString,
	KeyOracleBaseURL:        kindString,
	KeyOracleTimeout:        kindInt,
	KeyOracleRate:           kindFloat,
	KeyOracleBurst:          kindInt,
	KeyStoreDataDir:         kindString,
}

var validate = validator.New()

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling unset keys with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Estimator: domain.EstimatorSettings{
			K:           s.getInt(KeyEstimatorK, defaults.Estimator.K),
			Concurrency: s.getInt(KeyEstimatorConcurrency, defaults.Estimator.Concurrency),
		},
		Oracle: domain.OracleSettings{
			Backend:        domain.OracleBackend(s.getString(KeyOracleBackend, defaults.Oracle.Backend.String())),
			BaseURL:        s.getString(KeyOracleBaseURL, defaults.Oracle.BaseURL),
			TimeoutSeconds: s.getInt(KeyOracleTimeout, defaults.Oracle.TimeoutSeconds),
			Rate:           s.getFloat(KeyOracleRate, defaults.Oracle.Rate),
			Burst:          s.getInt(KeyOracleBurst, defaults.Oracle.Burst),
		},
		Store: domain.StoreSettings{
			DataDir: s.configStore.GetString(KeyStoreDataDir),
		},
	}, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := validateSettings(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyEstimatorK, settings.Estimator.K},
		{KeyEstimatorConcurrency, settings.Estimator.Concurrency},
		{KeyOracleBackend, settings.Oracle.Backend.String()},
		{KeyOracleBaseURL, settings.Oracle.BaseURL},
		{KeyOracleTimeout, settings.Oracle.TimeoutSeconds},
		{KeyOracleRate, settings.Oracle.Rate},
		{KeyOracleBurst, settings.Oracle.Burst},
		{KeyStoreDataDir, settings.Store.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key, validates the resulting settings and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		parsed = f
	default:
		parsed = value
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	applySetting(settings, key, parsed)
	if err := validateSettings(settings); err != nil {
		return err
	}

	return s.configStore.Set(key, parsed)
}

// Keys returns the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return validateSettings(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

// getFloat treats an explicit zero as set, since a zero rate disables throttling.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func applySetting(settings *domain.AppSettings, key string, value any) {
	switch key {
	case KeyEstimatorK:
		settings.Estimator.K = value.(int)
	case KeyEstimatorConcurrency:
		settings.Estimator.Concurrency = value.(int)
	case KeyOracleBackend:
		settings.Oracle.Backend = domain.OracleBackend(value.(string))
	case KeyOracleBaseURL:
		settings.Oracle.BaseURL = value.(string)
	case KeyOracleTimeout:
		settings.Oracle.TimeoutSeconds = value.(int)
	case KeyOracleRate:
		settings.Oracle.Rate = value.(float64)
	case KeyOracleBurst:
		settings.Oracle.Burst = value.(int)
	case KeyStoreDataDir:
		settings.Store.DataDir = value.(string)
	}
}

// validateSettings runs struct validation and reports field errors readably.
func validateSettings(settings *domain.AppSettings) error {
	err := validate.Struct(settings)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "AppSettings."))
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must not be negative", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
