package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".shopforge"
	DefaultConfigFile = "config.yaml"
)

// Build modes for description handling
const (
	ModeDefault = "default" // source description as-is, no AI
	ModeSimple  = "simple"  // first sentence + AI tags
	ModeFull    = "full"    // AI-rewritten description + tags
)

// Config represents the application configuration
type Config struct {
	Build  BuildConfig  `yaml:"build"`
	AI     AIConfig     `yaml:"ai,omitempty"`
	Output OutputConfig `yaml:"output,omitempty"`
}

// BuildConfig holds the knobs the pipeline consumes
type BuildConfig struct {
	Mode                 string             `yaml:"mode"`             // default, simple or full
	VendorName           string             `yaml:"vendor_name"`      // written to the Vendor column
	InventoryPolicy      string             `yaml:"inventory_policy"` // deny or continue
	DefaultQty           int                `yaml:"default_qty"`
	BulkQtyMode          bool               `yaml:"bulk_qty_mode"`
	BulkQty              int                `yaml:"bulk_qty"`
	DefaultComparePrice  float64            `yaml:"default_compare_price"`
	BulkComparePriceMode bool               `yaml:"bulk_compare_price_mode"`
	BulkComparePrice     float64            `yaml:"bulk_compare_price"`
	EnableSurcharge      bool               `yaml:"enable_surcharge"`
	SurchargeRules       map[string]float64 `yaml:"surcharge_rules,omitempty"` // SIZE -> percent uplift
}

// AIConfig holds AI description service settings
type AIConfig struct {
	APIKeyEnv   string `yaml:"api_key_env"`   // Environment variable for the API key
	Model       string `yaml:"model"`         // Chat model identifier
	RateLimitMs int    `yaml:"rate_limit_ms"` // Milliseconds between calls
}

// OutputConfig holds file output settings
type OutputConfig struct {
	OutputDir string `yaml:"output_dir"`
	Pretty    bool   `yaml:"pretty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			Mode:                ModeDefault,
			VendorName:          "YourBrandName",
			InventoryPolicy:     "deny",
			DefaultQty:          10,
			DefaultComparePrice: 0,
			SurchargeRules:      map[string]float64{},
		},
		AI: AIConfig{
			APIKeyEnv:   "OPENAI_API_KEY",
			Model:       "gpt-5-nano",
			RateLimitMs: 100,
		},
		Output: OutputConfig{
			OutputDir: "./output",
			Pretty:    true,
		},
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// Load reads the configuration from the config file
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadFrom(configPath)
}

// LoadFrom reads the configuration from a specific path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	return &config, nil
}

// Save writes the configuration to the config file
func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return SaveTo(config, configPath)
}

// SaveTo writes the configuration to a specific path
func SaveTo(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Init creates a new config file with defaults
func Init() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	return Save(DefaultConfig())
}

// Exists checks if the config file exists
func Exists() bool {
	configPath, err := GetConfigPath()
	if err != nil {
		return false
	}

	_, err = os.Stat(configPath)
	return err == nil
}

// applyDefaults fills in missing values with defaults
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Build.Mode == "" {
		config.Build.Mode = defaults.Build.Mode
	}
	if config.Build.VendorName == "" {
		config.Build.VendorName = defaults.Build.VendorName
	}
	if config.Build.InventoryPolicy == "" {
		config.Build.InventoryPolicy = defaults.Build.InventoryPolicy
	}
	if config.Build.DefaultQty <= 0 {
		config.Build.DefaultQty = defaults.Build.DefaultQty
	}
	if config.Build.SurchargeRules == nil {
		config.Build.SurchargeRules = map[string]float64{}
	}

	if config.AI.APIKeyEnv == "" {
		config.AI.APIKeyEnv = defaults.AI.APIKeyEnv
	}
	if config.AI.Model == "" {
		config.AI.Model = defaults.AI.Model
	}
	if config.AI.RateLimitMs <= 0 {
		config.AI.RateLimitMs = defaults.AI.RateLimitMs
	}

	if config.Output.OutputDir == "" {
		config.Output.OutputDir = defaults.Output.OutputDir
	}
}

// Set updates a specific config value
func Set(key, value string) error {
	config, err := Load()
	if err != nil {
		return err
	}

	switch key {
	case "build.mode":
		if value != ModeDefault && value != ModeSimple && value != ModeFull {
			return fmt.Errorf("mode must be default, simple or full")
		}
		config.Build.Mode = value
	case "build.vendor_name":
		config.Build.VendorName = value
	case "build.inventory_policy":
		if value != "deny" && value != "continue" {
			return fmt.Errorf("inventory policy must be deny or continue")
		}
		config.Build.InventoryPolicy = value
	case "build.default_qty":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid quantity: %s", value)
		}
		config.Build.DefaultQty = n
	case "build.bulk_qty_mode":
		config.Build.BulkQtyMode = value == "true"
	case "build.bulk_qty":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid quantity: %s", value)
		}
		config.Build.BulkQty = n
	case "build.default_compare_price":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid price: %s", value)
		}
		config.Build.DefaultComparePrice = f
	case "build.bulk_compare_price_mode":
		config.Build.BulkComparePriceMode = value == "true"
	case "build.bulk_compare_price":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid price: %s", value)
		}
		config.Build.BulkComparePrice = f
	case "build.enable_surcharge":
		config.Build.EnableSurcharge = value == "true"
	case "ai.api_key_env":
		config.AI.APIKeyEnv = value
	case "ai.model":
		config.AI.Model = value
	case "ai.rate_limit_ms":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid rate limit: %s", value)
		}
		config.AI.RateLimitMs = n
	case "output.output_dir":
		config.Output.OutputDir = value
	case "output.pretty":
		config.Output.Pretty = value == "true"
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return Save(config)
}

// Get retrieves a specific config value
func Get(key string) (string, error) {
	config, err := Load()
	if err != nil {
		return "", err
	}

	switch key {
	case "build.mode":
		return config.Build.Mode, nil
	case "build.vendor_name":
		return config.Build.VendorName, nil
	case "build.inventory_policy":
		return config.Build.InventoryPolicy, nil
	case "build.default_qty":
		return strconv.Itoa(config.Build.DefaultQty), nil
	case "build.bulk_qty_mode":
		return strconv.FormatBool(config.Build.BulkQtyMode), nil
	case "build.bulk_qty":
		return strconv.Itoa(config.Build.BulkQty), nil
	case "build.default_compare_price":
		return strconv.FormatFloat(config.Build.DefaultComparePrice, 'f', 2, 64), nil
	case "build.bulk_compare_price_mode":
		return strconv.FormatBool(config.Build.BulkComparePriceMode), nil
	case "build.bulk_compare_price":
		return strconv.FormatFloat(config.Build.BulkComparePrice, 'f', 2, 64), nil
	case "build.enable_surcharge":
		return strconv.FormatBool(config.Build.EnableSurcharge), nil
	case "ai.api_key_env":
		return config.AI.APIKeyEnv, nil
	case "ai.model":
		return config.AI.Model, nil
	case "ai.rate_limit_ms":
		return strconv.Itoa(config.AI.RateLimitMs), nil
	case "output.output_dir":
		return config.Output.OutputDir, nil
	case "output.pretty":
		return strconv.FormatBool(config.Output.Pretty), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}
