package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/orgpulse/orgpulse/pkg/rbac"
)

const (
	DefaultConfigPath = "/etc/orgpulse/config"
	ConfigFileName    = "orgpulse.yml"
)

// Config holds all OrgPulse server settings
type Config struct {
	// SessionTokenTTL is the lifetime of session tokens in minutes
	SessionTokenTTL int `yaml:"session_token_ttl" json:"session_token_ttl"`

	// APIListLimitMax caps the limit parameter on listing requests
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// BcryptCost is the bcrypt work factor for password hashing
	BcryptCost int `yaml:"bcrypt_cost" json:"bcrypt_cost"`

	// AllowedOrigins is the CORS allow-list
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`

	// MicroclimateTTL is the default microclimate lifetime in minutes
	MicroclimateTTL int `yaml:"microclimate_ttl" json:"microclimate_ttl"`

	// ErrorReportEndpoint receives server error reports when set
	ErrorReportEndpoint string `yaml:"error_report_endpoint" json:"error_report_endpoint"`

	// TemplateLibraryPath is the directory holding survey template YAML files
	TemplateLibraryPath string `yaml:"template_library_path" json:"template_library_path"`

	// RegistrationRole is the role assigned to self-registered users
	RegistrationRole string `yaml:"registration_role" json:"registration_role"`

	// RegistrationOpen enables the public registration endpoint
	RegistrationOpen bool `yaml:"registration_open" json:"registration_open"`

	// AuditEnabled enables the audit event log
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		SessionTokenTTL:     480,
		APIListLimitMax:     1000,
		BcryptCost:          10,
		AllowedOrigins:      []string{},
		MicroclimateTTL:     1440,
		ErrorReportEndpoint: "",
		TemplateLibraryPath: "/etc/orgpulse/templates",
		RegistrationRole:    string(rbac.RoleEmployee),
		RegistrationOpen:    true,
		AuditEnabled:        true,
		sources:             make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("ORGPULSE_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"session_token_ttl", "api_list_limit_max", "bcrypt_cost",
		"allowed_origins", "microclimate_ttl", "error_report_endpoint",
		"template_library_path", "registration_role", "registration_open",
		"audit_enabled",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.SessionTokenTTL != 0 {
		c.SessionTokenTTL = file.SessionTokenTTL
		c.sources["session_token_ttl"] = "file"
	}
	if file.APIListLimitMax != 0 {
		c.APIListLimitMax = file.APIListLimitMax
		c.sources["api_list_limit_max"] = "file"
	}
	if file.BcryptCost != 0 {
		c.BcryptCost = file.BcryptCost
		c.sources["bcrypt_cost"] = "file"
	}
	if len(file.AllowedOrigins) > 0 {
		c.AllowedOrigins = file.AllowedOrigins
		c.sources["allowed_origins"] = "file"
	}
	if file.MicroclimateTTL != 0 {
		c.MicroclimateTTL = file.MicroclimateTTL
		c.sources["microclimate_ttl"] = "file"
	}
	if file.ErrorReportEndpoint != "" {
		c.ErrorReportEndpoint = file.ErrorReportEndpoint
		c.sources["error_report_endpoint"] = "file"
	}
	if file.TemplateLibraryPath != "" {
		c.TemplateLibraryPath = file.TemplateLibraryPath
		c.sources["template_library_path"] = "file"
	}
	if file.RegistrationRole != "" {
		c.RegistrationRole = file.RegistrationRole
		c.sources["registration_role"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("ORGPULSE_SESSION_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.SessionTokenTTL = i
			c.sources["session_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("ORGPULSE_API_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APIListLimitMax = i
			c.sources["api_list_limit_max"] = "environment"
		}
	}
	if val := os.Getenv("ORGPULSE_BCRYPT_COST"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.BcryptCost = i
			c.sources["bcrypt_cost"] = "environment"
		}
	}
	if val := os.Getenv("ORGPULSE_ALLOWED_ORIGINS"); val != "" {
		c.AllowedOrigins = splitAndTrim(val)
		c.sources["allowed_origins"] = "environment"
	}
	if val := os.Getenv("ORGPULSE_MICROCLIMATE_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.MicroclimateTTL = i
			c.sources["microclimate_ttl"] = "environment"
		}
	}
	if val := os.Getenv("ORGPULSE_ERROR_REPORT_ENDPOINT"); val != "" {
		c.ErrorReportEndpoint = val
		c.sources["error_report_endpoint"] = "environment"
	}
	if val := os.Getenv("ORGPULSE_TEMPLATE_LIBRARY_PATH"); val != "" {
		c.TemplateLibraryPath = val
		c.sources["template_library_path"] = "environment"
	}
	if val := os.Getenv("ORGPULSE_REGISTRATION_ROLE"); val != "" {
		c.RegistrationRole = val
		c.sources["registration_role"] = "environment"
	}
	if val := os.Getenv("ORGPULSE_REGISTRATION_OPEN"); val != "" {
		c.RegistrationOpen = val == "true" || val == "1"
		c.sources["registration_open"] = "environment"
	}
	if val := os.Getenv("ORGPULSE_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionTTL returns the session token TTL as a duration
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTokenTTL) * time.Minute
}

// MicroclimateLifetime returns the default microclimate TTL as a duration
func (c *Config) MicroclimateLifetime() time.Duration {
	return time.Duration(c.MicroclimateTTL) * time.Minute
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SessionTokenTTL <= 0 {
		return fmt.Errorf("session_token_ttl must be positive, got %d", c.SessionTokenTTL)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt_cost must be between 4 and 31, got %d", c.BcryptCost)
	}
	if !rbac.Valid(c.RegistrationRole) {
		return fmt.Errorf("invalid registration_role: %s", c.RegistrationRole)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "session_token_ttl", Value: strconv.Itoa(c.SessionTokenTTL), Source: c.Source("session_token_ttl")},
		{Name: "api_list_limit_max", Value: strconv.Itoa(c.APIListLimitMax), Source: c.Source("api_list_limit_max")},
		{Name: "bcrypt_cost", Value: strconv.Itoa(c.BcryptCost), Source: c.Source("bcrypt_cost")},
		{Name: "allowed_origins", Value: strings.Join(c.AllowedOrigins, ","), Source: c.Source("allowed_origins")},
		{Name: "microclimate_ttl", Value: strconv.Itoa(c.MicroclimateTTL), Source: c.Source("microclimate_ttl")},
		{Name: "error_report_endpoint", Value: c.ErrorReportEndpoint, Source: c.Source("error_report_endpoint")},
		{Name: "template_library_path", Value: c.TemplateLibraryPath, Source: c.Source("template_library_path")},
		{Name: "registration_role", Value: c.RegistrationRole, Source: c.Source("registration_role")},
		{Name: "registration_open", Value: strconv.FormatBool(c.RegistrationOpen), Source: c.Source("registration_open")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
