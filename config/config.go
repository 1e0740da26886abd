package config

import (
	"errors"
	"path/filepath"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. INVOICEGEN_OUTPUT_DIR.
const EnvPrefix = "INVOICEGEN"

// Configuration keys, shared by viper defaults, flag bindings and env lookup.
const (
	KeyBaseDir      = "base_dir"
	KeyInputGlob    = "input_glob"
	KeyOutputDir    = "output_dir"
	KeyLogoPath     = "logo_path"
	KeyCompanyName  = "company_name"
	KeySheet        = "sheet"
	KeyHeaderRow    = "header_row"
	KeyWorkers      = "workers"
	KeyMaxFileBytes = "max_file_bytes"
	KeyVerbose      = "verbose"
)

const (
	// DefaultMaxFileBytes is the default maximum accepted spreadsheet size (50 MiB).
	DefaultMaxFileBytes int64 = 50 << 20

	DefaultInputGlob   = "Excel_Files/*.xlsx"
	DefaultOutputDir   = "PDF_Invoices"
	DefaultLogoPath    = "assets/logo.png"
	DefaultCompanyName = "AESOPS Solutions"

	configName = "invoicegen"
)

// Config holds runtime configuration.
type Config struct {
	// BaseDir anchors every relative path below.
	BaseDir     string
	InputGlob   string
	OutputDir   string
	LogoPath    string
	CompanyName string
	// Sheet names the worksheet to read; empty means the first sheet.
	Sheet            string
	HeaderRow        bool
	Workers          int
	MaxFileSizeBytes int64
	Verbose          bool
}

// MaxFileSizeMB returns the configured limit in whole megabytes.
func (c *Config) MaxFileSizeMB() int64 {
	return c.MaxFileSizeBytes >> 20
}

// Resolve anchors a relative path at BaseDir. Absolute paths are returned
// unchanged.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// New returns a viper instance carrying the defaults and environment
// overrides.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBaseDir, ".")
	v.SetDefault(KeyInputGlob, DefaultInputGlob)
	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyLogoPath, DefaultLogoPath)
	v.SetDefault(KeyCompanyName, DefaultCompanyName)
	v.SetDefault(KeySheet, "")
	v.SetDefault(KeyHeaderRow, true)
	v.SetDefault(KeyWorkers, 1)
	v.SetDefault(KeyMaxFileBytes, DefaultMaxFileBytes)
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// ReadInConfig loads cfgFile, or ./invoicegen.yaml when cfgFile is empty.
// A missing default file is not an error. It returns the file used, if any.
func ReadInConfig(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", err
	}
	return v.ConfigFileUsed(), nil
}

// Load builds a Config from v, falling back to defaults for missing or
// invalid values.
func Load(v *viper.Viper) *Config {
	cfg := &Config{
		BaseDir:          v.GetString(KeyBaseDir),
		InputGlob:        v.GetString(KeyInputGlob),
		OutputDir:        v.GetString(KeyOutputDir),
		LogoPath:         v.GetString(KeyLogoPath),
		CompanyName:      v.GetString(KeyCompanyName),
		Sheet:            v.GetString(KeySheet),
		HeaderRow:        v.GetBool(KeyHeaderRow),
		Workers:          v.GetInt(KeyWorkers),
		MaxFileSizeBytes: v.GetInt64(KeyMaxFileBytes),
		Verbose:          v.GetBool(KeyVerbose),
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
	if cfg.InputGlob == "" {
		cfg.InputGlob = DefaultInputGlob
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.LogoPath == "" {
		cfg.LogoPath = DefaultLogoPath
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxFileSizeBytes <= 0 {
		cfg.MaxFileSizeBytes = DefaultMaxFileBytes
	}
	return cfg
}
