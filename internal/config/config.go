// Package config loads landsuit configuration from file and environment and
// initializes the global logger.
package config

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Paths      PathsConfig                   `yaml:"paths" mapstructure:"paths"`
	Pipeline   PipelineConfig                `yaml:"pipeline" mapstructure:"pipeline"`
	Store      StoreConfig                   `yaml:"store" mapstructure:"store"`
	Render     RenderConfig                  `yaml:"render" mapstructure:"render"`
	Log        LogConfig                     `yaml:"log" mapstructure:"log"`
	Thresholds map[string]map[string]float64 `yaml:"thresholds" mapstructure:"thresholds"`
}

// PathsConfig locates the input rasters and the output directory. Relative
// paths are resolved against DataRoot.
type PathsConfig struct {
	DataRoot  string            `yaml:"data_root" mapstructure:"data_root"`
	Reference string            `yaml:"reference" mapstructure:"reference"`
	Inputs    map[string]string `yaml:"inputs" mapstructure:"inputs"`
	OutputDir string            `yaml:"output_dir" mapstructure:"output_dir"`
	AOI       string            `yaml:"aoi" mapstructure:"aoi"`
}

// Resolve joins a configured path with the data root unless it is already
// absolute.
func (p PathsConfig) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.DataRoot, path)
}

// PipelineConfig configures the classification run.
type PipelineConfig struct {
	Crop        string `yaml:"crop" mapstructure:"crop"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
}

// StoreConfig configures the run ledger database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// RenderConfig configures PNG preview rendering.
type RenderConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	OutDir  string `yaml:"out_dir" mapstructure:"out_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LANDSUIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults: the avocado study layout, one input raster per factor.
	v.SetDefault("paths.data_root", ".")
	v.SetDefault("paths.reference", "Climate/Chirps.tif")
	v.SetDefault("paths.inputs.precipitation", "Climate/Chirps.tif")
	v.SetDefault("paths.inputs.tmax", "Climate/Tmax.tif")
	v.SetDefault("paths.inputs.tmin", "Climate/Tmin.tif")
	v.SetDefault("paths.inputs.slope", "Terrain/Slope.tif")
	v.SetDefault("paths.inputs.aspect", "Terrain/Aspect.tif")
	v.SetDefault("paths.inputs.ph", "Soil/MAR_T_PH_H2O_CLIP.tif")
	v.SetDefault("paths.output_dir", "Suitability")
	v.SetDefault("pipeline.crop", "avocado")
	v.SetDefault("pipeline.concurrency", 3)
	v.SetDefault("store.path", "landsuit.db")
	v.SetDefault("render.enabled", false)
	v.SetDefault("render.out_dir", "Suitability")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
