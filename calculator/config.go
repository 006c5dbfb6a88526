package calculator

import (
	"runtime"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// DefaultConfigPath is where the CLI looks for config.ini when no --config is given.
const DefaultConfigPath = "conf/config.ini"

type Config struct {
	// [server]
	Addr string

	// [calculator]
	Workers     int
	Points      int
	MaxResidual float64

	// [log]
	LogLevel string
}

// LoadConfig reads path, falling back to defaults for a missing file or key.
func LoadConfig(path string) (Config, error) {
	file, err := ini.LooseLoad(path)
	if err != nil {
		return Config{}, err
	}
	return loadCfg(file), nil
}

// DefaultConfig is the configuration of an empty config.ini.
func DefaultConfig() Config {
	return loadCfg(ini.Empty())
}

func loadCfg(file *ini.File) Config {
	cfg := Config{
		Addr:        file.Section("server").Key("Addr").MustString(":9000"),
		Workers:     file.Section("calculator").Key("Workers").MustInt(runtime.NumCPU()),
		Points:      file.Section("calculator").Key("Points").MustInt(1000),
		MaxResidual: file.Section("calculator").Key("MaxResidual").MustFloat64(1e5),
		LogLevel:    file.Section("log").Key("Level").MustString("info"),
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg
}

// ApplyLogLevel sets the logrus level from cfg, keeping the current one on a bad name.
func (cfg Config) ApplyLogLevel() {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("配置文件日志级别无效，使用默认级别")
		return
	}
	log.SetLevel(level)
}
