package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"database"`
}

type LocalCacheConfig struct {
	MaxSize int `mapstructure:"max_size"`
}

type CacheConfig struct {
	RedisConfig RedisConfig      `mapstructure:"redis"`
	LocalConfig LocalCacheConfig `mapstructure:"local"`
	TTLSeconds  int              `mapstructure:"ttl_seconds"`
}

type KubernetesConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	KubeConfig string `mapstructure:"kube_config"`
	Namespace  string `mapstructure:"namespace"`
	ConfigMap  string `mapstructure:"config_map"`
}

type Config struct {
	Port           int              `mapstructure:"port"`
	LogLevel       string           `mapstructure:"log_level"`
	NmapPath       string           `mapstructure:"nmap_path"`
	Binary         string           `mapstructure:"binary"`
	TimeoutSeconds int              `mapstructure:"timeout_seconds"`
	CacheConfig    CacheConfig      `mapstructure:"cache"`
	Kubernetes     KubernetesConfig `mapstructure:"kubernetes"`
	CertFile       string           `mapstructure:"tls_cert_file"`
	KeyFile        string           `mapstructure:"tls_key_file"`
}

var (
	Cfg Config
	mu  sync.RWMutex
)

// Get returns a snapshot of the current configuration.
func Get() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Cfg
}

// InitConfig loads the configuration into Cfg and watches the file for changes.
// A missing config file is not an error: defaults and environment still apply.
func InitConfig() error {
	configFileName := os.Getenv("CONFIG_FILE_NAME")
	if configFileName == "" {
		configFileName = "config"
	}
	configFilePath := os.Getenv("CONFIG_FILE_PATH")
	if configFilePath == "" {
		configFilePath = "./"
	}

	v, err := New(configFileName, configFilePath)
	if err != nil {
		return err
	}

	cfg, err := Unmarshal(v)
	if err != nil {
		return err
	}
	set(cfg)

	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			reload(v, e.Name)
		})
		v.WatchConfig()
	}
	return nil
}

// New builds a viper instance reading <name>.yaml from path, with
// environment overrides where "." in a key becomes "_".
func New(name, path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(name, ".yaml"))
	v.AddConfigPath(path)
	v.SetConfigType("yaml")
	// EnvKeyReplacer must be explicitly called before AutomaticEnv
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaultValues(v)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

func Unmarshal(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return cfg, nil
}

// reload keeps the previous configuration when the changed file does not decode.
func reload(v *viper.Viper, name string) {
	reloaded, err := Unmarshal(v)
	if err != nil {
		l := logging.Logger()
		l.Error().Msgf("config file %s changed but could not be decoded: %v", name, err)
		return
	}
	set(reloaded)
}

func set(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	Cfg = cfg
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("nmap_path", "")
	v.SetDefault("binary", "nmap")
	v.SetDefault("timeout_seconds", 15)
	v.SetDefault("cache.redis.address", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.database", 0)
	v.SetDefault("cache.local.max_size", 5000)
	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("kubernetes.enabled", false)
	v.SetDefault("kubernetes.kube_config", "")
	v.SetDefault("kubernetes.namespace", "default")
	v.SetDefault("kubernetes.config_map", "nmap-preflight")
	v.SetDefault("tls_cert_file", "")
	v.SetDefault("tls_key_file", "")
}
