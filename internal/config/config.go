package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	cfg  *Config
	mu   sync.RWMutex
	once sync.Once
)

// Config holds the mock platform server configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Simulate SimulateConfig `mapstructure:"simulate"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// SimulateConfig controls the artificial latencies the mock SPA uses to
// imitate network round-trips. All values are milliseconds and are injected
// into the rendered page, so the browser-side JS honors them without a rebuild.
type SimulateConfig struct {
	LoginDelayMS    int `mapstructure:"login_delay_ms"`
	JoinDelayMS     int `mapstructure:"join_delay_ms"`
	LoadingHideMS   int `mapstructure:"loading_hide_ms"`
	StartRevealMS   int `mapstructure:"start_reveal_ms"`
	RedirectDelayMS int `mapstructure:"redirect_delay_ms"`
}

// Load initializes the configuration with hot reload support
func Load(configPath string) error {
	var err error
	once.Do(func() {
		v := viper.New()

		v.SetConfigType("yaml")
		v.SetConfigName("config")
		v.AddConfigPath(configPath)

		setDefaults(v)

		if readErr := v.ReadInConfig(); readErr != nil {
			// It's OK if config.yaml doesn't exist; defaults + env cover everything
			if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
				err = fmt.Errorf("failed to read config: %w", readErr)
				return
			}
		}

		// Environment variable overrides
		v.SetEnvPrefix("CLASSAVO")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		newCfg := &Config{}
		if err = v.Unmarshal(newCfg); err != nil {
			err = fmt.Errorf("failed to unmarshal config: %w", err)
			return
		}
		cfg = newCfg

		// Watch for config changes
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			fmt.Printf("Config file changed: %s\n", e.Name)
			reloaded := &Config{}
			if reloadErr := v.Unmarshal(reloaded); reloadErr != nil {
				fmt.Printf("Failed to reload config: %v\n", reloadErr)
				return
			}
			mu.Lock()
			cfg = reloaded
			mu.Unlock()
			fmt.Println("Configuration reloaded successfully")
		})
	})

	return err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "classavo-mock")
	v.SetDefault("app.env", "development")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("simulate.login_delay_ms", 800)
	v.SetDefault("simulate.join_delay_ms", 800)
	v.SetDefault("simulate.loading_hide_ms", 1200)
	v.SetDefault("simulate.start_reveal_ms", 1500)
	v.SetDefault("simulate.redirect_delay_ms", 600)
}

// Get returns the current configuration (thread-safe)
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// LoadFromFile loads configuration from a specific file (useful for testing)
func LoadFromFile(configFile string) error {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	return nil
}

// GetServerAddr returns the server listen address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction returns true if running in production mode
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// LoadingBudget returns how long a client may legitimately stay in the
// loading state before the dashboard must be interactive.
func (c *SimulateConfig) LoadingBudget() time.Duration {
	ms := c.LoadingHideMS
	if c.StartRevealMS > ms {
		ms = c.StartRevealMS
	}
	return time.Duration(ms) * time.Millisecond
}
