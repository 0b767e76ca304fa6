package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"rating-dashboard/infrastructure/logger"

	"github.com/spf13/viper"
)

// DefaultRatingAPIBaseURL is the hosted Data Service.
const DefaultRatingAPIBaseURL = "https://nodejs-serverless-function-express-opal-omega.vercel.app/api"

type Config struct {
	App         App         `json:"app"`
	RatingAPI   RatingAPI   `json:"ratingApi"`
	Widget      Widget      `json:"widget"`
	Dashboard   Dashboard   `json:"dashboard"`
	RedisClient RedisClient `json:"redisClient"`
	Logger      Logger      `json:"logger"`
	CORS        CORS        `json:"cors"`
}

type App struct {
	Port        int    `json:"port"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
}

// RatingAPI points at the read-only Data Service.
type RatingAPI struct {
	BaseURL string `json:"baseUrl"`
	// Zero means no timeout.
	Timeout time.Duration `json:"timeout"`
}

// Widget locates the standalone script build and the directory it is
// served from.
type Widget struct {
	DistDir   string `json:"distDir"`
	PublicDir string `json:"publicDir"`
}

type Dashboard struct {
	TimeZone string `json:"timeZone"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Username string `json:"username"`
	DB       int    `json:"db"`
}

// Enabled reports whether a redis host was configured.
func (r RedisClient) Enabled() bool { return r.Host != "" }

// Addr returns host:port, defaulting the port to 6379.
func (r RedisClient) Addr() string {
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return fmt.Sprintf("%s:%s", r.Host, port)
}

type Logger struct {
	Level string `json:"level"`
}

type CORS struct {
	AllowOrigins []string `json:"allowOrigins"`
}

var C Config

func init() {
	LoadConfig()
	ApplyDefaults(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

// ApplyDefaults fills environment overrides and defaults into c.
func ApplyDefaults(c *Config) {
	initApp(c)
	initRatingAPI(c)
	initWidget(c)
	initRedis(c)
	c.Dashboard.TimeZone = getConfigValue(c.Dashboard.TimeZone, "DASHBOARD_TIMEZONE", "UTC")
	c.Logger.Level = getConfigValue(c.Logger.Level, "LOG_LEVEL", "")
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		c.CORS.AllowOrigins = splitList(v)
	}
}

func initApp(c *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	}
	if c.App.Port == 0 {
		c.App.Port = 10001
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			c.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			c.App.TLSEnabled = false
		}
	}
	if c.App.TLSCertFile == "" {
		c.App.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	}
	if c.App.TLSKeyFile == "" {
		c.App.TLSKeyFile = os.Getenv("TLS_KEY_FILE")
	}
	if c.App.TLSEnabled {
		logger.GetLogger().WithFields(map[string]interface{}{"cert": c.App.TLSCertFile, "key": c.App.TLSKeyFile}).Info("TLS enabled via configuration")
	}
}

func initRatingAPI(c *Config) {
	c.RatingAPI.BaseURL = getConfigValue(c.RatingAPI.BaseURL, "RATING_API_BASE_URL", DefaultRatingAPIBaseURL)
	if v := os.Getenv("RATING_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RatingAPI.Timeout = d
		} else {
			logger.GetLogger().WithField("error", err).Warn("Ignoring invalid RATING_API_TIMEOUT")
		}
	}
}

func initWidget(c *Config) {
	c.Widget.DistDir = getConfigValue(c.Widget.DistDir, "WIDGET_DIST_DIR", "dist")
	c.Widget.PublicDir = getConfigValue(c.Widget.PublicDir, "WIDGET_PUBLIC_DIR", "public")
}

func initRedis(c *Config) {
	c.RedisClient.Host = getConfigValue(c.RedisClient.Host, "REDIS_HOST", "")
	c.RedisClient.Port = getConfigValue(c.RedisClient.Port, "REDIS_PORT", "")
	c.RedisClient.Username = getConfigValue(c.RedisClient.Username, "REDIS_USERNAME", "")
	c.RedisClient.Password = getConfigValue(c.RedisClient.Password, "REDIS_PASSWORD", "")
}

// getConfigValue gets value from environment first, then config, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
