package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Configuration struct {
	Logs     LogsSettings     `mapstructure:"logs"`
	App      Application      `mapstructure:"app"`
	Database Database         `mapstructure:"database"`
	Queue    QueueConfig      `mapstructure:"queue"`
	Redis    Redis            `mapstructure:"redis"`
	Security SecuritySettings `mapstructure:"security"`
	Server   ServerSettings   `mapstructure:"server"`
	Cache    CacheConfig      `mapstructure:"cache"`
}

type LogsSettings struct {
	Level            string `mapstructure:"level"`
	Path             string `mapstructure:"log-path"`
	EnableJSONOutput bool   `mapstructure:"enable-json-output"`
}

type Application struct {
	Name     string `mapstructure:"name"`
	Timeout  int    `mapstructure:"timeout"`
	Version  string `mapstructure:"version"`
	HostLink string `mapstructure:"host-link"`
}

type Database struct {
	Url               string `mapstructure:"url"`
	DbName            string `mapstructure:"dbname"`
	UserCollection    string `mapstructure:"user-collection"`
	SessionCollection string `mapstructure:"session-collection"`
	AttemptCollection string `mapstructure:"attempt-collection"`
	Timeout           int    `mapstructure:"timeout"`
}

type QueueConfig struct {
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

type RabbitMQConfig struct {
	Url            string `mapstructure:"url"`
	Exchange       string `mapstructure:"exchange"`
	ExchangeType   string `mapstructure:"exchange-type"`
	RoutingKey     string `mapstructure:"routing-key"`
	ReconnectDelay int    `mapstructure:"reconnect-delay"`
	Timeout        int    `mapstructure:"timeout"`
	Durable        bool   `mapstructure:"durable"`
	AutoDelete     bool   `mapstructure:"auto-delete"`
	Internal       bool   `mapstructure:"internal"`
	NoWait         bool   `mapstructure:"no-wait"`
}

type Redis struct {
	Url      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
	Db       int    `mapstructure:"db"`
}

type SecuritySettings struct {
	JwtKey string         `mapstructure:"jwt-key"`
	Policy SecurityPolicy `mapstructure:"policy"`
}

// SecurityPolicy holds the risk assessment thresholds. The defaults match
// long-standing production behavior; treat them as tunable policy, not law.
type SecurityPolicy struct {
	AssessmentWindowDays     int `mapstructure:"assessment-window-days"`
	FailedAttemptsHigh       int `mapstructure:"failed-attempts-high"`
	FailedAttemptsMedium     int `mapstructure:"failed-attempts-medium"`
	ActiveSessionsMedium     int `mapstructure:"active-sessions-medium"`
	MediumFindingsForHigh    int `mapstructure:"medium-findings-for-high"`
	MaxAttemptsPerAssessment int `mapstructure:"max-attempts-per-assessment"`
}

type ServerSettings struct {
	Port         string `mapstructure:"port"`
	Mode         string `mapstructure:"mode"`
	ReadTimeout  int    `mapstructure:"read-timeout"`
	WriteTimeout int    `mapstructure:"write-timeout"`
	IdleTimeout  int    `mapstructure:"idle-timeout"`
}

type CacheConfig struct {
	SessionExpirationMinutes int    `mapstructure:"session-expiration-minutes"`
	SessionKeyPrefix         string `mapstructure:"session-key-prefix"`
}

func Load() *Configuration {
	cfg := read()
	logrus.Info("Configuration loaded")

	// Override with environment variables
	mongoUri := os.Getenv("MONGODB_URL")
	if mongoUri != "" {
		cfg.Database.Url = mongoUri
	}

	dbName := os.Getenv("DB_NAME")
	if dbName != "" {
		cfg.Database.DbName = dbName
	}

	redisUrl := os.Getenv("REDIS_URL")
	if redisUrl != "" {
		cfg.Redis.Url = redisUrl
	}

	redisDB := os.Getenv("REDIS_DB")
	if redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			cfg.Redis.Db = db
		}
	}

	rabbitmqUrl := os.Getenv("RABBITMQ_URL")
	if rabbitmqUrl != "" {
		cfg.Queue.RabbitMQ.Url = rabbitmqUrl
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey != "" {
		cfg.Security.JwtKey = jwtKey
	}

	applyPolicyDefaults(&cfg.Security.Policy)

	return cfg
}

func applyPolicyDefaults(p *SecurityPolicy) {
	if p.AssessmentWindowDays <= 0 {
		p.AssessmentWindowDays = 30
	}
	if p.FailedAttemptsHigh <= 0 {
		p.FailedAttemptsHigh = 5
	}
	if p.FailedAttemptsMedium <= 0 {
		p.FailedAttemptsMedium = 3
	}
	if p.ActiveSessionsMedium <= 0 {
		p.ActiveSessionsMedium = 5
	}
	if p.MediumFindingsForHigh <= 0 {
		p.MediumFindingsForHigh = 2
	}
	if p.MaxAttemptsPerAssessment <= 0 {
		p.MaxAttemptsPerAssessment = 1000
	}
}

func read() *Configuration {
	viper.SetConfigFile("src/internal/config/cfg.yml")
	viper.AutomaticEnv()
	viper.SetConfigType("yml")

	var config Configuration

	err := viper.ReadInConfig()
	if err != nil {
		logrus.Panicf("Error reading config file, %s", err)
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		logrus.Panicf("Error unmarshalling config file, %s", err)
	}

	return &config
}
