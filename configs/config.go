package configs

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"weather-etl/internal/domain/entity"
	"weather-etl/internal/domain/usecase/etl"
	"weather-etl/pkg/resource"
)

//go:embed application.yml
var defaultProperties []byte

const (
	StorageNone = ""
	StorageGCS  = "gcs"
	StorageS3   = "s3"
)

type Config struct {
	ApplicationName string
	Weather         WeatherConfig
	Locations       []entity.Location
	ETL             ETLConfig
	Storage         StorageConfig
	Cloud           CloudConfig
	DB              DBConfig
	Redis           RedisConfig
	Lock            LockConfig
	Notify          NotifyConfig
	Server          ServerConfig
	Schedule        ScheduleConfig
}

type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type ETLConfig struct {
	OutputPath      string
	MalformedPolicy etl.MalformedPolicy
	NoDataStatus    int
	Compression     string
}

type StorageConfig struct {
	Provider string
	Bucket   string
	Prefix   string
}

type CloudConfig struct {
	AWSRegion          string
	AWSEndpoint        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	GCPCredentialsFile string
	GCSEndpoint        string
}

type DBConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Username     string
	Password     string
	Database     string
	Schema       string
	SSLMode      string
	BatchSize    int
	MaxOpenConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	Database int
}

type LockConfig struct {
	Namespace string
	Key       string
	TTL       time.Duration
}

type NotifyConfig struct {
	Enabled bool
	Queue   string
}

type ServerConfig struct {
	Port        string
	ContextPath string
}

type ScheduleConfig struct {
	Enabled bool
	Cron    string
}

// Load reads an optional .env file, then the properties at path. An empty path falls back to
// PROPERTIES_FILE_PATH, then to the properties embedded in the binary.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("fail to read .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("PROPERTIES_FILE_PATH")
	}

	var err error
	if path != "" {
		err = resource.Init(path)
	} else {
		err = resource.InitFromBytes(defaultProperties)
	}
	if err != nil {
		return nil, err
	}

	return fromProperties()
}

func fromProperties() (*Config, error) {
	policy, err := etl.ParseMalformedPolicy(resource.GetString("app.etl.malformed-policy"))
	if err != nil {
		return nil, err
	}

	locations, err := loadLocations()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ApplicationName: resource.GetString("app.name"),
		Weather: WeatherConfig{
			BaseURL: resource.GetString("app.weather.base-url"),
			APIKey:  resource.GetString("app.weather.api-key"),
			Timeout: resource.GetDuration("app.weather.timeout"),
		},
		Locations: locations,
		ETL: ETLConfig{
			OutputPath:      resource.GetString("app.etl.output-path"),
			MalformedPolicy: policy,
			NoDataStatus:    resource.GetInt("app.etl.no-data-status"),
			Compression:     resource.GetString("app.etl.compression"),
		},
		Storage: StorageConfig{
			Provider: strings.ToLower(resource.GetString("app.storage.provider")),
			Bucket:   resource.GetString("app.storage.bucket"),
			Prefix:   resource.GetString("app.storage.prefix"),
		},
		Cloud: CloudConfig{
			AWSRegion:          resource.GetString("app.cloud.aws-region"),
			AWSEndpoint:        resource.GetString("app.cloud.aws-endpoint"),
			AWSAccessKeyID:     resource.GetString("app.cloud.aws-access-key-id"),
			AWSSecretAccessKey: resource.GetString("app.cloud.aws-secret-access-key"),
			GCPCredentialsFile: resource.GetString("app.cloud.gcp-credentials-file"),
			GCSEndpoint:        resource.GetString("app.cloud.gcs-endpoint"),
		},
		DB: DBConfig{
			Enabled:      resource.GetBool("app.db.enabled"),
			Host:         resource.GetString("app.db.host"),
			Port:         resource.GetInt("app.db.port"),
			Username:     resource.GetString("app.db.username"),
			Password:     resource.GetString("app.db.password"),
			Database:     resource.GetString("app.db.database"),
			Schema:       resource.GetString("app.db.schema"),
			SSLMode:      resource.GetString("app.db.ssl-mode"),
			BatchSize:    resource.GetInt("app.db.batch-size"),
			MaxOpenConns: resource.GetInt("app.db.max-open-conns"),
			AutoMigrate:  resource.GetBool("app.db.auto-migrate"),
		},
		Redis: RedisConfig{
			Enabled:  resource.GetBool("app.redis.enabled"),
			Host:     resource.GetString("app.redis.host"),
			Port:     resource.GetInt("app.redis.port"),
			Password: resource.GetString("app.redis.password"),
			Database: resource.GetInt("app.redis.database"),
		},
		Lock: LockConfig{
			Namespace: resource.GetString("app.lock.namespace"),
			Key:       resource.GetString("app.lock.key"),
			TTL:       resource.GetDuration("app.lock.ttl"),
		},
		Notify: NotifyConfig{
			Enabled: resource.GetBool("app.notify.enabled"),
			Queue:   resource.GetString("app.notify.queue"),
		},
		Server: ServerConfig{
			Port:        resource.GetString("app.server.port"),
			ContextPath: resource.GetString("app.server.context-path"),
		},
		Schedule: ScheduleConfig{
			Enabled: resource.GetBool("app.schedule.enabled"),
			Cron:    resource.GetString("app.schedule.cron"),
		},
	}

	if cfg.ETL.NoDataStatus == 0 {
		cfg.ETL.NoDataStatus = http.StatusOK
	}
	if cfg.Weather.Timeout <= 0 {
		cfg.Weather.Timeout = 10 * time.Second
	}

	return cfg, nil
}

func loadLocations() ([]entity.Location, error) {
	if override := resource.GetString("app.locations-override"); strings.TrimSpace(override) != "" {
		return ParseLocations(override)
	}

	var locations []entity.Location
	if err := resource.UnmarshalKey("app.locations", &locations); err != nil {
		return nil, fmt.Errorf("fail to read app.locations: %w", err)
	}
	for i := range locations {
		locations[i].Country = strings.ToUpper(strings.TrimSpace(locations[i].Country))
	}
	return locations, nil
}

// ParseLocations reads "City,CC;City,CC". The country code is optional.
func ParseLocations(value string) ([]entity.Location, error) {
	var locations []entity.Location
	for _, item := range strings.Split(value, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		city, country, _ := strings.Cut(item, ",")
		city = strings.TrimSpace(city)
		if city == "" {
			return nil, fmt.Errorf("invalid location %q", item)
		}
		locations = append(locations, entity.Location{City: city, Country: strings.ToUpper(strings.TrimSpace(country))})
	}
	return locations, nil
}

// validCountry accepts an empty code or two upper case letters, the width of the warehouse column
func validCountry(code string) bool {
	if code == "" {
		return true
	}
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Validate rejects a configuration the pipeline cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Weather.APIKey == "" {
		errs = append(errs, errors.New("app.weather.api-key is required (OPENWEATHER_API_KEY)"))
	}
	if c.Weather.BaseURL == "" {
		errs = append(errs, errors.New("app.weather.base-url is required"))
	}
	if len(c.Locations) == 0 {
		errs = append(errs, errors.New("at least one location is required"))
	}
	for _, location := range c.Locations {
		if !validCountry(location.Country) {
			errs = append(errs, fmt.Errorf("location %s: country %q is not a two letter ISO code", location.City, location.Country))
		}
	}
	if c.ETL.OutputPath == "" {
		errs = append(errs, errors.New("app.etl.output-path is required"))
	}
	if c.ETL.NoDataStatus < 100 || c.ETL.NoDataStatus > 599 {
		errs = append(errs, fmt.Errorf("app.etl.no-data-status %d is not an http status", c.ETL.NoDataStatus))
	}
	switch c.Storage.Provider {
	case StorageNone:
	case StorageGCS, StorageS3:
		if c.Storage.Bucket == "" {
			errs = append(errs, fmt.Errorf("app.storage.bucket is required for provider %s", c.Storage.Provider))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage provider %q, expected gcs or s3", c.Storage.Provider))
	}
	if c.Notify.Enabled && c.Notify.Queue == "" {
		errs = append(errs, errors.New("app.notify.queue is required when notifications are enabled"))
	}
	if c.Schedule.Enabled && c.Schedule.Cron == "" {
		errs = append(errs, errors.New("app.schedule.cron is required when the schedule is enabled"))
	}
	return errors.Join(errs...)
}
