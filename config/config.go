// config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Arvados       ArvadosConfiguration
	Explorer      ExplorerConfiguration
	Neo4j         DatabaseConfiguration
	Redis         RedisConfiguration
	Elasticsearch ElasticsearchConfiguration
	RateLimit     RateLimitConfiguration
	Log           LogConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// ArvadosConfiguration describes the local cluster session and any remote
// clusters used by federated search.
type ArvadosConfiguration struct {
	ClusterID         string
	APIHost           string
	Token             string
	Insecure          bool
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
	Remotes           map[string]RemoteConfiguration
}

// RemoteConfiguration is one federated cluster.
type RemoteConfiguration struct {
	APIHost  string
	Token    string
	Insecure bool
}

// ExplorerConfiguration holds data explorer defaults
type ExplorerConfiguration struct {
	RowsPerPage        int
	RowsPerPageOptions []int
	EnrichmentTimeout  time.Duration
}

// DatabaseConfiguration stores data for database connection
type DatabaseConfiguration struct {
	Enabled  bool
	URI      string
	Username string
	Password string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Enabled         bool
	Addr            string
	DefaultCacheTTL string
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	Enabled bool
	URL     string
	Index   string
}

type RateLimitConfiguration struct {
	Requests int
	Duration time.Duration
}

type LogConfiguration struct {
	Dir string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name

	viper.AutomaticEnv() // read in environment variables that match

	SetDefaults()

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// SetDefaults registers the default for every key the service reads.
func SetDefaults() {
	viper.SetDefault("server.port", "8080")

	viper.SetDefault("arvados.clusterId", "")
	viper.SetDefault("arvados.apiHost", "localhost:8000")
	viper.SetDefault("arvados.token", "")
	viper.SetDefault("arvados.insecure", false)
	viper.SetDefault("arvados.requestsPerSecond", 20.0)
	viper.SetDefault("arvados.burst", 10)
	viper.SetDefault("arvados.timeout", "30s")

	viper.SetDefault("explorer.rowsPerPage", 50)
	viper.SetDefault("explorer.rowsPerPageOptions", []int{10, 20, 50, 100, 200, 500})
	viper.SetDefault("explorer.enrichmentTimeout", "30s")

	viper.SetDefault("neo4j.enabled", false)
	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.defaultCacheTTL", "10m")
	viper.SetDefault("elasticsearch.enabled", false)
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("elasticsearch.index", "panel-loads")

	viper.SetDefault("rateLimit.requests", 100)
	viper.SetDefault("rateLimit.duration", "1m")

	viper.SetDefault("log.dir", "logging")
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 retrieves a float64 value from the configuration
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
