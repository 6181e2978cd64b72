package configs

import (
	"log"
	"sync"

	"github.com/spf13/viper"
)

var (
	config *Config
	once   sync.Once
)

type Config struct {
	Viper *viper.Viper
}

func GetConfig() *Config {
	once.Do(func() {
		config = &Config{
			Viper: viper.New(),
		}
		config.initialize()
	})
	return config
}

func (c *Config) initialize() {
	c.Viper.SetConfigName("config")
	c.Viper.SetConfigType("yaml")
	c.Viper.AddConfigPath(".")
	c.Viper.AddConfigPath("./configs")
	c.Viper.AutomaticEnv()

	c.setDefaults()

	if err := c.Viper.ReadInConfig(); err != nil {
		log.Printf("No config file found, using defaults and environment: %v", err)
	}
}

func (c *Config) setDefaults() {
	c.Viper.SetDefault("server.address", ":8000")
	c.Viper.SetDefault("server.tls_cert", "")
	c.Viper.SetDefault("server.tls_key", "")

	c.Viper.SetDefault("database.host", "localhost")
	c.Viper.SetDefault("database.port", 5432)
	c.Viper.SetDefault("database.user", "postgres")
	c.Viper.SetDefault("database.password", "postgres")
	c.Viper.SetDefault("database.name", "chat_stream")
	c.Viper.SetDefault("database.ssl", "disable")
	c.Viper.SetDefault("database.timezone", "UTC")

	c.Viper.SetDefault("redis.address", "localhost:6379")

	c.Viper.SetDefault("jwt.expiration_time", 86400)

	c.Viper.SetDefault("chat.history_limit", 50)
}
