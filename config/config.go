package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	JWT struct {
		Secret string
	}
	Game struct {
		Word    string
		RoomTTL int // seconds before an idle room expires in redis
	}
}

var C Config

func Load() {
	viper.SetConfigFile("config/config.yaml")
	viper.SetDefault("game.word", "GOLF")
	viper.SetDefault("game.roomttl", 86400)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	if err := viper.Unmarshal(&C); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
}
