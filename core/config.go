package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *viper.Viper

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("debug", true)
	Conf.SetDefault("appName", "Aula")
	Conf.SetDefault("secretKey", "dmx7#t3&0y)a1^sk9+qe5$wgz8(h!u2*c4(#bv6n^_cpjr0fm")
	Conf.SetDefault("defaultFromEmail", "noreply@localhost")
	Conf.SetDefault("frontendBaseURL", "http://localhost:5173")
	Conf.SetDefault("sessionTokenDelta", 7*24*time.Hour)
	Conf.SetDefault("defaultCourseThumbnail", "https://placehold.co/600x400")
	Conf.SetDefault("localStorePath", "") // empty: file under the user config dir

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case strings.ToUpper("TEST"):
		Conf.SetDefault("testMode", true)
	}
	Conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	Conf.AutomaticEnv()
}
