package simple

import (
	"github.com/relaykit/relay/core/logger"
	"github.com/relaykit/relay/core/server"
)

type Config struct {
	Log    logger.Config
	Server server.Config

	AppName string `env:"APP_NAME" envDefault:"relay"`
	Env     string `env:"APP_ENV" envDefault:"development"`
}
