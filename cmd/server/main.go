package main

import (
	"github.com/meridian-research/triad/internal/server"
	"github.com/meridian-research/triad/internal/util"
	"github.com/meridian-research/triad/pkg/logger"
	"github.com/meridian-research/triad/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
