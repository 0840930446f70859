package main

import (
	"medreg/config"
	"medreg/di"
	_ "medreg/docs"
	"medreg/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
