package main

import (
	"github.com/yar64/diplom-equipment-rental-sub001/config"
	"github.com/yar64/diplom-equipment-rental-sub001/di"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
