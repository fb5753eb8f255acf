package handler

import (
	"net/http"
	"github.com/yar64/diplom-equipment-rental-sub001/config"
	"github.com/yar64/diplom-equipment-rental-sub001/di"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	handler := di.InitializeService()
	handler.ServeHTTP(w, r)
}
