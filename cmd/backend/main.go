package main

import (
	"context"

	"custody/internal/api"

	"github.com/sirupsen/logrus"
)

// @title Custody Terms API
// @version 1.0
// @description Equipment custody terms: drafting, electronic signature and signed PDF documents.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logrus.Info("App start")
	if err := api.StartServer(context.Background()); err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("App terminated")
}
