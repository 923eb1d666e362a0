package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Lednacek-Dev/converter/internal/app"
)

// @title CNB Rates Cache API
// @version 1.0
// @description Local cache of CNB daily exchange rates with on-demand backfill.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application terminated")
		os.Exit(1)
	}
}
