package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Joseda-hg/tasker/internal/commands"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	app := &commands.App{Log: log}
	defer app.Close()

	if err := commands.NewRootCmd(app).Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
