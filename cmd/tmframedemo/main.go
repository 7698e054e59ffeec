package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ccsds-go/tmframe/cmd/tmframedemo/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("tmframedemo exited with error")
		os.Exit(1)
	}
}
