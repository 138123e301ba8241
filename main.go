package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/storyq/storyq/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
