package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	if err := NewRootCmd(log).Execute(); err != nil {
		os.Exit(1)
	}
}
