package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-app-kernel/internal/cli"
	"github.com/MKhiriev/go-app-kernel/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("appkernel")

	root := cli.NewRootCommand(cli.Options{
		Logger: log,
		Build: cli.BuildInfo{
			Version: buildVersion,
			Date:    buildDate,
			Commit:  buildCommit,
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
