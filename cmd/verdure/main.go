package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/verdure/cmd/verdure/cli"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewPlanCommand())
	root.AddCommand(cli.NewMigrateCommand())
	root.AddCommand(cli.NewGenerateCommand())
	root.AddCommand(cli.NewExportCommand())
	root.AddCommand(cli.NewGardensCommand())
	root.AddCommand(cli.NewUserCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
