package main

import (
	"fmt"
	"os"

	"github.com/nsmops/zeeklook/pkg/cli"
	"github.com/nsmops/zeeklook/pkg/logging"
	"github.com/nsmops/zeeklook/pkg/types"
)

var version = "dev"

func main() {
	logging.InitConsoleStdErrLog()
	cliInstance := &types.CLI{}
	rootCmd := cli.NewRootCommand(cliInstance, version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
