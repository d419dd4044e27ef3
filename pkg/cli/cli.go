package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nsmops/zeeklook/pkg/config"
	"github.com/nsmops/zeeklook/pkg/logging"
	"github.com/nsmops/zeeklook/pkg/tui"
	"github.com/nsmops/zeeklook/pkg/types"
)

func NewRootCommand(cli *types.CLI, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zeeklook",
		Short: "Zeeklook - interactive Zeek log browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunRootCommand(cli, version, "")
		},
	}

	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Start in the log browser (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunRootCommand(cli, version, tui.CmdLogs)
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Start in the traffic overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunRootCommand(cli, version, tui.CmdStats)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cli.ConfigPath, "config", "", "Path to config file (default: ~/.zeeklook/zeeklook.yml)")
	rootCmd.PersistentFlags().StringVar(&cli.LogPath, "log", "", "Path to log file (default: ~/.zeeklook/zeeklook.log)")
	rootCmd.PersistentFlags().StringVar(&cli.ConnectTo, "connect", "", "Context name to use from config")
	rootCmd.PersistentFlags().StringVar(&cli.URL, "url", "", "Appliance URL, overrides config contexts")
	rootCmd.PersistentFlags().StringVar(&cli.LogType, "type", "", "Log type to open first (conn, dns, http, ssl, files, notice, weird)")
	rootCmd.PersistentFlags().IntVar(&cli.Hours, "hours", 0, "Lookback window in hours")
	rootCmd.PersistentFlags().StringVar(&cli.Since, "since", "", "Lookback start time (in any parsable format, see https://github.com/araddon/dateparse)")

	// Add subcommands
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(statsCmd)

	return rootCmd
}

// RunRootCommand initializes logging and config, resolves the appliance
// context and starts the TUI, opening the view named by initialCommand.
func RunRootCommand(cliInstance *types.CLI, version string, initialCommand string) error {
	if initLogErr := logging.InitLogFile(cliInstance, version); initLogErr != nil {
		fmt.Println(initLogErr.Error())
		log.Fatal().Stack().Err(initLogErr).Msg("failed to initialize logger")
	}

	configPath := cliInstance.ConfigPath
	if configPath == "" {
		var pathErr error
		configPath, pathErr = config.DefaultPath()
		if pathErr != nil {
			return pathErr
		}
	}

	cfg, configErr := config.Load(configPath)
	if configErr != nil {
		fmt.Println(configErr.Error())
		log.Fatal().Stack().Err(configErr).Send()
	}

	active, resolveErr := resolveContext(cfg, cliInstance)
	if resolveErr != nil {
		return resolveErr
	}

	app := tui.NewApp(cfg, active, cliInstance, version)
	if initialCommand != "" {
		app.SetInitialCommand(initialCommand)
	}

	if runErr := app.Run(); runErr != nil {
		fmt.Println(runErr.Error())
		log.Fatal().Stack().Err(runErr).Send()
	}
	return nil
}

// resolveContext picks the appliance to talk to: --url wins, then --connect,
// then the first configured context.
func resolveContext(cfg *config.Config, cliInstance *types.CLI) (config.Context, error) {
	if cliInstance.URL != "" {
		return config.Context{
			Name: "cli",
			URL:  strings.TrimRight(cliInstance.URL, "/"),
		}, nil
	}

	active, found := cfg.FindContext(cliInstance.ConnectTo)
	if !found {
		if cliInstance.ConnectTo != "" {
			return config.Context{}, errors.Errorf("context %q not found in config", cliInstance.ConnectTo)
		}
		return config.Context{}, errors.New("no appliance configured: pass --url or add contexts to the config file")
	}
	return active, nil
}
