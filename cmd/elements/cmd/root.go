// Package cmd implements the elements CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (demo, describe, attr).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/go-drift/elements/pkg/config"
	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/logger"
	"github.com/go-drift/elements/pkg/metrics"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = &Command{
	Name:  "elements",
	Short: "elements - reactive custom elements for Go hosts",
	Long: `elements runs component classes as custom elements on a headless
document, prints their metadata and derives attribute names.

Use "elements <command> --help" for more information about a command.`,
	Usage: "elements [--config FILE] <command> [flags]",
}

// Commands registered with the CLI, in registration order.
var (
	commands    = make(map[string]*Command)
	subcommands []*Command
)

// stdout receives command output.
var stdout io.Writer = os.Stdout

// cfg is the configuration loaded by Execute.
var cfg = config.Default()

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	subcommands = append(subcommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func run(args []string) error {
	configPath := os.Getenv(config.EnvPrefix + "CONFIG")

	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp()
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "elements version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--config":
			if len(filteredArgs) > 0 {
				filteredArgs = append(filteredArgs, arg)
				continue
			}
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			configPath = args[i+1]
			i++
		default:
			if len(filteredArgs) == 0 && strings.HasPrefix(arg, "--config=") {
				configPath = strings.TrimPrefix(arg, "--config=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp()
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		printHelp()
		return fmt.Errorf("unknown command: %s", args[0])
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	errors.SetHandler(errors.Chain(&errors.LogHandler{Verbose: cfg.Log.Verbose}, metrics.ErrorCounter{}))
	zap.S().Debugw("command starting", "command", cmd.Name, "args", cmdArgs)

	return cmd.Run(cmdArgs)
}

func printHelp() {
	fmt.Fprintln(stdout, rootCmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range subcommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --config FILE        Load configuration from a YAML file")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Environment:")
	fmt.Fprintln(stdout, "  ELEMENTS_CONFIG      Configuration file (lower priority than --config)")
	fmt.Fprintln(stdout, "  ELEMENTS_<SECTION>__<KEY>  Override a configuration value")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  elements demo --duration 5s   Run the demo elements for five seconds")
	fmt.Fprintln(stdout, "  elements describe             Print demo class metadata as YAML")
	fmt.Fprintln(stdout, "  elements attr initialCount    Print the attribute of a property")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
