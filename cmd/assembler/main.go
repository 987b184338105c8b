// Package main provides the main entrypoint for the assembler.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/assembler"
	"go.flow.arcalot.io/assembler/config"
	"go.flow.arcalot.io/assembler/internal/builtin"
	"go.flow.arcalot.io/assembler/internal/tableprinter"
	"go.flow.arcalot.io/assembler/loadfile"
	"go.flow.arcalot.io/assembler/plugin"
	"gopkg.in/yaml.v3"
)

// These variables are filled using ldflags during the build process with Goreleaser.
// See https://goreleaser.com/cookbooks/using-main.version/
var (
	version = "development"
	commit  = "unknown"
	date    = "unknown"
)

// ExitCodeOK signals that the program terminated normally.
const ExitCodeOK = 0

// ExitCodeInvalidData signals that the program encountered an invalid configuration or plugin file.
const ExitCodeInvalidData = 1

// ExitCodeRunFailed indicates that the pipeline execution failed.
const ExitCodeRunFailed = 3

func main() {
	tempLogger := log.New(log.Config{
		Level:       log.LevelInfo,
		Destination: log.DestinationStdout,
		Stdout:      os.Stderr,
	})

	dir := "."
	configFile := ""
	printVersion := false
	list := false

	flag.BoolVar(&printVersion, "version", printVersion, "Print the assembler version and exit.")
	flag.BoolVar(&list, "list", list, "List the compiled-in task and container classes and exit.")
	flag.StringVar(
		&dir,
		"context",
		dir,
		"The directory relative paths in the configuration are resolved against.",
	)
	flag.StringVar(
		&configFile,
		"config",
		configFile,
		"The assembler configuration file to load, if any. Relative to the context directory.",
	)
	flag.Usage = func() {
		_, _ = os.Stderr.Write([]byte(`Usage: assembler [OPTIONS]

The assembler discovers tasks from the plugin files listed in the
configuration, instantiates them and runs the configured pipeline.

Options:

  -version            Print the assembler version and exit.

  -list               List the compiled-in task and container classes
                      and exit.

  -context DIRECTORY  The directory relative paths in the configuration
                      are resolved against. Defaults to the current
                      directory.

  -config FILENAME    The assembler configuration file to load, if any.
                      Relative to the context directory.
`))
	}
	flag.Parse()

	if printVersion {
		fmt.Printf(
			"Assembler\n"+
				"=========\n"+
				"Version: %s\n"+
				"Commit: %s\n"+
				"Date: %s\n",
			version, commit, date,
		)
		return
	}

	catalog := plugin.NewCatalog(builtin.Classes()...)
	if list {
		tableprinter.PrintClasses(os.Stdout, catalog.List(), tempLogger)
		return
	}

	fileCtx, err := loadfile.NewContext(dir)
	if err != nil {
		tempLogger.Errorf("Context path resolution failed %s (%v)", dir, err)
		flag.Usage()
		os.Exit(ExitCodeInvalidData)
	}

	var configData any = map[string]any{}
	if configFile != "" {
		configData, err = loadYamlFile(fileCtx, configFile)
		if err != nil {
			tempLogger.Errorf("Failed to load configuration file %s (%v)", configFile, err)
			flag.Usage()
			os.Exit(ExitCodeInvalidData)
		}
	}
	cfg, err := config.Load(configData)
	if err != nil {
		tempLogger.Errorf("Failed to load configuration file %s (%v)", configFile, err)
		flag.Usage()
		os.Exit(ExitCodeInvalidData)
	}
	cfg.ResolvePaths(fileCtx)

	// now we are ready to instantiate our main logger
	logConfig := cfg.Logging.LogConfig()
	logConfig.Stdout = os.Stderr
	logger := log.New(logConfig)

	manager, err := assembler.New(cfg, plugin.NewLoader(catalog), logger)
	if err != nil {
		logger.Errorf("Failed to initialize the assembly manager (%v)", err)
		os.Exit(ExitCodeInvalidData)
	}
	if err := manager.Prepare(); err != nil {
		logger.Errorf("Failed to prepare the pipeline (%v)", err)
		os.Exit(ExitCodeInvalidData)
	}

	os.Exit(run(manager, logger))
}

func run(manager assembler.AssemblyManager, logger log.Logger) int {
	ctx, cancel := context.WithCancel(context.Background())
	ctrlC := make(chan os.Signal, 2)
	signal.Notify(ctrlC, os.Interrupt)

	go handleOSInterrupt(ctrlC, cancel, logger)
	defer func() {
		close(ctrlC) // Ensure that the goroutine exits
		cancel()
	}()

	if err := manager.Run(ctx); err != nil {
		logger.Errorf("Pipeline execution failed (%v)", err)
		return ExitCodeRunFailed
	}
	return ExitCodeOK
}

func handleOSInterrupt(ctrlC chan os.Signal, cancel context.CancelFunc, logger log.Logger) {
	_, ok := <-ctrlC
	if !ok {
		return
	}
	logger.Infof("Requesting graceful shutdown, the pipeline stops after the current pass.")
	cancel()

	_, ok = <-ctrlC
	if !ok {
		return
	}
	logger.Warningf("Force exiting.")
	os.Exit(1)
}

func loadYamlFile(fileCtx loadfile.Context, configFile string) (any, error) {
	file, err := fileCtx.Load(configFile)
	if err != nil {
		return nil, err
	}
	var data any
	if err := yaml.Unmarshal(file.Content, &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}
