// Copyright 2025 The Mapsearch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the map annotation search server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

Mapsearch indexes the hashtags written in node and edge annotations, and the
words of node titles, of a map graph document. It offers autocomplete
suggestions while a query is typed and resolves submitted queries to the ids
of matching nodes and edges. It can operate as a MessagePack IPC server for
integration with a map editor, or as a CLI application for testing and
debugging.

# Usage

Serve a graph document with default settings:

	mapsearch -graph world.json

Enable debug mode and rebuild whenever the document is saved:

	mapsearch -graph world.yaml -watch -d

Run in CLI mode for interactive testing:

	mapsearch -graph world.toml -c -limit 10

Graph documents hold a list of nodes and a list of edges. Each entity carries
an id and either a single "note" or a list of "notes"; nodes also carry a
title. JSON, YAML and TOML are accepted, chosen by file extension.

# Configuration

Runtime configuration is managed through a TOML file:

	[server]
	max_limit = 64
	default_limit = 8
	max_input = 200

	[index]
	extra_stop_words = ["ye"]

	[cli]
	default_limit = 10

	[watch]
	enabled = false
	debounce_ms = 150

	[log]
	format = "text"

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Logs go to stderr.

	{"id": "s1", "op": "suggest", "q": "#my", "l": 5}
	{"id": "s1", "s": [{"w": "#mystery", "r": 1}, {"w": "#myth", "r": 2}], "c": 2, "t": 31}

	{"id": "r1", "op": "resolve", "q": "old ridge"}
	{"id": "r1", "nodes": ["n2"], "edges": [], "t": 12}

The reload, stats and health ops manage a running server.

# Command Line Flags

	-graph string
	    Graph document to index
	-config string
	    Path to a custom config.toml
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return in CLI mode (default from config)
	-watch
	    Rebuild the index when the graph document changes
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bastiangx/mapsearch/internal/cli"
	"github.com/bastiangx/mapsearch/internal/logger"
	"github.com/bastiangx/mapsearch/pkg/config"
	"github.com/bastiangx/mapsearch/pkg/engine"
	"github.com/bastiangx/mapsearch/pkg/search"
	"github.com/bastiangx/mapsearch/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "mapsearch"
	gh      = "https://github.com/bastiangx/mapsearch"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		cancel()
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, engine and the chosen frontend together.
// It does not implement logic for them and only manages the flow.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigHandler(cancel)

	showVersion := flag.Bool("version", false, "Show current version")
	graphPath := flag.String("graph", "", "Graph document to index (.json, .yaml, .toml)")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of suggestions to return in CLI mode (0 uses the config value)")
	watch := flag.Bool("watch", false, "Rebuild the index whenever the graph document changes")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	// stdout carries IPC responses
	log.SetOutput(os.Stderr)

	appConfig, activeConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activeConfig))
	if err := logger.SetFormat(appConfig.Log.Format); err != nil {
		log.Warnf("Keeping text logs: %v", err)
	}

	builder := search.NewBuilder(nil, search.NewStopWords(appConfig.Index.ExtraStopWords...))
	eng := engine.New(builder)

	if *graphPath != "" {
		if err := eng.LoadFile(*graphPath); err != nil {
			log.Fatalf("Failed to index graph: %v", err)
		}
		log.Debug("Index built", "stats", eng.Stats())

		if *watch || appConfig.Watch.Enabled {
			debounce := time.Duration(appConfig.Watch.DebounceMs) * time.Millisecond
			go func() {
				if err := eng.Watch(ctx, *graphPath, debounce); err != nil {
					log.Errorf("Watch stopped: %v", err)
				}
			}()
		}
	} else {
		log.Warn("No graph document specified, running with an empty index...")
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		cliLimit := *limit
		if cliLimit < 1 {
			cliLimit = appConfig.CLI.DefaultLimit
		}
		log.Debug("Input info:", "limit", cliLimit, "maxInput", appConfig.Server.MaxInput)

		inputHandler := cli.NewInputHandler(eng, cliLimit, appConfig.Server.MaxInput)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(eng, appConfig, os.Stdin, os.Stdout)

	showStartupInfo(eng.Path())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ Mapsearch ] Finds places and tags in your map annotations")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(graphPath string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " Mapsearch ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	if graphPath != "" {
		log.Infof("graph: ( %s )", graphPath)
	}
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
