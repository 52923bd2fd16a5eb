// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the trigram similarity server and CLI [DBG] application.

trigramd scores strings with pg_trgm-style trigram similarity. It can operate
as a MessagePack IPC server for integration with editors and other processes,
or as an interactive CLI for testing and debugging.

# Usage

Start the server with default settings:

	trigramd

Load a word list for lookups and enable debug mode:

	trigramd -lexicon words.txt -d

Run in CLI mode for interactive testing:

	trigramd -c -threshold 0.4

# Configuration

Runtime configuration is read from a TOML file, created with defaults if it
doesn't exist:

	[match]
	threshold = 0.3
	max_needle = 256

	[server]
	max_haystack = 1048576
	max_results = 256
	ready_message = true

	[lexicon]
	path = ""
	min_word_len = 1

TRIGRAM_THRESHOLD, TRIGRAM_LEXICON and TRIGRAM_MAX_RESULTS override the file.
They may also be set in a .env file in the working directory.

# IPC Protocol

The server reads msgpack maps from stdin and answers on stdout. See the
server package for the full list of actions.

	{"id": "req1", "action": "similarity", "a": "foo", "b": "food"}
	{"id": "req1", "s": 0.5, "t": 9}

# Metrics

With -metrics the Prometheus collectors are served over HTTP:

	trigramd -metrics :9464
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/trigram/internal/cli"
	"github.com/bastiangx/trigram/internal/logger"
	"github.com/bastiangx/trigram/internal/metrics"
	"github.com/bastiangx/trigram/internal/utils"
	"github.com/bastiangx/trigram/pkg/config"
	"github.com/bastiangx/trigram/pkg/lexicon"
	"github.com/bastiangx/trigram/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	Version = "0.1.0"
	AppName = "trigramd"
	gh      = "https://github.com/bastiangx/trigram"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, lexicon and the server or CLI together.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	lexiconPath := flag.String("lexicon", "", "Word list (.txt) or snapshot (.msgpack) for lookups")
	threshold := flag.Float64("threshold", -1, fmt.Sprintf("Similarity threshold (default from config, %v)", defaultConfig.Match.Threshold))
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)
	fs := afero.NewOsFs()

	if err := config.LoadDotEnv(fs, ".env"); err != nil {
		log.Warnf("Failed to load .env: %v", err)
	}

	pathResolver, err := utils.NewPathResolver(fs)
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	if *configPath == "" {
		log.Debugf("Config dir: %s", pathResolver.GetConfigDir())
		*configPath = pathResolver.GetConfigPath("config.toml")
	}
	log.Debugf("Using config file: (%s)", utils.GetAbsolutePath(*configPath))

	appConfig, err := config.InitConfig(fs, *configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *threshold >= 0 {
		appConfig.Match.Threshold = *threshold
	}
	if *lexiconPath != "" {
		appConfig.Lexicon.Path = *lexiconPath
	}

	var lex *lexicon.Lexicon
	if appConfig.Lexicon.Path != "" {
		path := pathResolver.ResolveDataPath(appConfig.Lexicon.Path)
		lex, err = lexicon.Load(fs, path)
		if err != nil {
			log.Fatalf("Failed to load lexicon: %v", err)
		}
		if n := lex.Prune(appConfig.Lexicon.MinWordLen); n > 0 {
			log.Debugf("Pruned %d words shorter than %d", n, appConfig.Lexicon.MinWordLen)
		}
		log.Debugf("Lexicon loaded: %d words from %s", lex.Len(), path)
	} else {
		log.Debug("No lexicon configured, lookups are disabled")
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr)
	}

	// CLI is mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "threshold", appConfig.Match.Threshold, "limit", appConfig.Server.MaxResults)

		inputHandler := cli.NewInputHandler(lex, appConfig.Match.Threshold, appConfig.Server.MaxResults, os.Stdin, os.Stderr)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(appConfig, lex, os.Stdin, os.Stdout)

	showStartupInfo(*configPath, lex)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// serveMetrics exposes the Prometheus registry until the process exits.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	log.Debugf("Serving metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorf("Metrics server: %v", err)
	}
}

// printVersion shows the version banner.
func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ trigramd ] pg_trgm style fuzzy string similarity")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(configPath string, lex *lexicon.Lexicon) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	words := 0
	if lex != nil {
		words = lex.Len()
	}

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " "+AppName+" ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", configPath)
	log.Infof("lexicon words: %d", words)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
}
