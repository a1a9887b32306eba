/*
Package main implements the suggestive-service daemon and CLI.

The service answers autocomplete requests: given a partial, user-typed query
fragment, it returns historically observed full queries that plausibly
complete it, ranked by observed frequency weight. Two complementary tries
power the lookups: a forward trie for queries starting with the fragment and
a reversed trie for queries containing or ending with it.

# Usage

Start the HTTP server with default settings:

	suggestd

Use a custom corpus file and enable debug logging:

	suggestd -data /path/to/queries.txt -d

Run in CLI mode for interactive testing:

	suggestd -c -k 10

Run as a msgpack IPC server over stdin/stdout:

	suggestd -ipc

# Startup

The corpus is downloaded on first start (a public share link resolved via
the cloud API) and aggregated line by line into weighted votes: identical
normalized queries accumulate weight. Both tries are then fitted in a single
synchronous pass before the service accepts traffic; after that the engine
is read-only and requests are served without locking.

# Configuration

Runtime configuration is a TOML file:

	[server]
	addr = ":8080"
	default_limit = 10
	max_limit = 100
	max_query_len = 200

	[corpus]
	url = "https://disk.yandex.ru/d/..."
	path = "data/queries.txt"

	[cache]
	enabled = true
	max_entries = 4096

The config file is created with defaults if it doesn't exist.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/screengreen/suggestive-service/internal/cli"
	"github.com/screengreen/suggestive-service/pkg/config"
	"github.com/screengreen/suggestive-service/pkg/corpus"
	"github.com/screengreen/suggestive-service/pkg/server"
	"github.com/screengreen/suggestive-service/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "suggestd"
	gh      = "https://github.com/screengreen/suggestive-service"
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

// main wires the corpus pipeline, the suggester and the chosen serving mode
// together. It does not implement any of their logic and only manages flow.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to the TOML config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	corpusPath := flag.String("data", "", "Path to the corpus file (overrides config)")
	corpusURL := flag.String("url", "", "Public corpus URL (overrides config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run interactive CLI -- useful for testing and debugging")
	ipcMode := flag.Bool("ipc", false, "Serve msgpack IPC over stdin/stdout instead of HTTP")
	limit := flag.Int("k", defaults.Server.DefaultLimit, "Number of suggestions to return in CLI mode")
	deep := flag.Bool("deep", false, "Widen CLI results with trimmed and per-word strategies")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *corpusPath != "" {
		cfg.Corpus.Path = *corpusPath
	}
	if *corpusURL != "" {
		cfg.Corpus.URL = *corpusURL
	}

	suggester := buildSuggester(cfg)

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(suggester, *limit, *deep)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if *ipcMode {
		srv := server.NewIPCServer(suggester, cfg)
		if err := srv.Start(); err != nil {
			log.Fatalf("IPC server error: %v", err)
		}
		return
	}

	showStartupInfo(cfg, suggester)
	srv := server.NewServer(suggester, cfg)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}

// buildSuggester runs the synchronous startup pipeline: download the corpus
// if needed, aggregate it into weighted votes and fit both tries. Serving
// begins only after it returns.
func buildSuggester(cfg *config.Config) *suggest.Suggester {
	log.Info("Downloading corpus file...")
	if err := corpus.Download(cfg.Corpus.URL, cfg.Corpus.Path); err != nil {
		log.Fatalf("Failed to fetch corpus: %v", err)
	}

	file, err := os.Open(cfg.Corpus.Path)
	if err != nil {
		log.Fatalf("Failed to open corpus file: %v", err)
	}
	defer file.Close()

	counts, err := corpus.Count(file)
	if err != nil {
		log.Fatalf("Failed to count corpus queries: %v", err)
	}

	suggester := suggest.NewSuggester()
	if err := suggester.Fit(counts); err != nil {
		log.Fatalf("Failed to fit suggester: %v", err)
	}
	log.Infof("Suggester fitted with %d queries", suggester.Count())
	return suggester
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ Suggestive ] Autocomplete suggestions from query history")
	logger.Print("", "version", Version)
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(cfg *config.Config, suggester *suggest.Suggester) {
	pid := os.Getpid()

	println("============")
	println(" Suggestive ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("corpus: ( %s )", cfg.Corpus.Path)
	log.Infof("stored queries: %d", suggester.Count())
	log.Infof("listening on %s", cfg.Server.Addr)
	println("Press Ctrl+C to exit")
}
