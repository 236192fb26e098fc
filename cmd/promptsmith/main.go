// Promptsmith is a rule-based prompt enhancement service.
//
// It exposes a JSON HTTP API, an embedded browser dashboard, and a CLI
// for one-shot enhancement, template browsing, and history management.
// Configuration is loaded from a single YAML file discovered
// automatically (see [config.DefaultSearchPaths]); without one, the
// built-in defaults apply and everything still works.
//
// Usage:
//
//	promptsmith serve                     Start the API server and web UI
//	promptsmith enhance <prompt>          Enhance a prompt from the command line
//	promptsmith templates [id]            List templates, or show one in detail
//	promptsmith render <id> <json-vars>   Fill a template's variables
//	promptsmith history                   Browse saved enhancements
//	promptsmith clear-history             Delete all saved enhancements
//	promptsmith init [dir]                Initialize a working directory with defaults
//	promptsmith version                   Print version and build information
//	promptsmith -o json version           Output version information as JSON
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/promptsmith/promptsmith/internal/api"
	"github.com/promptsmith/promptsmith/internal/buildinfo"
	"github.com/promptsmith/promptsmith/internal/config"
	"github.com/promptsmith/promptsmith/internal/engine"
	"github.com/promptsmith/promptsmith/internal/enhance"
	"github.com/promptsmith/promptsmith/internal/fetch"
	"github.com/promptsmith/promptsmith/internal/history"
	"github.com/promptsmith/promptsmith/internal/templates"
	"github.com/promptsmith/promptsmith/internal/web"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for database/sql
)

// main is intentionally minimal. It constructs the OS-level environment
// (context, stdio, argv) and delegates immediately to [run]. This keeps
// os.Exit, os.Stdout, and os.Args out of the application logic so that
// the full startup-to-shutdown lifecycle can be driven from tests.
func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run is the real entry point for the promptsmith command. All OS-level
// dependencies are injected as parameters:
//
//   - ctx controls the lifetime of the process. Cancelling it triggers
//     graceful shutdown of the server.
//   - stdout receives command output; stderr receives logs and
//     informational footers so stdout stays pipe-clean.
//   - args is os.Args[1:] — the command-line arguments after the
//     program name. We parse these manually rather than using the flag
//     package to avoid global state that interferes with parallel tests.
//
// run returns nil on clean shutdown and a non-nil error for any
// failure. The caller (main) is responsible for printing the error and
// exiting.
func run(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	// Parse arguments by hand. The flag package relies on package-level
	// globals (flag.CommandLine), which makes it impossible to call run()
	// concurrently from tests. Our argument surface is small enough that
	// manual parsing is clearer than bringing in a CLI framework.
	var configPath string
	var outputFmt string // "text" (default) or "json"
	var command string
	var cmdArgs []string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-config" && i+1 < len(args):
			configPath = args[i+1]
			i++ // skip the value
		case strings.HasPrefix(args[i], "-config="):
			configPath = strings.TrimPrefix(args[i], "-config=")
		case (args[i] == "-o" || args[i] == "--output") && i+1 < len(args):
			outputFmt = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-o="):
			outputFmt = strings.TrimPrefix(args[i], "-o=")
		case strings.HasPrefix(args[i], "--output="):
			outputFmt = strings.TrimPrefix(args[i], "--output=")
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			return printUsage(stdout)
		case !strings.HasPrefix(args[i], "-") && command == "":
			command = args[i]
		default:
			if command != "" {
				// Collect remaining args as subcommand arguments.
				cmdArgs = append(cmdArgs, args[i])
			} else {
				return fmt.Errorf("unknown flag: %s", args[i])
			}
		}
	}

	// Default to human-readable text output.
	if outputFmt == "" {
		outputFmt = "text"
	}
	if outputFmt != "text" && outputFmt != "json" {
		return fmt.Errorf("unknown output format: %q (expected text or json)", outputFmt)
	}

	switch command {
	case "serve":
		return runServe(ctx, stdout, stderr, configPath)
	case "enhance":
		return runEnhance(ctx, stdout, stderr, configPath, outputFmt, cmdArgs)
	case "templates":
		return runTemplates(stdout, outputFmt, cmdArgs)
	case "render":
		return runRender(stdout, outputFmt, cmdArgs)
	case "history":
		return runHistory(stdout, stderr, configPath, outputFmt, cmdArgs)
	case "clear-history":
		return runClearHistory(stdout, stderr, configPath)
	case "init":
		dir := "."
		if len(cmdArgs) > 0 {
			dir = cmdArgs[0]
		}
		return runInit(stdout, dir)
	case "version":
		return runVersion(stdout, outputFmt)
	case "":
		return printUsage(stdout)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runVersion prints build metadata in the requested output format.
func runVersion(w io.Writer, outputFmt string) error {
	info := buildinfo.Info()
	if outputFmt == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintln(w, buildinfo.String())
	// Print fields in a stable order for human readability.
	for _, k := range []string{"version", "git_commit", "git_branch", "build_time", "go_version", "os", "arch"} {
		if v, ok := info[k]; ok {
			fmt.Fprintf(w, "  %-12s %s\n", k+":", v)
		}
	}
	return nil
}

// printUsage writes the top-level help text to w. It is called when
// promptsmith is invoked with no arguments, or with -h / --help.
func printUsage(w io.Writer) error {
	fmt.Fprintln(w, "Promptsmith - Rule-Based Prompt Enhancement")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: promptsmith [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve                   Start the API server and web UI")
	fmt.Fprintln(w, "  enhance <prompt>        Enhance a prompt and print the result")
	fmt.Fprintln(w, "    -tone <tone>            Response tone (professional, casual, ...)")
	fmt.Fprintln(w, "    -category <cat>         Override category detection")
	fmt.Fprintln(w, "    -context <text>         Additional context to append")
	fmt.Fprintln(w, "    -context-url <url>      Fetch a web page as context")
	fmt.Fprintln(w, "    -template <id>          Expand a template before enhancing")
	fmt.Fprintln(w, "    -raw                    Skip enhancement (template and context only)")
	fmt.Fprintln(w, "  templates [id]          List templates, or show one in detail")
	fmt.Fprintln(w, "    -category <cat>         Restrict the listing to one category")
	fmt.Fprintln(w, "  render <id> [vars]      Fill a template from a JSON object of variables")
	fmt.Fprintln(w, "  history                 Show saved enhancements, newest first")
	fmt.Fprintln(w, "    -n <count>              Maximum entries to show (default 10)")
	fmt.Fprintln(w, "    -category <cat>         Only entries in this category")
	fmt.Fprintln(w, "    -starred                Only starred entries")
	fmt.Fprintln(w, "    -q <query>              Search original and enhanced text")
	fmt.Fprintln(w, "  clear-history           Delete all saved enhancements")
	fmt.Fprintln(w, "  init [dir]              Initialize working directory with defaults (default: .)")
	fmt.Fprintln(w, "  version                 Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config <path>    Path to config file (default: auto-discover)")
	fmt.Fprintln(w, "  -o, --output fmt  Output format: text (default) or json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config search order:")
	fmt.Fprintln(w, "  ./config.yaml, ~/.config/promptsmith/config.yaml, /etc/promptsmith/config.yaml")
	return nil
}

// runEnhance handles the "promptsmith enhance <prompt>" subcommand. It
// runs the full enhancement pipeline locally (no server round-trip)
// against the same config and history location that serve uses. The
// enhanced prompt goes to stdout; the category/tone footer goes to
// stderr so the output can be piped directly into another tool.
func runEnhance(ctx context.Context, stdout io.Writer, stderr io.Writer, configPath string, outputFmt string, cmdArgs []string) error {
	var (
		toneFlag     string
		categoryFlag string
		contextFlag  string
		contextURL   string
		templateID   string
		rawMode      bool
		words        []string
	)

	for i := 0; i < len(cmdArgs); i++ {
		switch {
		case cmdArgs[i] == "-tone" && i+1 < len(cmdArgs):
			toneFlag = cmdArgs[i+1]
			i++
		case strings.HasPrefix(cmdArgs[i], "-tone="):
			toneFlag = strings.TrimPrefix(cmdArgs[i], "-tone=")
		case cmdArgs[i] == "-category" && i+1 < len(cmdArgs):
			categoryFlag = cmdArgs[i+1]
			i++
		case strings.HasPrefix(cmdArgs[i], "-category="):
			categoryFlag = strings.TrimPrefix(cmdArgs[i], "-category=")
		case cmdArgs[i] == "-context" && i+1 < len(cmdArgs):
			contextFlag = cmdArgs[i+1]
			i++
		case strings.HasPrefix(cmdArgs[i], "-context="):
			contextFlag = strings.TrimPrefix(cmdArgs[i], "-context=")
		case cmdArgs[i] == "-context-url" && i+1 < len(cmdArgs):
			contextURL = cmdArgs[i+1]
			i++
		case strings.HasPrefix(cmdArgs[i], "-context-url="):
			contextURL = strings.TrimPrefix(cmdArgs[i], "-context-url=")
		case cmdArgs[i] == "-template" && i+1 < len(cmdArgs):
			templateID = cmdArgs[i+1]
			i++
		case strings.HasPrefix(cmdArgs[i], "-template="):
			templateID = strings.TrimPrefix(cmdArgs[i], "-template=")
		case cmdArgs[i] == "-raw":
			rawMode = true
		case strings.HasPrefix(cmdArgs[i], "-"):
			return fmt.Errorf("unknown flag: %s", cmdArgs[i])
		default:
			words = append(words, cmdArgs[i])
		}
	}

	prompt := strings.Join(words, " ")
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("usage: promptsmith enhance [flags] <prompt>")
	}

	req := engine.Request{RawPrompt: prompt, Context: contextFlag, TemplateID: templateID}
	if toneFlag != "" {
		tone, err := enhance.ParseTone(toneFlag)
		if err != nil {
			return err
		}
		req.Tone = tone
	}
	if categoryFlag != "" {
		cat, err := enhance.ParseCategory(categoryFlag)
		if err != nil {
			return err
		}
		req.Category = cat
	}
	if rawMode {
		off := false
		req.AutoEnhance = &off
	}

	logger := newLogger(stderr, slog.LevelWarn, "text")
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if contextURL != "" {
		fetcher := fetch.New(time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second)
		page, err := fetcher.Fetch(ctx, contextURL, cfg.Fetch.MaxChars)
		if err != nil {
			return fmt.Errorf("fetch context: %w", err)
		}
		if req.Context != "" {
			req.Context += "\n\n"
		}
		req.Context += page.Content
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	eng := engine.New(store, logger)
	applyDefaultTone(eng, cfg, logger)

	result, err := eng.Process(ctx, req)
	if err != nil {
		return err
	}

	if outputFmt == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(stdout, result.Enhanced)
	fmt.Fprintf(stderr, "\ncategory: %s  tone: %s\n", result.Category, result.Tone)
	if len(result.TechniquesApplied) > 0 {
		fmt.Fprintf(stderr, "techniques: %s\n", strings.Join(result.TechniquesApplied, ", "))
	}
	return nil
}

// runTemplates handles the "promptsmith templates [id]" subcommand.
// Without an id it lists the catalog; with one it prints the full
// template including the blueprint text. The catalog is compiled in,
// so no config or history store is needed.
func runTemplates(stdout io.Writer, outputFmt string, cmdArgs []string) error {
	var categoryFlag string
	var id string

	for i := 0; i < len(cmdArgs); i++ {
		switch {
		case cmdArgs[i] == "-category" && i+1 < len(cmdArgs):
			categoryFlag = cmdArgs[i+1]
			i++
		case strings.HasPrefix(cmdArgs[i], "-category="):
			categoryFlag = strings.TrimPrefix(cmdArgs[i], "-category=")
		case strings.HasPrefix(cmdArgs[i], "-"):
			return fmt.Errorf("unknown flag: %s", cmdArgs[i])
		case id == "":
			id = cmdArgs[i]
		default:
			return fmt.Errorf("usage: promptsmith templates [-category <cat>] [id]")
		}
	}

	if id != "" {
		t, err := templates.Get(id)
		if err != nil {
			return err
		}
		if outputFmt == "json" {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(t)
		}
		fmt.Fprintf(stdout, "  %-12s %s\n", "id:", t.ID)
		fmt.Fprintf(stdout, "  %-12s %s\n", "name:", t.Name)
		fmt.Fprintf(stdout, "  %-12s %s\n", "category:", t.Category)
		fmt.Fprintf(stdout, "  %-12s %s\n", "description:", t.Description)
		fmt.Fprintf(stdout, "  %-12s %s\n", "variables:", strings.Join(t.Variables, ", "))
		fmt.Fprintf(stdout, "\n%s\n", t.Blueprint)
		return nil
	}

	var category enhance.Category
	if categoryFlag != "" {
		cat, err := enhance.ParseCategory(categoryFlag)
		if err != nil {
			return err
		}
		category = cat
	}

	list := templates.List(category)
	if outputFmt == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"templates": list, "count": len(list)})
	}

	fmt.Fprintf(stdout, "%-18s %-14s %s\n", "ID", "CATEGORY", "NAME")
	for _, t := range list {
		fmt.Fprintf(stdout, "%-18s %-14s %s\n", t.ID, t.Category, t.Name)
	}
	return nil
}

// runRender handles the "promptsmith render <id> [vars]" subcommand.
// vars is a JSON object mapping variable names to values; omitted
// variables stay visible as [name] markers in the output.
func runRender(stdout io.Writer, outputFmt string, cmdArgs []string) error {
	if len(cmdArgs) == 0 {
		return fmt.Errorf("usage: promptsmith render <id> [json-vars]")
	}
	id := cmdArgs[0]

	vars := map[string]string{}
	if len(cmdArgs) > 1 {
		if err := json.Unmarshal([]byte(cmdArgs[1]), &vars); err != nil {
			return fmt.Errorf("variables must be a JSON object of strings: %w", err)
		}
	}

	rendered, err := templates.Render(id, vars)
	if err != nil {
		return err
	}

	if outputFmt == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{"template_id": id, "rendered": rendered})
	}
	fmt.Fprintln(stdout, rendered)
	return nil
}

// runHistory handles the "promptsmith history" subcommand: a newest-first
// listing of saved enhancements, optionally filtered or searched.
func runHistory(stdout io.Writer, stderr io.Writer, configPath string, outputFmt string, cmdArgs []string) error {
	var (
		limit        = 10
		categoryFlag string
		starred      bool
		query        string
	)

	for i := 0; i < len(cmdArgs); i++ {
		switch {
		case cmdArgs[i] == "-n" && i+1 < len(cmdArgs):
			n, err := strconv.Atoi(cmdArgs[i+1])
			if err != nil {
				return fmt.Errorf("invalid -n value: %s", cmdArgs[i+1])
			}
			limit = n
			i++
		case strings.HasPrefix(cmdArgs[i], "-n="):
			n, err := strconv.Atoi(strings.TrimPrefix(cmdArgs[i], "-n="))
			if err != nil {
				return fmt.Errorf("invalid -n value: %s", cmdArgs[i])
			}
			limit = n
		case cmdArgs[i] == "-category" && i+1 < len(cmdArgs):
			categoryFlag = cmdArgs[i+1]
			i++
		case strings.HasPrefix(cmdArgs[i], "-category="):
			categoryFlag = strings.TrimPrefix(cmdArgs[i], "-category=")
		case cmdArgs[i] == "-starred":
			starred = true
		case cmdArgs[i] == "-q" && i+1 < len(cmdArgs):
			query = cmdArgs[i+1]
			i++
		case strings.HasPrefix(cmdArgs[i], "-q="):
			query = strings.TrimPrefix(cmdArgs[i], "-q=")
		default:
			return fmt.Errorf("unknown argument: %s", cmdArgs[i])
		}
	}

	var category enhance.Category
	if categoryFlag != "" {
		cat, err := enhance.ParseCategory(categoryFlag)
		if err != nil {
			return err
		}
		category = cat
	}

	logger := newLogger(stderr, slog.LevelWarn, "text")
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	var entries []history.Entry
	if query != "" {
		entries, err = store.Search(query, limit)
	} else {
		entries, err = store.List(history.ListOptions{Category: category, Starred: starred, Limit: limit})
	}
	if err != nil {
		return err
	}

	if outputFmt == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"entries": entries, "count": len(entries)})
	}

	if len(entries) == 0 {
		fmt.Fprintln(stdout, "No history entries.")
		return nil
	}
	for _, e := range entries {
		star := " "
		if e.Starred {
			star = "★"
		}
		fmt.Fprintf(stdout, "%4d %s %s  %-14s %s\n",
			e.ID, star, e.Timestamp.Local().Format("2006-01-02 15:04"),
			e.Category, truncate(e.Original, 80))
	}
	return nil
}

// runClearHistory handles the "promptsmith clear-history" subcommand.
func runClearHistory(stdout io.Writer, stderr io.Writer, configPath string) error {
	logger := newLogger(stderr, slog.LevelWarn, "text")
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Clear()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Cleared %d history entries\n", n)
	return nil
}

// runServe handles the "promptsmith serve" subcommand. It is the
// primary operating mode: loads config, opens the history store, wires
// the engine, fetcher, and web UI into the API server, and blocks until
// a shutdown signal arrives.
//
// The shutdown sequence is:
//  1. SIGINT or SIGTERM cancels the context
//  2. The HTTP server drains in-flight requests
//  3. The history store is closed via defer
func runServe(ctx context.Context, stdout io.Writer, stderr io.Writer, configPath string) error {
	logger := newLogger(stdout, slog.LevelInfo, "text")
	logger.Info("starting Promptsmith", "version", buildinfo.Version, "commit", buildinfo.GitCommit, "branch", buildinfo.GitBranch, "built", buildinfo.BuildTime)

	cfg, cfgPath, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Reconfigure logger now that we know the desired level and format.
	// The initial Info-level text logger is used only for the startup
	// banner; everything after this point uses the configured level and
	// format.
	{
		level := slog.LevelInfo
		if cfg.LogLevel != "" {
			// ParseLogLevel is already validated by loadConfig, so
			// this error path should be unreachable in practice.
			level, _ = config.ParseLogLevel(cfg.LogLevel)
		}
		logger = newLogger(stdout, level, cfg.LogFormat)
	}

	if cfgPath != "" {
		logger.Info("config loaded",
			"path", cfgPath,
			"port", cfg.Listen.Port,
			"history_backend", cfg.History.Backend,
		)
	} else {
		logger.Info("no config file found, using defaults", "port", cfg.Listen.Port)
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	eng := engine.New(store, logger)
	applyDefaultTone(eng, cfg, logger)

	server := api.NewServer(cfg.Listen.Address, cfg.Listen.Port, eng, store, logger)
	server.SetFetcher(fetch.New(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second), cfg.Fetch.MaxChars)
	server.SetWebUI(web.New(web.Config{Engine: eng, History: store, Logger: logger}))

	// --- Signal handling and graceful shutdown ---
	// NotifyContext wraps the parent context so that SIGINT/SIGTERM
	// cancellation flows through the same ctx used by all components.
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		logger.Info("shutdown signal received")
		_ = server.Shutdown(context.Background())
	}()

	// Start the API server. This blocks until the server is shut down
	// (via context cancellation or fatal error).
	if err := server.Start(ctx); err != nil {
		if ctx.Err() == nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	logger.Info("Promptsmith stopped")
	return nil
}

// newLogger creates a structured logger that writes to w at the given
// level and format. Format must be "text" or "json"; any other value
// defaults to text. All log output in Promptsmith goes through slog;
// this helper standardizes the handler configuration across
// subcommands.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: config.ReplaceLogLevelNames,
	}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// loadConfig locates, parses, and validates the YAML configuration
// file. If explicit is non-empty, that exact path is used and must
// exist. Otherwise [config.FindConfig] searches the default locations;
// when nothing is found, the built-in defaults are returned with an
// empty path. Promptsmith is designed to run without any config file.
func loadConfig(explicit string) (*config.Config, string, error) {
	cfgPath, err := config.FindConfig(explicit)
	if err != nil {
		if explicit != "" {
			return nil, "", err
		}
		return config.Default(), "", nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, cfgPath, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfgPath, fmt.Errorf("invalid config %s: %w", cfgPath, err)
	}

	return cfg, cfgPath, nil
}

// openStore opens the configured history backend, creating the data
// directory if needed. The caller owns the returned store and must
// close it.
func openStore(cfg *config.Config, logger *slog.Logger) (history.Store, error) {
	path := cfg.HistoryPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", filepath.Dir(path), err)
	}

	if cfg.History.Backend == "sqlite" {
		db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
		if err != nil {
			return nil, fmt.Errorf("open history database %s: %w", path, err)
		}
		store, err := history.NewSQLiteStore(db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("open history database %s: %w", path, err)
		}
		logger.Debug("history database opened", "path", path)
		return store, nil
	}

	store := history.NewJSONStore(path, logger)
	logger.Debug("history file opened", "path", path)
	return store, nil
}

// applyDefaultTone wires config's defaults.tone into the engine. An
// unknown tone is not fatal: the engine keeps its professional default,
// matching the validation contract in [config.Config.Validate].
func applyDefaultTone(eng *engine.Engine, cfg *config.Config, logger *slog.Logger) {
	if cfg.Defaults.Tone == "" {
		return
	}
	tone, err := enhance.ParseTone(cfg.Defaults.Tone)
	if err != nil {
		logger.Warn("ignoring unknown defaults.tone", "tone", cfg.Defaults.Tone)
		return
	}
	eng.SetDefaultTone(tone)
}

// truncate shortens s to at most n runes for single-line display,
// appending "..." when text was cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
