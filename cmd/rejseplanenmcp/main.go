package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/NERVsystems/rejseplanenmcp/pkg/config"
	"github.com/NERVsystems/rejseplanenmcp/pkg/server"
	"github.com/NERVsystems/rejseplanenmcp/pkg/version"
)

// clientConfigKey names this server inside a client's mcpServers map
const clientConfigKey = "rejseplanen"

var (
	showVersionFlag bool
	debug           bool
	generateConfig  string
	envFile         string
)

func init() {
	flag.BoolVar(&showVersionFlag, "version", false, "Display version information")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.StringVar(&generateConfig, "generate-config", "", "Generate an MCP client config file at the specified path")
	flag.StringVar(&envFile, "env-file", ".env", "Load environment variables from this file if it exists")
}

func main() {
	flag.Parse()

	if showVersionFlag {
		showVersion()
		return
	}

	if err := config.LoadDotEnv(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", envFile, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Configure logging
	logLevel := cfg.SlogLevel()
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if generateConfig != "" {
		if err := generateClientConfig(generateConfig, cfg); err != nil {
			logger.Error("failed to generate config", "error", err)
			os.Exit(1)
		}
		logger.Info("successfully generated MCP client config", "path", generateConfig)
		return
	}

	logger.Info("starting Rejseplanen MCP server",
		"version", version.BuildVersion,
		"environment", cfg.Environment,
		"transport", cfg.Transport,
		"go_version", version.GoVersion,
		"log_level", logLevel.String())
	if cfg.Transport == config.TransportHTTP {
		logger.Info("MCP endpoint", "url", endpointURL(cfg))
	}

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("server initialized, waiting for requests")
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// endpointURL is the URL a local client uses to reach the HTTP transport.
func endpointURL(cfg *config.Config) string {
	host := cfg.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, strconv.Itoa(cfg.Port)),
		Path:   server.MCPPath,
	}
	return u.String()
}

// serverEntry describes how an MCP client should reach this server.
func serverEntry(cfg *config.Config) map[string]interface{} {
	if cfg.Transport == config.TransportHTTP {
		return map[string]interface{}{
			"type": "http",
			"url":  endpointURL(cfg),
		}
	}

	execPath, err := os.Executable()
	if err != nil {
		execPath = os.Args[0]
	}
	absExecPath, err := filepath.Abs(execPath)
	if err != nil {
		absExecPath = execPath
	}
	return map[string]interface{}{
		"command": absExecPath,
		"args":    []string{},
		"env": map[string]string{
			"TRANSPORT":   config.TransportStdio,
			"ENVIRONMENT": cfg.Environment,
		},
	}
}

// generateClientConfig creates or updates an MCP client config file,
// keeping every entry it does not own.
func generateClientConfig(outputPath string, cfg *config.Config) error {
	logger := slog.Default()

	if outputPath == "" {
		return errors.New("config path must not be empty")
	}
	if filepath.Ext(outputPath) != ".json" {
		return fmt.Errorf("config path %q must have a .json extension", outputPath)
	}
	for _, part := range strings.Split(filepath.ToSlash(outputPath), "/") {
		if part == ".." {
			return fmt.Errorf("config path %q must not contain '..'", outputPath)
		}
	}

	var clientConfig map[string]interface{}

	if _, err := os.Stat(outputPath); err == nil {
		data, err := os.ReadFile(outputPath)
		if err != nil {
			return fmt.Errorf("failed to read existing config: %w", err)
		}

		if err := json.Unmarshal(data, &clientConfig); err != nil {
			logger.Warn("existing config is not valid JSON, will create new", "error", err)
			clientConfig = nil
		}
	}
	if clientConfig == nil {
		clientConfig = make(map[string]interface{})
	}

	mcpServers, ok := clientConfig["mcpServers"].(map[string]interface{})
	if !ok {
		mcpServers = make(map[string]interface{})
		clientConfig["mcpServers"] = mcpServers
	}
	mcpServers[clientConfigKey] = serverEntry(cfg)

	data, err := json.MarshalIndent(clientConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(outputPath, 0o600); err != nil {
		return fmt.Errorf("failed to set config permissions: %w", err)
	}

	return nil
}

// showVersion displays version information
func showVersion() {
	fmt.Println(version.String())
}
