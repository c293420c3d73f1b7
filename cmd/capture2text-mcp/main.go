package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GSam/Capture2Text/internal/config"
	"github.com/GSam/Capture2Text/internal/ocr"
	"github.com/GSam/Capture2Text/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usage = `capture2text-mcp - MCP server that finds and reads text in screenshots

Usage: capture2text-mcp [options]

Options:
  --config PATH    YAML or JSON configuration file
  --version, -v    Print version information
  --help, -h       Print this help message

Environment variables (override the configuration file):
  CAPTURE2TEXT_LANGUAGE=jpn          Tesseract language
  CAPTURE2TEXT_TESSDATA=/path        Directory holding *.traineddata
  CAPTURE2TEXT_VERTICAL=true         Read vertical text
  CAPTURE2TEXT_REMOVE_FURIGANA=true  Erase furigana before OCR
  CAPTURE2TEXT_SCALE_FACTOR=3.5      Upscale factor before binarization
  CAPTURE2TEXT_LOG_LEVEL=debug       Enable debug logging

This server communicates via MCP protocol over stdin/stdout.
Logs go to stderr.
`

func main() {
	var (
		configPath  string
		showVersion bool
	)
	fs := flag.NewFlagSet("capture2text-mcp", flag.ExitOnError)
	fs.StringVar(&configPath, "config", os.Getenv(config.EnvPrefix+"CONFIG"), "configuration file")
	fs.BoolVar(&showVersion, "version", false, "print version information")
	fs.BoolVar(&showVersion, "v", false, "print version information")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	_ = fs.Parse(os.Args[1:])

	if showVersion {
		fmt.Printf("capture2text-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		fmt.Printf("  Tesseract:  %s\n", ocr.Version())
		return
	}

	// stdout is for MCP protocol
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", configPath).Msg("load configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())

	server.Version = Version
	log.Debug().Str("version", Version).Str("built", BuildTime).Str("commit", GitCommit).
		Str("language", cfg.OCR.Language).Msg("starting")

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create server")
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("server error")
		srv.Close()
		os.Exit(1)
	}
}
