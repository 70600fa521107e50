package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/peterh/liner"

	"github.com/lagerfeuer/golox/config"
	"github.com/lagerfeuer/golox/diag"
	"github.com/lagerfeuer/golox/interpreter"
	"github.com/lagerfeuer/golox/runner"
)

// Exit codes, from sysexits.h.
const (
	exitSuccess  = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("golox", flag.ContinueOnError)
	configPath := flags.String("config", "", "configuration file (default ~/"+config.FileName+")")
	printAST := flags.Bool("print-ast", false, "print the syntax tree instead of running")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: golox [flags] [script]\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}
		return exitUsage
	}
	if flags.NArg() > 1 {
		flags.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "print-ast":
			cfg.PrintAST = *printAST
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	// Start CPU profile if enabled via the env-var CPUPROFILE.
	if prof_out, has := os.LookupEnv("CPUPROFILE"); has && prof_out != "" {
		f, err := os.Create(prof_out)
		if err != nil {
			logger.Error("cannot create profile output file",
				slog.String("path", prof_out), slog.Any("error", err))
			return exitSoftware
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Error("cannot start CPU profile",
				slog.String("path", prof_out), slog.Any("error", err))
			return exitSoftware
		}
		defer pprof.StopCPUProfile()
	}

	if flags.NArg() == 1 {
		return execFromFile(flags.Arg(0), cfg, logger)
	}
	return execPrompt(cfg, logger)
}

func execFromFile(filepath string, cfg config.Config, logger *slog.Logger) int {
	source, err := os.ReadFile(filepath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open file '%v' (%v).\n", filepath, err.Error())
		return exitDataErr
	}

	rn := runner.New(
		runner.WithLogger(logger),
		runner.WithPrintAST(cfg.PrintAST),
	)

	err = rn.Run(string(source), filepath)
	var rte *interpreter.RuntimeError
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, runner.ErrStatic):
		return exitDataErr
	case errors.As(err, &rte):
		return exitSoftware
	default:
		fmt.Fprintln(os.Stderr, err)
		return exitSoftware
	}
}

func execPrompt(cfg config.Config, logger *slog.Logger) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	if hist := cfg.HistoryPath(home); hist != "" {
		if f, err := os.Open(hist); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(hist); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	paint := func(color, s string) string { return s }
	if cfg.Color {
		paint = func(color, s string) string { return color + s + "\x1b[0m" }
	}

	rn := runner.New(
		runner.WithLogger(logger),
		runner.WithPrintAST(cfg.PrintAST),
		runner.WithReporter(diag.Writer{W: colorWriter{os.Stderr, paint}}),
	)

	for {
		line, err := ln.Prompt(cfg.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(os.Stderr, "Error reading input: %v.\n", err.Error())
				return exitDataErr
			}
			break
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		// Errors were reported already, the session goes on.
		if result, ok, _ := rn.RunInteractive(line); ok {
			fmt.Println(paint("\x1b[94m", result))
		}
	}

	fmt.Fprintln(os.Stderr, "[EXIT]")
	return exitSuccess
}

// Colors every write, which diag.Writer does once per message.
type colorWriter struct {
	w     io.Writer
	paint func(color, s string) string
}

func (c colorWriter) Write(p []byte) (int, error) {
	msg := strings.TrimSuffix(string(p), "\n")
	if _, err := io.WriteString(c.w, c.paint("\x1b[31m", msg)+"\n"); err != nil {
		return 0, err
	}
	return len(p), nil
}
