package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olehluchkiv/capkit/internal/config"
	"github.com/olehluchkiv/capkit/internal/conformance"
	"github.com/olehluchkiv/capkit/internal/demo"
	"github.com/olehluchkiv/capkit/internal/diagram"
	"github.com/olehluchkiv/capkit/internal/explain"
	"github.com/olehluchkiv/capkit/internal/explain/llm"
	"github.com/olehluchkiv/capkit/internal/logging"
	"github.com/olehluchkiv/capkit/internal/resolver"
)

func main() {
	// Use a custom FlagSet so flags parse regardless of position. Go's
	// default flag.Parse stops at the first non-flag argument, which
	// breaks "capkit check ./path -output report.mmd". We reorder args so
	// flags come first, then positional args.
	flags, positional := reorderArgs(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid environment: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("capkit", flag.ExitOnError)
	logFile := fs.String("log-file", cfg.LogFile, "log file path")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	seed := fs.Uint64("seed", cfg.Seed, "seed for the simulated keyboard")
	dbPath := fs.String("db", cfg.DBPath, "SQLite path for the settings scenario")
	requireFlag := fs.String("require", "", "comma-separated Variant:Contract requirements for check")
	output := fs.String("output", "", "write a Mermaid diagram of the check to this file")
	filter := fs.String("filter", "", "package path prefix filter for check")
	includeUnexported := fs.Bool("include-unexported", false, "include unexported types in check")
	explainFlag := fs.Bool("explain", false, "explain violations with an LLM (requires CAPKIT_LLM_API_KEY)")

	if err := fs.Parse(flags); err != nil {
		os.Exit(1)
	}
	positional = append(positional, fs.Args()...)

	if len(positional) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: capkit [flags] demo [scenario...] | check <path>")
		fs.PrintDefaults()
		os.Exit(1)
	}
	command, args := positional[0], positional[1:]

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", *logLevel, err)
		os.Exit(1)
	}
	logger, logCleanup, err := logging.Setup(*logFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	switch command {
	case "demo":
		env := demo.Env{Seed: *seed, DBPath: *dbPath, Logger: logger}
		if err := demo.Run(ctx, os.Stdout, args, env); err != nil {
			logger.Error("demo failed", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: capkit check <path>")
			os.Exit(1)
		}
		opts := conformance.Options{
			Filter:            *filter,
			IncludeUnexported: *includeUnexported,
		}
		opts.Require, err = conformance.ParseRequirements(*requireFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var explainer explain.Explainer = explain.NewRuleExplainer()
		if *explainFlag {
			client, clientErr := buildLLMClient(cfg.LLM, logger)
			if clientErr != nil {
				logger.Error("failed to configure LLM client", "error", clientErr)
				fmt.Fprintf(os.Stderr, "Error: %v\n", clientErr)
				os.Exit(1)
			}
			explainer = explain.NewLLMExplainer(ctx, client, explain.NewRuleExplainer(), logger)
		}

		ok, err := runCheck(ctx, args[0], opts, explainer, *output, logger)
		if err != nil {
			logger.Error("check failed", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q (want demo or check)\n", command)
		os.Exit(1)
	}
}

// runCheck resolves the module, runs the conformance check, prints a
// summary, and reports whether all requirements held.
func runCheck(ctx context.Context, input string, opts conformance.Options, explainer explain.Explainer, output string, logger *slog.Logger) (bool, error) {
	dir, err := resolver.Resolve(ctx, input, logger)
	if err != nil {
		return false, fmt.Errorf("resolving input: %w", err)
	}

	report, err := conformance.Check(ctx, dir, opts, logger)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", dir, err)
	}

	fmt.Printf("Found %d contracts, %d variants, %d satisfactions\n",
		len(report.Contracts), len(report.Variants), len(report.Relations))

	if output != "" {
		content := diagram.Generate(report, diagram.Options{MaxOpsPerBox: 5, IncludeInit: true})
		if err := os.WriteFile(output, []byte(content+"\n"), 0o644); err != nil {
			return false, fmt.Errorf("writing %s: %w", output, err)
		}
		fmt.Printf("Wrote diagram to %s\n", output)
	}

	if len(report.Violations) == 0 {
		if len(opts.Require) > 0 {
			fmt.Printf("All %d requirements hold\n", len(opts.Require))
		}
		return true, nil
	}

	explanations := explainer.Explain(report)
	for _, v := range report.Violations {
		fmt.Printf("VIOLATION %s: %s\n", explain.Key(v), explanations[explain.Key(v)])
	}
	return false, nil
}

func buildLLMClient(cfg config.LLM, logger *slog.Logger) (*llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("CAPKIT_LLM_API_KEY environment variable is required when --explain is enabled")
	}
	return llm.NewClient(llm.Config{
		Endpoint: cfg.Endpoint,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
	}, logger), nil
}

// reorderArgs separates flags and positional arguments so flags can appear
// in any position (before or after the command and its arguments).
// Flags that take a value (e.g., -output report.mmd) consume the next arg.
func reorderArgs(args []string) (flags, positional []string) {
	valueFlagSet := map[string]bool{
		"-log-file": true, "-log-level": true, "-seed": true, "-db": true,
		"-require": true, "-output": true, "-filter": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			if !strings.Contains(arg, "=") && valueFlagSet[arg] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}
