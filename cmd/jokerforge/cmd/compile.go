package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scarydoors/jokerforge/internal/export"
	"github.com/scarydoors/jokerforge/internal/gamevar"
	"github.com/scarydoors/jokerforge/internal/project"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a rules document into Lua fragments",
	Long: `Compile reads a rules document exported by the editor (a rule array, an
entity object or an array of entities) and prints the compiled fragments as
JSON. Use --select to pick the rules out of a larger project file.`,
	Args: cobra.NoArgs,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	f := compileCmd.Flags()
	f.String("rules", "", "rules document path (required)")
	f.String("select", "", "gjson path selecting rules or entities inside the document")
	f.String("prefix", "", "name prefix for pseudo-random draws (single entity only)")
	f.Bool("check", false, "compile every emitted fragment as Lua and fail on syntax errors")
	f.Bool("watch", false, "recompile whenever the rules document changes")
	f.String("out", "", "output file (default stdout)")
	f.String("namespace", gamevar.DefaultNamespace, "Lua table holding configuration variables")
	f.String("default-colour", "G.C.WHITE", "colour treated as no colour")
	f.Int("workers", 4, "entities compiled in parallel")
	_ = compileCmd.MarkFlagRequired("rules")
}

func runCompile(cmd *cobra.Command, args []string) error {
	rulesPath, _ := cmd.Flags().GetString("rules")
	selectPath, _ := cmd.Flags().GetString("select")
	prefix, _ := cmd.Flags().GetString("prefix")
	check, _ := cmd.Flags().GetBool("check")
	watch, _ := cmd.Flags().GetBool("watch")
	outPath, _ := cmd.Flags().GetString("out")

	opts := export.Options{
		Resolver:      gamevar.NewResolver(nil, cfg.Compiler.Namespace),
		DefaultColour: cfg.Compiler.DefaultColour,
		NamePrefix:    prefix,
		Verify:        check || cfg.Compiler.VerifyOutput,
		MaxRules:      cfg.Server.MaxRules,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run := func() error {
		return compileFile(ctx, rulesPath, selectPath, opts, outPath, cmd.OutOrStdout())
	}

	if !watch {
		return run()
	}

	if err := run(); err != nil {
		logger.Error("compile failed", "rules", rulesPath, "error", err)
	}
	logger.Info("watching for changes", "rules", rulesPath)
	return project.Watch(ctx, rulesPath, project.DefaultDebounce,
		func() {
			if err := run(); err != nil {
				logger.Error("compile failed", "rules", rulesPath, "error", err)
				return
			}
			logger.Info("recompiled", "rules", rulesPath)
		},
		func(err error) { logger.Warn("watch error", "error", err) },
	)
}

// compileFile compiles every entity in the document at path and writes the
// JSON result. A single entity is written as an object, several as an array.
func compileFile(ctx context.Context, path, selectPath string, opts export.Options, outPath string, stdout io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rules: %w", err)
	}
	entities, err := project.Load(data, selectPath, project.KeyFromPath(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(entities) > 1 && opts.NamePrefix != "" {
		return fmt.Errorf("--prefix applies to a single entity, document has %d", len(entities))
	}

	outputs, err := export.CompileEntities(ctx, entities, opts, cfg.Compiler.Workers)
	if err != nil {
		return err
	}

	var result any = outputs
	if len(outputs) == 1 {
		result = outputs[0]
	}
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	encoded = append(encoded, '\n')

	if outPath == "" {
		_, err = stdout.Write(encoded)
		return err
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Debug("wrote output", "out", outPath, "entities", len(outputs))
	return nil
}
