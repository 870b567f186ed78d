package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"textproc/internal/config"
	"textproc/internal/core/domain/models"
	"textproc/internal/core/domain/ports"
	"textproc/internal/core/service"
	"textproc/internal/prompt"
)

// errProcessingFailed signals a nonzero exit after the envelope has already
// been written; it must not be printed a second time.
var errProcessingFailed = errors.New("processing failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errProcessingFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var taskName, text string

	cmd := &cobra.Command{
		Use:           "textproc",
		Short:         "Process text with a hosted language model",
		Long:          "textproc resolves a task to a prompt template, sends the filled prompt to a text-generation service, and prints a JSON result envelope on stdout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				// Configuration failures still produce a well-formed envelope.
				res := models.FailureResult(models.Task(taskName), text, err.Error())
				if emitErr := emit(cmd.OutOrStdout(), res); emitErr != nil {
					return emitErr
				}
				return errProcessingFailed
			}

			generator := service.CreateGenerator(cfg)

			var store ports.TemplateStore
			var tracker ports.UsageTracker
			if reg := service.CreateRegistry(cfg); reg != nil {
				store, tracker = reg, reg
			}

			res := Run(ctx, cfg, generator, store, tracker, text, models.Task(taskName))
			if err := emit(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Success {
				return errProcessingFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&taskName, "task", "", "task to perform (summarize, extract_key_points, classify)")
	cmd.Flags().StringVar(&text, "text", "", "text to process")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

// Run executes one processing invocation. Exposed for testing.
func Run(ctx context.Context, cfg *config.Config, generator ports.Generator, store ports.TemplateStore, tracker ports.UsageTracker, text string, task models.Task) models.Result {
	resolver := prompt.NewResolver(store)
	processor := service.NewProcessor(cfg, resolver, generator, tracker)
	return processor.Process(ctx, text, task)
}

// emit writes the pretty-printed envelope. Nothing else may be written to
// this stream; diagnostics go to stderr via the log package.
func emit(w io.Writer, res models.Result) error {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
