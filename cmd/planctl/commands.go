// README: planctl subcommands.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"voyage/internal/ai"
	"voyage/internal/config"
	"voyage/internal/infra"
	"voyage/internal/logger"
	"voyage/internal/modules/itinerary"
	"voyage/internal/service"
	"voyage/internal/types"
)

type requestFlags struct {
	destination string
	start       string
	end         string
	budget      float64
	travelers   int
	preferences []string
	style       string
	special     string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.destination, "destination", "d", "", "Destination (required)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.end, "end", "", "End date, YYYY-MM-DD (required)")
	cmd.Flags().Float64VarP(&f.budget, "budget", "b", 0, "Total budget in CNY (required)")
	cmd.Flags().IntVarP(&f.travelers, "travelers", "n", 1, "Number of travelers")
	cmd.Flags().StringSliceVarP(&f.preferences, "pref", "p", nil, "Preference tag, repeatable")
	cmd.Flags().StringVar(&f.style, "style", "", "Travel style")
	cmd.Flags().StringVar(&f.special, "special", "", "Special requirements")
	_ = cmd.MarkFlagRequired("destination")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("budget")
}

func (f *requestFlags) request() (itinerary.TravelRequest, error) {
	start, err := types.ParseDate(f.start)
	if err != nil {
		return itinerary.TravelRequest{}, fmt.Errorf("--start: %w", err)
	}
	end, err := types.ParseDate(f.end)
	if err != nil {
		return itinerary.TravelRequest{}, fmt.Errorf("--end: %w", err)
	}
	req := itinerary.TravelRequest{
		Destination:         f.destination,
		StartDate:           start,
		EndDate:             end,
		Budget:              f.budget,
		Travelers:           f.travelers,
		Preferences:         f.preferences,
		TravelStyle:         f.style,
		SpecialRequirements: f.special,
	}
	if err := req.Validate(); err != nil {
		return itinerary.TravelRequest{}, err
	}
	return req, nil
}

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "planctl",
		Short:         "Itinerary prompt, generation and validation tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level for stderr output")
	newLog := func() zerolog.Logger {
		return logger.NewWithWriter(os.Stderr, "planctl", logLevel)
	}

	root.AddCommand(newPromptCmd(), newGenerateCmd(newLog), newAnalyzeCmd(newLog), newValidateCmd())
	return root
}

func newPromptCmd() *cobra.Command {
	var f requestFlags
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the generation prompt for a request",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), itinerary.BuildPrompt(req))
			return err
		},
	}
	f.bind(cmd)
	return cmd
}

func newGenerateCmd(newLog func() zerolog.Logger) *cobra.Command {
	var (
		f       requestFlags
		mock    bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an itinerary; falls back to the mock generator on any model failure",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request()
			if err != nil {
				return err
			}
			log := newLog()
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var client ai.Client
			if !mock {
				var release func()
				client, release, err = llmClient(ctx, log)
				if err != nil {
					return err
				}
				defer release()
			}

			res, err := service.NewItineraryPlanner(client, nil, nil, log).Generate(ctx, req)
			if err != nil {
				return err
			}
			return writeIndented(cmd.OutOrStdout(), res)
		},
	}
	f.bind(cmd)
	cmd.Flags().BoolVar(&mock, "mock", false, "Skip the model and print the mock itinerary")
	cmd.Flags().DurationVar(&timeout, "timeout", 90*time.Second, "Model call timeout")
	return cmd
}

func newAnalyzeCmd(newLog func() zerolog.Logger) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Extract a travel request draft from free text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLog()
			var client ai.Client
			if !offline {
				c, release, err := llmClient(cmd.Context(), log)
				if err != nil {
					return err
				}
				defer release()
				client = c
			}
			res, err := service.NewRequirementAnalyzer(client, log).Analyze(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writeIndented(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "Use keyword matching only")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var extract bool
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate an itinerary JSON document read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				fh, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer fh.Close()
				in = fh
			}
			raw, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			candidate := string(raw)
			if extract {
				var ok bool
				candidate, ok = ai.ExtractJSON(&ai.Completion{Choices: []ai.Choice{{Message: ai.Message{Content: candidate}}}})
				if !ok {
					return errors.New("input is empty")
				}
			}

			it, err := itinerary.Validate(candidate)
			if err != nil {
				var fe *itinerary.FieldError
				if errors.As(err, &fe) {
					return fmt.Errorf("invalid at %s: %s", fe.Path, fe.Reason)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s, %d days, %d activities\n", it.Destination, len(it.DayPlans), countActivities(it))
			return nil
		},
	}
	cmd.Flags().BoolVar(&extract, "extract", false, "Treat input as raw model output and extract the JSON object first")
	return cmd
}

func llmClient(ctx context.Context, log zerolog.Logger) (ai.Client, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return infra.NewLLMClient(ctx, cfg.LLM, log)
}

func countActivities(it itinerary.Itinerary) int {
	n := 0
	for _, d := range it.DayPlans {
		n += len(d.Activities)
	}
	return n
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
