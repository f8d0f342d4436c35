package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/courseforge/courseforge/internal/llm"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM request event log",
}

// withStore opens the event database for a subcommand and closes it after.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, repo store.EventRepo) error) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(context.Background(), s.EventRepo())
}

func rule(width int) string {
	return strings.Repeat("─", width)
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		return withStore(cmd, func(ctx context.Context, repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(events) == 0 {
				fmt.Println("No LLM requests recorded.")
				return nil
			}

			fmt.Printf("%-5s  %-19s  %-18s  %-28s  %6s  %6s  %7s  %s\n",
				"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
			fmt.Println(rule(104))
			for _, e := range events {
				ok := "✓"
				if !e.Success {
					ok = "✗"
				}
				fmt.Printf("%-5d  %-19s  %-18s  %-28s  %6d  %6d  %7d  %s\n",
					e.ID,
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					truncate(e.Purpose, 18),
					truncate(e.Model, 28),
					e.InputTokens,
					e.OutputTokens,
					e.LatencyMs,
					ok,
				)
			}
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response bodies for one event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withStore(cmd, func(ctx context.Context, repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(ctx, id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			fmt.Printf("ID:        %d\n", e.ID)
			fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Provider:  %s\n", e.Provider)
			fmt.Printf("Model:     %s\n", e.Model)
			fmt.Printf("Purpose:   %s\n", e.Purpose)
			fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Printf("Latency:   %dms\n", e.LatencyMs)
			fmt.Printf("Success:   %v\n", e.Success)
			if e.ErrorMessage != "" {
				fmt.Printf("Error:     %s\n", e.ErrorMessage)
			}

			for _, section := range []struct{ title, body string }{
				{"REQUEST", e.RequestBody},
				{"RESPONSE", e.ResponseBody},
			} {
				fmt.Println()
				fmt.Println(rule(60))
				fmt.Println(section.title)
				fmt.Println(rule(60))
				if section.body != "" {
					fmt.Println(section.body)
				} else {
					fmt.Println("(not captured)")
				}
			}
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate token usage, estimated cost, and generation outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, repo store.EventRepo) error {
			if err := printUsageByPurpose(ctx, repo); err != nil {
				return err
			}
			if err := printCostByModel(ctx, repo); err != nil {
				return err
			}
			return printGenerationOutcomes(ctx, repo)
		})
	},
}

func printUsageByPurpose(ctx context.Context, repo store.EventRepo) error {
	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No LLM usage recorded yet.")
		return nil
	}

	fmt.Println("Usage by Purpose")
	fmt.Println(rule(76))
	fmt.Printf("%-20s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Println(rule(76))

	var calls, in, out int
	for _, st := range stats {
		fmt.Printf("%-20s  %6d  %10d  %10d  %10d  %8d\n",
			truncate(st.Purpose, 20), st.Calls, st.InputTokens, st.OutputTokens,
			st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
		calls += st.Calls
		in += st.InputTokens
		out += st.OutputTokens
	}
	fmt.Println(rule(76))
	fmt.Printf("%-20s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, out, in+out)
	return nil
}

func printCostByModel(ctx context.Context, repo store.EventRepo) error {
	usage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}
	if len(usage) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Estimated Cost (USD)")
	fmt.Println(rule(76))
	fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n",
		"Model", "Calls", "Input", "Output", "Cost")
	fmt.Println(rule(76))

	var total float64
	var unknown []string
	for _, mu := range usage {
		cost := llm.LookupCost(mu.Model)
		if cost == nil {
			unknown = append(unknown, mu.Model)
			fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
				truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		total += c
		fmt.Printf("%-32s  %6d  %10d  %10d  %9s\n",
			truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
	}

	fmt.Println(rule(76))
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Printf("%-32s  %6s  %10s  %10s  %9s\n", label, "", "", "", formatCost(total))
	if len(unknown) > 0 {
		fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
	return nil
}

// printGenerationOutcomes summarizes per-endpoint success and how often
// normalization had to inject defaults.
func printGenerationOutcomes(ctx context.Context, repo store.EventRepo) error {
	events, err := repo.QueryGenerations(ctx, store.QueryOpts{})
	if err != nil {
		return fmt.Errorf("query generations: %w", err)
	}
	if len(events) == 0 {
		return nil
	}

	type outcome struct {
		calls     int
		succeeded int
		defaulted int
	}
	byEndpoint := make(map[string]*outcome)
	var order []string
	for _, e := range events {
		o := byEndpoint[e.Endpoint]
		if o == nil {
			o = &outcome{}
			byEndpoint[e.Endpoint] = o
			order = append(order, e.Endpoint)
		}
		o.calls++
		if e.Success {
			o.succeeded++
		}
		if e.DefaultsUsed {
			o.defaulted++
		}
	}

	fmt.Println()
	fmt.Println("Generation Outcomes")
	fmt.Println(rule(76))
	fmt.Printf("%-36s  %6s  %6s  %9s\n", "Endpoint", "Calls", "OK", "Defaulted")
	fmt.Println(rule(76))
	for _, endpoint := range order {
		o := byEndpoint[endpoint]
		fmt.Printf("%-36s  %6d  %6d  %9d\n",
			truncate(endpoint, 36), o.calls, o.succeeded, o.defaulted)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. course, assessment, chat)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
