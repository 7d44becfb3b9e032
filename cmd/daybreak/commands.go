package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd(log zerolog.Logger) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(log)
			if err != nil {
				return err
			}
			defer a.close()

			log.Info().Str("addr", addr).Msg("starting server")
			return a.server().Router().Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func newPlanCmd(log zerolog.Logger) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate today's schedule for one user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}

			a, err := buildApp(log)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			sc, err := a.planner.BuildScheduleContext(ctx, userID)
			if err != nil {
				return err
			}
			plan, err := a.planner.GenerateScheduleWithFallback(ctx, userID, sc)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id to plan for")
	return cmd
}

func newPlanAllCmd(log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "plan-all",
		Short: "Generate today's schedule for every user with open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(log)
			if err != nil {
				return err
			}
			defer a.close()

			results, err := a.batch.PlanAll(cmd.Context())
			if err != nil {
				return err
			}

			failures := 0
			for _, r := range results {
				if r.Err != nil {
					failures++
					log.Error().Err(r.Err).Str("user_id", r.UserID).Msg("planning failed")
					continue
				}
				log.Info().Str("user_id", r.UserID).Str("model_version", r.ModelVersion).Msg("planned")
			}
			log.Info().Int("total", len(results)).Int("failures", failures).Msg("batch complete")
			return nil
		},
	}
}
