package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clipforge/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the processing queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newQueueListCommand(ctx))
	cmd.AddCommand(newQueueRetryCommand(ctx))
	cmd.AddCommand(newQueueClearCommand(ctx))
	cmd.AddCommand(newQueueResetCommand(ctx))
	cmd.AddCommand(newQueueHealthCommand(ctx))
	return cmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queued jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var statuses []queue.Status
			for _, raw := range strings.Split(statusFilter, ",") {
				raw = strings.TrimSpace(raw)
				if raw == "" {
					continue
				}
				status, ok := queue.ParseStatus(raw)
				if !ok {
					return fmt.Errorf("unknown status %q", raw)
				}
				statuses = append(statuses, status)
			}

			jobs, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "queue is empty")
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				detail := job.ProgressMessage
				if job.Status == queue.StatusFailed && job.ErrorMessage != "" {
					detail = job.ErrorMessage
				}
				rows = append(rows, []string{
					strconv.FormatInt(job.ID, 10),
					job.VideoID,
					truncate(job.Title, 40),
					string(job.Status),
					strconv.Itoa(job.ClipCount),
					truncate(detail, 50),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Video", "Title", "Status", "Clips", "Detail"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&statusFilter, "status", "s", "", "Comma-separated status filter (pending, failed, ...)")
	return cmd
}

func newQueueRetryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry [job-id...]",
		Short: "Reset failed jobs back to pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid job id %q", arg)
				}
				ids = append(ids, id)
			}

			retried, err := store.RetryFailed(cmd.Context(), ids...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %d failed jobs to pending\n", retried)
			return nil
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var completedOnly bool
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove jobs from the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var removed int64
			switch {
			case completedOnly && failedOnly:
				return fmt.Errorf("use at most one of --completed and --failed")
			case completedOnly:
				removed, err = store.ClearCompleted(cmd.Context())
			case failedOnly:
				removed, err = store.ClearFailed(cmd.Context())
			default:
				removed, err = store.Clear(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d jobs\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&completedOnly, "completed", false, "Remove only completed jobs")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Remove only failed jobs")
	return cmd
}

func newQueueResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-stuck",
		Short: "Roll in-flight jobs back to their stage start",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			reset, err := store.ResetStuckProcessing(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %d stuck jobs\n", reset)
			return nil
		},
	}
}

func newQueueHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show queue database diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			colorize := writerIsTerminal(out)

			db, err := store.CheckHealth(cmd.Context())
			if err != nil {
				return err
			}
			kind := statusOK
			detail := "database is healthy"
			if !db.DatabaseReadable || !db.TableExists || !db.IntegrityCheck {
				kind = statusError
				detail = db.Error
				if detail == "" {
					detail = "database failed diagnostics"
				}
			}
			fmt.Fprintln(out, renderStatusLine("Database", kind, detail, colorize))
			fmt.Fprintln(out, renderStatusLine("Path", statusInfo, db.DBPath, colorize))

			summary, err := store.Health(cmd.Context())
			if err != nil {
				return err
			}
			rows := [][]string{
				{"Total", strconv.Itoa(summary.Total)},
				{"Pending", strconv.Itoa(summary.Pending)},
				{"Processing", strconv.Itoa(summary.Processing)},
				{"Completed", strconv.Itoa(summary.Completed)},
				{"Failed", strconv.Itoa(summary.Failed)},
			}
			fmt.Fprintln(out, renderTable([]string{"Jobs", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}

func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 3 || len(value) <= limit {
		return value
	}
	return value[:limit-3] + "..."
}
