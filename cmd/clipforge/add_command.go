package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var maxVideos int

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Enqueue a video or playlist for processing",
		Args:  cobra.ExactArgs(1),
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

			limit := cfg.Download.MaxVideos
			if maxVideos > 0 {
				limit = maxVideos
			}

			client := ctx.ytdlpClient(cfg)
			videos, err := client.ListVideos(cmd.Context(), strings.TrimSpace(args[0]), limit)
			if err != nil {
				return fmt.Errorf("list videos: %w", err)
			}
			if len(videos) == 0 {
				return errors.New("no videos found at the given URL")
			}

			var added, skipped int
			for _, video := range videos {
				existing, err := store.FindByVideoID(cmd.Context(), video.ID)
				if err != nil {
					return err
				}
				if existing != nil {
					skipped++
					continue
				}
				job, err := store.NewJob(cmd.Context(), video.URL(), video.ID, video.Title)
				if err != nil {
					return fmt.Errorf("enqueue %s: %w", video.ID, err)
				}
				added++
				fmt.Fprintf(cmd.OutOrStdout(), "queued %s as job %d\n", job.VideoID, job.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d videos (%d already queued)\n", added, skipped)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxVideos, "max-videos", 0, "Limit the number of playlist videos to enqueue")
	return cmd
}
