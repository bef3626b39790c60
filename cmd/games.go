package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/desertthunder/sportshub/internal/formatter"
	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
	"github.com/desertthunder/sportshub/internal/tasks"
	"github.com/urfave/cli/v3"
)

// GamesLive lists live games for one sport or, with --all, every sport.
func (r *Runner) GamesLive(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	limit := r.liveLimit(cmd)

	if cmd.Bool("all") {
		return r.liveAcrossSports(ctx, format, limit, cmd.Int("workers"))
	}

	sport, err := sportFrom(cmd, r.config.UI.DefaultSport)
	if err != nil {
		return err
	}
	games, err := r.client.Sports.LiveGames(ctx, sport)
	if err != nil {
		return err
	}

	data, err := formatter.Games(format, sport, capGames(games, limit))
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

func (r *Runner) liveAcrossSports(ctx context.Context, format formatter.Format, limit, workers int) error {
	progress := make(chan tasks.ProgressUpdate, 2*len(shared.Sports))
	results, err := tasks.LiveAcrossSports(ctx, r.client.Sports, shared.Sports, workers, progress)
	close(progress)
	for update := range progress {
		r.logger.Debug("live games progress", "phase", update.Phase, "step", update.Step, "total", update.Total, "message", update.Message)
	}
	if err != nil {
		return err
	}

	var failed []error
	printed := 0
	for _, res := range results {
		if res.Err != nil {
			r.logger.Warn("failed to load live games", "sport", res.Sport, "error", res.Err)
			failed = append(failed, res.Err)
			continue
		}
		data, err := formatter.Games(format, res.Sport, capGames(res.Games, limit))
		if err != nil {
			return err
		}
		if printed > 0 && format != formatter.FormatCSV {
			r.writePlain("\n")
		}
		if err := r.writeBytes(data); err != nil {
			return err
		}
		printed++
	}

	if len(failed) == len(results) {
		return errors.Join(failed...)
	}
	return nil
}

// GamesWatch reprints live games on an interval until interrupted, or --count refreshes have run.
func (r *Runner) GamesWatch(ctx context.Context, cmd *cli.Command) error {
	sport, err := sportFrom(cmd, r.config.UI.DefaultSport)
	if err != nil {
		return err
	}
	interval := cmd.Duration("interval")
	if interval <= 0 {
		interval = r.config.UI.LiveRefresh
	}
	limit := r.liveLimit(cmd)
	count := int64(cmd.Int("count"))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runs atomic.Int64
	refresh := func(ctx context.Context) error {
		games, err := r.client.Sports.LiveGames(ctx, sport)
		if n := runs.Add(1); count > 0 && n >= count {
			defer stop()
		}
		if err != nil {
			r.writePlain("[%s] %s\n", time.Now().Format(time.TimeOnly), shared.UserMessage(err, "Failed to load live games"))
			return err
		}

		data, err := formatter.Games(formatter.FormatText, sport, capGames(games, limit))
		if err != nil {
			return err
		}
		r.writePlain("[%s] %s", time.Now().Format(time.TimeOnly), strings.TrimLeft(string(data), "\n"))
		return nil
	}

	repeater := tasks.NewRepeater("live-"+sport, interval, refresh, shared.WithLogger(r.logger, "sport", sport))
	repeater.Start(ctx)
	<-ctx.Done()
	repeater.Stop()

	status := repeater.Status()
	r.logger.Debug("watch finished", "runs", status.Runs, "last_error", status.LastError)
	return nil
}

func (r *Runner) liveLimit(cmd *cli.Command) int {
	if limit := cmd.Int("limit"); limit > 0 {
		return limit
	}
	return r.config.UI.LiveLimit
}

func capGames(games []models.Game, limit int) []models.Game {
	if limit > 0 && len(games) > limit {
		return games[:limit]
	}
	return games
}
