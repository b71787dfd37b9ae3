package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/cloudflare/tableflip"
	"go.uber.org/zap"

	"banexport/bot"
	"banexport/jobs"
	"banexport/poller"
	"banexport/state"
	"banexport/tracker"
	"banexport/webserver"
)

func main() {
	state.Setup()

	bot.Setup()

	if err := state.Discord.Open(); err != nil {
		state.Logger.Fatal("Error opening Discord session", zap.Error(err))
	}

	defer state.Discord.Close()

	if err := bot.RegisterCommands(); err != nil {
		state.Logger.Fatal("Error registering slash commands", zap.Error(err))
	}

	repo := tracker.NewFileRepository(state.Config.BattleMetrics.TrackFile)

	banPoller := poller.New(state.BM, repo, bot.NewForumPoster(), state.Logger.Named("poller"))

	if err := banPoller.Init(state.Context); err != nil {
		state.Logger.Fatal("Error loading ban cursor", zap.Error(err))
	}

	jobs.RegisterJob(&jobs.SessionReaper{Registry: state.Registry})
	jobs.RegisterJob(&jobs.BanPoll{Poller: banPoller})

	jobsCtx, stopJobs := context.WithCancel(state.Context)

	jobs.StartAllJobs(jobsCtx, state.Logger.Named("jobs"))

	defer func() {
		stopJobs()

		if err := banPoller.Flush(state.Context); err != nil {
			state.Logger.Error("Error flushing ban cursor", zap.Error(err))
		}
	}()

	r := webserver.CreateWebserver()

	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" {
		upg, _ := tableflip.New(tableflip.Options{})
		defer upg.Stop()

		go func() {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGHUP)
			for range sig {
				state.Logger.Info("Received SIGHUP, upgrading server")
				upg.Upgrade()
			}
		}()

		// Listen must be called before Ready
		ln, err := upg.Listen("tcp", ":"+strconv.Itoa(state.Config.Meta.Port))

		if err != nil {
			state.Logger.Fatal("Error binding to socket", zap.Error(err))
		}

		defer ln.Close()

		server := http.Server{
			ReadTimeout: 30 * time.Second,
			Handler:     r,
		}

		go func() {
			err := server.Serve(ln)
			if err != http.ErrServerClosed {
				state.Logger.Error("Server failed due to unexpected error", zap.Error(err))
			}
		}()

		if err := upg.Ready(); err != nil {
			state.Logger.Fatal("Error calling upg.Ready", zap.Error(err))
		}

		exit := make(chan os.Signal, 1)
		signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-upg.Exit():
		case <-exit:
		}
	} else {
		// Tableflip not supported
		state.Logger.Warn("Tableflip not supported on this platform, this is not a production-capable server.")

		go func() {
			err := http.ListenAndServe(":"+strconv.Itoa(state.Config.Meta.Port), r)

			if err != nil {
				state.Logger.Fatal("Error binding to socket", zap.Error(err))
			}
		}()

		exit := make(chan os.Signal, 1)
		signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)
		<-exit
	}

	state.Logger.Info("Shutting down")
}
