package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/sportsfeed/internal/app"
	"github.com/riskibarqy/sportsfeed/internal/config"
	"github.com/riskibarqy/sportsfeed/internal/domain/requestaudit"
	"github.com/riskibarqy/sportsfeed/internal/platform/logging"
)

// refresh runs one guarded fetch cycle and prints the latest audits, for cron
// hosts that do not keep the api process running.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

type auditLine struct {
	ID            string    `json:"id"`
	APIID         int64     `json:"api_id"`
	RequestTypeID int64     `json:"request_type_id"`
	RequestedAt   time.Time `json:"requested_at"`
	ContentHash   string    `json:"content_hash"`
	ResponseCode  int       `json:"response_code"`
	Successful    bool      `json:"successful"`
}

type report struct {
	Refreshed bool        `json:"refreshed"`
	Error     string      `json:"error,omitempty"`
	Audits    []auditLine `json:"audits"`
}

func run(args []string, out io.Writer) int {
	flags := flag.NewFlagSet("refresh", flag.ContinueOnError)
	auditLimit := flags.Int("audits", 5, "number of recent audits to print")
	timeout := flags.Duration("timeout", time.Minute, "overall refresh timeout")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger := logging.NewJSONWriter(cfg.LogLevel, os.Stderr).With("service", cfg.ServiceName, "command", "refresh")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("close app", "error", err)
		}
	}()

	refreshed, refreshErr := application.Feed.Refresh(ctx)
	if refreshErr != nil {
		logger.Error("refresh failed", "error", refreshErr)
	}

	audits, err := application.Audits.List(context.WithoutCancel(ctx), requestaudit.Filter{
		APIID: &cfg.FootballDataAPIID,
		Limit: *auditLimit,
	})
	if err != nil {
		logger.Warn("list audits failed", "error", err)
	}
	result := buildReport(refreshed, refreshErr, audits)

	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logger.Error("write report", "error", err)
		return 1
	}

	if !result.Refreshed {
		return 1
	}
	return 0
}

func buildReport(refreshed bool, refreshErr error, audits []requestaudit.Audit) report {
	out := report{
		Refreshed: refreshed && refreshErr == nil,
		Audits:    make([]auditLine, 0, len(audits)),
	}
	if refreshErr != nil {
		out.Error = refreshErr.Error()
	}
	for _, a := range audits {
		out.Audits = append(out.Audits, auditLine{
			ID:            a.ID,
			APIID:         a.APIID,
			RequestTypeID: a.RequestTypeID,
			RequestedAt:   a.RequestedAt,
			ContentHash:   a.ContentHash,
			ResponseCode:  a.ResponseCode,
			Successful:    a.Successful,
		})
	}
	return out
}
