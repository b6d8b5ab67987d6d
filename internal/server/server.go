// Package server exposes a read-only HTTP view of the compiled schedule
// tables, serving each request from an atomically swapped snapshot of one
// full compile pass.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the table API server.
type StartOpts struct {
	DB      *gorm.DB
	Addr    string
	Refresh string // optional 5-field cron expression
	Out     io.Writer
}

// Start builds the initial snapshot and serves the API. It blocks until
// ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("server: db is required")
	}
	if opts.Addr == "" {
		opts.Addr = ":8472"
	}

	snap, err := BuildSnapshot(opts.DB)
	if err != nil {
		return fmt.Errorf("server: initial compile: %w", err)
	}
	h := &holder{snap: snap}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	registerRoutes(router, opts.DB, h)

	// Optional periodic refresh.
	var sched *cron.Cron
	if opts.Refresh != "" {
		sched = cron.New(cron.WithParser(cronParser))
		_, err := sched.AddFunc(opts.Refresh, func() {
			if snap, err := BuildSnapshot(opts.DB); err == nil {
				h.set(snap)
			}
		})
		if err != nil {
			return fmt.Errorf("server: refresh schedule %q: %w", opts.Refresh, err)
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:    opts.Addr,
		Handler: router,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownErr <- srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Table API listening on %s (%d schedule rows)\n", opts.Addr, len(snap.Rows))
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	// ErrServerClosed means Shutdown was invoked; its result says whether
	// the drain actually completed.
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// cronParser uses standard 5-field cron expressions (minute, hour, dom,
// month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
