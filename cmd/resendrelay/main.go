// Command resendrelay delivers mail through Resend in place of SMTP.
//
// Usage:
//
//	resendrelay send-test [-to address]   send the canned test message
//	resendrelay serve                     run the admin HTTP surface
//	resendrelay migrate                   apply the settings schema
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/resendrelay/internal/admin"
	"github.com/dmitrymomot/resendrelay/internal/config"
	"github.com/dmitrymomot/resendrelay/internal/relay"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "send-test", "serve", "migrate":
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	log, cleanup, err := relay.NewLogger(cfg)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "send-test":
		return sendTest(ctx, cfg, log, args[1:], stdout, stderr)
	case "serve":
		return serve(ctx, cfg, log)
	case "migrate":
		if err := relay.Migrate(ctx, cfg, log); err != nil {
			log.Error("migration failed", slog.String("error", err.Error()))
			return 1
		}
		return 0
	}
	return 2
}

func sendTest(ctx context.Context, cfg config.Config, log *slog.Logger, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("send-test", flag.ContinueOnError)
	fs.SetOutput(stderr)
	to := fs.String("to", cfg.AdminEmail, "recipient address (defaults to ADMIN_EMAIL)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	r, err := relay.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize", slog.String("error", err.Error()))
		return 1
	}
	defer r.Close()

	if err := relay.SendTest(ctx, r.Mailer, *to, stdout, stderr, log); err != nil {
		return 1
	}
	return 0
}

func serve(ctx context.Context, cfg config.Config, log *slog.Logger) int {
	r, err := relay.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize", slog.String("error", err.Error()))
		return 1
	}

	shutdown := []func(context.Context) error{func(context.Context) error {
		r.Close()
		return nil
	}}

	if cfg.CanarySchedule != "" {
		canary, err := relay.NewCanary(cfg.CanarySchedule, r.Mailer, cfg.AdminEmail, log)
		if err != nil {
			r.Close()
			log.Error("invalid canary schedule", slog.String("error", err.Error()))
			return 1
		}
		canary.Start()
		shutdown = append([]func(context.Context) error{func(ctx context.Context) error {
			select {
			case <-canary.Stop().Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}}, shutdown...)
	}

	h := admin.New(r.Store, r.Mailer, admin.WithLogger(log), admin.WithChecks(r.Checks))
	err = admin.Serve(ctx, admin.ServerConfig{
		Addr:            cfg.HTTPAddr,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, h.Router(), log, shutdown...)
	if err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: resendrelay <send-test [-to address] | serve | migrate>")
}
