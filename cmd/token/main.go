// Command token issues bearer tokens for the task API's mutating routes.
// It reads the same configuration as the server, so TASKAPI_AUTH_JWT_SECRET
// must be set.
//
//	TASKAPI_AUTH_JWT_SECRET=... go run ./cmd/token -subject ci-bot
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/service/auth"
)

func main() {
	subject := flag.String("subject", "", "subject (sub claim) to embed in the token")
	header := flag.Bool("header", false, "print a full Authorization header value")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := issue(context.Background(), os.Stdout, cfg.Auth, *subject, *header); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}
}

func issue(ctx context.Context, out io.Writer, cfg config.AuthConfig, subject string, asHeader bool) error {
	if !cfg.Enabled() {
		return errors.New("authentication is disabled: no JWT secret configured")
	}

	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}

	token, err := svc.GenerateToken(ctx, subject)
	if err != nil {
		return err
	}

	if asHeader {
		token = "Bearer " + token
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
