package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"licentia/internal/config"
	"licentia/internal/infra/authority"
)

func runRevoke(args []string) int {
	cfg := config.FromEnv()

	fs := flag.NewFlagSet("revoke", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var userID string
	var authorityURL string
	var adminKey string

	fs.StringVar(&userID, "user", "", "subject to revoke")
	fs.StringVar(&authorityURL, "authority", cfg.AuthorityURL, "authority base URL")
	fs.StringVar(&adminKey, "admin-key", cfg.AdminAPIKey, "admin API key, if the authority requires one")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if userID == "" {
		fmt.Fprintln(os.Stderr, "revoke requires --user")
		return 1
	}

	client := authority.New(authorityURL, cfg.CheckTimeout())
	if err := client.Revoke(context.Background(), userID, adminKey); err != nil {
		fmt.Fprintf(os.Stderr, "revoke: %v\n", err)
		return 1
	}

	fmt.Printf("trial revoked for %s\n", userID)
	return 0
}
