package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"licentia/internal/config"
	"licentia/internal/infra/authority"
	"licentia/internal/infra/statefile"
)

func runFetch(args []string) int {
	cfg := config.FromEnv()

	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var userID string
	var authorityURL string
	var stateDir string

	fs.StringVar(&userID, "user", "", "subject to request a trial for")
	fs.StringVar(&authorityURL, "authority", cfg.AuthorityURL, "authority base URL")
	fs.StringVar(&stateDir, "state-dir", cfg.StateDir, "directory for grant artifacts")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if userID == "" {
		fmt.Fprintln(os.Stderr, "fetch requires --user")
		return 1
	}

	client := authority.New(authorityURL, cfg.CheckTimeout())
	token, signatureHex, err := client.IssueGrant(context.Background(), userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "request grant: %v\n", err)
		return 1
	}

	store := statefile.New(stateDir)
	if err := store.WriteGrant(token, signatureHex); err != nil {
		fmt.Fprintf(os.Stderr, "write grant artifacts: %v\n", err)
		return 1
	}

	fmt.Printf("grant written for %s:\n", userID)
	fmt.Printf("  %s\n", statefile.TokenFile)
	fmt.Printf("  %s\n", statefile.SignatureFile)
	return 0
}
