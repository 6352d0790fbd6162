package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"licentia/internal/config"
	"licentia/internal/infra/authority"
)

// runPubkey prints the authority's public key for provisioning. The key
// still has to be configured into consumers out of band; fetching it
// here over the network is a bootstrap convenience, not a trust anchor.
func runPubkey(args []string) int {
	cfg := config.FromEnv()

	fs := flag.NewFlagSet("pubkey", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var authorityURL string
	fs.StringVar(&authorityURL, "authority", cfg.AuthorityURL, "authority base URL")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	client := authority.New(authorityURL, cfg.CheckTimeout())
	key, err := client.PublicKey(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch public key: %v\n", err)
		return 1
	}
	fmt.Println(hex.EncodeToString(key))
	return 0
}
