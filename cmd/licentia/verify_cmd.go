package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"licentia/internal/config"
	"licentia/internal/domain"
	"licentia/internal/infra/authority"
	"licentia/internal/infra/statefile"
	"licentia/pkg/grant"
)

func runVerify(args []string) int {
	cfg := config.FromEnv()

	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var pubHex string
	var authorityURL string
	var stateDir string
	var graceHours int
	var timeoutSeconds int
	var offline bool

	fs.StringVar(&pubHex, "pubkey-hex", cfg.PublicKeyHex, "authority ed25519 public key hex")
	fs.StringVar(&authorityURL, "authority", cfg.AuthorityURL, "authority base URL")
	fs.StringVar(&stateDir, "state-dir", cfg.StateDir, "directory holding grant artifacts")
	fs.IntVar(&graceHours, "grace-hours", cfg.GracePeriodHours, "offline grace period in hours (0 disables)")
	fs.IntVar(&timeoutSeconds, "timeout-seconds", cfg.CheckTimeoutSeconds, "revocation check timeout")
	fs.BoolVar(&offline, "offline", false, "skip the online revocation check")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if pubHex == "" {
		fmt.Fprintln(os.Stderr, "verify requires --pubkey-hex or PUBLIC_KEY_HEX")
		return 1
	}
	pubKey, err := hex.DecodeString(pubHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid public key hex")
		return 1
	}

	store := statefile.New(stateDir)
	signed, err := store.LoadGrant()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		if errors.Is(err, domain.ErrArtifactMissing) {
			fmt.Fprintln(os.Stderr, "obtain a trial license first: licentia fetch --user <id>")
		}
		return 1
	}

	verifier := &grant.Verifier{
		PublicKey: pubKey,
		Stamp:     store,
		Grace:     time.Duration(graceHours) * time.Hour,
		Timeout:   time.Duration(timeoutSeconds) * time.Second,
	}
	if !offline {
		verifier.Checker = authority.New(authorityURL, verifier.Timeout)
	}

	result, err := verifier.Verify(context.Background(), signed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	fmt.Println("LICENSE VALID")
	fmt.Printf("  user: %s\n", result.Token.SubjectID)
	fmt.Printf("  days remaining: %d\n", result.DaysRemaining)
	switch result.Gate.State {
	case domain.GateOnlineVerified:
		fmt.Println("  verified online")
	case domain.GateGracePeriodActive:
		fmt.Printf("  offline grace period active (%d hours remaining)\n", result.Gate.HoursRemaining)
	}
	return 0
}
