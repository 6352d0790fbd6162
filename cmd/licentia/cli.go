package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func run(args []string) int {
	if len(args) < 2 {
		usage(args)
		return 1
	}

	switch args[1] {
	case "fetch":
		return runFetch(args[2:])
	case "verify":
		return runVerify(args[2:])
	case "revoke":
		return runRevoke(args[2:])
	case "pubkey":
		return runPubkey(args[2:])
	}

	usage(args)
	return 1
}

func usage(args []string) {
	name := "licentia"
	if len(args) > 0 && args[0] != "" {
		name = filepath.Base(args[0])
	}
	fmt.Fprintf(os.Stderr, "usage:\n")
	fmt.Fprintf(os.Stderr, "  %s fetch --user <id> [--authority <url>] [--state-dir <dir>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s verify --pubkey-hex <hex> [--authority <url>] [--state-dir <dir>] [--grace-hours <n>] [--timeout-seconds <n>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s revoke --user <id> [--authority <url>] [--admin-key <key>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s pubkey [--authority <url>]\n", name)
}
