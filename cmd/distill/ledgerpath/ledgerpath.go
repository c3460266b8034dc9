// Package ledgerpath resolves the on-disk location of the job ledger.
package ledgerpath

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvVar overrides the default ledger location when set.
const EnvVar = "DISTILL_LEDGER"

// Resolve returns the ledger path: the explicit flag value when non-empty,
// then $DISTILL_LEDGER, then ~/.distill/jobs.db with the parent directory
// created.
func Resolve(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}

	dir := filepath.Join(home, ".distill")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create %s: %w", dir, err)
	}

	return filepath.Join(dir, "jobs.db"), nil
}
