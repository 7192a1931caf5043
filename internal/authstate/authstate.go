// Package authstate persists per-role Playwright storage state (cookies and
// local storage) so suites can reuse a logged-in browser context instead of
// re-running the login flow for every test.
package authstate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
)

// Dir is where state files live, relative to the suite's working directory.
const Dir = "auth"

// Role names map to fixed state files.
const (
	RoleAdmin  = "admin"
	RoleRenter = "renter"
)

// Path returns the storage-state file path for a role.
func Path(role string) string {
	return filepath.Join(Dir, role+".json")
}

// Save captures a browser context's storage state into the role's file.
func Save(ctx playwright.BrowserContext, role string) (string, error) {
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		return "", fmt.Errorf("create auth state dir: %w", err)
	}
	path := Path(role)
	if _, err := ctx.StorageState(path); err != nil {
		return "", fmt.Errorf("save storage state for %s: %w", role, err)
	}
	return path, nil
}

// Exists reports whether a saved state file is present for the role.
func Exists(role string) bool {
	info, err := os.Stat(Path(role))
	return err == nil && !info.IsDir()
}

// ContextOptions returns browser context options that restore the role's
// saved state.
func ContextOptions(role string) playwright.BrowserNewContextOptions {
	return playwright.BrowserNewContextOptions{
		StorageStatePath: playwright.String(Path(role)),
	}
}

// Cleanup removes all saved state files. Missing files are not an error.
func Cleanup() error {
	for _, role := range []string{RoleAdmin, RoleRenter} {
		if err := os.Remove(Path(role)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove state for %s: %w", role, err)
		}
	}
	return nil
}
