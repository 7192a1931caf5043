package e2e

import (
	"os"
	"testing"

	"github.com/miniapartment/e2e/tests/e2e/testutil"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutil.CleanupShared()
	os.Exit(code)
}
