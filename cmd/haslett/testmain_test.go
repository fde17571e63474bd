package main

import (
	"os"
	"testing"

	"github.com/jonathan/haslett/internal/config"
)

// TestMain isolates the commands from the developer's user config.
func TestMain(m *testing.M) {
	config.UserConfigPath = func() string { return "" }
	os.Exit(m.Run())
}
