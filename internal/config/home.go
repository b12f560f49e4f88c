package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// homeDirName is the drupkit directory under the user's home.
const homeDirName = ".drupkit"

// envHome overrides the drupkit home location when set. Used by tests and
// by users who keep their kit state outside the home directory.
const envHome = "DRUPKIT_HOME"

// KitHome resolves the drupkit home directory. The DRUPKIT_HOME environment
// variable takes precedence over ~/.drupkit. The directory is not created;
// callers that write under it do that themselves.
func KitHome() (string, error) {
	if dir := os.Getenv(envHome); dir != "" {
		return filepath.Clean(dir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHomeNotFound, err)
	}
	return filepath.Join(home, homeDirName), nil
}
