package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drupkit/drupkit/internal/drupal"
)

// configDirCandidates are the directories probed relative to each ancestor
// while walking up. A Drupal tree usually keeps its export under config/sync;
// pointing drupkit directly at the export directory also works.
var configDirCandidates = []string{
	".",
	"config/sync",
	"sync",
}

// DetectConfigDir locates a Drupal configuration export directory by walking
// upward from start, probing each ancestor (and its usual config
// subdirectories) for core.extension.yml. It returns the absolute path of
// the first directory that has one, or ErrConfigDirNotDetected after
// reaching the filesystem root.
func DetectConfigDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		for _, candidate := range configDirCandidates {
			probe := filepath.Join(dir, candidate)
			marker := filepath.Join(probe, drupal.ExtensionFilename)
			if info, err := os.Stat(marker); err == nil && !info.IsDir() {
				return probe, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: searched %s and its parents for %s",
				ErrConfigDirNotDetected, start, drupal.ExtensionFilename)
		}
		dir = parent
	}
}

// DetectConfigDirOrCurrent is DetectConfigDir with the current working
// directory as the starting point.
func DetectConfigDirOrCurrent() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return DetectConfigDir(cwd)
}
