package extreader

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

var (
	headCache     sync.Map // repo root path → commit ID
	toplevelCache sync.Map // dir path → repo root path
)

// gitRevParseHEAD returns the current HEAD commit ID for the given directory.
// Results are cached per repository root so that repeated calls from
// different manifest directories of the same repo avoid spawning redundant
// git processes.
func gitRevParseHEAD(dir string) (string, error) {
	root, err := gitToplevel(dir)
	if err != nil {
		// Fallback: run rev-parse without caching.
		return gitRevParseHEADUncached(dir)
	}

	if v, ok := headCache.Load(root); ok {
		return v.(string), nil
	}

	commit, err := gitRevParseHEADUncached(root)
	if err != nil {
		return "", err
	}
	headCache.Store(root, commit)
	return commit, nil
}

// gitToplevel returns the absolute path of the repository root.
// Results are cached because the repo root is the same for all
// subdirectories within a repository.
func gitToplevel(dir string) (string, error) {
	if v, ok := toplevelCache.Load(dir); ok {
		return v.(string), nil
	}

	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse --show-toplevel: %w", err)
	}
	root := strings.TrimSpace(string(out))
	toplevelCache.Store(dir, root)
	return root, nil
}

func gitRevParseHEADUncached(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse HEAD: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
