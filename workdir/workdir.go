// Package workdir resolves the directory an assistant session is launched in
// and relativizes file paths against it.
package workdir

import (
	"os"
	"path/filepath"
	"strings"

	"agent-pane/config"
	"agent-pane/log"

	git "github.com/go-git/go-git/v5"
)

// ResolverFunc is a user-supplied working-directory resolver. It receives the
// buffer identifier and the absolute file path and returns the directory to
// launch in. Errors and empty results fall back to the process working
// directory.
type ResolverFunc func(bufferID, absPath string) (string, error)

// Resolver computes the launch directory for a file according to the
// configured policy.
type Resolver struct {
	// Policy is one of config.WorkDirCwd or config.WorkDirRepoRoot.
	// Ignored when Custom is set.
	Policy string
	// Custom, when non-nil, takes precedence over Policy.
	Custom ResolverFunc
}

// Resolve returns the directory to launch the assistant in for the given
// file. It never fails: every policy degrades to the process working
// directory.
func (r Resolver) Resolve(bufferID, absPath string) string {
	if r.Custom != nil {
		dir, err := r.Custom(bufferID, absPath)
		if err != nil {
			log.WarningLog.Printf("custom workdir resolver failed, falling back to cwd: %v", err)
			return processCwd()
		}
		if strings.TrimSpace(dir) == "" {
			log.WarningLog.Printf("custom workdir resolver returned empty result, falling back to cwd")
			return processCwd()
		}
		return dir
	}

	switch r.Policy {
	case config.WorkDirRepoRoot:
		if root, ok := repoRoot(filepath.Dir(absPath)); ok {
			return root
		}
		return processCwd()
	default:
		return processCwd()
	}
}

// repoRoot searches upward from dir for the enclosing repository and returns
// its work tree root. Handles both .git directories and .git files
// (worktrees and submodules).
func repoRoot(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repository: no work tree to launch in.
		return "", false
	}
	return wt.Filesystem.Root(), true
}

func processCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		log.ErrorLog.Printf("failed to get working directory: %v", err)
		return "."
	}
	return cwd
}

// Relativize strips the root prefix (and any leading separator) from absPath.
// A path that is not under root is returned unchanged; a path equal to root
// degenerates to its base name. Already-relative paths pass through, so the
// function is idempotent.
func Relativize(root, absPath string) string {
	if root == "" {
		return absPath
	}
	root = strings.TrimSuffix(root, string(filepath.Separator))
	if absPath == root {
		return filepath.Base(absPath)
	}
	if rel, ok := strings.CutPrefix(absPath, root+string(filepath.Separator)); ok {
		if rel == "" {
			return filepath.Base(absPath)
		}
		return rel
	}
	return absPath
}
