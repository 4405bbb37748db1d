// Package config locates the files tk reads and writes besides its input:
// the style file and the per-source open/closed state.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DirName is the project-local configuration directory.
	DirName = ".tk"
	// StyleFile is the style file name inside a configuration directory.
	StyleFile = "style.yaml"
	// StyleEnv overrides style discovery when set.
	StyleEnv = "TK_STYLE"
)

// DiscoverStyle returns the style file to use when none was given on the
// command line. It checks $TK_STYLE, then .tk/style.yaml in dir and its
// parents up to the home directory, then tk/style.yaml in the user config
// directory.
func DiscoverStyle(dir string) (string, bool) {
	if p := os.Getenv(StyleEnv); p != "" {
		return expandHome(p), true
	}
	if p, ok := findUp(dir, filepath.Join(DirName, StyleFile)); ok {
		return p, true
	}
	if cfg, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(cfg, "tk", StyleFile)
		if isFile(p) {
			return p, true
		}
	}
	return "", false
}

// findUp walks up from dir looking for rel. It stops at the filesystem
// root and does not go above the home directory.
func findUp(dir, rel string) (string, bool) {
	home, _ := os.UserHomeDir()
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		p := filepath.Join(dir, rel)
		if isFile(p) {
			return p, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}

// StatePath returns where the open/closed state of the tree built from
// source is kept: a file in the user cache directory named after the
// source's absolute path. Stdin has no stable identity and gets no state.
func StatePath(source string) (string, bool) {
	if source == "" || source == "-" {
		return "", false
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", false
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256([]byte(abs))
	name := sanitize(filepath.Base(abs)) + "-" + hex.EncodeToString(sum[:6]) + ".json"
	return filepath.Join(cache, "tk", "state", name), true
}

// sanitize keeps a file name readable while dropping characters that are
// awkward in paths.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
