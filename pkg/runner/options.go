// Package runner discovers Java sources and rewrites them concurrently.
package runner

import "github.com/yaklabco/jrewrite/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process. Empty means the
	// working directory.
	Paths []string

	// WorkingDir resolves relative Paths and globs. Empty means the process
	// working directory.
	WorkingDir string

	// Extensions are the lower-case source extensions with leading dot.
	// Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths relative to
	// WorkingDir. Empty includes every source.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories. They merge the
	// ignore patterns of config and CLI.
	ExcludeGlobs []string

	// SkipDirs are directory names never entered, such as build output.
	// nil means DefaultSkipDirs(); an empty non-nil slice skips none.
	SkipDirs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs bounds the concurrent workers. 0 or negative means
	// runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the Java source extension.
func DefaultExtensions() []string {
	return []string{".java"}
}

// DefaultSkipDirs returns the build output directories of Maven, Gradle
// and common IDEs.
func DefaultSkipDirs() []string {
	return []string{"target", "build", "out", "bin", "node_modules"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveSkipDirs() map[string]bool {
	dirs := o.SkipDirs
	if dirs == nil {
		dirs = DefaultSkipDirs()
	}
	set := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		set[d] = true
	}
	return set
}
