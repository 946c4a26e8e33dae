package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Discover finds the sources selected by opts. It returns a sorted list of
// absolute paths without duplicates. Explicitly named files are kept even
// inside skipped directories.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		ctx:     ctx,
		workDir: workDir,
		opts:    opts,
		exts:    opts.effectiveExtensions(),
		skip:    opts.effectiveSkipDirs(),
		seen:    make(map[string]bool),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if info.IsDir() {
			if err := d.walk(abs); err != nil {
				return nil, err
			}
			continue
		}
		if d.matches(abs) {
			d.add(abs)
		}
	}

	sort.Strings(d.files)
	return d.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

type discoverer struct {
	ctx     context.Context
	workDir string
	opts    Options
	exts    []string
	skip    map[string]bool
	seen    map[string]bool
	files   []string
}

func (d *discoverer) add(p string) {
	if !d.seen[p] {
		d.seen[p] = true
		d.files = append(d.files, p)
	}
}

func (d *discoverer) rel(p string) string {
	r, err := filepath.Rel(d.workDir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(r)
}

// walk adds the sources under root. Hidden entries, skipped directories and
// excluded paths are not entered.
func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		name := entry.Name()
		if entry.IsDir() {
			if p != root && (strings.HasPrefix(name, ".") || d.skip[name] || d.excluded(d.rel(p))) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Inaccessible targets are skipped.
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not follow a symlinked root.
				return d.walk(target)
			}
		}

		if d.matches(p) {
			d.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// matches checks the extension, exclude and include criteria of a file.
func (d *discoverer) matches(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	found := false
	for _, e := range d.exts {
		if strings.ToLower(e) == ext {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	rel := d.rel(p)
	if d.excluded(rel) {
		return false
	}
	if len(d.opts.IncludeGlobs) == 0 {
		return true
	}
	return matchAny(rel, d.opts.IncludeGlobs)
}

func (d *discoverer) excluded(rel string) bool {
	return matchAny(rel, d.opts.ExcludeGlobs)
}

func matchAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

// MatchGlob matches a slash separated relative path against pattern. A
// "**" segment matches any number of segments. A pattern without a slash
// also matches the base name, so "*Test.java" selects tests anywhere.
func MatchGlob(pattern, rel string) bool {
	pattern = filepath.ToSlash(pattern)
	rel = filepath.ToSlash(rel)
	if !strings.Contains(pattern, "/") && pattern != "**" {
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(rel, "/"))
}

func matchSegments(pattern, segs []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(segs); i++ {
				if matchSegments(rest, segs[i:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], segs[0]); err != nil || !ok {
			return false
		}
		pattern, segs = pattern[1:], segs[1:]
	}
	return len(segs) == 0
}
