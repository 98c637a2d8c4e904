package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"mutscore.dev/pkg/mutscore/internal/adapter"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

const (
	dummySuiteDir   = "dummy"
	relevantTestsTx = "relevant/tests.txt"
	javaExt         = ".java"
)

var (
	groupFilePattern   = regexp.MustCompile(`(?i)^[a-z]+_[a-z]+_([a-z0-9]+).*`)
	studentNamePattern = regexp.MustCompile(`^([a-zA-Z]+)_([a-zA-Z]+)_([a-zA-Z]\d+)`)
)

// SuiteManager swaps the test suite of a checkout between the developer
// tests, the per-tool student suites and the dummy suite.
type SuiteManager struct {
	fs   adapter.CheckoutFSAdapter
	java adapter.JavaSourceAdapter
	root m.Path
}

// NewSuiteManager creates a SuiteManager reading student suites below root.
func NewSuiteManager(fsAdapter adapter.CheckoutFSAdapter, java adapter.JavaSourceAdapter, root m.Path) *SuiteManager {
	return &SuiteManager{fs: fsAdapter, java: java, root: root}
}

// ProjectRoot is <root>/<project>_tests.
func (s *SuiteManager) ProjectRoot(c *Checkout) m.Path {
	return s.fs.JoinPath(string(s.root), strings.ToLower(c.Project)+"_tests")
}

// BackupTests moves the developer tests aside, unless a backup already exists.
func (s *SuiteManager) BackupTests(c *Checkout) error {
	ok, err := s.fs.Exists(c.BackupDir())
	if err != nil {
		return err
	}

	if ok {
		slog.Debug("backup already made", "path", c.BackupDir())
		return nil
	}

	if err := s.fs.MoveFile(c.TestDir, c.BackupDir()); err != nil {
		return fmt.Errorf("backup tests: %w", err)
	}

	slog.Debug("backed up tests", "path", c.BackupDir())

	return nil
}

// RestoreTests puts the developer tests back, replacing the active suite.
func (s *SuiteManager) RestoreTests(c *Checkout) error {
	ok, err := s.fs.Exists(c.BackupDir())
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("no backup found at %s", c.BackupDir())
	}

	if err := s.fs.RemoveAll(c.TestDir); err != nil {
		return err
	}

	if err := s.fs.MoveFile(c.BackupDir(), c.TestDir); err != nil {
		return fmt.Errorf("restore tests: %w", err)
	}

	slog.Info("restored tests", "path", c.TestDir)

	return nil
}

// SetToolSuite installs the student suite of kind, narrowed by opts.
func (s *SuiteManager) SetToolSuite(c *Checkout, kind m.ToolKind, opts m.SuiteOptions) error {
	return s.setDirSuite(c, s.fs.JoinPath(string(s.ProjectRoot(c)), kind.String()), opts)
}

// SetDummySuite installs the empty dummy test class as the only suite.
func (s *SuiteManager) SetDummySuite(c *Checkout) error {
	return s.setDirSuite(c, s.fs.JoinPath(string(s.ProjectRoot(c)), dummySuiteDir), m.SuiteOptions{})
}

// DummyTest is the fully qualified name of the dummy test class.
func (s *SuiteManager) DummyTest(c *Checkout) string {
	return c.Package + "." + strings.ToUpper(c.Project) + "_DUMMY_TEST"
}

func (s *SuiteManager) setDirSuite(c *Checkout, dir m.Path, opts m.SuiteOptions) error {
	if err := s.fs.RemoveAll(c.TestDir); err != nil {
		return err
	}

	if !opts.NoGroups {
		if err := s.copyGroups(c, dir, opts.Group); err != nil {
			return err
		}
	}

	switch {
	case opts.WithDev:
		return s.copyDevTests(c)
	case opts.WithSingleDev:
		return s.copyDevTest(c, c.TestClass)
	case opts.WithRelevantDev:
		tests, err := s.RelevantTests(c)
		if err != nil {
			return err
		}

		for _, test := range tests {
			if err := s.copyDevTest(c, test); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *SuiteManager) copyGroups(c *Checkout, dir m.Path, group string) error {
	if group == "" {
		slog.Debug("installing every group", "src", dir, "dst", c.FullTestDir)
		return s.fs.CopyDir(dir, c.FullTestDir)
	}

	names, err := s.fs.ReadDir(dir)
	if err != nil {
		return err
	}

	wanted := strings.ToUpper(group)

	var found, matches []string

	for _, name := range names {
		if match := groupFilePattern.FindStringSubmatch(name); match != nil {
			found = append(found, match[1])
		}

		if strings.Contains(name, wanted) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 1:
	case 0:
		return fmt.Errorf("%w: no match found for %s. Found [%s]", m.ErrNoMatchingGroup, wanted, strings.Join(found, ", "))
	default:
		return fmt.Errorf("%w: more than one match found for %s: [%s]", m.ErrNoMatchingGroup, wanted, strings.Join(matches, ", "))
	}

	slog.Debug("installing group", "group", wanted, "file", matches[0])

	return s.fs.CopyFile(s.fs.JoinPath(string(dir), matches[0]), s.fs.JoinPath(string(c.FullTestDir), matches[0]))
}

func (s *SuiteManager) copyDevTests(c *Checkout) error {
	ok, err := s.fs.Exists(c.BackupDir())
	if err != nil {
		return err
	}

	if !ok {
		slog.Error("dev tests do not exist, run backup first", "path", c.BackupDir())
		return nil
	}

	if err := s.fs.CopyDir(c.BackupDir(), c.TestDir); err != nil {
		return err
	}

	slog.Info("dev tests copied", "dst", c.TestDir)

	return nil
}

// copyDevTest copies the backed-up test class name into the active suite.
func (s *SuiteManager) copyDevTest(c *Checkout, name string) error {
	rel := strings.ReplaceAll(name, ".", "/") + javaExt
	src := s.fs.JoinPath(string(c.BackupDir()), rel)
	dst := s.fs.JoinPath(string(c.TestDir), rel)

	slog.Debug("installing dev test", "src", src, "dst", dst)

	return s.fs.CopyFile(src, dst)
}

// RelevantTests lists the developer tests recorded as relevant for the project.
func (s *SuiteManager) RelevantTests(c *Checkout) ([]string, error) {
	file := s.fs.JoinPath(string(s.ProjectRoot(c)), relevantTestsTx)

	data, err := s.fs.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("missing relevant tests of %s: %w", c.Project, err)
	}

	return strings.Fields(string(data)), nil
}

// StudentGroups yields the group token of every well-formed suite file of kind.
func (s *SuiteManager) StudentGroups(c *Checkout, kind m.ToolKind) ([]string, error) {
	dir := s.fs.JoinPath(string(s.ProjectRoot(c)), kind.String())
	slog.Debug("parsing java files", "dir", dir)

	names, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var groups []string

	for _, name := range names {
		if filepath.Ext(name) != javaExt {
			continue
		}

		match := studentNamePattern.FindStringSubmatch(name)
		if match == nil {
			slog.Warn("invalid filename found", "file", name)
			continue
		}

		groups = append(groups, match[3])
	}

	return groups, nil
}

// Tests lists the test classes of the active suite as qualified names. The
// declared package wins over the directory layout when they disagree.
func (s *SuiteManager) Tests(ctx context.Context, c *Checkout) ([]string, error) {
	var tests []string

	err := s.fs.Walk(c.TestDir, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(path) != javaExt {
			return nil
		}

		rel, err := filepath.Rel(string(c.TestDir), path)
		if err != nil {
			return err
		}

		name := strings.ReplaceAll(strings.TrimSuffix(filepath.ToSlash(rel), javaExt), "/", ".")

		src, err := s.fs.ReadFile(m.Path(path))
		if err != nil {
			return err
		}

		file, err := s.java.Parse(ctx, path, src)
		if err != nil {
			slog.Debug("falling back to path-derived test name", "file", path, "error", err)
		} else if declared, ok := declaredTest(file, strings.TrimSuffix(filepath.Base(path), javaExt)); ok {
			name = declared
		}

		tests = append(tests, name)

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(tests)
	slog.Debug("found tests", "count", len(tests), "dir", c.TestDir)

	return tests, nil
}

// declaredTest finds the top-level type named after the file, qualified
// with the declared package.
func declaredTest(file adapter.JavaFile, base string) (string, bool) {
	for i, qualified := range file.QualifiedTypes() {
		if file.Types[i] == base {
			return qualified, true
		}
	}

	return "", false
}

// Clean removes compiled sources and tests.
func (s *SuiteManager) Clean(c *Checkout) error {
	ok, err := s.fs.Exists(c.Target())
	if err != nil {
		return err
	}

	if !ok {
		slog.Debug("project was already clean", "checkout", c.Path)
		return nil
	}

	slog.Debug("cleaned project", "checkout", c.Path)

	return s.fs.RemoveAll(c.Target())
}
