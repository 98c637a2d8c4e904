package domain

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"mutscore.dev/pkg/mutscore/internal/adapter"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

const (
	defects4jConfigFile     = ".defects4j.config"
	defects4jPropertiesFile = "defects4j.build.properties"

	// BackupDirName is the sibling of the test directory holding the developer tests.
	BackupDirName = "dev_backup"
)

// CompatibleProjects are the defects4j projects with a student test corpus.
var CompatibleProjects = []string{"Cli", "Gson", "Lang"}

var versionPattern = regexp.MustCompile(`^(\d+)(\w+)$`)

// Checkout is a defects4j working copy of one project version.
type Checkout struct {
	Path          m.Path
	Project       string
	Bug           string
	Status        m.BugStatus
	RelevantClass string
	// Package is the package of RelevantClass.
	Package string
	// TestDir is the root of the test sources.
	TestDir m.Path
	// FullTestDir is TestDir joined with the package path.
	FullTestDir m.Path
	// TestClass is the developer test of RelevantClass, named <RelevantClass>Test.
	TestClass string
}

// LoadCheckout reads the defects4j metadata of the checkout at dir.
func LoadCheckout(fsAdapter adapter.CheckoutFSAdapter, dir m.Path) (*Checkout, error) {
	config, err := fsAdapter.ReadProperties(fsAdapter.JoinPath(string(dir), defects4jConfigFile))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", defects4jConfigFile, err)
	}

	checkout := &Checkout{Path: dir, Project: config["pid"]}

	if !slices.Contains(CompatibleProjects, checkout.Project) {
		return nil, fmt.Errorf("%w: %q. Use one of [%s]", m.ErrIncompatibleProject, checkout.Project, strings.Join(CompatibleProjects, ", "))
	}

	match := versionPattern.FindStringSubmatch(config["vid"])
	if match == nil {
		return nil, fmt.Errorf("invalid version id in %s: %q", defects4jConfigFile, config["vid"])
	}

	checkout.Bug = match[1]

	switch m.BugStatus(match[2]) {
	case m.BugBuggy, m.BugFixed:
		checkout.Status = m.BugStatus(match[2])
	default:
		return nil, fmt.Errorf("invalid bug status found in config (%s)", match[2])
	}

	props, err := fsAdapter.ReadProperties(fsAdapter.JoinPath(string(dir), defects4jPropertiesFile))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", defects4jPropertiesFile, err)
	}

	checkout.RelevantClass = props["d4j.classes.relevant"]
	if checkout.RelevantClass == "" {
		return nil, fmt.Errorf("%s: missing d4j.classes.relevant", defects4jPropertiesFile)
	}

	testDir := props["d4j.dir.src.tests"]
	if testDir == "" {
		return nil, fmt.Errorf("%s: missing d4j.dir.src.tests", defects4jPropertiesFile)
	}

	if i := strings.LastIndex(checkout.RelevantClass, "."); i >= 0 {
		checkout.Package = checkout.RelevantClass[:i]
	}

	checkout.TestDir = fsAdapter.JoinPath(string(dir), testDir)
	checkout.FullTestDir = fsAdapter.JoinPath(string(checkout.TestDir), strings.ReplaceAll(checkout.Package, ".", "/"))
	checkout.TestClass = checkout.RelevantClass + "Test"

	slog.Debug("checkout loaded", "checkout", checkout.String(), "relevant", checkout.RelevantClass)

	return checkout, nil
}

// BugID is the defects4j version id, e.g. "32f".
func (c *Checkout) BugID() string {
	return c.Bug + string(c.Status)
}

// BackupDir is where BackupTests moves the developer tests.
func (c *Checkout) BackupDir() m.Path {
	return m.Path(filepath.Join(filepath.Dir(string(c.TestDir)), BackupDirName))
}

// Target is the build output directory removed by a clean.
func (c *Checkout) Target() m.Path {
	return m.Path(filepath.Join(string(c.Path), "target"))
}

func (c *Checkout) String() string {
	return fmt.Sprintf("%s %s [fp: %s]", c.Project, c.BugID(), c.Path)
}
