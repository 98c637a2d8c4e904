package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

func TestLocalCheckoutFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalCheckoutFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "OptionTest.java"), "class OptionTest {}\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "Child.java"), "class Child {}\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		if containsPath(visited, filepath.Join(nestedDir, "Child.java")) {
			t.Fatalf("Walk() unexpectedly visited nested file when recursive is false")
		}

		if !containsPath(visited, filepath.Join(root, "OptionTest.java")) {
			t.Fatalf("Walk() did not visit top-level file")
		}
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalCheckoutFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "Child.java")
		writeTestFile(t, child, "class Child {}\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		if !containsPath(visited, child) {
			t.Fatalf("Walk() did not visit nested file %s", child)
		}
	})
}

func TestLocalCheckoutFSAdapter_ExistsAndRemove(t *testing.T) {
	adapter := NewLocalCheckoutFSAdapter()

	dir := filepath.Join(t.TempDir(), "target")
	mustMkdir(t, dir)

	ok, err := adapter.Exists(m.Path(dir))
	if err != nil || !ok {
		t.Fatalf("Exists() = %v, %v; want true, nil", ok, err)
	}

	if err := adapter.RemoveAll(m.Path(dir)); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}

	ok, err = adapter.Exists(m.Path(dir))
	if err != nil || ok {
		t.Fatalf("Exists() after removal = %v, %v; want false, nil", ok, err)
	}

	if err := adapter.RemoveAll(m.Path(dir)); err != nil {
		t.Fatalf("RemoveAll() on missing path error = %v", err)
	}
}

func TestLocalCheckoutFSAdapter_CopyDirAndWriteFile(t *testing.T) {
	adapter := NewLocalCheckoutFSAdapter()

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dev_backup")

	nested := filepath.Join(src, "org", "apache")
	if err := adapter.WriteFile(m.Path(filepath.Join(nested, "OptionTest.java")), []byte("class OptionTest {}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	gitDir := filepath.Join(src, ".git")
	mustMkdir(t, gitDir)
	writeTestFile(t, filepath.Join(gitDir, "HEAD"), "ref: refs/heads/master\n")

	if err := adapter.CopyDir(m.Path(src), m.Path(dst)); err != nil {
		t.Fatalf("CopyDir() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "org", "apache", "OptionTest.java")); err != nil {
		t.Fatalf("CopyDir() did not copy nested file: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, ".git")); !os.IsNotExist(err) {
		t.Fatalf("CopyDir() copied .git, stat err = %v", err)
	}
}

func TestLocalCheckoutFSAdapter_MoveFile(t *testing.T) {
	adapter := NewLocalCheckoutFSAdapter()

	root := t.TempDir()
	src := filepath.Join(root, "kill.csv")
	dst := filepath.Join(root, "tools_output", "major", "G1", "kill.csv")
	writeTestFile(t, src, "MutantNo,Status\n1,LIVE\n")

	if err := adapter.MoveFile(m.Path(src), m.Path(dst)); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("MoveFile() left source behind, stat err = %v", err)
	}

	data, err := adapter.ReadFile(m.Path(dst))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(data) != "MutantNo,Status\n1,LIVE\n" {
		t.Fatalf("ReadFile() = %q", data)
	}
}

func TestLocalCheckoutFSAdapter_ReadDir(t *testing.T) {
	adapter := NewLocalCheckoutFSAdapter()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "b.txt"), "")
	writeTestFile(t, filepath.Join(root, "a.txt"), "")

	names, err := adapter.ReadDir(m.Path(root))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	if len(names) != 2 || names[0] != "a.txt" || names[1] != "b.txt" {
		t.Fatalf("ReadDir() = %v, want [a.txt b.txt]", names)
	}
}

func TestLocalCheckoutFSAdapter_ReadProperties(t *testing.T) {
	adapter := NewLocalCheckoutFSAdapter()

	path := filepath.Join(t.TempDir(), "defects4j.build.properties")
	writeTestFile(t, path, "#File automatically generated by Defects4J\n\n"+
		"d4j.classes.relevant=org.apache.commons.cli.Option\n"+
		"d4j.dir.src.tests = src/test\n"+
		"d4j.tests.trigger=org.apache.commons.cli.OptionTest::test=eq\n")

	props, err := adapter.ReadProperties(m.Path(path))
	if err != nil {
		t.Fatalf("ReadProperties() error = %v", err)
	}

	want := map[string]string{
		"d4j.classes.relevant": "org.apache.commons.cli.Option",
		"d4j.dir.src.tests":    "src/test",
		"d4j.tests.trigger":    "org.apache.commons.cli.OptionTest::test=eq",
	}

	for key, value := range want {
		if props[key] != value {
			t.Fatalf("ReadProperties()[%q] = %q, want %q", key, props[key], value)
		}
	}

	if len(props) != len(want) {
		t.Fatalf("ReadProperties() returned %d keys, want %d", len(props), len(want))
	}
}

func TestLocalCheckoutFSAdapter_ReadPropertiesSkipsLinesWithoutSeparator(t *testing.T) {
	adapter := NewLocalCheckoutFSAdapter()

	path := filepath.Join(t.TempDir(), ".defects4j.config")
	writeTestFile(t, path, "no separator here\npid=Cli\nvid=32f\n")

	props, err := adapter.ReadProperties(m.Path(path))
	if err != nil {
		t.Fatalf("ReadProperties() error = %v", err)
	}

	if len(props) != 2 || props["pid"] != "Cli" || props["vid"] != "32f" {
		t.Fatalf("ReadProperties() = %v", props)
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
