package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"mutscore.dev/pkg/mutscore/internal/adapter"
	m "mutscore.dev/pkg/mutscore/internal/model"
)

const (
	fixtureClass   = "org.apache.commons.lang3.math.NumberUtils"
	fixturePackage = "org.apache.commons.lang3.math"
)

// fixture is a defects4j checkout of Lang 1f next to a student suite corpus.
type fixture struct {
	fs       adapter.CheckoutFSAdapter
	root     string
	checkout m.Path
	suites   m.Path
}

func writeFixtureFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func javaTest(pkg, name string) string {
	return "package " + pkg + ";\n\npublic class " + name + " {\n}\n"
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	root := t.TempDir()
	checkout := filepath.Join(root, "lang_1_fixed")
	suites := filepath.Join(root, "files")

	writeFixtureFile(t, filepath.Join(checkout, ".defects4j.config"), "#File automatically generated by Defects4J\npid=Lang\nvid=1f\n")
	writeFixtureFile(t, filepath.Join(checkout, "defects4j.build.properties"),
		"d4j.classes.relevant="+fixtureClass+"\nd4j.dir.src.tests=src/test/java\nd4j.tests.trigger=org.apache.commons.lang3.math.NumberUtilsTest::TestLang747\n")

	tests := filepath.Join(checkout, "src", "test", "java", "org", "apache", "commons", "lang3")
	writeFixtureFile(t, filepath.Join(tests, "math", "NumberUtilsTest.java"), javaTest(fixturePackage, "NumberUtilsTest"))
	writeFixtureFile(t, filepath.Join(tests, "StringUtilsTest.java"), javaTest("org.apache.commons.lang3", "StringUtilsTest"))

	for _, tool := range m.ToolNames() {
		dir := filepath.Join(suites, "lang_tests", tool)
		writeFixtureFile(t, filepath.Join(dir, "ana_rossi_G1_NumberUtilsTest.java"), javaTest(fixturePackage, "ana_rossi_G1_NumberUtilsTest"))
		writeFixtureFile(t, filepath.Join(dir, "bob_verdi_G2_NumberUtilsTest.java"), javaTest(fixturePackage, "bob_verdi_G2_NumberUtilsTest"))
		writeFixtureFile(t, filepath.Join(dir, "notes.txt"), "not a test\n")
	}

	writeFixtureFile(t, filepath.Join(suites, "lang_tests", "dummy", "LANG_DUMMY_TEST.java"), javaTest(fixturePackage, "LANG_DUMMY_TEST"))
	writeFixtureFile(t, filepath.Join(suites, "lang_tests", "relevant", "tests.txt"), "org.apache.commons.lang3.StringUtilsTest\n")

	return fixture{
		fs:       adapter.NewLocalCheckoutFSAdapter(),
		root:     root,
		checkout: m.Path(checkout),
		suites:   m.Path(suites),
	}
}

func (f fixture) load(t *testing.T) *Checkout {
	t.Helper()

	checkout, err := LoadCheckout(f.fs, f.checkout)
	require.NoError(t, err)

	return checkout
}

func (f fixture) suiteManager() *SuiteManager {
	return NewSuiteManager(f.fs, adapter.NewLocalJavaSourceAdapter(), f.suites)
}

func (f fixture) path(elem ...string) string {
	return filepath.Join(append([]string{string(f.checkout)}, elem...)...)
}

func (f fixture) toolDeps(runner adapter.ProcessRunnerAdapter) ToolDeps {
	return ToolDeps{
		FS:      f.fs,
		Runner:  runner,
		Scripts: adapter.NewLocalScriptSource(""),
	}
}

func pitXML(detected ...bool) string {
	doc := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<mutations>\n"
	for i, d := range detected {
		flag := "false"
		status := "SURVIVED"

		if d {
			flag = "true"
			status = "KILLED"
		}

		doc += "<mutation detected='" + flag + "' status='" + status + "' numberOfTestsRun='1'>" +
			"<sourceFile>NumberUtils.java</sourceFile><mutatedClass>" + fixtureClass + "</mutatedClass>" +
			"<mutatedMethod>toInt</mutatedMethod><methodDescription>(Ljava/lang/String;)I</methodDescription>" +
			"<lineNumber>" + string(rune('1'+i)) + "</lineNumber><mutator>MathMutator</mutator>" +
			"<index>1</index><block>0</block><description>replaced return</description></mutation>\n"
	}

	return doc + "</mutations>\n"
}
