package adapter

import (
	"context"
	"testing"
)

const optionTestSource = `package org.apache.commons.cli;

import junit.framework.TestCase;

public class OptionTest extends TestCase {
    public void testClear() {
        Option option = new Option("x", true, "");
        assertEquals(0, option.getValuesList().size());
    }
}

class OptionTestHelper {}
`

func TestLocalJavaSourceAdapter_Parse(t *testing.T) {
	adapter := NewLocalJavaSourceAdapter()

	file, err := adapter.Parse(context.Background(), "OptionTest.java", []byte(optionTestSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if file.Package != "org.apache.commons.cli" {
		t.Fatalf("Parse() package = %q, want org.apache.commons.cli", file.Package)
	}

	qualified := file.QualifiedTypes()
	if len(qualified) != 2 || qualified[0] != "org.apache.commons.cli.OptionTest" || qualified[1] != "org.apache.commons.cli.OptionTestHelper" {
		t.Fatalf("QualifiedTypes() = %v", qualified)
	}
}

func TestLocalJavaSourceAdapter_Parse_DefaultPackage(t *testing.T) {
	adapter := NewLocalJavaSourceAdapter()

	file, err := adapter.Parse(context.Background(), "Dummy.java", []byte("public class Dummy {}\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if file.Package != "" {
		t.Fatalf("Parse() package = %q, want empty", file.Package)
	}

	if got := file.QualifiedTypes(); len(got) != 1 || got[0] != "Dummy" {
		t.Fatalf("QualifiedTypes() = %v, want [Dummy]", got)
	}
}

func TestLocalJavaSourceAdapter_Parse_InvalidSource(t *testing.T) {
	adapter := NewLocalJavaSourceAdapter()

	if _, err := adapter.Parse(context.Background(), "Broken.java", []byte("package foo;\n public class {")); err == nil {
		t.Fatalf("Parse() expected error for invalid source")
	}
}

func TestLocalJavaSourceAdapter_Parse_ContextCancellation(t *testing.T) {
	adapter := NewLocalJavaSourceAdapter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := adapter.Parse(ctx, "Dummy.java", []byte("class Dummy {}")); err == nil {
		t.Fatalf("Parse() expected error due to context cancellation")
	}
}
