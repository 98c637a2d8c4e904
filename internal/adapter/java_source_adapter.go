package adapter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// JavaFile is the outline of a Java compilation unit.
type JavaFile struct {
	// Package is the declared package, empty for the default package.
	Package string
	// Types lists top-level class, interface and enum names in source order.
	Types []string
}

// QualifiedTypes returns Types prefixed with the package name.
func (f JavaFile) QualifiedTypes() []string {
	names := make([]string, 0, len(f.Types))

	for _, name := range f.Types {
		if f.Package != "" {
			name = f.Package + "." + name
		}

		names = append(names, name)
	}

	return names
}

// JavaSourceAdapter extracts the parts of Java test sources the suite
// management needs, delegating the grammar to tree-sitter.
type JavaSourceAdapter interface {
	// Parse outlines a Java source file.
	Parse(ctx context.Context, filename string, src []byte) (JavaFile, error)
}

// LocalJavaSourceAdapter provides a JavaSourceAdapter backed by tree-sitter.
type LocalJavaSourceAdapter struct{}

// NewLocalJavaSourceAdapter constructs a LocalJavaSourceAdapter.
func NewLocalJavaSourceAdapter() *LocalJavaSourceAdapter {
	return &LocalJavaSourceAdapter{}
}

// Parse builds a syntax tree for src and reads its package and top-level types.
func (a *LocalJavaSourceAdapter) Parse(ctx context.Context, filename string, src []byte) (JavaFile, error) {
	if err := ctx.Err(); err != nil {
		return JavaFile{}, err
	}

	// Parsers are not safe for concurrent use, so each call gets its own.
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return JavaFile{}, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return JavaFile{}, fmt.Errorf("failed to parse %s: syntax error", filename)
	}

	var file JavaFile

	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)

		switch node.Type() {
		case "package_declaration":
			file.Package = packageName(node, src)
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			if name := node.ChildByFieldName("name"); name != nil {
				file.Types = append(file.Types, name.Content(src))
			}
		}
	}

	return file, nil
}

func packageName(node *sitter.Node, src []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "scoped_identifier" || child.Type() == "identifier" {
			return child.Content(src)
		}
	}

	return ""
}
