package headers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/xml2rst/internal/doxygen"
)

// collect walks the syntax tree in source order and records declarations.
func collect(root *sitter.Node, source []byte, symbols *doxygen.Symbols) {
	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "preproc_def", "preproc_function_def":
			name := extractNodeText(n.ChildByFieldName("name"), source)
			if name != "" && !isIncludeGuard(n, name, source) {
				symbols.Add(doxygen.KindMacro, name)
			}

		case "struct_specifier":
			if name := specifierName(n, source); name != "" {
				symbols.Add(doxygen.KindStruct, name)
			}

		case "enum_specifier":
			if name := specifierName(n, source); name != "" {
				symbols.Add(doxygen.KindEnum, name)
			}

		case "type_definition":
			for _, d := range declarators(n) {
				if name, _ := declaratorName(d, source); name != "" {
					symbols.Add(doxygen.KindTypedef, name)
				}
			}

		case "declaration":
			for _, d := range declarators(n) {
				if name, isFunc := declaratorName(d, source); isFunc && name != "" {
					symbols.Add(doxygen.KindFunction, name)
				}
			}

		case "function_definition":
			if name, isFunc := declaratorName(n.ChildByFieldName("declarator"), source); isFunc && name != "" {
				symbols.Add(doxygen.KindFunction, name)
			}
			// Nothing inside a body is part of the API.
			return false
		}
		return true
	})
}

// isIncludeGuard reports whether a valueless #define sits directly inside
// an #ifndef of the same name.
func isIncludeGuard(def *sitter.Node, name string, source []byte) bool {
	if def.Kind() != "preproc_def" || def.ChildByFieldName("value") != nil {
		return false
	}
	parent := def.Parent()
	if parent == nil || parent.Kind() != "preproc_ifdef" {
		return false
	}
	return extractNodeText(parent.ChildByFieldName("name"), source) == name
}

// namedWithBody returns the name of a struct or enum specifier that carries
// a body. Forward declarations and anonymous types yield "".
func namedWithBody(n *sitter.Node, source []byte) string {
	if n.ChildByFieldName("body") == nil {
		return ""
	}
	return extractNodeText(n.ChildByFieldName("name"), source)
}

// specifierName names a struct or enum specifier with a body. An anonymous
// one that is the type of a typedef takes the first typedef name, as in
// "typedef struct { ... } OBDataChunk, ob_data_chunk;".
func specifierName(n *sitter.Node, source []byte) string {
	if name := namedWithBody(n, source); name != "" {
		return name
	}
	if n.ChildByFieldName("body") == nil || n.ChildByFieldName("name") != nil {
		return ""
	}

	parent := n.Parent()
	if parent == nil || parent.Kind() != "type_definition" {
		return ""
	}
	typeNode := parent.ChildByFieldName("type")
	if typeNode == nil || typeNode.StartByte() != n.StartByte() || typeNode.EndByte() != n.EndByte() {
		return ""
	}

	ds := declarators(parent)
	if len(ds) == 0 {
		return ""
	}
	name, _ := declaratorName(ds[0], source)
	return name
}

// declarators returns the declarator children of a declaration or
// type_definition, skipping its type.
func declarators(n *sitter.Node) []*sitter.Node {
	typeNode := n.ChildByFieldName("type")

	var result []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(uint(i))
		if child == nil {
			continue
		}
		if typeNode != nil && child.StartByte() == typeNode.StartByte() && child.EndByte() == typeNode.EndByte() {
			continue
		}
		if isDeclaratorKind(child.Kind()) {
			result = append(result, child)
		}
	}
	return result
}

func isDeclaratorKind(kind string) bool {
	return kind == "identifier" || kind == "type_identifier" || strings.HasSuffix(kind, "_declarator")
}

// declaratorName digs the declared name out of a declarator. isFunc is true
// only when the name itself is declared as a function, not as a pointer to
// one.
func declaratorName(n *sitter.Node, source []byte) (name string, isFunc bool) {
	if n == nil {
		return "", false
	}

	switch n.Kind() {
	case "identifier", "type_identifier":
		return extractNodeText(n, source), false

	case "function_declarator":
		inner := n.ChildByFieldName("declarator")
		if inner != nil && inner.Kind() == "identifier" {
			return extractNodeText(inner, source), true
		}
		name, _ := declaratorName(inner, source)
		return name, false
	}

	if inner := n.ChildByFieldName("declarator"); inner != nil {
		return declaratorName(inner, source)
	}

	// parenthesized_declarator has no field; take the first declarator child.
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(uint(i))
		if child != nil && isDeclaratorKind(child.Kind()) {
			return declaratorName(child, source)
		}
	}
	return "", false
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for
// each node. Returning false from the visitor skips the node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}
