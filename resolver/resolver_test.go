package resolver_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagerfeuer/golox/ast"
	"github.com/lagerfeuer/golox/diag"
	"github.com/lagerfeuer/golox/lexer"
	"github.com/lagerfeuer/golox/parser"
	"github.com/lagerfeuer/golox/resolver"
)

func resolve(t *testing.T, source string) (resolver.Distances, *diag.Collector, bool) {
	t.Helper()

	tokens, ok := lexer.Scan(source, "test.lox", nil)
	require.True(t, ok)
	stmts, ok := parser.Parse(tokens, nil)
	require.True(t, ok)

	errs := &diag.Collector{}
	distances, ok := resolver.Resolve(stmts, errs)
	return distances, errs, ok
}

// Flattens distances into sorted "name:line:distance" entries.
func entries(distances resolver.Distances) []string {
	ret := make([]string, 0, len(distances))
	for e, d := range distances {
		var name string
		var line int
		switch e := e.(type) {
		case *ast.Variable:
			name, line = e.Name.Lexeme, e.Name.Line
		case *ast.Assign:
			name, line = e.Name.Lexeme, e.Name.Line
		case *ast.This:
			name, line = e.Keyword.Lexeme, e.Keyword.Line
		case *ast.Super:
			name, line = e.Keyword.Lexeme, e.Keyword.Line
		default:
			name = fmt.Sprintf("%T", e)
		}
		ret = append(ret, fmt.Sprintf("%v:%v:%v", name, line, d))
	}
	sort.Strings(ret)
	return ret
}

func TestResolveDistances(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "shadowing",
			source: "var a = 1;\n{ var a = 2; print a; }",
			want:   []string{"a:2:0"},
		},
		{
			name:   "globals are omitted",
			source: "var g = 1;\nfun f() { return g; }\nf();",
			want:   []string{},
		},
		{
			name: "closure",
			source: `fun outer() {
  var x = 1;
  fun inner() {
    return x;
  }
  return inner;
}`,
			want: []string{"inner:6:0", "x:4:1"},
		},
		{
			name:   "assignment",
			source: "{ var a;\n{ a = 1; } }",
			want:   []string{"a:2:1"},
		},
		{
			name:   "parameters share the body scope",
			source: "fun f(a) { return a; }",
			want:   []string{"a:1:0"},
		},
		{
			name:   "this",
			source: "class A { m() { return this; } }",
			want:   []string{"this:1:1"},
		},
		{
			name:   "super",
			source: "class A {}\nclass B < A { m() { return super.m; } }",
			want:   []string{"super:2:2"},
		},
		{
			name:   "this inside lambda",
			source: "class A { m() { return fun () { return this; }; } }",
			want:   []string{"this:1:2"},
		},
		{
			name:   "for loop variable",
			source: "for (var i = 0; i < 2; i = i + 1) {}",
			want:   []string{"i:1:0", "i:1:1", "i:1:1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distances, errs, ok := resolve(t, tt.source)
			require.True(t, ok, "errors: %v", errs.Messages())
			if diff := cmp.Diff(tt.want, entries(distances)); diff != "" {
				t.Errorf("distances mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		errors []string
	}{
		{
			name:   "redeclaration in block",
			source: "{ var a = 1; var a = 2; }",
			errors: []string{"Error at 'a': Variable 'a' already declared in this scope."},
		},
		{
			name:   "duplicate parameter",
			source: "fun f(a, a) {}",
			errors: []string{"Error at 'a': Variable 'a' already declared in this scope."},
		},
		{
			name:   "self reference in local initializer",
			source: "var a = 1; { var a = a; }",
			errors: []string{"Error at 'a': Variable cannot reference itself in initializer."},
		},
		{
			name:   "self reference in global initializer",
			source: "var a = a;",
			errors: []string{"Error at 'a': Variable cannot reference itself in initializer."},
		},
		{
			name:   "top level return",
			source: "return 1;",
			errors: []string{"Error at 'return': Cannot 'return' from top-level code."},
		},
		{
			name:   "break outside loop",
			source: "break;",
			errors: []string{"Error at 'break': Cannot 'break' outside of a loop."},
		},
		{
			name:   "break does not cross functions",
			source: "while (true) { fun f() { break; } }",
			errors: []string{"Error at 'break': Cannot 'break' outside of a loop."},
		},
		{
			name:   "this outside class",
			source: "fun f() { return this; }",
			errors: []string{"Error at 'this': Cannot use 'this' outside of a class."},
		},
		{
			name:   "this in static method",
			source: "class A { static s() { return this; } }",
			errors: []string{"Error at 'this': Cannot use 'this' in a static method."},
		},
		{
			name:   "this in lambda in static method",
			source: "class A { static s() { return fun () { return this; }; } }",
			errors: []string{"Error at 'this': Cannot use 'this' in a static method."},
		},
		{
			name:   "super outside class",
			source: "super.x;",
			errors: []string{"Error at 'super': Cannot use 'super' outside of a class."},
		},
		{
			name:   "super without superclass",
			source: "class A { m() { return super.m(); } }",
			errors: []string{"Error at 'super': Cannot use 'super' in a class with no superclass."},
		},
		{
			name:   "super in static method",
			source: "class A {}\nclass B < A { static s() { return super.m(); } }",
			errors: []string{"Error at 'super': Cannot use 'super' in a static method."},
		},
		{
			name:   "inherit from itself",
			source: "class A < A {}",
			errors: []string{"Error at 'A': A class cannot inherit from itself."},
		},
		{
			name:   "keeps going after an error",
			source: "break;\nreturn;",
			errors: []string{
				"Error at 'break': Cannot 'break' outside of a loop.",
				"Error at 'return': Cannot 'return' from top-level code.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs, ok := resolve(t, tt.source)
			assert.False(t, ok)
			assert.Equal(t, tt.errors, errs.Messages())
		})
	}
}

func TestResolveAccepts(t *testing.T) {
	for _, source := range []string{
		"var a = 1; var a = 2;",
		"var a = 1; var b = a;",
		"var a = 1; var a = a + 1;",
		"fun f() {} var f = f;",
		"while (true) { if (true) break; }",
		"class A { init() { return; } }",
		"class A { static make() { return A(); } }",
		"fun f() { return f; }",
		"var f = fun () { return f; };",
	} {
		t.Run(source, func(t *testing.T) {
			_, errs, ok := resolve(t, source)
			assert.True(t, ok, "errors: %v", errs.Messages())
		})
	}
}

func TestResolveErrorLocation(t *testing.T) {
	_, errs, _ := resolve(t, "var a;\n\nreturn a;")
	require.Len(t, errs.Diagnostics, 1)
	assert.Equal(t, diag.Diagnostic{
		File:    "test.lox",
		Line:    3,
		Message: "Error at 'return': Cannot 'return' from top-level code.",
	}, errs.Diagnostics[0])
}

func parse(t *testing.T, source string) []ast.Stmt {
	t.Helper()

	tokens, ok := lexer.Scan(source, "repl", nil)
	require.True(t, ok)
	stmts, ok := parser.Parse(tokens, nil)
	require.True(t, ok)
	return stmts
}

func TestResolveAcrossCalls(t *testing.T) {
	errs := &diag.Collector{}
	r := resolver.New(errs)

	require.True(t, r.Resolve(parse(t, "var a = 1;")))
	assert.True(t, r.Resolve(parse(t, "var a = a + 1;")), "a is defined by the earlier entry")
	assert.False(t, r.Resolve(parse(t, "var b = b;")))
	assert.True(t, r.HadError())

	// Globals of a rejected entry are not defined.
	assert.False(t, r.Resolve(parse(t, "var c = 1; return;")))
	assert.False(t, r.Resolve(parse(t, "var c = c;")))

	require.True(t, r.Resolve(parse(t, "{ var x; x = a; }")))
	assert.False(t, r.HadError(), "errors do not carry over to later calls")
	assert.Len(t, r.Distances(), 1, "distances are those of the last call")

	assert.Equal(t, []string{
		"Error at 'b': Variable cannot reference itself in initializer.",
		"Error at 'return': Cannot 'return' from top-level code.",
		"Error at 'c': Variable cannot reference itself in initializer.",
	}, errs.Messages())
}
