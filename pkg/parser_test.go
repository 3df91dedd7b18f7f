package framing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *AST {
	t.Helper()

	toks, err := Tokenize(src)
	require.NoError(t, err)

	ast, err := Parse(toks)
	require.NoError(t, err, src)

	return ast
}

func TestParser(t *testing.T) {
	x := &Variable{Name: "x"}
	second := &Variable{Name: "second"}

	cases := []struct {
		data   string
		expect []Stmt
	}{
		{
			"",
			nil,
		},
		{
			"x*second + second/x*3;",
			[]Stmt{
				&ExprStmt{
					Span: Span{0, 10},
					Expr: &BinaryExpr{
						Span:      Span{0, 9},
						Operation: BinaryAddition,
						Op1: &BinaryExpr{
							Span:      Span{0, 3},
							Operation: BinaryMultiplication,
							Op1:       &VariableRef{Span{0, 1}, x},
							Op2:       &VariableRef{Span{2, 3}, second},
						},
						Op2: &BinaryExpr{
							Span:      Span{4, 9},
							Operation: BinaryMultiplication,
							Op1: &BinaryExpr{
								Span:      Span{4, 7},
								Operation: BinaryDivision,
								Op1:       &VariableRef{Span{4, 5}, second},
								Op2:       &VariableRef{Span{6, 7}, x},
							},
							Op2: &Constant{Span{8, 9}, 3},
						},
					},
				},
			},
		},
		{
			"(1 + 3) * 2;",
			[]Stmt{
				&ExprStmt{
					Span: Span{0, 8},
					Expr: &BinaryExpr{
						Span:      Span{0, 7},
						Operation: BinaryMultiplication,
						Op1: &BinaryExpr{
							Span:      Span{1, 4},
							Operation: BinaryAddition,
							Op1:       &Constant{Span{1, 2}, 1},
							Op2:       &Constant{Span{3, 4}, 3},
						},
						Op2: &Constant{Span{6, 7}, 2},
					},
				},
			},
		},
		{
			"1 - 2 - 3;",
			[]Stmt{
				&ExprStmt{
					Span: Span{0, 6},
					Expr: &BinaryExpr{
						Span:      Span{0, 5},
						Operation: BinarySubtraction,
						Op1: &BinaryExpr{
							Span:      Span{0, 3},
							Operation: BinarySubtraction,
							Op1:       &Constant{Span{0, 1}, 1},
							Op2:       &Constant{Span{2, 3}, 2},
						},
						Op2: &Constant{Span{4, 5}, 3},
					},
				},
			},
		},
		{
			"@x = -3;",
			[]Stmt{
				&AssignStmt{
					Span:  Span{0, 5},
					Var:   x,
					Value: &Constant{Span{3, 4}, -3},
				},
			},
		},
		{
			"if (x > 0) x;",
			[]Stmt{
				&IfStmt{
					Span: Span{0, 8},
					Cond: &BinaryExpr{
						Span:      Span{2, 5},
						Operation: BinaryGreater,
						Op1:       &VariableRef{Span{2, 3}, x},
						Op2:       &Constant{Span{4, 5}, 0},
					},
					Body: &ExprStmt{
						Span: Span{6, 8},
						Expr: &VariableRef{Span{6, 7}, x},
					},
				},
			},
		},
		{
			"if () { }",
			[]Stmt{
				&IfStmt{
					Span: Span{0, 5},
					Cond: &EmptyExpr{Span{2, 2}},
					Body: &BlockStmt{Span: Span{3, 5}},
				},
			},
		},
		{
			"{ x; { } }",
			[]Stmt{
				&BlockStmt{
					Span: Span{0, 6},
					Statements: []Stmt{
						&ExprStmt{Span{1, 3}, &VariableRef{Span{1, 2}, x}},
						&BlockStmt{Span: Span{3, 5}},
					},
				},
			},
		},
	}

	for _, c := range cases {
		ast := parse(t, c.data)

		toks, _ := Tokenize(c.data)
		expect := &BlockStmt{
			Span:       Span{0, len(toks)},
			Statements: c.expect,
		}

		assert.Equal(t, expect, ast.Root, c.data)
	}
}

func TestParserErrors(t *testing.T) {
	cases := []struct {
		data  string
		token string
		index int
	}{
		{"if (x > ) { x; }", ")", 4},
		{"a > b > c;", ">", 3},
		{"@x 1;", "1", 2},
		{"x; }", "}", 2},
		{"if x", "x", 1},
		{"@1 = 2;", "1", 1},
		{"x + ;", ";", 2},
		{"99999999999999999999;", "99999999999999999999", 0},
		{";", ";", 0},
	}

	for _, c := range cases {
		toks, err := Tokenize(c.data)
		require.NoError(t, err)

		_, err = Parse(toks)

		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr, c.data)
		require.NotNil(t, syntaxErr.Token, c.data)
		assert.Equal(t, c.token, syntaxErr.Token.Value, c.data)
		assert.Equal(t, c.index, syntaxErr.Index, c.data)
		assert.False(t, syntaxErr.Premature())
	}
}

func TestParserPrematureEnd(t *testing.T) {
	cases := []string{
		"x",
		"{ x;",
		"if (x > 0)",
		"@x = 1",
		"(1 + 2",
	}

	for _, data := range cases {
		toks, err := Tokenize(data)
		require.NoError(t, err)

		_, err = Parse(toks)

		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr, data)
		assert.True(t, syntaxErr.Premature(), data)
		assert.Equal(t, len(toks), syntaxErr.Index, data)
	}
}

func TestParserInterning(t *testing.T) {
	ast := parse(t, "@x = 1; x + x; if (x > 0) { x; }")
	require.Len(t, ast.Variables, 1)

	shared := ast.Variables["x"]
	stmts := ast.Root.Statements

	assign := stmts[0].(*AssignStmt)
	assert.Same(t, shared, assign.Var)

	sum := stmts[1].(*ExprStmt).Expr.(*BinaryExpr)
	assert.Same(t, shared, sum.Op1.(*VariableRef).Var)
	assert.Same(t, shared, sum.Op2.(*VariableRef).Var)

	ifStmt := stmts[2].(*IfStmt)
	assert.Same(t, shared, ifStmt.Cond.(*BinaryExpr).Op1.(*VariableRef).Var)

	inner := ifStmt.Body.(*BlockStmt).Statements[0].(*ExprStmt)
	assert.Same(t, shared, inner.Expr.(*VariableRef).Var)
}

func TestParserRunsDoNotShareVariables(t *testing.T) {
	toks, err := Tokenize("x;")
	require.NoError(t, err)

	p := NewParser(toks)
	first, err := p.Run()
	require.NoError(t, err)

	second, err := p.Run()
	require.NoError(t, err)

	assert.Equal(t, first.Variables["x"], second.Variables["x"])
	assert.NotSame(t, first.Variables["x"], second.Variables["x"])
}
