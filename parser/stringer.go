package parser

import (
	"bytes"
	"strings"
)

// String() forms are used by the --ast flag and by tests; they produce
// a reparseable rendering with explicit grouping for expressions.

func (node *Module) String() string {
	stmts := []string{}
	for _, stmt := range node.Stmts {
		stmts = append(stmts, stmt.String())
	}
	return strings.Join(stmts, "\n")
}

// Statements

func (node *ExprStmt) String() string { return node.Expr.String() + ";" }

func (node *Block) String() string {
	var buf bytes.Buffer
	buf.WriteString("{ ")
	for _, stmt := range node.Stmts {
		buf.WriteString(stmt.String())
		buf.WriteString(" ")
	}
	buf.WriteString("}")
	return buf.String()
}

func (node *Var) String() string {
	var buf bytes.Buffer
	buf.WriteString("var ")
	buf.WriteString(node.Name.Lexeme)
	if node.Value != nil {
		buf.WriteString(" = ")
		buf.WriteString(node.Value.String())
	}
	buf.WriteString(";")
	return buf.String()
}

func (node *Fun) String() string {
	var buf bytes.Buffer
	buf.WriteString("fun ")
	buf.WriteString(node.Name.Lexeme)
	buf.WriteString("(")
	for i, param := range node.Params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(param.Lexeme)
	}
	buf.WriteString(") ")
	buf.WriteString(node.Body.String())
	return buf.String()
}

func (node *Return) String() string {
	if node.Expr == nil {
		return "return;"
	}
	return "return " + node.Expr.String() + ";"
}

func (node *Print) String() string { return "print " + node.Expr.String() + ";" }

func (node *While) String() string {
	var buf bytes.Buffer
	buf.WriteString("while (")
	buf.WriteString(node.Cond.String())
	buf.WriteString(") ")
	buf.WriteString(node.Body.String())
	return buf.String()
}

func (node *If) String() string {
	var buf bytes.Buffer
	buf.WriteString("if (")
	buf.WriteString(node.Cond.String())
	buf.WriteString(") ")
	buf.WriteString(node.Then.String())
	if node.Else != nil {
		buf.WriteString(" else ")
		buf.WriteString(node.Else.String())
	}
	return buf.String()
}

func (node *For) String() string {
	var buf bytes.Buffer
	buf.WriteString("for (")
	if node.Init != nil {
		buf.WriteString(node.Init.String())
	} else {
		buf.WriteString(";")
	}
	buf.WriteString(" ")
	if node.Cond != nil {
		buf.WriteString(node.Cond.String())
	}
	buf.WriteString("; ")
	if node.Step != nil {
		buf.WriteString(node.Step.String())
	}
	buf.WriteString(") ")
	buf.WriteString(node.Body.String())
	return buf.String()
}

// Expressions

func (node *Literal) String() string    { return node.Token.Lexeme }
func (node *Identifier) String() string { return node.Token.Lexeme }

func (node *Assign) String() string {
	return "(" + node.Name.Lexeme + " = " + node.Right.String() + ")"
}

func (node *Binary) String() string {
	return "(" + node.Left.String() + " " + node.Op.Lexeme + " " + node.Right.String() + ")"
}

func (node *Array) String() string {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, expr := range node.Exprs {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(expr.String())
	}
	buf.WriteString("]")
	return buf.String()
}

func (node *Record) String() string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, pair := range node.Pairs {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(pair.Key.Lexeme)
		buf.WriteString(": ")
		buf.WriteString(pair.Value.String())
	}
	buf.WriteString("}")
	return buf.String()
}

func writeArgs(buf *bytes.Buffer, args []Expr) {
	buf.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(arg.String())
	}
	buf.WriteString(")")
}

func (node *Call) String() string {
	var buf bytes.Buffer
	buf.WriteString(node.Callee.String())
	writeArgs(&buf, node.Args)
	return buf.String()
}

func (node *MethodCall) String() string {
	var buf bytes.Buffer
	buf.WriteString(node.Base.String())
	buf.WriteString("[")
	buf.WriteString(node.Key.String())
	buf.WriteString("]")
	writeArgs(&buf, node.Args)
	return buf.String()
}

func (node *Get) String() string {
	return node.Base.String() + "[" + node.Key.String() + "]"
}

func (node *Set) String() string {
	return "(" + node.Base.String() + "[" + node.Key.String() + "] = " + node.Value.String() + ")"
}
