// Package snapshot encodes a parsed ast.Tree into a canonical, deterministic
// byte form for golden tests and content hashing. It mirrors the
// canonicalization pattern used elsewhere in this toolchain for plan
// hashing: a union-by-Type struct walked once into CBOR, so that two trees
// built from equivalent source always encode identically regardless of the
// Go interface values' underlying concrete types or pointer identity.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/nedanwr/kronos/ast"
)

// Node is the canonical form of a single AST node (expression or
// statement). Type selects which of the remaining fields are meaningful;
// this keeps one flat, order-independent shape rather than one CBOR map
// variant per Go concrete type.
type Node struct {
	Type string

	// Literal payloads.
	Number float64 `cbor:",omitempty"`
	Text   string  `cbor:",omitempty"`
	Bool   bool    `cbor:",omitempty"`

	// Operators.
	Op string `cbor:",omitempty"`

	// Structural children, reused across node kinds.
	Left     *Node  `cbor:",omitempty"`
	Right    *Node  `cbor:",omitempty"`
	Parts    []Node `cbor:",omitempty"`
	Keys     []Node `cbor:",omitempty"`
	Values   []Node `cbor:",omitempty"`
	Start    *Node  `cbor:",omitempty"`
	End      *Node  `cbor:",omitempty"`
	Step     *Node  `cbor:",omitempty"`
	Index    *Node  `cbor:",omitempty"`
	Args     []Node `cbor:",omitempty"`
	Name     string `cbor:",omitempty"`
	Params   []string `cbor:",omitempty"`
	Value    *Node  `cbor:",omitempty"`
	Mutable  bool   `cbor:",omitempty"`
	TypeName string `cbor:",omitempty"`
	Target   *Node  `cbor:",omitempty"`
	Key      *Node  `cbor:",omitempty"`
	Cond     *Node  `cbor:",omitempty"`
	Block    []Node `cbor:",omitempty"`
	ElseIfs  []ElseIfNode `cbor:",omitempty"`
	Else     []Node `cbor:",omitempty"`
	Var      string `cbor:",omitempty"`
	IsRange  bool   `cbor:",omitempty"`
	FilePath string `cbor:",omitempty"`
	Names    []string `cbor:",omitempty"`
	IsFrom   bool   `cbor:",omitempty"`
	Catches  []CatchNode `cbor:",omitempty"`
	Finally  []Node `cbor:",omitempty"`
	ErrorType string `cbor:",omitempty"`
}

// ElseIfNode is the canonical form of a single `else if` clause.
type ElseIfNode struct {
	Cond  Node
	Block []Node
}

// CatchNode is the canonical form of a single `catch` clause.
type CatchNode struct {
	ErrorType string `cbor:",omitempty"`
	CatchVar  string `cbor:",omitempty"`
	Block     []Node `cbor:",omitempty"`
}

// Encode produces the canonical CBOR encoding of tree's statements.
func Encode(tree *ast.Tree) ([]byte, error) {
	var stmts []ast.Stmt
	if tree != nil {
		stmts = tree.Statements
	}
	nodes := make([]Node, 0, len(stmts))
	for _, s := range stmts {
		nodes = append(nodes, stmtNode(s))
	}
	return cbor.Marshal(nodes)
}

// Hash returns the hex-encoded SHA-256 digest of tree's canonical encoding,
// suitable for golden-file comparison or AST deduplication.
func Hash(tree *ast.Tree) (string, error) {
	enc, err := Encode(tree)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(enc)
	return hex.EncodeToString(sum[:]), nil
}

func exprNode(e ast.Expr) *Node {
	if e == nil {
		return nil
	}
	n := exprNodeValue(e)
	return &n
}

func exprNodeValue(e ast.Expr) Node {
	switch v := e.(type) {
	case *ast.NumberLit:
		return Node{Type: "Number", Number: v.Value}
	case *ast.StringLit:
		return Node{Type: "String", Text: v.Value}
	case *ast.BoolLit:
		return Node{Type: "Bool", Bool: v.Value}
	case *ast.NullLit:
		return Node{Type: "Null"}
	case *ast.VarRef:
		return Node{Type: "Var", Name: v.Name}
	case *ast.FString:
		return Node{Type: "FString", Parts: exprNodes(v.Parts)}
	case *ast.ListLit:
		return Node{Type: "List", Parts: exprNodes(v.Elements)}
	case *ast.MapLit:
		return Node{Type: "Map", Keys: exprNodes(v.Keys), Values: exprNodes(v.Values)}
	case *ast.RangeLit:
		return Node{Type: "Range", Start: exprNode(v.Start), End: exprNode(v.End), Step: exprNode(v.Step)}
	case *ast.BinaryExpr:
		return Node{Type: "BinOp", Op: v.Op.String(), Left: exprNode(v.Left), Right: exprNode(v.Right)}
	case *ast.UnaryExpr:
		return Node{Type: "BinOp", Op: v.Op.String(), Left: exprNode(v.Operand)}
	case *ast.IndexExpr:
		return Node{Type: "Index", Left: exprNode(v.List), Index: exprNode(v.Index)}
	case *ast.SliceExpr:
		return Node{Type: "Slice", Left: exprNode(v.List), Start: exprNode(v.Start), End: exprNode(v.End)}
	case *ast.CallExpr:
		return Node{Type: "Call", Name: v.Name, Args: exprNodes(v.Args)}
	default:
		return Node{Type: fmt.Sprintf("Unknown(%T)", e)}
	}
}

func exprNodes(exprs []ast.Expr) []Node {
	if exprs == nil {
		return nil
	}
	out := make([]Node, len(exprs))
	for i, e := range exprs {
		out[i] = exprNodeValue(e)
	}
	return out
}

func blockNodes(b ast.Block) []Node {
	if b == nil {
		return nil
	}
	out := make([]Node, len(b))
	for i, s := range b {
		out[i] = stmtNode(s)
	}
	return out
}

func stmtNode(s ast.Stmt) Node {
	switch v := s.(type) {
	case *ast.AssignStmt:
		return Node{Type: "Assign", Name: v.Name, Value: exprNode(v.Value), Mutable: v.IsMutable, TypeName: v.TypeName}
	case *ast.AssignIndexStmt:
		return Node{Type: "AssignIndex", Target: exprNode(v.Target), Index: exprNode(v.Index), Value: exprNode(v.Value)}
	case *ast.DeleteStmt:
		return Node{Type: "Delete", Target: exprNode(v.Target), Key: exprNode(v.Key)}
	case *ast.PrintStmt:
		return Node{Type: "Print", Value: exprNode(v.Value)}
	case *ast.IfStmt:
		n := Node{Type: "If", Cond: exprNode(v.Cond), Block: blockNodes(v.Block)}
		for _, ei := range v.ElseIfs {
			n.ElseIfs = append(n.ElseIfs, ElseIfNode{Cond: exprNodeValue(ei.Cond), Block: blockNodes(ei.Block)})
		}
		if v.Else != nil {
			n.Else = blockNodes(v.Else)
			if n.Else == nil {
				n.Else = []Node{}
			}
		}
		return n
	case *ast.ForStmt:
		return Node{
			Type: "For", Var: v.Var, Value: exprNode(v.Iterable), IsRange: v.IsRange,
			End: exprNode(v.End), Step: exprNode(v.Step), Block: blockNodes(v.Block),
		}
	case *ast.WhileStmt:
		return Node{Type: "While", Cond: exprNode(v.Cond), Block: blockNodes(v.Block)}
	case *ast.FunctionStmt:
		return Node{Type: "Function", Name: v.Name, Params: v.Params, Block: blockNodes(v.Block)}
	case *ast.CallStmt:
		n := exprNodeValue(v.Call)
		n.Type = "Call"
		return n
	case *ast.ReturnStmt:
		return Node{Type: "Return", Value: exprNode(v.Value)}
	case *ast.ImportStmt:
		return Node{Type: "Import", Name: v.ModuleName, FilePath: v.FilePath, Names: v.Names, IsFrom: v.IsFromImport}
	case *ast.BreakStmt:
		return Node{Type: "Break"}
	case *ast.ContinueStmt:
		return Node{Type: "Continue"}
	case *ast.TryStmt:
		n := Node{Type: "Try", Block: blockNodes(v.TryBlock)}
		for _, c := range v.Catches {
			n.Catches = append(n.Catches, CatchNode{ErrorType: c.ErrorType, CatchVar: c.CatchVar, Block: blockNodes(c.Block)})
		}
		if v.Finally != nil {
			n.Finally = blockNodes(v.Finally)
			if n.Finally == nil {
				n.Finally = []Node{}
			}
		}
		return n
	case *ast.RaiseStmt:
		return Node{Type: "Raise", ErrorType: v.ErrorType, Value: exprNode(v.Message)}
	default:
		return Node{Type: fmt.Sprintf("Unknown(%T)", s)}
	}
}
