package ast

import "github.com/nedanwr/kronos/internal/invariant"

// This file collects the node constructors the parser uses to build the
// tree. base is unexported, so every node is built through one of these
// rather than a struct literal naming the embedded field directly. Fields
// the grammar never leaves absent are asserted non-nil here — this catches
// a parser bug (a malformed tree reaching a caller) rather than malformed
// Kronos source, which is always rejected earlier through the error sink.
// Fields spec.md documents as genuinely optional (Slice.Start/End,
// Return.Value, Try.Finally, ...) are left unchecked.

func newBase(p Position) base { return base{Position: p} }

func NewNumberLit(p Position, value float64) *NumberLit {
	return &NumberLit{base: newBase(p), Value: value}
}

func NewStringLit(p Position, value string) *StringLit {
	return &StringLit{base: newBase(p), Value: value}
}

func NewBoolLit(p Position, value bool) *BoolLit {
	return &BoolLit{base: newBase(p), Value: value}
}

func NewNullLit(p Position) *NullLit {
	return &NullLit{base: newBase(p)}
}

func NewVarRef(p Position, name string) *VarRef {
	return &VarRef{base: newBase(p), Name: name}
}

func NewFString(p Position, parts []Expr) *FString {
	return &FString{base: newBase(p), Parts: parts}
}

func NewListLit(p Position, elements []Expr) *ListLit {
	return &ListLit{base: newBase(p), Elements: elements}
}

func NewMapLit(p Position, keys, values []Expr) *MapLit {
	return &MapLit{base: newBase(p), Keys: keys, Values: values}
}

func NewRangeLit(p Position, start, end, step Expr) *RangeLit {
	invariant.NotNil(start, "RangeLit.Start")
	invariant.NotNil(end, "RangeLit.End")
	return &RangeLit{base: newBase(p), Start: start, End: end, Step: step}
}

func NewBinaryExpr(p Position, op BinaryOp, left, right Expr) *BinaryExpr {
	invariant.NotNil(left, "BinaryExpr.Left")
	invariant.NotNil(right, "BinaryExpr.Right")
	return &BinaryExpr{base: newBase(p), Op: op, Left: left, Right: right}
}

func NewUnaryExpr(p Position, op UnaryOp, operand Expr) *UnaryExpr {
	invariant.NotNil(operand, "UnaryExpr.Operand")
	return &UnaryExpr{base: newBase(p), Op: op, Operand: operand}
}

func NewIndexExpr(p Position, list, index Expr) *IndexExpr {
	invariant.NotNil(list, "IndexExpr.List")
	invariant.NotNil(index, "IndexExpr.Index")
	return &IndexExpr{base: newBase(p), List: list, Index: index}
}

// NewSliceExpr only asserts List non-nil: Start/End are documented as
// representable-but-absent (spec.md §3's "Slice" invariant), so neither is
// checked here.
func NewSliceExpr(p Position, list, start, end Expr) *SliceExpr {
	invariant.NotNil(list, "SliceExpr.List")
	return &SliceExpr{base: newBase(p), List: list, Start: start, End: end}
}

func NewCallExpr(p Position, name string, args []Expr) *CallExpr {
	return &CallExpr{base: newBase(p), Name: name, Args: args}
}

func NewAssignStmt(p Position, name string, value Expr, mutable bool, typeName string) *AssignStmt {
	invariant.NotNil(value, "AssignStmt.Value")
	return &AssignStmt{base: newBase(p), Name: name, Value: value, IsMutable: mutable, TypeName: typeName}
}

func NewAssignIndexStmt(p Position, target *VarRef, index, value Expr) *AssignIndexStmt {
	invariant.NotNil(target, "AssignIndexStmt.Target")
	invariant.NotNil(index, "AssignIndexStmt.Index")
	invariant.NotNil(value, "AssignIndexStmt.Value")
	return &AssignIndexStmt{base: newBase(p), Target: target, Index: index, Value: value}
}

func NewDeleteStmt(p Position, target *VarRef, key Expr) *DeleteStmt {
	invariant.NotNil(target, "DeleteStmt.Target")
	invariant.NotNil(key, "DeleteStmt.Key")
	return &DeleteStmt{base: newBase(p), Target: target, Key: key}
}

func NewPrintStmt(p Position, value Expr) *PrintStmt {
	invariant.NotNil(value, "PrintStmt.Value")
	return &PrintStmt{base: newBase(p), Value: value}
}

func NewIfStmt(p Position, cond Expr, block Block, elseIfs []ElseIf, elseBlock Block) *IfStmt {
	invariant.NotNil(cond, "IfStmt.Cond")
	return &IfStmt{base: newBase(p), Cond: cond, Block: block, ElseIfs: elseIfs, Else: elseBlock}
}

func NewForStmt(p Position, v string, iterable Expr, isRange bool, end, step Expr, block Block) *ForStmt {
	invariant.NotNil(iterable, "ForStmt.Iterable")
	return &ForStmt{base: newBase(p), Var: v, Iterable: iterable, IsRange: isRange, End: end, Step: step, Block: block}
}

func NewWhileStmt(p Position, cond Expr, block Block) *WhileStmt {
	invariant.NotNil(cond, "WhileStmt.Cond")
	return &WhileStmt{base: newBase(p), Cond: cond, Block: block}
}

func NewFunctionStmt(p Position, name string, params []string, block Block) *FunctionStmt {
	return &FunctionStmt{base: newBase(p), Name: name, Params: params, Block: block}
}

func NewCallStmt(p Position, call *CallExpr) *CallStmt {
	invariant.NotNil(call, "CallStmt.Call")
	return &CallStmt{base: newBase(p), Call: call}
}

func NewReturnStmt(p Position, value Expr) *ReturnStmt {
	return &ReturnStmt{base: newBase(p), Value: value}
}

func NewImportStmt(p Position, module, filePath string, names []string, isFrom bool) *ImportStmt {
	return &ImportStmt{base: newBase(p), ModuleName: module, FilePath: filePath, Names: names, IsFromImport: isFrom}
}

func NewBreakStmt(p Position) *BreakStmt { return &BreakStmt{base: newBase(p)} }

func NewContinueStmt(p Position) *ContinueStmt { return &ContinueStmt{base: newBase(p)} }

func NewTryStmt(p Position, tryBlock Block, catches []CatchClause, finally Block) *TryStmt {
	return &TryStmt{base: newBase(p), TryBlock: tryBlock, Catches: catches, Finally: finally}
}

func NewRaiseStmt(p Position, errorType string, message Expr) *RaiseStmt {
	invariant.NotNil(message, "RaiseStmt.Message")
	return &RaiseStmt{base: newBase(p), ErrorType: errorType, Message: message}
}
