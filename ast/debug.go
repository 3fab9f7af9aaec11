package ast

import (
	"fmt"

	"github.com/nedanwr/kronos/internal/digest"
)

// Tag returns the discriminator name for a statement node, matching the
// tag vocabulary in the language's data model (Assign, If, For, ...).
func Tag(s Stmt) string {
	switch s.(type) {
	case *AssignStmt:
		return "Assign"
	case *AssignIndexStmt:
		return "AssignIndex"
	case *DeleteStmt:
		return "Delete"
	case *PrintStmt:
		return "Print"
	case *IfStmt:
		return "If"
	case *ForStmt:
		return "For"
	case *WhileStmt:
		return "While"
	case *FunctionStmt:
		return "Function"
	case *CallStmt:
		return "Call"
	case *ReturnStmt:
		return "Return"
	case *ImportStmt:
		return "Import"
	case *BreakStmt:
		return "Break"
	case *ContinueStmt:
		return "Continue"
	case *TryStmt:
		return "Try"
	case *RaiseStmt:
		return "Raise"
	default:
		return fmt.Sprintf("Unknown(%T)", s)
	}
}

// DebugLines renders one line per top-level statement, each naming its tag
// and source position — the minimum debug printer the parser's external
// interface promises downstream tooling. Import statements additionally
// carry their module fingerprint, so two debug dumps can be diffed for
// "did the imported module change" without printing the raw module name
// (and so a dedup cache can key on the fingerprint instead).
func (t *Tree) DebugLines() []string {
	if t == nil {
		return nil
	}
	lines := make([]string, len(t.Statements))
	for i, s := range t.Statements {
		p := s.Pos()
		if imp, ok := s.(*ImportStmt); ok {
			lines[i] = fmt.Sprintf("%d: %s @%d:%d module=%s", i, Tag(s), p.Line, p.Column,
				digest.ModuleFingerprint(imp.ModuleName))
			continue
		}
		lines[i] = fmt.Sprintf("%d: %s @%d:%d", i, Tag(s), p.Line, p.Column)
	}
	return lines
}
