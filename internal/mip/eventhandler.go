package mip

import (
	"context"

	"github.com/mmghannam/scip-routing/internal/branch"
	"github.com/mmghannam/scip-routing/internal/rmp"
)

// ForbiddenEdgeFixer is the default NodeFocused event handler: on entering a
// node it resets every column's fixed-to-zero flag (bound changes are local
// to the node that set them) and re-fixes exactly the columns whose decoded
// path traverses one of the node's forbidden edges.
type ForbiddenEdgeFixer struct{}

// EventExec implements EventHandler.
func (ForbiddenEdgeFixer) EventExec(_ context.Context, event EventType, node *Node, r *rmp.RMP) error {
	if event != NodeFocused {
		return nil
	}

	r.ResetFixed()
	if len(node.Forbidden) == 0 {
		return nil
	}

	vars := make([]branch.ExistingVariable, 0, len(r.Columns()))
	for _, col := range r.Columns() {
		vars = append(vars, branch.ExistingVariable{Name: col.Name, Path: col.Path})
	}
	for _, name := range branch.VariablesToFix(vars, node.Forbidden) {
		if err := r.FixUB(name); err != nil {
			return err
		}
	}
	return nil
}
