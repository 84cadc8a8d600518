// Package rmp implements the Restricted Master Problem: the LP over
// currently generated route columns, one equality constraint per customer
// covering constraint, solved from scratch at every re-optimisation via
// gonum's simplex solver. Duals are recovered from the optimal basis since
// gonum's Simplex only returns the primal solution and objective value.
package rmp

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/mmghannam/scip-routing/pkg/apperror"
	"github.com/mmghannam/scip-routing/pkg/domain"
)

// Column is one route variable: its persisted name, the customer
// multiplicity vector that forms its covering-constraint coefficients, and
// its objective coefficient (travel cost, distances only).
type Column struct {
	Name   string
	Path   []int
	Cost   float64
	Coeffs map[int]int // customer -> occurrence count
	Fixed  bool        // upper bound fixed to zero by the branch-node event handler
}

// RMP holds the covering constraints (one per customer) and the growing set
// of priced columns.
type RMP struct {
	customers    []int
	customerRow  map[int]int
	columns      []*Column
	columnByName map[string]*Column
}

// New creates an RMP with one covering constraint per customer.
func New(customers []int) *RMP {
	r := &RMP{
		customers:    append([]int(nil), customers...),
		customerRow:  make(map[int]int, len(customers)),
		columnByName: make(map[string]*Column),
	}
	for i, c := range customers {
		r.customerRow[c] = i
	}
	return r
}

// AddColumn adds a new column to the RMP. The caller (the pricer's added-path
// registry) is responsible for ensuring at most one column per canonical
// path tuple is ever added.
func (r *RMP) AddColumn(col *Column) error {
	if _, exists := r.columnByName[col.Name]; exists {
		return apperror.New(apperror.CodeInvalidAlgorithm, fmt.Sprintf("column %s already exists in the RMP", col.Name))
	}
	r.columns = append(r.columns, col)
	r.columnByName[col.Name] = col
	return nil
}

// FixUB fixes a column's upper bound to zero, as performed by the
// branch-node event handler on entering a node.
func (r *RMP) FixUB(name string) error {
	col, ok := r.columnByName[name]
	if !ok {
		return apperror.New(apperror.CodeNotFound, fmt.Sprintf("column %s not found", name))
	}
	col.Fixed = true
	return nil
}

// Columns returns every column currently in the RMP, fixed or not.
func (r *RMP) Columns() []*Column {
	return r.columns
}

// ResetFixed clears every column's fixed-to-zero flag. The branch-and-bound
// driver calls this on entering each node before re-applying that node's own
// forbidden-edge fixings, since bound changes in branch-and-price are local
// to a node and must not leak across siblings.
func (r *RMP) ResetFixed() {
	for _, col := range r.columns {
		col.Fixed = false
	}
}

// Solution is the result of solving the RMP's LP relaxation.
type Solution struct {
	ObjVal float64
	Values map[string]float64 // column name -> LP value
	Duals  map[int]float64    // customer -> dual price on its covering constraint
}

// Solve builds the dense standard-form LP over the active (non-fixed)
// columns and solves it via simplex. Columns fixed to zero by the event
// handler are excluded from the active problem and reported at value 0.
func (r *RMP) Solve() (*Solution, error) {
	active := make([]*Column, 0, len(r.columns))
	for _, col := range r.columns {
		if !col.Fixed {
			active = append(active, col)
		}
	}
	if len(active) == 0 {
		return nil, apperror.New(apperror.CodeInfeasible, "RMP has no active columns")
	}

	m := len(r.customers)
	n := len(active)

	c := make([]float64, n)
	aData := make([]float64, m*n)
	for j, col := range active {
		c[j] = col.Cost
		for customer, count := range col.Coeffs {
			row, ok := r.customerRow[customer]
			if !ok {
				continue
			}
			aData[row*n+j] = float64(count)
		}
	}
	A := mat.NewDense(m, n, aData)

	b := make([]float64, m)
	for i := range b {
		b[i] = 1
	}

	optF, x, err := lp.Simplex(c, A, b, 0, nil)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInfeasible, "RMP LP relaxation is infeasible")
	}

	values := make(map[string]float64, len(r.columns))
	for _, col := range r.columns {
		values[col.Name] = 0
	}
	for j, col := range active {
		values[col.Name] = x[j]
	}

	duals, err := recoverDuals(A, c, x, m)
	if err != nil {
		return nil, err
	}
	dualsByCustomer := make(map[int]float64, m)
	for i, customer := range r.customers {
		dualsByCustomer[customer] = duals[i]
	}

	return &Solution{ObjVal: optF, Values: values, Duals: dualsByCustomer}, nil
}

// recoverDuals reconstructs shadow prices from the optimal basis: the m
// columns with x_j > tol (padded out to exactly m by lowest-index order on
// ties/degeneracy) form the basis matrix B; duals solve B^T y = c_B.
//
// The padding is a heuristic, not a true degenerate-basis pivot: it can pick
// a combination of columns that leaves B singular even though a non-singular
// basis exists among the candidates. SolveVec then fails and the caller sees
// that as an error on an otherwise LP-feasible node; it is not a proof the
// node's LP is infeasible and should not be pruned as such.
func recoverDuals(A *mat.Dense, c []float64, x []float64, m int) ([]float64, error) {
	_, n := A.Dims()

	type basicCol struct {
		idx   int
		value float64
	}
	var basic []basicCol
	for j := 0; j < n; j++ {
		if domain.IsPositive(x[j]) {
			basic = append(basic, basicCol{idx: j, value: x[j]})
		}
	}
	sort.Slice(basic, func(i, j int) bool { return basic[i].value > basic[j].value })
	if len(basic) > m {
		basic = basic[:m]
	}
	// Degenerate solutions may have fewer than m strictly positive
	// components; pad with the lowest-index remaining columns so B is square.
	used := make(map[int]bool, len(basic))
	for _, bc := range basic {
		used[bc.idx] = true
	}
	for j := 0; len(basic) < m && j < n; j++ {
		if !used[j] {
			basic = append(basic, basicCol{idx: j})
			used[j] = true
		}
	}
	if len(basic) < m {
		return nil, apperror.New(apperror.CodeInfeasible, "could not reconstruct a square basis from the optimal solution")
	}

	bData := make([]float64, m*m)
	cB := make([]float64, m)
	for col, bc := range basic {
		for row := 0; row < m; row++ {
			bData[row*m+col] = A.At(row, bc.idx)
		}
		cB[col] = c[bc.idx]
	}
	B := mat.NewDense(m, m, bData)

	var Bt mat.Dense
	Bt.CloneFrom(B.T())

	y := mat.NewVecDense(m, nil)
	if err := y.SolveVec(&Bt, mat.NewVecDense(m, cB)); err != nil {
		// A singular B here means the padding heuristic chose a degenerate
		// combination of columns, not that the LP itself is infeasible.
		return nil, apperror.Wrap(err, apperror.CodeAlgorithmError, "failed to solve for dual values from a padded basis (degenerate LP solution)")
	}

	duals := make([]float64, m)
	for i := 0; i < m; i++ {
		duals[i] = y.AtVec(i)
	}
	return duals, nil
}
