package sketchscript

// Expr is a node in an arithmetic expression tree. Trees are built bottom-up
// by the parser and never mutated afterwards.
type Expr interface {
	exprNode()
}

// NumberExpr is a numeric literal.
type NumberExpr float64

// VarExpr is a variable reference. The parser accepts any alphabetic token
// here, including statement keywords.
type VarExpr string

// BinaryExpr applies one of + - * / to two subtrees.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (NumberExpr) exprNode()  {}
func (VarExpr) exprNode()     {}
func (*BinaryExpr) exprNode() {}

// Condition compares two expressions with one of > < = !=.
type Condition struct {
	Left  Expr
	Op    string
	Right Expr
}
