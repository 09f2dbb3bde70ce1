package relq

// CmpOp is a binary comparison operator.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

// ArithOp is a binary arithmetic operator over numeric operands.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
)

// Row is one decoded tuple: column name to value, as presented to
// expressions during Filter/Project evaluation. It carries the RID the
// row was read from, when known, so Delete/Update plans can act on it.
type Row struct {
	Values map[string]Value
	Rid    RID
	HasRid bool
}

// Expr is evaluated against a Row to produce a Value. Expr is the minimal
// bound expression tree this package needs to drive Filter/Project — it is
// not a general expression language and has no parser.
type Expr interface {
	Eval(row Row) (Value, error)
}

// Literal is a constant expression.
type Literal struct {
	Value Value
}

func (l Literal) Eval(Row) (Value, error) { return l.Value, nil }

// ColumnRef looks up a named column in the row being evaluated.
type ColumnRef struct {
	Name string
}

func (c ColumnRef) Eval(row Row) (Value, error) {
	v, ok := row.Values[c.Name]
	if !ok {
		return Value{}, WrapError(ErrTypeError, columnNotFoundError(c.Name))
	}
	return v, nil
}

// Compare is a binary comparison expression: Left <op> Right.
type Compare struct {
	Left  Expr
	Op    CmpOp
	Right Expr
}

func (c Compare) Eval(row Row) (Value, error) {
	lv, err := c.Left.Eval(row)
	if err != nil {
		return Value{}, err
	}
	rv, err := c.Right.Eval(row)
	if err != nil {
		return Value{}, err
	}
	if !lv.Valid || !rv.Valid {
		return NullValue(TypeBool), nil
	}
	if c.Op == CmpEq || c.Op == CmpNe {
		eq := lv.Equal(rv)
		if c.Op == CmpNe {
			eq = !eq
		}
		return BoolValue(eq), nil
	}
	cmp, ok := lv.Compare(rv)
	if !ok {
		return Value{}, WrapError(ErrTypeError, comparisonTypeError(lv.Type, rv.Type))
	}
	switch c.Op {
	case CmpLt:
		return BoolValue(cmp < 0), nil
	case CmpLe:
		return BoolValue(cmp <= 0), nil
	case CmpGt:
		return BoolValue(cmp > 0), nil
	case CmpGe:
		return BoolValue(cmp >= 0), nil
	default:
		return Value{}, WrapError(ErrTypeError, unknownCmpOpError(c.Op))
	}
}

// And is a short-circuiting logical AND over boolean operands.
type And struct {
	Left, Right Expr
}

func (a And) Eval(row Row) (Value, error) {
	lv, err := a.Left.Eval(row)
	if err != nil {
		return Value{}, err
	}
	if lv.Valid && !lv.B {
		return BoolValue(false), nil
	}
	rv, err := a.Right.Eval(row)
	if err != nil {
		return Value{}, err
	}
	if !lv.Valid || !rv.Valid {
		return NullValue(TypeBool), nil
	}
	return BoolValue(lv.B && rv.B), nil
}

// Or is a short-circuiting logical OR over boolean operands.
type Or struct {
	Left, Right Expr
}

func (o Or) Eval(row Row) (Value, error) {
	lv, err := o.Left.Eval(row)
	if err != nil {
		return Value{}, err
	}
	if lv.Valid && lv.B {
		return BoolValue(true), nil
	}
	rv, err := o.Right.Eval(row)
	if err != nil {
		return Value{}, err
	}
	if !lv.Valid || !rv.Valid {
		return NullValue(TypeBool), nil
	}
	return BoolValue(lv.B || rv.B), nil
}

// Arith is a binary arithmetic expression over Int/Float operands.
type Arith struct {
	Left  Expr
	Op    ArithOp
	Right Expr
}

func (a Arith) Eval(row Row) (Value, error) {
	lv, err := a.Left.Eval(row)
	if err != nil {
		return Value{}, err
	}
	rv, err := a.Right.Eval(row)
	if err != nil {
		return Value{}, err
	}
	if !lv.Valid || !rv.Valid {
		return NullValue(TypeFloat), nil
	}
	lf, lok := lv.Float()
	rf, rok := rv.Float()
	if !lok || !rok {
		return Value{}, WrapError(ErrTypeError, arithTypeError(lv.Type, rv.Type))
	}
	var out float64
	switch a.Op {
	case ArithAdd:
		out = lf + rf
	case ArithSub:
		out = lf - rf
	case ArithMul:
		out = lf * rf
	case ArithDiv:
		if rf == 0 {
			return Value{}, WrapError(ErrTypeError, divideByZeroError())
		}
		out = lf / rf
	}
	if lv.Type == TypeInt && rv.Type == TypeInt {
		return IntValue(int64(out)), nil
	}
	return FloatValue(out), nil
}

// Truthy reports whether a boolean Value should be treated as true for
// Filter purposes; null and non-bool values are not truthy.
func Truthy(v Value) bool {
	return v.Valid && v.Type == TypeBool && v.B
}
