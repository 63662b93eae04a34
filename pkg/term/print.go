package term

import (
	"strings"
)

// VarNamer maps variable indices to display names. A nil namer renders
// variables as u<n>.
type VarNamer func(int) (string, bool)

// infixOp maps interpretations of binary arithmetic operators to their
// canonical infix spelling.
var infixOp = map[Interpretation]string{
	IntPlus: "+", IntMinus: "-", IntMul: "*", IntDiv: "div", IntMod: "mod",
	IntLess: "<", IntLessEq: "<=", IntGreater: ">", IntGreaterEq: ">=",
	IntDivides: "divides",
	RatPlus:    "+", RatMinus: "-", RatMul: "*", RatDiv: "/",
	RatLess: "<", RatLessEq: "<=", RatGreater: ">", RatGreaterEq: ">=",
	RealPlus: "+", RealMinus: "-", RealMul: "*", RealDiv: "/",
	RealLess: "<", RealLessEq: "<=", RealGreater: ">", RealGreaterEq: ">=",
}

// TermString renders a term in the canonical form: numerals as their exact
// value, interpreted binary arithmetic infix with parentheses, unary minus
// prefixed, everything else prefix with parentheses, variables as the
// declared name or u<n>.
//
// Parameters:
//
//	t *Term: The term to render.
//	names VarNamer: Optional variable naming; nil renders u<n>.
//
// Returns:
//
//	string: The canonical string form.
func (sig *Signature) TermString(t *Term, names VarNamer) string {
	var sb strings.Builder
	sig.writeTerm(&sb, t, names)
	return sb.String()
}

func (sig *Signature) writeTerm(sb *strings.Builder, t *Term, names VarNamer) {
	if t.IsVar() {
		if names != nil {
			if n, ok := names(t.Var()); ok {
				sb.WriteString(n)
				return
			}
		}
		sb.WriteString("u")
		writeInt(sb, t.Var())
		return
	}
	sym := sig.Function(t.fn)
	if sym.Numeral != nil {
		sb.WriteString(sym.Numeral.RatString())
		return
	}
	if op, ok := infixOp[sym.Interp]; ok && len(t.args) == 2 {
		sb.WriteByte('(')
		sig.writeTerm(sb, t.args[0], names)
		sb.WriteByte(' ')
		sb.WriteString(op)
		sb.WriteByte(' ')
		sig.writeTerm(sb, t.args[1], names)
		sb.WriteByte(')')
		return
	}
	switch sym.Interp {
	case IntUnaryMinus, RatUnaryMinus, RealUnaryMinus:
		sb.WriteByte('-')
		sig.writeTerm(sb, t.args[0], names)
		return
	}
	sb.WriteString(sym.Name)
	if len(t.args) == 0 {
		return
	}
	sb.WriteByte('(')
	for i, a := range t.args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sig.writeTerm(sb, a, names)
	}
	sb.WriteByte(')')
}

// LiteralString renders a literal in the canonical form. Equalities print
// infix as = or !=; ordering predicates and divides print infix; other
// predicates print prefix with a ~ marker for negative polarity.
func (sig *Signature) LiteralString(l *Literal, names VarNamer) string {
	var sb strings.Builder
	if l.IsEquality() {
		sig.writeTerm(&sb, l.args[0], names)
		if l.positive {
			sb.WriteString(" = ")
		} else {
			sb.WriteString(" != ")
		}
		sig.writeTerm(&sb, l.args[1], names)
		return sb.String()
	}
	sym := sig.Predicate(l.pred)
	if op, ok := infixOp[sym.Interp]; ok && len(l.args) == 2 {
		if !l.positive {
			sb.WriteString("~(")
		}
		sig.writeTerm(&sb, l.args[0], names)
		sb.WriteByte(' ')
		sb.WriteString(op)
		sb.WriteByte(' ')
		sig.writeTerm(&sb, l.args[1], names)
		if !l.positive {
			sb.WriteByte(')')
		}
		return sb.String()
	}
	if !l.positive {
		sb.WriteByte('~')
	}
	sb.WriteString(sym.Name)
	if len(l.args) > 0 {
		sb.WriteByte('(')
		for i, a := range l.args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sig.writeTerm(&sb, a, names)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

func writeInt(sb *strings.Builder, v int) {
	if v < 0 {
		sb.WriteByte('-')
		v = -v
	}
	if v >= 10 {
		writeInt(sb, v/10)
	}
	sb.WriteByte(byte('0' + v%10))
}
