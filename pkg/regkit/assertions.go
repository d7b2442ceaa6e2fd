package regkit

// Lookahead asserts that nodes match at the current position without
// consuming them.
func Lookahead(nodes ...Node) Expr {
	return wrap("(?=", nodes, ")")
}

// NegativeLookahead asserts that nodes do not match at the current
// position.
func NegativeLookahead(nodes ...Node) Expr {
	return wrap("(?!", nodes, ")")
}

// PositiveLookbehind asserts that nodes match immediately before the
// current position. Engines differ in which lookbehind bodies they accept;
// that is reported when the pattern is compiled.
func PositiveLookbehind(nodes ...Node) Expr {
	return wrap("(?<=", nodes, ")")
}

// NegativeLookbehind asserts that nodes do not match immediately before
// the current position.
func NegativeLookbehind(nodes ...Node) Expr {
	return wrap("(?<!", nodes, ")")
}
