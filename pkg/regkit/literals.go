package regkit

// Anchors and other zero-width atoms.
var (
	StartOfString   = Expr{fragment: `^`}
	EndOfString     = Expr{fragment: `$`}
	StartOfInput    = Expr{fragment: `\A`}
	EndOfInput      = Expr{fragment: `\z`}
	WordBoundary    = Expr{fragment: `\b`}
	NotWordBoundary = Expr{fragment: `\B`}
)

// Any matches any character except newline, or any character at all under
// the DotAll flag.
var Any = Expr{fragment: `.`}

// Grapheme matches one extended grapheme cluster.
var Grapheme = Expr{fragment: `\X`}

// Class shorthands. Their membership follows the ASCII Perl definitions.
var (
	Digit         = shorthand(`\d`, `\D`)
	NotDigit      = shorthand(`\D`, `\d`)
	Whitespace    = shorthand(`\s`, `\S`)
	NotWhitespace = shorthand(`\S`, `\s`)
	Word          = shorthand(`\w`, `\W`)
	NotWord       = shorthand(`\W`, `\w`)
)
