package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var DvrtlLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// Keywords are matched as identifiers and narrowed by the grammar
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Bit literals
		{"Bit", `[01]`, nil},

		// Operators (arrow must come before minus)
		{"Arrow", `->`, nil},
		{"Operator", `[=+\-]`, nil},

		// Punctuation
		{"Punct", `[()\[\]{},;]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
