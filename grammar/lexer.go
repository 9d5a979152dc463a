package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// TraceLexer tokenizes a trace script file: a sequence of statements that
// drive the Abstract Object core through its public operations. Renamed
// from the teacher's KansoLexer but the same stateful, single-state shape.
var TraceLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"String", `"(\\"|[^"])*"`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Arrow", `->`, nil},
		{"Punctuation", `[.=,:]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
