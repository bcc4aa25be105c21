package lsp

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"dvrtl/grammar"
)

// Semantic token types advertised to the client. Token type values in
// the wire format are indices into this slice.
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"function",
	"number",
	"operator",
}

// Semantic token modifiers advertised to the client. Modifier values are
// a bitmask over this slice.
var SemanticTokenModifiers = []string{
	"declaration",
}

const (
	tokenKeyword = iota
	tokenVariable
	tokenFunction
	tokenNumber
	tokenOperator
)

const modifierDeclaration = 1 << 0

// SemanticToken is a single LSP semantic token entry. Line and StartChar
// are 0-based positions.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

var keywordSet = func() map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		set[kw] = true
	}
	return set
}()

// collectSemanticTokens classifies the document's token stream. The
// classification is lexical: keywords and operators directly, an
// identifier as a function when a call parenthesis follows and as a
// declaration when a binding operator follows. Highlighting stays useful
// on documents that do not parse yet.
func collectSemanticTokens(path, content string) ([]SemanticToken, error) {
	lex, err := grammar.DvrtlLexer.LexString(path, content)
	if err != nil {
		return nil, err
	}

	symbols := grammar.DvrtlLexer.Symbols()
	names := make(map[lexer.TokenType]string, len(symbols))
	for name, typ := range symbols {
		names[typ] = name
	}

	var raw []lexer.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			break
		}
		raw = append(raw, tok)
	}

	var tokens []SemanticToken
	for i, tok := range raw {
		var typ, mods int
		switch names[tok.Type] {
		case "Ident":
			switch {
			case keywordSet[tok.Value]:
				typ = tokenKeyword
			case followedBy(raw, i, "("):
				typ = tokenFunction
			default:
				typ = tokenVariable
				if followedBy(raw, i, "=") || followedBy(raw, i, "->") {
					mods = modifierDeclaration
				}
			}
		case "Bit":
			typ = tokenNumber
		case "Arrow", "Operator":
			typ = tokenOperator
		default:
			continue
		}

		tokens = append(tokens, SemanticToken{
			Line:           uint32(tok.Pos.Line - 1),
			StartChar:      uint32(tok.Pos.Column - 1),
			Length:         uint32(len(tok.Value)),
			TokenType:      typ,
			TokenModifiers: mods,
		})
	}
	return tokens, nil
}

func followedBy(raw []lexer.Token, i int, value string) bool {
	for j := i + 1; j < len(raw); j++ {
		if strings.TrimSpace(raw[j].Value) == "" {
			continue
		}
		return raw[j].Value == value
	}
	return false
}

// encodeSemanticTokens packs tokens into the LSP wire format, with
// delta-line and delta-start compression.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	var data []uint32
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, token.Length,
			uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}
