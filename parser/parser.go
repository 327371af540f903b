package parser

import (
	"context"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/zhang-accounting/ledger/ast"
)

var (
	lex = lexer.MustSimple([]lexer.SimpleRule{
		{"Date", `\d{4}-\d{2}-\d{2}`},
		{"Account", `[\p{Lu}][\p{L}]*(:[\p{L}\p{N}][\p{L}\p{N}-]*)+`},
		{"String", `"(\\.|[^"\\])*"`},
		{"Number", `[-+]?\d+(,\d{3})*(\.\d+)?`},
		{"Link", `\^[A-Za-z0-9_-]+`},
		{"Tag", `#[A-Za-z0-9_-]+`},
		{"Ident", `[A-Za-z][0-9A-Za-z_-]*`},
		{"LDBrace", `\{\{`},
		{"RDBrace", `\}\}`},
		{"AtAt", `@@`},
		{"Punct", `[!*:,@{}]`},
		{"Comment", `;[^\n]*\n`},
		{"Whitespace", `[[:space:]]`},
		{"ignore", `.`},
	})

	parser = participle.MustBuild[ast.AST](
		participle.Lexer(lex),
		participle.Unquote("String"),
		participle.Elide("Comment", "Whitespace"),
		participle.Union[ast.Directive](
			&ast.Commodity{},
			&ast.Open{},
			&ast.Close{},
			&ast.Balance{},
			&ast.Pad{},
			&ast.Note{},
			&ast.Document{},
			&ast.Price{},
			&ast.Event{},
			&ast.Custom{},
			&ast.Budget{},
			&ast.BudgetAdd{},
			&ast.BudgetTransfer{},
			&ast.BudgetClose{},
			&ast.Transaction{},
		),
		participle.UseLookahead(2),
	)
)

// Parse reads a Beancount file from r and builds its AST.
func Parse(ctx context.Context, r io.Reader) (*ast.AST, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytesWithFilename(ctx, "", data)
}

// ParseString parses AST from a string.
func ParseString(ctx context.Context, str string) (*ast.AST, error) {
	return ParseBytesWithFilename(ctx, "", []byte(str))
}

// ParseBytes parses AST from bytes.
func ParseBytes(ctx context.Context, data []byte) (*ast.AST, error) {
	return ParseBytesWithFilename(ctx, "", data)
}

// ParseBytesWithFilename parses AST from bytes with a filename for position tracking.
// The filename will be included in position information in the AST for better error reporting.
func ParseBytesWithFilename(ctx context.Context, filename string, data []byte) (*ast.AST, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	tree, err := parser.ParseBytes(filename, data)
	if err != nil {
		return nil, NewParseErrorWithSource(filename, err, data)
	}

	if err := attachTrivia(tree, filename, data); err != nil {
		return nil, err
	}

	if err := ast.ApplyPushPopDirectives(tree); err != nil {
		return nil, err
	}

	return tree, ast.SortDirectives(tree)
}

// attachTrivia re-scans the source with the standalone lexer to recover comments and
// blank lines, which the participle grammar above elides entirely. Standalone comments
// (column 1) and blank lines are appended to the tree; trailing comments on a line that
// also holds a directive, option, include, plugin, or tag/meta push/pop are attached to
// that item instead.
func attachTrivia(tree *ast.AST, filename string, data []byte) error {
	lx := NewLexer(data, filename)
	tokens, err := lx.ScanAll()
	if err != nil {
		return err
	}

	itemsByLine := make(map[int]ast.WithComment)
	for _, d := range tree.Directives {
		itemsByLine[d.Position().Line] = d
	}

	for i, tok := range tokens {
		switch tok.Type {
		case NEWLINE:
			tree.BlankLines = append(tree.BlankLines, &ast.BlankLine{
				Pos: ast.Position{Filename: filename, Line: tok.Line, Column: tok.Column, Offset: tok.Start},
			})

		case COMMENT:
			content := tok.String(data)
			pos := ast.Position{Filename: filename, Line: tok.Line, Column: tok.Column, Offset: tok.Start}

			if tok.Column == 1 {
				commentType := ast.StandaloneComment
				if i+1 < len(tokens) && tokens[i+1].Type == NEWLINE {
					commentType = ast.SectionComment
				}
				tree.Comments = append(tree.Comments, &ast.Comment{Pos: pos, Content: content, Type: commentType})
				continue
			}

			if item, ok := itemsByLine[tok.Line]; ok && item.GetComment() == nil {
				item.SetComment(&ast.Comment{Pos: pos, Content: content, Type: ast.StandaloneComment})
				continue
			}

			tree.Comments = append(tree.Comments, &ast.Comment{Pos: pos, Content: content, Type: ast.StandaloneComment})
		}
	}

	return nil
}
