package repl

import (
	"fmt"

	"skipvm/internal/model"
)

// Parser turns a REPL token stream into a model.Script, resolving each
// command identifier against model.Lookup (spec.md §6.1's
// "BlockType.get(command)") the same way a real project-model loader's
// text.parse would.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser builds a Parser over an already-lexed token stream.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes and parses text into a Script whose Blocks are ordered
// top-level stack/hat calls (spec.md §3 "Script" — "or, when pushed
// from the REPL, a stack block").
func Parse(text string) (*model.Script, error) {
	toks, err := NewLexer(text).Tokenize()
	if err != nil {
		return nil, err
	}
	p := NewParser(toks)
	blocks, err := p.parseSequence(true)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("repl: empty script")
	}
	return &model.Script{Blocks: blocks}, nil
}

func (p *Parser) cur() Token  { return p.tokens[p.pos] }
func (p *Parser) next() Token { t := p.tokens[p.pos]; p.pos++; return t }

func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	if p.cur().Type != tt {
		return Token{}, fmt.Errorf("repl: expected %s on line %d, got %q", what, p.cur().Line, p.cur().Literal)
	}
	return p.next(), nil
}

// parseSequence reads zero or more top-level block calls until EOF (or,
// for a nested body, until a closing brace).
func (p *Parser) parseSequence(topLevel bool) ([]*model.Block, error) {
	var blocks []*model.Block
	for {
		switch p.cur().Type {
		case TokenEOF:
			return blocks, nil
		case TokenRBrace:
			if topLevel {
				return nil, fmt.Errorf("repl: unexpected '}' on line %d", p.cur().Line)
			}
			return blocks, nil
		default:
			b, err := p.parseCall()
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b)
		}
	}
}

// parseCall parses `ident(arg, arg, ...)` followed by zero, one, or two
// brace bodies (the second only after an `else`), producing a Block
// whose Args line up with its BlockType's Inserts in order: evaluated
// args first, then one SequenceArg per attached body.
func (p *Parser) parseCall() (*model.Block, error) {
	nameTok, err := p.expect(TokenIdent, "a command name")
	if err != nil {
		return nil, err
	}
	bt := model.Lookup(nameTok.Literal)
	if bt == nil {
		return nil, fmt.Errorf("repl: unknown command %q on line %d", nameTok.Literal, nameTok.Line)
	}
	if _, err := p.expect(TokenLParen, "'('"); err != nil {
		return nil, err
	}
	var args []model.Arg
	if p.cur().Type != TokenRParen {
		for {
			a, err := p.parseArg()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.cur().Type == TokenComma {
				p.next()
				continue
			}
			break
		}
	}
	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return nil, err
	}

	if p.cur().Type == TokenLBrace {
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		args = append(args, model.SequenceArg(body))

		if p.cur().Type == TokenElse {
			p.next()
			elseBody, err := p.parseBody()
			if err != nil {
				return nil, err
			}
			args = append(args, model.SequenceArg(elseBody))
		}
	}

	return model.NewBlock(bt, args...), nil
}

func (p *Parser) parseBody() ([]*model.Block, error) {
	if _, err := p.expect(TokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	body, err := p.parseSequence(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBrace, "'}'"); err != nil {
		return nil, err
	}
	return body, nil
}

// parseArg parses one reporter-position argument: a string literal, a
// number literal, a bareword (a menu option or key name, carried as a
// string leaf), or a nested reporter/boolean call.
func (p *Parser) parseArg() (model.Arg, error) {
	switch p.cur().Type {
	case TokenString:
		return model.LeafArg(p.next().Literal), nil
	case TokenNumber:
		tok := p.next()
		n, err := parseNumber(tok.Literal)
		if err != nil {
			return model.Arg{}, fmt.Errorf("repl: bad number %q on line %d: %w", tok.Literal, tok.Line, err)
		}
		return model.LeafArg(n), nil
	case TokenIdent:
		// A bareword is either a nested call (ident followed by '(') or
		// a literal word, e.g. a menu option (`touching(edge)`) or a
		// boolean literal (`true`/`false`).
		if p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].Type == TokenLParen {
			b, err := p.parseCall()
			if err != nil {
				return model.Arg{}, err
			}
			return model.BlockArg(b), nil
		}
		tok := p.next()
		switch tok.Literal {
		case "true":
			return model.LeafArg(true), nil
		case "false":
			return model.LeafArg(false), nil
		default:
			return model.LeafArg(tok.Literal), nil
		}
	default:
		return model.Arg{}, fmt.Errorf("repl: expected an argument on line %d, got %q", p.cur().Line, p.cur().Literal)
	}
}
