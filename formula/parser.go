package formula

import "fmt"

// Parse lexes and parses src per the grammar documented in doc.go and
// returns a Parsed wrapping the resulting tree. It does not decide
// whether the result is valid CTL or ARCTL; call Parsed.CTL or
// Parsed.ARCTL for that.
func Parse(src string) (*Parsed, error) {
	p := &parser{lx: newLexer(src)}
	root, err := p.parseFormula()
	if err != nil {
		return nil, err
	}
	if t := p.lx.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected trailing input %q", t.text)
	}
	return &Parsed{root: root}, nil
}

type parser struct {
	lx *lexer
}

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: t.pos, Line: t.line}
}

func (p *parser) expectPunct(text string) (token, error) {
	t := p.lx.next()
	if t.kind != tokPunct || t.text != text {
		return t, p.errorf(t, "expected %q, found %q", text, t.text)
	}
	return t, nil
}

func (p *parser) at(kind tokKind, text string) bool {
	t := p.lx.peek()
	return t.kind == kind && t.text == text
}

// parseFormula is the grammar's entry nonterminal.
func (p *parser) parseFormula() (*Phi, error) { return p.parseIff() }

func (p *parser) parseIff() (*Phi, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	for p.at(tokPunct, "<=>") {
		p.lx.next()
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		left = iffNode(left, right)
	}
	return left, nil
}

func (p *parser) parseImplies() (*Phi, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.at(tokPunct, "=>") {
		p.lx.next()
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = implyNode(left, right)
	}
	return left, nil
}

func (p *parser) parseOr() (*Phi, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(tokPunct, "|") {
		p.lx.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode(left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (*Phi, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(tokPunct, "&") {
		p.lx.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode(left, right)
	}
	return left, nil
}

func pathKind(quant, mod string) (Kind, bool) {
	table := map[string]Kind{
		"EX": KindEX, "EF": KindEF, "EG": KindEG,
		"AX": KindAX, "AF": KindAF, "AG": KindAG,
	}
	k, ok := table[quant+mod]
	return k, ok
}

func binaryPathKind(quant, mod string) (Kind, bool) {
	table := map[string]Kind{
		"EU": KindEU, "EW": KindEW, "ER": KindER, "EM": KindEM,
		"AU": KindAU, "AW": KindAW, "AR": KindAR, "AM": KindAM,
	}
	k, ok := table[quant+mod]
	return k, ok
}

func (p *parser) parseUnary() (*Phi, error) {
	t := p.lx.peek()
	if t.kind == tokPunct && t.text == "!" {
		p.lx.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode(inner), nil
	}
	if t.kind == tokPunct && t.text == "(" {
		p.lx.next()
		inner, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	if t.kind == tokIdent && isQuantifierToken(t.text) {
		return p.parseQuantified()
	}
	return p.parseAtom()
}

// isQuantifierToken reports whether text can start a quantified
// formula. text/scanner's greedy identifier scan means the lexer
// hands back "E"/"A" alone only when a non-identifier character or
// whitespace follows it (as with "[" in the binary form, or "E X p");
// otherwise the unary form's quantifier and modifier letters ("EX",
// "AG", ...) arrive pre-fused as one ident token.
func isQuantifierToken(text string) bool {
	if text == "E" || text == "A" {
		return true
	}
	if len(text) != 2 {
		return false
	}
	if text[0] != 'E' && text[0] != 'A' {
		return false
	}
	switch text[1] {
	case 'X', 'F', 'G':
		return true
	}
	return false
}

func (p *parser) parseQuantified() (*Phi, error) {
	qt := p.lx.next() // "E"/"A", or a fused "EX"/"EF"/"EG"/"AX"/"AF"/"AG"

	if len(qt.text) == 2 {
		kind, _ := pathKind(qt.text[0:1], qt.text[1:2])
		node := &Phi{Kind: kind}
		if err := p.maybeParseAnnotation(node); err != nil {
			return nil, err
		}
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node.Children = []*Phi{inner}
		return node, nil
	}

	quant := qt.text // "E" or "A"
	if p.at(tokPunct, "[") {
		p.lx.next()
		left, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		modTok := p.lx.next()
		kind, ok := binaryPathKind(quant, modTok.text)
		if !ok {
			return nil, p.errorf(modTok, "expected one of U,W,R,M after %s[..., found %q", quant, modTok.text)
		}
		right, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct("]"); err != nil {
			return nil, err
		}
		node := &Phi{Kind: kind, Children: []*Phi{left, right}}
		if err := p.maybeParseAnnotation(node); err != nil {
			return nil, err
		}
		return node, nil
	}

	// quant was a lone "E"/"A" not followed by "[": the modifier letter
	// arrived as its own token (e.g. separated by whitespace).
	modTok := p.lx.next()
	kind, ok := pathKind(quant, modTok.text)
	if !ok {
		return nil, p.errorf(modTok, "expected one of X,F,G after %s, found %q", quant, modTok.text)
	}
	node := &Phi{Kind: kind}
	if err := p.maybeParseAnnotation(node); err != nil {
		return nil, err
	}
	inner, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	node.Children = []*Phi{inner}
	return node, nil
}

func (p *parser) maybeParseAnnotation(node *Phi) error {
	if !p.at(tokPunct, "{") {
		return nil
	}
	p.lx.next()
	for {
		itemTok := p.lx.next()
		if itemTok.kind != tokIdent {
			return p.errorf(itemTok, "expected annotation item name, found %q", itemTok.text)
		}
		if _, err := p.expectPunct(":"); err != nil {
			return err
		}
		switch itemTok.text {
		case "actions":
			act, err := p.parseActionExpr()
			if err != nil {
				return err
			}
			node.Actions = act
		case "ufair":
			events, err := p.parseEventList()
			if err != nil {
				return err
			}
			for _, e := range events {
				node.UFair = append(node.UFair, FairnessRecord{Then: e})
			}
		case "wfair", "sfair":
			pairs, err := p.parseFairPairList()
			if err != nil {
				return err
			}
			if itemTok.text == "wfair" {
				node.WFair = append(node.WFair, pairs...)
			} else {
				node.SFair = append(node.SFair, pairs...)
			}
		default:
			return p.errorf(itemTok, "unknown annotation item %q", itemTok.text)
		}
		if p.at(tokPunct, ";") {
			p.lx.next()
			continue
		}
		break
	}
	_, err := p.expectPunct("}")
	return err
}

func (p *parser) parseEventList() ([]*Phi, error) {
	var out []*Phi
	for {
		e, err := p.parseEvent()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if p.at(tokPunct, ",") {
			p.lx.next()
			continue
		}
		return out, nil
	}
}

func (p *parser) parseFairPairList() ([]FairnessRecord, error) {
	var out []FairnessRecord
	for {
		cond, err := p.parseEvent()
		if err != nil {
			return nil, err
		}
		thenTok := p.lx.next()
		if thenTok.kind != tokIdent || thenTok.text != "THEN" {
			return nil, p.errorf(thenTok, "expected THEN, found %q", thenTok.text)
		}
		then, err := p.parseEvent()
		if err != nil {
			return nil, err
		}
		out = append(out, FairnessRecord{Condition: cond, Then: then})
		if p.at(tokPunct, ",") {
			p.lx.next()
			continue
		}
		return out, nil
	}
}

func (p *parser) parseEvent() (*Phi, error) {
	if p.at(tokPunct, "@") {
		p.lx.next()
		act, err := p.parseActionExpr()
		if err != nil {
			return nil, err
		}
		return actionsNode(act), nil
	}
	return p.parseUnary()
}

func (p *parser) parseActionExpr() (*Phi, error) {
	left, err := p.parseActor()
	if err != nil {
		return nil, err
	}
	for {
		t := p.lx.peek()
		if t.kind != tokPunct || (t.text != "&" && t.text != "|") {
			return left, nil
		}
		p.lx.next()
		right, err := p.parseActor()
		if err != nil {
			return nil, err
		}
		if t.text == "&" {
			left = andNode(left, right)
		} else {
			left = orNode(left, right)
		}
	}
}

func (p *parser) parseActor() (*Phi, error) {
	t := p.lx.peek()
	if t.kind == tokPunct && t.text == "!" {
		p.lx.next()
		inner, err := p.parseActor()
		if err != nil {
			return nil, err
		}
		return notNode(inner), nil
	}
	if t.kind == tokPunct && t.text == "(" {
		p.lx.next()
		inner, err := p.parseActionExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	if t.kind == tokIdent {
		p.lx.next()
		switch t.text {
		case "true":
			return boolNode(true), nil
		case "false":
			return boolNode(false), nil
		default:
			return nameNode(t.text), nil
		}
	}
	return nil, p.errorf(t, "expected an action literal, found %q", t.text)
}

func (p *parser) parseAtom() (*Phi, error) {
	t := p.lx.next()
	if t.kind != tokIdent {
		return nil, p.errorf(t, "expected an atom, found %q", t.text)
	}
	switch t.text {
	case "true":
		return boolNode(true), nil
	case "false":
		return boolNode(false), nil
	default:
		return nameNode(t.text), nil
	}
}
