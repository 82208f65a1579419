package cif

import "strings"

// Options control parsing.
type Options struct {
	// VerifyDigest checks each binary section against its Content-MD5.
	VerifyDigest bool
}

type parser struct {
	lex    *lexer
	doc    *Document
	block  *Block
	frame  *Saveframe
	peeked *token
}

// Parse parses a complete document.
func Parse(data []byte, opts Options) (*Document, error) {
	p := &parser{lex: newLexer(data, opts.VerifyDigest), doc: &Document{}}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

func (p *parser) next() (token, error) {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t, nil
	}
	return p.lex.next()
}

func (p *parser) peek() (token, error) {
	if p.peeked == nil {
		t, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		p.peeked = &t
	}
	return *p.peeked, nil
}

func (p *parser) run() error {
	for {
		t, err := p.next()
		if err != nil {
			return err
		}
		switch t.kind {
		case tokEOF:
			if p.frame != nil {
				return p.lex.errorf(t.line, "save frame %q not closed", p.frame.Name)
			}
			return nil
		case tokData:
			if p.frame != nil {
				return p.lex.errorf(t.line, "save frame %q not closed", p.frame.Name)
			}
			p.block = &Block{Name: t.text}
			p.doc.Blocks = append(p.doc.Blocks, p.block)
		case tokSave:
			err = p.save(t)
		case tokLoop:
			err = p.loop(t)
		case tokTag:
			err = p.item(t)
		case tokValue:
			err = p.lex.errorf(t.line, "value without a tag")
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) save(t token) error {
	if p.block == nil {
		return p.lex.errorf(t.line, "save frame outside a data block")
	}
	if t.text == "" {
		if p.frame == nil {
			return p.lex.errorf(t.line, "save_ without an open save frame")
		}
		p.frame = nil
		return nil
	}
	if p.frame != nil {
		return p.lex.errorf(t.line, "nested save frame %q", t.text)
	}
	p.frame = &Saveframe{Name: t.text}
	p.block.Items = append(p.block.Items, Item{Kind: ItemSaveframe, Index: len(p.block.Saveframes)})
	p.block.Saveframes = append(p.block.Saveframes, p.frame)
	return nil
}

// category returns the named category in the current container, creating it
// on first use. Names match case-insensitively and keep their first spelling.
func (p *parser) category(name string) *Category {
	cats := &p.block.Categories
	if p.frame != nil {
		cats = &p.frame.Categories
	}
	for _, c := range *cats {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	c := &Category{Name: name}
	if p.frame == nil {
		p.block.Items = append(p.block.Items, Item{Kind: ItemCategory, Index: len(*cats)})
	}
	*cats = append(*cats, c)
	return c
}

func (p *parser) item(t token) error {
	if p.block == nil {
		return p.lex.errorf(t.line, "tag %s outside a data block", t.text)
	}
	v, err := p.next()
	if err != nil {
		return err
	}
	if v.kind != tokValue {
		return p.lex.errorf(t.line, "tag %s has no value", t.text)
	}

	catName, colName := SplitTag(t.text)
	cat := p.category(catName)
	if cat.column(colName) != nil {
		return p.lex.errorf(t.line, "duplicate item %s", t.text)
	}
	if cat.Rows == 0 {
		cat.addRows(1)
	}
	col := cat.addColumn(colName)
	col.Values[0] = v.value
	return nil
}

func (p *parser) loop(t token) error {
	if p.block == nil {
		return p.lex.errorf(t.line, "loop_ outside a data block")
	}

	var catName string
	var names []string
	for {
		tag, err := p.peek()
		if err != nil {
			return err
		}
		if tag.kind != tokTag {
			break
		}
		p.next()
		c, col := SplitTag(tag.text)
		if len(names) == 0 {
			catName = c
		} else if !strings.EqualFold(c, catName) {
			return p.lex.errorf(tag.line, "loop mixes categories %s and %s", catName, c)
		}
		for _, n := range names {
			if strings.EqualFold(n, col) {
				return p.lex.errorf(tag.line, "duplicate tag %s in loop", tag.text)
			}
		}
		names = append(names, col)
	}
	if len(names) == 0 {
		return p.lex.errorf(t.line, "loop_ without tags")
	}

	var values []Value
	for {
		v, err := p.peek()
		if err != nil {
			return err
		}
		if v.kind != tokValue {
			break
		}
		p.next()
		values = append(values, v.value)
	}
	if len(values)%len(names) != 0 {
		return p.lex.errorf(t.line, "loop has %d values for %d tags", len(values), len(names))
	}

	cat := p.category(catName)
	cols := make([]*Column, len(names))
	for i, n := range names {
		if cols[i] = cat.column(n); cols[i] == nil {
			cols[i] = cat.addColumn(n)
		}
	}
	base := cat.Rows
	cat.addRows(len(values) / len(names))
	for i, v := range values {
		cols[i%len(names)].Values[base+i/len(names)] = v
	}
	return nil
}
