/*
 * backend - Textual IL ingestion: one line at a time into a Statement.
 *
 * Copyright (c) 2026, cclang contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package il

import (
	"strings"
	"unicode"

	"github.com/cclang/backend/errcode"
	"github.com/cclang/backend/symtab"
)

var opcodeByName = map[string]Opcode{
	"add": Add, "ce": Ce, "cl": Cl, "cle": Cle, "cne": Cne, "def": Def,
	"div": Div, "func": Func, "jmp": Jmp, "jnz": Jnz, "jz": Jz, "lab": Lab,
	"mad": Mad, "mfi": Mfi, "mod": Mod, "mov": Mov, "mti": Mti, "mtc": Mtc,
	"mul": Mul, "not": Not, "ret": Ret, "sub": Sub,
}

var specByName = map[string]symtab.Specifier{
	"void": symtab.SpecVoid, "i8": symtab.SpecI8, "i16": symtab.SpecI16,
	"i32": symtab.SpecI32, "i64": symtab.SpecI64, "long": symtab.SpecLong,
	"u8": symtab.SpecU8, "u16": symtab.SpecU16, "u32": symtab.SpecU32,
	"u64": symtab.SpecU64, "ulong": symtab.SpecULong,
	"f32": symtab.SpecF32, "f64": symtab.SpecF64, "longdouble": symtab.SpecLongDouble,
}

// Ingester reads one IL statement per line into a Statement,
// resolving named operands against a symtab.Table (spec.md §6's
// grammar, §4.1's partitioning-relevant opcode shapes).
type Ingester struct {
	Table *symtab.Table
	line  int
}

func NewIngester(tab *symtab.Table) *Ingester {
	return &Ingester{Table: tab}
}

// Next parses one textual IL line into a Statement. Returns
// (Statement{}, false, nil) to indicate EOF was already reached by
// the caller; callers should stop iterating once the reader is
// exhausted rather than call Next again.
func (p *Ingester) Parse(line string) (Statement, error) {
	p.line++
	opName, rest := splitName(line)
	op, ok := opcodeByName[strings.ToLower(opName)]
	if !ok {
		return Statement{}, errcode.New(errcode.InvalidIns).WithToken(opName)
	}

	args, err := splitArgs(rest)
	if err != nil {
		return Statement{}, err
	}
	if !ArityOK(op, len(args)) {
		return Statement{}, errcode.New(errcode.BadArgs).WithToken(opName)
	}
	if op == Func {
		return p.parseFunc(args)
	}

	if op == Def {
		if err := p.declareArg(args[0]); err != nil {
			return Statement{}, err
		}
		id, _ := p.Table.Lookup(declName(args[0]), symtab.Type{})
		return Statement{Op: op, N: 1, Args: [MaxArgs]symtab.SymbolId{id}}, nil
	}

	stat := Statement{Op: op, N: len(args)}
	for i, a := range args {
		id, err := p.resolveOperand(op, i, a)
		if err != nil {
			return Statement{}, err
		}
		stat.Args[i] = id
	}
	return stat, nil
}

// resolveOperand looks up one plain (non-declaration) operand at
// argument index i: a jump target label, or a name/numeric constant.
// jmp's sole argument and jnz/jz's first argument are labels (see
// Statement.Label); lab's sole argument defines one.
func (p *Ingester) resolveOperand(op Opcode, i int, tok string) (symtab.SymbolId, error) {
	if op == Jmp || op == Lab || ((op == Jnz || op == Jz) && i == 0) {
		if existing, ok := p.Table.Lookup(tok, symtab.TypeLabel); ok {
			return existing, nil
		}
		return p.Table.NewLabel(tok), nil
	}
	id, ok := p.Table.Lookup(tok, symtab.NewStandard(symtab.SpecI32, 0))
	if !ok {
		return 0, errcode.New(errcode.UnknownSym).WithToken(tok)
	}
	return id, nil
}

// declareArg handles `def <typename>[*...][[N]...] <identifier>`.
func (p *Ingester) declareArg(tok string) error {
	typ, name, err := parseDecl(tok)
	if err != nil {
		return err
	}
	p.Table.Declare(name, typ, true)
	return nil
}

func declName(tok string) string {
	_, name, _ := parseDecl(tok)
	return name
}

// parseFunc parses `func <name>,<rettype> <ret-decl-ish>,<param-decl>...`
// Per spec.md §6, func carries name, return-type, then parameter
// declarations, each formatted like a declaration.
func (p *Ingester) parseFunc(args []string) (Statement, error) {
	if len(args) < 2 {
		return Statement{}, errcode.New(errcode.BadArgs).WithToken("func")
	}
	name := args[0]
	retSpec, ok := specByName[strings.ToLower(args[1])]
	if !ok {
		return Statement{}, errcode.New(errcode.InvalidInsOp).WithToken(args[1])
	}
	retType := symtab.NewStandard(retSpec, 0)
	fnType := symtab.NewFunction(retType)

	p.Table.Declare(name, fnType, false)

	stat := Statement{Op: Func}
	fnID, _ := p.Table.Lookup(name, symtab.Type{})
	stat.Args[0] = fnID
	stat.N = 1

	if name == "main" && len(args) != 4 {
		return Statement{}, errcode.New(errcode.BadMain).WithToken(name)
	}

	for i := 2; i < len(args) && stat.N < MaxArgs; i++ {
		typ, pname, err := parseDecl(args[i])
		if err != nil {
			return Statement{}, err
		}
		if name == "main" {
			if i == 2 && typ.Pointers != 0 {
				return Statement{}, errcode.New(errcode.BadMain).WithToken(pname)
			}
			if i == 3 && typ.Pointers < 2 {
				return Statement{}, errcode.New(errcode.BadMain).WithToken(pname)
			}
		}
		id := p.Table.DeclareParam(pname, typ)
		stat.Args[stat.N] = id
		stat.N++
	}
	return stat, nil
}

// parseDecl parses `<typename>[<*>...][<[N]>...] <identifier>`.
func parseDecl(tok string) (symtab.Type, string, error) {
	name, rest := splitName(tok)
	specName, pointers, arrayLen, hasArray := splitTypeSuffix(name)
	spec, ok := specByName[strings.ToLower(specName)]
	if !ok {
		return symtab.Type{}, "", errcode.New(errcode.InvalidInsOp).WithToken(tok)
	}
	ident := strings.TrimSpace(rest)
	if ident == "" {
		// single-token form: "i32*x" with no space, fall back to
		// splitting on the identifier boundary within name.
		return symtab.Type{}, "", errcode.New(errcode.BadArgs).WithToken(tok)
	}
	var typ symtab.Type
	if hasArray {
		typ = symtab.NewArray(spec, pointers, arrayLen)
	} else {
		typ = symtab.NewStandard(spec, pointers)
	}
	return typ, ident, nil
}

// splitTypeSuffix peels `*` and `[N]` suffixes off a type token,
// e.g. "i32**" -> ("i32", 2, 0, false), "i32[10]" -> ("i32", 0, 10, true).
func splitTypeSuffix(tok string) (base string, pointers int, arrayLen int, hasArray bool) {
	i := 0
	for i < len(tok) && tok[i] != '*' && tok[i] != '[' {
		i++
	}
	base = tok[:i]
	for i < len(tok) {
		switch tok[i] {
		case '*':
			pointers++
			i++
		case '[':
			j := i + 1
			n := 0
			for j < len(tok) && unicode.IsDigit(rune(tok[j])) {
				n = n*10 + int(tok[j]-'0')
				j++
			}
			if j < len(tok) && tok[j] == ']' {
				arrayLen = n
				hasArray = true
				i = j + 1
			} else {
				i = j
			}
		default:
			i++
		}
	}
	return base, pointers, arrayLen, hasArray
}

// splitName scans off the first whitespace-delimited token.
func splitName(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	for i, r := range s {
		if r == ' ' || r == '\t' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

// splitArgs splits a comma-separated argument list with no
// surrounding spaces, per spec.md §6.
func splitArgs(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		if parts[i] == "" {
			return nil, errcode.New(errcode.BadArgs)
		}
	}
	return parts, nil
}
