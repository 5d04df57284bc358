/*
 * backend - Stable error kinds for the code generator.
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

// Package errcode defines the ErrorCode enum the whole pipeline reports
// through, and the exit code the CLI surfaces on failure.
package errcode

import "strconv"

// Code is the numeric error kind. The process exit status equals the
// Code of the error that aborted the run, 0 on success.
type Code int

const (
	NoError Code = iota
	InsBufExceed
	ArgBufExceed
	ScopeLenExceed
	InvalidIns
	InvalidInsOp
	InvalidLabel
	BadArgs
	BadMain
	WriteFailed
	SeekFailed
	OutOfMemory
	UnknownSym
)

var codeStrings = [...]string{
	"NoError",
	"InsBufExceed",
	"ArgBufExceed",
	"ScopeLenExceed",
	"InvalidIns",
	"InvalidInsOp",
	"InvalidLabel",
	"BadArgs",
	"BadMain",
	"WriteFailed",
	"SeekFailed",
	"OutOfMemory",
	"UnknownSym",
}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codeStrings) {
		return "UnknownErrorCode"
	}
	return codeStrings[c]
}

// Error is a diagnostic identifying the error kind and, where known,
// the offending token, label, or statement.
type Error struct {
	Code  Code
	Token string // offending token/label, empty if not applicable
	Func  string // function being processed, empty if not applicable
	Stmt  int    // statement index within the function, -1 if not applicable
}

func New(code Code) *Error {
	return &Error{Code: code, Stmt: -1}
}

func (e *Error) WithToken(tok string) *Error {
	e.Token = tok
	return e
}

func (e *Error) WithFunc(fn string) *Error {
	e.Func = fn
	return e
}

func (e *Error) WithStmt(i int) *Error {
	e.Stmt = i
	return e
}

func (e *Error) Error() string {
	s := e.Code.String()
	if e.Func != "" {
		s += " in function " + e.Func
	}
	if e.Stmt >= 0 {
		s += " at statement " + strconv.Itoa(e.Stmt)
	}
	if e.Token != "" {
		s += ": " + e.Token
	}
	return s
}
