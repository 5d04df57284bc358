/*
 * backend - Config parsing test set.
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

package config

import (
	"testing"

	"github.com/cclang/backend/errcode"
)

func TestParseDefaultsOutputToImm3(t *testing.T) {
	cfg, err := Parse([]string{"in.il"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Output != "imm3" {
		t.Errorf("want default output imm3, got %q", cfg.Output)
	}
	if cfg.Input != "in.il" {
		t.Errorf("want positional input in.il, got %q", cfg.Input)
	}
}

func TestParseRejectsMissingInput(t *testing.T) {
	_, err := Parse(nil)
	if err == nil {
		t.Fatal("want BadArgs for a missing positional input path")
	}
	ce, ok := err.(*errcode.Error)
	if !ok || ce.Code != errcode.BadArgs {
		t.Errorf("want errcode.BadArgs, got %v", err)
	}
}

func TestParseDebugFlags(t *testing.T) {
	cfg, err := Parse([]string{"-o", "out.asm", "-dprint-cfg", "-dprint-ig", "-dprint-info", "-dprint-symtab", "in.il"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Output != "out.asm" {
		t.Errorf("want custom output path, got %q", cfg.Output)
	}
	if !cfg.PrintCFG || !cfg.PrintIG || !cfg.PrintInfo || !cfg.PrintSymtab {
		t.Errorf("want all four debug flags set, got %+v", cfg)
	}
}

func TestParseInteractiveSkipsPositionalRequirement(t *testing.T) {
	cfg, err := Parse([]string{"-i"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.Interactive {
		t.Errorf("want Interactive set")
	}
	if cfg.Input != "" {
		t.Errorf("interactive mode takes no positional input, got %q", cfg.Input)
	}
}
