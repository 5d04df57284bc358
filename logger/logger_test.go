/*
 * backend - Logger test set.
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

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerMirrorsToAttachedWriter(t *testing.T) {
	var mirror bytes.Buffer
	l := New(slog.LevelInfo, &mirror)
	l.Info("compiling", "func", "main")

	got := mirror.String()
	if !strings.Contains(got, "compiling") || !strings.Contains(got, "main") {
		t.Fatalf("want message and attr in mirrored output, got %q", got)
	}
	if !strings.Contains(got, "INFO:") {
		t.Errorf("want level name in output, got %q", got)
	}
}

func TestHandlerSkipsMirrorWhenOutNil(t *testing.T) {
	l := New(slog.LevelInfo, nil)
	// Must not panic with a nil mirror target; stderr still receives it.
	l.Info("no mirror attached")
}

func TestHandlerRespectsLevel(t *testing.T) {
	var mirror bytes.Buffer
	l := New(slog.LevelWarn, &mirror)
	l.Info("suppressed")
	if mirror.Len() != 0 {
		t.Errorf("info below configured warn level must be suppressed, got %q", mirror.String())
	}
	l.Warn("shown")
	if !strings.Contains(mirror.String(), "shown") {
		t.Errorf("warn at configured level must appear, got %q", mirror.String())
	}
}
