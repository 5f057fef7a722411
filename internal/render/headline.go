// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render turns editable site text into safe HTML fragments.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// inlinePolicy keeps only the emphasis a headline may carry.
var inlinePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("em", "strong", "br")
	return p
}()

// Headline renders a headline where *text* marks emphasis. The result is an
// inline HTML fragment without a paragraph wrapper; raw HTML in the source is
// dropped.
func Headline(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering headline: %w", err)
	}

	out := strings.TrimSpace(inlinePolicy.Sanitize(buf.String()))
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return strings.TrimSpace(out), nil
}

// HeadlineText returns the headline with emphasis markers removed, for places
// that cannot show HTML such as page titles.
func HeadlineText(src string) string {
	return strings.ReplaceAll(src, "*", "")
}
