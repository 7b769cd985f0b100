// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown renders product descriptions to HTML with goldmark.
// Descriptions also arrive from the Telegram bot, so raw HTML is dropped
// and links to other sites open in a new tab without passing page rank.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Russian quotes instead of the English curly ones.
var quotes = extension.TypographicSubstitutions{
	extension.LeftDoubleQuote:  []byte("&laquo;"),
	extension.RightDoubleQuote: []byte("&raquo;"),
}

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.NewTypographer(extension.WithTypographicSubstitutions(quotes)),
	),
	goldmark.WithParserOptions(
		parser.WithASTTransformers(util.Prioritized(externalLinks{}, 500)),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// ToHTML renders source. Blank input yields "".
func ToHTML(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// externalLinks marks absolute http(s) links with target and rel.
type externalLinks struct{}

func (externalLinks) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest []byte
		switch link := n.(type) {
		case *ast.Link:
			dest = link.Destination
		case *ast.AutoLink:
			if link.AutoLinkType != ast.AutoLinkURL {
				return ast.WalkContinue, nil
			}
			dest = link.URL(nil)
		default:
			return ast.WalkContinue, nil
		}
		if isExternal(dest) {
			n.SetAttributeString("target", []byte("_blank"))
			n.SetAttributeString("rel", []byte("nofollow noopener"))
		}
		return ast.WalkContinue, nil
	})
}

func isExternal(dest []byte) bool {
	lower := bytes.ToLower(dest)
	return bytes.HasPrefix(lower, []byte("http://")) ||
		bytes.HasPrefix(lower, []byte("https://")) ||
		bytes.HasPrefix(lower, []byte("www."))
}
