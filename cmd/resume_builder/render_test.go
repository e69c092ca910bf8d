package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestRenderDocument_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderDocument(&buf, types.SampleDocument(), types.TemplateMinimal, "html"))

	page, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Alex Johnson - Resume", page.Find("title").Text())
	assert.Equal(t, 1, page.Find("#"+rendering.AnchorID).Length())
	assert.Contains(t, page.Find("body").Text(), "Alex Johnson")
}

func TestRenderDocument_TreeUsesDocumentTemplate(t *testing.T) {
	doc := types.SampleDocument()
	doc.Template = types.TemplateExecutive

	var buf bytes.Buffer
	require.NoError(t, renderDocument(&buf, doc, "", "tree"))

	var tree rendering.Node
	require.NoError(t, json.Unmarshal(buf.Bytes(), &tree))
	assert.Equal(t, rendering.KindDocument, tree.Kind)
	assert.NotEmpty(t, tree.Children)
}

func TestRenderDocument_UnknownFormat(t *testing.T) {
	err := renderDocument(&bytes.Buffer{}, types.SampleDocument(), "", "latex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
