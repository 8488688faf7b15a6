package domxpath_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowdom/hollowdom/dom"
	"github.com/hollowdom/hollowdom/domxpath"
	"github.com/hollowdom/hollowdom/parser"
)

func listDocument(t *testing.T) *dom.Document {
	t.Helper()
	doc := dom.NewDocument()
	parser.SetInnerHTML(doc.Body(), `<div id="menu">
		<ul class="items">
			<li class="item">alpha</li>
			<li class="item selected">beta</li>
			<li class="item">gamma</li>
		</ul>
		<p>footer</p>
	</div>`)
	return doc
}

func TestEvaluateSnapshot(t *testing.T) {
	doc := listDocument(t)
	tests := []struct {
		expr string
		want []string
	}{
		{"//li", []string{"alpha", "beta", "gamma"}},
		{"//ul/li", []string{"alpha", "beta", "gamma"}},
		{"//li[@class='item selected']", []string{"beta"}},
		{"//li[contains(@class,'selected')]", []string{"beta"}},
		{"//li[1]", []string{"alpha"}},
		{"//li[last()]", []string{"gamma"}},
		{"//div[@id='menu']/p", []string{"footer"}},
		{"//li[text()='beta']", []string{"beta"}},
		{"//span", nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res, err := domxpath.Evaluate(tt.expr, doc.Node, domxpath.Snapshot)
			require.NoError(t, err)
			require.Equal(t, len(tt.want), res.SnapshotLength())
			for i, text := range tt.want {
				assert.Equal(t, text, res.SnapshotItem(i).TextContent())
			}
		})
	}
}

func TestEvaluateFirstNode(t *testing.T) {
	doc := listDocument(t)

	res, err := domxpath.Evaluate("//li", doc.Node, domxpath.FirstNode)
	require.NoError(t, err)
	require.NotNil(t, res.SingleNode())
	assert.Equal(t, "alpha", res.SingleNode().TextContent())

	res, err = domxpath.Evaluate("//span", doc.Node, domxpath.FirstNode)
	require.NoError(t, err)
	assert.Nil(t, res.SingleNode())
}

func TestEvaluateIterator(t *testing.T) {
	doc := listDocument(t)

	res, err := domxpath.Evaluate("//li", doc.Node, domxpath.Iterator)
	require.NoError(t, err)

	var texts []string
	for n := res.IterateNext(); n != nil; n = res.IterateNext() {
		texts = append(texts, n.TextContent())
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, texts)
	assert.Nil(t, res.IterateNext(), "exhausted iterator keeps returning nil")
}

func TestEvaluateNumber(t *testing.T) {
	doc := listDocument(t)

	res, err := domxpath.Evaluate("count(//li)", doc.Node, domxpath.Number)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.NumberValue())

	res, err = domxpath.Evaluate("//li", doc.Node, domxpath.Number)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.NumberValue(), "node sets count themselves")
}

func TestEvaluateContextScopesTraversal(t *testing.T) {
	doc := listDocument(t)
	menu := doc.GetElementByID("menu")
	require.NotNil(t, menu)
	ul, err := menu.QuerySelector("ul")
	require.NoError(t, err)
	require.NotNil(t, ul)

	res, err := domxpath.Evaluate("//p", ul, domxpath.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, 0, res.SnapshotLength(), "descendant query must not escape the context subtree")

	res, err = domxpath.Evaluate(".//li", ul, domxpath.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, 3, res.SnapshotLength())
}

func TestEvaluateAttributeValue(t *testing.T) {
	doc := listDocument(t)

	res, err := domxpath.Evaluate("//li[@class='item selected']", doc.Node, domxpath.FirstNode)
	require.NoError(t, err)
	li := res.SingleNode()
	require.NotNil(t, li)
	assert.Equal(t, "LI", li.TagName)
	assert.Equal(t, "item selected", li.GetAttribute("class"))
}

func TestCompileReusableAcrossDocuments(t *testing.T) {
	expr, err := domxpath.Compile("//li")
	require.NoError(t, err)

	first := listDocument(t)
	second := dom.NewDocument()
	parser.SetInnerHTML(second.Body(), "<ul><li>solo</li></ul>")

	res, err := expr.Evaluate(first.Node, domxpath.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, 3, res.SnapshotLength())

	res, err = expr.Evaluate(second.Node, domxpath.Snapshot)
	require.NoError(t, err)
	require.Equal(t, 1, res.SnapshotLength())
	assert.Equal(t, "solo", res.SnapshotItem(0).TextContent())
}

func TestCompileSyntaxError(t *testing.T) {
	for _, expr := range []string{"//[", "//li[", "count("} {
		t.Run(expr, func(t *testing.T) {
			_, err := domxpath.Compile(expr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, &dom.DOMError{Name: dom.SyntaxError}))
		})
	}
}

func TestMustCompilePanicsOnBadExpression(t *testing.T) {
	assert.NotPanics(t, func() { domxpath.MustCompile("//li") })
	assert.Panics(t, func() { domxpath.MustCompile("//[") })
}

func TestEvaluateNilContext(t *testing.T) {
	_, err := domxpath.Evaluate("//li", nil, domxpath.Snapshot)
	require.Error(t, err)
}
