package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecake/internal/htmldoc"
)

const rewriteFixture = `<html><head><link href="images/style-sc0000000000001.css"></head><body>
<a id="res" href="files/doc-sc0000000000002.pdf">doc</a>
<a id="ext" href="http://example.com/">ext</a>
<a id="mail" href="mailto:me@example.com">mail</a>
<a id="frag" href="#top">top</a>
<img id="img" src="images/pic-sc0000000000003.png" srcset="images/pic-sc0000000000004.png 2x, plain.png 3x">
<img id="plain" src="images/plain.png">
<div id="div" data-src="images/pic-sc0000000000005.png"></div>
</body></html>`

func attrOf(t *testing.T, p *Page, id, attr string) string {
	t.Helper()
	nodes := p.doc.Query("#"+id, nil)
	require.Len(t, nodes, 1)
	return htmldoc.AttrOr(nodes[0], attr, "")
}

func TestPrefixResourceURLs(t *testing.T) {
	p := newTestPage(t, rewriteFixture)

	assert.Equal(t, 3, p.PrefixResourceURLs("../"))

	assert.Equal(t, "../files/doc-sc0000000000002.pdf", attrOf(t, p, "res", "href"))
	assert.Equal(t, "../images/pic-sc0000000000003.png", attrOf(t, p, "img", "src"))
	assert.Equal(t, "../images/pic-sc0000000000004.png 2x, plain.png 3x", attrOf(t, p, "img", "srcset"))

	assert.Equal(t, "http://example.com/", attrOf(t, p, "ext", "href"))
	assert.Equal(t, "mailto:me@example.com", attrOf(t, p, "mail", "href"))
	assert.Equal(t, "#top", attrOf(t, p, "frag", "href"))
	assert.Equal(t, "images/plain.png", attrOf(t, p, "plain", "src"))
	assert.Equal(t, "images/pic-sc0000000000005.png", attrOf(t, p, "div", "data-src"), "only anchors and images are rewritten")
	assert.Contains(t, p.String(), `<link href="images/style-sc0000000000001.css"/>`)
}

func TestUnprefixResourceURLs_RoundTrip(t *testing.T) {
	p := newTestPage(t, rewriteFixture)
	original := p.String()

	p.PrefixResourceURLs("sitecake-temp/abc/")
	require.NotEqual(t, original, p.String())

	assert.Equal(t, 3, p.UnprefixResourceURLs("sitecake-temp/abc/"))
	assert.Equal(t, original, p.String())
}

func TestUnprefixResourceURLs_SrcsetWithSeparatorsInPrefix(t *testing.T) {
	const src = `<html><head></head><body><img id="set" srcset="images/a-sc0000000000001.png 1x, images/b-sc0000000000002.png 2x"></body></html>`

	for _, prefix := range []string{"x,y/", "a b/", ", "} {
		t.Run(prefix, func(t *testing.T) {
			p := newTestPage(t, src)
			original := p.String()

			require.Equal(t, 1, p.PrefixResourceURLs(prefix))
			assert.Equal(t, prefix+"images/a-sc0000000000001.png 1x, "+prefix+"images/b-sc0000000000002.png 2x",
				attrOf(t, p, "set", "srcset"))

			assert.Equal(t, 1, p.UnprefixResourceURLs(prefix))
			assert.Equal(t, original, p.String())
		})
	}
}

func TestUnprefixResourceURLs_MissingPrefixIsNoop(t *testing.T) {
	p := newTestPage(t, rewriteFixture)
	original := p.String()

	assert.Equal(t, 0, p.UnprefixResourceURLs("../"))
	assert.Equal(t, original, p.String())

	p.PrefixResourceURLs("../")
	assert.Equal(t, 0, p.UnprefixResourceURLs("other/"))
	assert.Equal(t, 3, p.UnprefixResourceURLs("../"))
	assert.Equal(t, 0, p.UnprefixResourceURLs("../"))
	assert.Equal(t, original, p.String())
}

func TestPrefixResourceURLs_EmptyPrefix(t *testing.T) {
	p := newTestPage(t, rewriteFixture)
	original := p.String()

	assert.Equal(t, 0, p.PrefixResourceURLs(""))
	assert.Equal(t, 0, p.UnprefixResourceURLs(""))
	assert.Equal(t, original, p.String())
}
