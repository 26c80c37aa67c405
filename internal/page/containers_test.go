package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecake/internal/htmldoc"
	"git.home.luguber.info/inful/sitecake/internal/uid"
)

func newTestPage(t *testing.T, src string, opts ...Option) *Page {
	t.Helper()
	opts = append([]Option{WithIDGenerator(&uid.Sequence{Prefix: "t"})}, opts...)
	p, err := New(src, opts...)
	require.NoError(t, err)
	return p
}

func classLists(p *Page) [][]string {
	var out [][]string
	for _, c := range p.ContainerNodes() {
		out = append(out, htmldoc.Classes(c.Node))
	}
	return out
}

func TestContainers_NamesInDocumentOrderWithDuplicates(t *testing.T) {
	p := newTestPage(t, `<body>
<div class="sc-content-hero">a</div>
<div class="sc-content-footer">b</div>
<div class="sc-content-hero">c</div>
</body>`)

	assert.Equal(t, []string{"hero", "footer", "hero"}, p.Containers())
}

func TestContainers_WordBoundary(t *testing.T) {
	p := newTestPage(t, `<body>
<div class="sc-content-box widget">named</div>
<div class="my-sc-content-box">not a container</div>
<div class="xsc-content">not a container</div>
<div class="sc-content-">empty name</div>
<div class="sc-content-box-widget">hyphenated</div>
<div class="layout sc-content">untagged</div>
</body>`)

	nodes := p.ContainerNodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, KindNamed, nodes[0].Kind)
	assert.Equal(t, "box", nodes[0].Name)
	assert.Equal(t, "box-widget", nodes[1].Name)
	assert.Equal(t, KindUntagged, nodes[2].Kind)
	assert.Equal(t, "", nodes[2].Name)

	assert.Equal(t, []string{"box", "box-widget"}, p.Containers())
}

func TestContainers_MemoInvalidatedByMutation(t *testing.T) {
	p := newTestPage(t, `<div id="nav"></div><div class="sc-content-a"></div>`)
	require.Equal(t, []string{"a"}, p.Containers())

	p.SetNav("#nav", `<div class="sc-content-b"></div>`)
	assert.Equal(t, []string{"b", "a"}, p.Containers())

	names := p.Containers()
	names[0] = "mutated"
	assert.Equal(t, []string{"b", "a"}, p.Containers(), "callers get a copy")
}

func TestContainers_EmptyPage(t *testing.T) {
	p := newTestPage(t, `<p>nothing</p>`)
	assert.Empty(t, p.Containers())
	assert.Empty(t, p.ContainerNodes())
	assert.Empty(t, p.ResourceURLs())
}

func TestNormalizeContainerNames_NamesUntaggedOnly(t *testing.T) {
	p := newTestPage(t, `<body>
<div class="sc-content">one</div>
<div class="sc-content-main">two</div>
<div class="a sc-content b">three</div>
</body>`)

	assert.Equal(t, 2, p.NormalizeContainerNames())
	assert.Equal(t, [][]string{
		{"sc-content", "sc-content-_cnt_t1"},
		{"sc-content-main"},
		{"a", "sc-content", "b", "sc-content-_cnt_t2"},
	}, classLists(p))

	nodes := p.ContainerNodes()
	assert.Equal(t, KindTemporary, nodes[0].Kind)
	assert.Equal(t, "_cnt_t1", nodes[0].Name)
	assert.Equal(t, []string{"main"}, p.Containers(), "temporary names are not container names")
	assert.Equal(t, []string{"_cnt_t1", "main", "_cnt_t2"}, p.EditableContainers())
}

func TestNormalizeContainerNames_RepeatedCallsAddTokens(t *testing.T) {
	p := newTestPage(t, `<div class="sc-content"></div>`)
	p.NormalizeContainerNames()
	p.NormalizeContainerNames()

	assert.Equal(t, [][]string{{"sc-content", "sc-content-_cnt_t1", "sc-content-_cnt_t2"}}, classLists(p))

	p.CleanupContainerNames()
	assert.Equal(t, [][]string{{"sc-content", "sc-content-_cnt_t2"}}, classLists(p), "cleanup removes only the first temporary token")
}

func TestCleanupContainerNames_InvertsNormalize(t *testing.T) {
	src := `<body>
<div class="sc-content">one</div>
<section class="x sc-content y"><div class="sc-content-inner">n</div></section>
<div class="sc-content-main">two</div>
</body>`
	p := newTestPage(t, src)
	before := classLists(p)
	beforeHTML := p.String()

	p.NormalizeContainerNames()
	require.NotEqual(t, before, classLists(p))
	assert.Equal(t, 2, p.CleanupContainerNames())

	assert.Equal(t, before, classLists(p))
	assert.Equal(t, beforeHTML, p.String())
}

func TestCleanupContainerNames_RemovesFirstTemporaryToken(t *testing.T) {
	p := newTestPage(t, `<body><div class="sc-content sc-content-_cnt_old">x</div></body>`)

	assert.Equal(t, 1, p.NormalizeContainerNames())
	assert.Equal(t, [][]string{{"sc-content", "sc-content-_cnt_old", "sc-content-_cnt_t1"}}, classLists(p))

	// A leftover authored token sits before the fresh one and is the one removed.
	assert.Equal(t, 1, p.CleanupContainerNames())
	assert.Equal(t, [][]string{{"sc-content", "sc-content-_cnt_t1"}}, classLists(p))
}

func TestSetContainerContent(t *testing.T) {
	p := newTestPage(t, `<div class="sc-content-main">old</div><div class="sc-content-main x">old2</div><div class="sc-content-side">keep</div><div class="sc-content">u</div>`)

	assert.Equal(t, 2, p.SetContainerContent("main", `<p>new</p>`))
	out := p.String()
	assert.Contains(t, out, `<div class="sc-content-main"><p>new</p></div>`)
	assert.Contains(t, out, `<div class="sc-content-main x"><p>new</p></div>`)
	assert.Contains(t, out, `<div class="sc-content-side">keep</div>`)

	p.NormalizeContainerNames()
	assert.Equal(t, 1, p.SetContainerContent("_cnt_t1", "temp"))
	assert.Contains(t, p.String(), `>temp</div>`)
	assert.Equal(t, 0, p.SetContainerContent("missing", "x"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "untagged", KindUntagged.String())
	assert.Equal(t, "named", KindNamed.String())
	assert.Equal(t, "temporary", KindTemporary.String())
}
