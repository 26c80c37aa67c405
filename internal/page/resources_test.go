package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainerResourceURLs_HashedImage(t *testing.T) {
	p := newTestPage(t, `<div class="sc-content-main"><img src="images/logo-sc1234567890123.png"></div>`)

	nodes := p.ContainerNodes()
	assert.Equal(t, []string{"images/logo-sc1234567890123.png"}, p.ContainerResourceURLs(nodes[0]))
}

func TestContainerResourceURLs_PlainImageIgnored(t *testing.T) {
	p := newTestPage(t, `<div class="sc-content-main"><img src="images/logo.png"></div>`)

	nodes := p.ContainerNodes()
	assert.Empty(t, p.ContainerResourceURLs(nodes[0]))
}

func TestResourceURLs_AcrossContainersInOrder(t *testing.T) {
	p := newTestPage(t, `<body>
<img src="images/outside-sc0000000000009.png">
<div class="sc-content-a">
  <a href="files/doc-sc0000000000001.pdf">doc</a>
  <img src="images/x-sc0000000000002.jpg" srcset="images/x-sc0000000000003.jpg 2x">
</div>
<div class="sc-content" style="background-image: url('images/bg-sc0000000000004.png')">
  <a href="files/doc-sc0000000000001.pdf">again</a>
  <a href="http://example.com/images/not-hashed.png">ext</a>
</div>
</body>`)

	assert.Equal(t, []string{
		"files/doc-sc0000000000001.pdf",
		"images/x-sc0000000000002.jpg",
		"images/x-sc0000000000003.jpg",
		"images/bg-sc0000000000004.png",
		"files/doc-sc0000000000001.pdf",
	}, p.ResourceURLs())
}
