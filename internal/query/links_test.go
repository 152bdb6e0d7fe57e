package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "http://localhost:8080/products"

func TestNumberOfPages(t *testing.T) {
	opts := mustParse(t, "limit=10")

	assert.Equal(t, int64(0), opts.NumberOfPages(0))
	assert.Equal(t, int64(1), opts.NumberOfPages(1))
	assert.Equal(t, int64(1), opts.NumberOfPages(10))
	assert.Equal(t, int64(2), opts.NumberOfPages(11))
	assert.Equal(t, int64(5), opts.NumberOfPages(50))
}

func TestNumberOfPages_ZeroLimit(t *testing.T) {
	opts := mustParse(t, "limit=0")
	assert.Equal(t, int64(0), opts.NumberOfPages(42))
}

func TestLinks_FirstPage(t *testing.T) {
	opts := mustParse(t, "limit=10")
	links := opts.Links(testBase, 35)

	assert.Equal(t, testBase+"?limit=10&skip=0", links.First)
	assert.Equal(t, testBase+"?limit=10&skip=30", links.Last)
	assert.Empty(t, links.Prev)
	assert.Equal(t, testBase+"?limit=10&skip=10", links.Next)
}

func TestLinks_MiddlePage(t *testing.T) {
	opts := mustParse(t, "limit=10&skip=10")
	links := opts.Links(testBase, 35)

	assert.Equal(t, testBase+"?limit=10&skip=0", links.Prev)
	assert.Equal(t, testBase+"?limit=10&skip=20", links.Next)
}

func TestLinks_LastPage(t *testing.T) {
	opts := mustParse(t, "limit=10&skip=30")
	links := opts.Links(testBase, 35)

	assert.Equal(t, testBase+"?limit=10&skip=20", links.Prev)
	assert.Empty(t, links.Next)
}

func TestLinks_SinglePage(t *testing.T) {
	opts := mustParse(t, "")
	links := opts.Links(testBase, 5)

	assert.Empty(t, links.Prev)
	assert.Empty(t, links.Next)
	assert.Equal(t, links.First, links.Last)
}

func TestLinks_ZeroLimit(t *testing.T) {
	opts := mustParse(t, "limit=0")
	links := opts.Links(testBase, 42)

	assert.Equal(t, links.First, links.Last)
	assert.Empty(t, links.Prev)
	assert.Empty(t, links.Next)
}

func TestLinks_PreservesFilterParams(t *testing.T) {
	opts := mustParse(t, "brand=Apple&sort=-price&limit=10&skip=10")
	links := opts.Links(testBase, 35)

	next, err := url.Parse(links.Next)
	require.NoError(t, err)

	q := next.Query()
	assert.Equal(t, "Apple", q.Get("brand"))
	assert.Equal(t, "-price", q.Get("sort"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "20", q.Get("skip"))
}

func TestLinks_PrevClampsToZero(t *testing.T) {
	opts := mustParse(t, "limit=10&skip=5")
	links := opts.Links(testBase, 35)

	assert.Equal(t, testBase+"?limit=10&skip=0", links.Prev)
}
