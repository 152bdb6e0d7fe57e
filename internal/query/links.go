package query

import (
	"net/url"
	"strconv"
)

// Links are the navigation URLs for a paginated listing.
type Links struct {
	First string `json:"first"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last"`
}

// NumberOfPages returns how many pages the filtered total spans at the
// current limit. A zero limit yields zero pages.
func (o *Options) NumberOfPages(total int64) int64 {
	if o.Limit <= 0 {
		return 0
	}
	return (total + o.Limit - 1) / o.Limit
}

// Links computes first/prev/next/last URLs for the window. The total must be
// the filter-only count, not the page length. Non-pagination parameters from
// the original request are preserved in every link. With a zero limit there
// is nothing to page through and only the first link is produced.
func (o *Options) Links(baseURL string, total int64) *Links {
	links := &Links{
		First: o.linkFor(baseURL, 0),
	}

	pages := o.NumberOfPages(total)
	if pages == 0 {
		links.Last = links.First
		return links
	}

	lastSkip := (pages - 1) * o.Limit
	links.Last = o.linkFor(baseURL, lastSkip)

	if o.Skip > 0 {
		prev := o.Skip - o.Limit
		if prev < 0 {
			prev = 0
		}
		links.Prev = o.linkFor(baseURL, prev)
	}

	if o.Skip+o.Limit < total {
		links.Next = o.linkFor(baseURL, o.Skip+o.Limit)
	}

	return links
}

// linkFor rebuilds the request query string with the window keys rewritten
// to the given skip offset.
func (o *Options) linkFor(baseURL string, skip int64) string {
	params := url.Values{}
	for key, values := range o.raw {
		if key == keyLimit || key == keySkip {
			continue
		}
		params[key] = values
	}
	params.Set(keyLimit, strconv.FormatInt(o.Limit, 10))
	params.Set(keySkip, strconv.FormatInt(skip, 10))

	return baseURL + "?" + params.Encode()
}
