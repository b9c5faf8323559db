// Package request describes a simple HTTP request and either renders it as a
// curl command line or performs it in-process.
//
// A Data value maps onto curl flags: headers become -H, PostData becomes -d
// and each URLEncodeData item becomes --data-urlencode. Command produces the
// command line; Client.Send executes the equivalent request with net/http
// and returns the response body the way `curl -s -o -` prints it.
package request

import (
	"net/url"
	"strings"
)

// DefaultURL is used when Data.URL is empty.
const DefaultURL = "example.com"

// Data describes one request.
type Data struct {
	URL     string
	Headers []string // "Name: value"
	// PostData is sent as is; it must already be URL encoded.
	PostData string
	// URLEncodeData items are encoded with curl's --data-urlencode rules.
	URLEncodeData []string
}

func (d Data) url() string {
	if d.URL == "" {
		return DefaultURL
	}
	return d.URL
}

func (d Data) hasBody() bool {
	return d.PostData != "" || len(d.URLEncodeData) > 0
}

// Command renders d as a curl command line. Values are quoted but not
// escaped. Nothing is executed.
func Command(d Data, post bool) string {
	var b strings.Builder
	b.WriteString("curl -s -o - ")
	if post {
		b.WriteString(`-X POST "` + d.url() + `"`)
	} else {
		b.WriteString(`--location "` + d.url() + `"`)
	}
	for _, h := range d.Headers {
		b.WriteString(` -H "` + h + `"`)
	}
	if d.PostData != "" {
		b.WriteString(` -d "` + d.PostData + `"`)
	}
	for _, item := range d.URLEncodeData {
		b.WriteString(` --data-urlencode "` + item + `"`)
	}
	return b.String()
}

// Body returns the form body curl would send for d: PostData followed by
// each encoded URLEncodeData item, joined with '&'.
func Body(d Data) string {
	parts := make([]string, 0, 1+len(d.URLEncodeData))
	if d.PostData != "" {
		parts = append(parts, d.PostData)
	}
	for _, item := range d.URLEncodeData {
		parts = append(parts, encodeItem(item))
	}
	return strings.Join(parts, "&")
}

// encodeItem follows --data-urlencode: "name=content" encodes only content,
// "=content" encodes content without the leading '=', anything else is
// encoded whole.
func encodeItem(item string) string {
	name, content, found := strings.Cut(item, "=")
	switch {
	case !found:
		return escape(item)
	case name == "":
		return escape(content)
	default:
		return name + "=" + escape(content)
	}
}

func escape(s string) string {
	// curl encodes spaces as %20, not '+'.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// normalizeURL adds the http scheme when raw has none, as curl does.
func normalizeURL(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return "http://" + raw
}
