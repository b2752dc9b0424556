package blog

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"github.com/folio-dev/folio/app/cfg"
	"github.com/folio-dev/folio/app/database"
)

// FeedGenerator renders the published posts as an RSS 2.0 feed.
type FeedGenerator struct{}

func NewFeedGenerator() *FeedGenerator {
	return &FeedGenerator{}
}

func (g *FeedGenerator) Run(profile *database.Profile, posts []database.BlogPost) (string, error) {
	var buf bytes.Buffer

	c := cfg.Get()

	baseURL := c.BaseUrl
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%s", c.Port)
	}

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	title := c.SiteTitle
	description := ""
	if profile != nil {
		title = cmp.Or(profile.Name, title)
		description = profile.Headline
	}

	g.writeElement(&buf, "title", title, 4)
	g.writeElement(&buf, "link", baseURL, 4)
	g.writeElement(&buf, "description", cmp.Or(description, fmt.Sprintf("Blog feed for %s", title)), 4)

	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(baseURL+"/feed.xml")))

	lastBuildDate := time.Now().In(time.Local)
	if len(posts) > 0 {
		if posts[0].PublishedAt != nil {
			lastBuildDate = *posts[0].PublishedAt
		} else {
			lastBuildDate = posts[0].CreatedAt
		}
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Folio/%s", c.Version), 4)

	for _, post := range posts {
		g.writeItem(&buf, baseURL, post)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *FeedGenerator) writeItem(buf *bytes.Buffer, baseURL string, post database.BlogPost) {
	buf.WriteString("    <item>\n")

	link := fmt.Sprintf("%s/blog/posts/%s", baseURL, post.Slug)

	buf.WriteString("      <guid isPermaLink=\"true\">")
	xml.EscapeText(buf, []byte(link))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", post.Title, 6)
	g.writeElement(buf, "link", link, 6)
	g.writeElement(buf, "description", cmp.Or(post.Excerpt, "No description available"), 6)

	if post.Content != "" && post.Content != post.Excerpt {
		buf.WriteString("      <content:encoded><![CDATA[")
		buf.WriteString(post.Content)
		buf.WriteString("]]></content:encoded>\n")
	}

	publishedAt := post.CreatedAt
	if post.PublishedAt != nil {
		publishedAt = *post.PublishedAt
	}
	g.writeElement(buf, "pubDate", publishedAt.Format(time.RFC1123Z), 6)

	for _, tag := range post.Tags {
		if tag != "" {
			g.writeElement(buf, "category", tag, 6)
		}
	}

	buf.WriteString("    </item>\n")
}

func (g *FeedGenerator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
