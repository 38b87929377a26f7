package trending

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/trendwatch/internal/model"
)

// UpdatedTodaySentinel is the UpdatedAt value used when the trending page
// carries no relative-time element for a repository.
const UpdatedTodaySentinel = "today"

// Extractor parses trending page markup into ordered Project records.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles the malformed HTML GitHub occasionally serves
//  2. Provides a proper DOM-like structure for container scanning
//  3. Standard library extension, well-maintained
type Extractor struct {
	// baseURL is the origin against which relative repository links
	// are resolved.
	baseURL *url.URL
}

// NewExtractor creates an Extractor that resolves relative links against
// the given base origin (e.g. "https://github.com").
func NewExtractor(baseURL string) (*Extractor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Extractor{baseURL: u}, nil
}

// Extract scans the document for repository containers in document order
// and returns one Project per container that carries a resolvable heading
// link. Containers without one are skipped entirely rather than emitted as
// partial records. Rank is assigned as the 1-based position among emitted
// records, so it is strictly increasing by construction.
//
// A document with no matching containers yields an empty slice and no
// error: "no data found" is a valid outcome, not a failure.
func (e *Extractor) Extract(r io.Reader) ([]model.Project, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	projects := make([]model.Project, 0)
	for _, container := range findContainers(doc) {
		project, ok := e.extractProject(container)
		if !ok {
			continue
		}
		project.Rank = len(projects) + 1
		projects = append(projects, project)
	}
	return projects, nil
}

// extractProject pulls one Project out of a repository container.
// The second return value is false when the container lacks a heading link.
func (e *Extractor) extractProject(container *html.Node) (model.Project, bool) {
	link := findHeadingLink(container)
	if link == nil {
		return model.Project{}, false
	}

	name := nodeText(link)
	href := getAttr(link, "href")
	if name == "" || href == "" {
		return model.Project{}, false
	}

	return model.Project{
		Name:        name,
		URL:         e.resolveURL(href),
		Description: extractDescription(container),
		Stars:       ParseCount(socialCountText(container, "/stargazers")),
		Forks:       ParseCount(socialCountText(container, "/forks")),
		Language:    extractLanguage(container),
		UpdatedAt:   extractUpdatedAt(container),
	}, true
}

// resolveURL resolves a relative repository path against the base origin.
// Unparsable hrefs fall back to plain concatenation so that a record is
// never silently dropped over a cosmetic URL issue.
func (e *Extractor) resolveURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return e.baseURL.String() + href
	}
	return e.baseURL.ResolveReference(u).String()
}

// findContainers returns all elements whose class list contains "Box-row",
// in document order. Each such element represents one listed repository,
// and the document order is the trending ranking.
func findContainers(doc *html.Node) []*html.Node {
	var containers []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "Box-row") {
			containers = append(containers, n)
			// Containers do not nest; no need to descend further.
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return containers
}

// findHeadingLink locates the repository link: the first anchor with an
// href inside the container's first h2 heading.
func findHeadingLink(container *html.Node) *html.Node {
	heading := findElement(container, func(n *html.Node) bool {
		return n.Data == "h2"
	})
	if heading == nil {
		return nil
	}
	return findElement(heading, func(n *html.Node) bool {
		return n.Data == "a" && getAttr(n, "href") != ""
	})
}

// extractDescription returns the trimmed text of the first paragraph
// element in the container, or "" when none exists.
func extractDescription(container *html.Node) string {
	p := findElement(container, func(n *html.Node) bool {
		return n.Data == "p"
	})
	if p == nil {
		return ""
	}
	return nodeText(p)
}

// socialCountText returns the display text of the first anchor whose href
// contains the given path fragment (e.g. "/stargazers" or "/forks").
func socialCountText(container *html.Node, fragment string) string {
	a := findElement(container, func(n *html.Node) bool {
		return n.Data == "a" && strings.Contains(getAttr(n, "href"), fragment)
	})
	if a == nil {
		return ""
	}
	return nodeText(a)
}

// extractLanguage returns the text of the element carrying the
// programmingLanguage microdata property, or "" when absent.
func extractLanguage(container *html.Node) string {
	lang := findElement(container, func(n *html.Node) bool {
		return getAttr(n, "itemprop") == "programmingLanguage"
	})
	if lang == nil {
		return ""
	}
	return nodeText(lang)
}

// extractUpdatedAt returns the last-update timestamp from the container's
// relative-time element. The machine-readable datetime attribute is
// preferred over the display text. When the element is absent entirely the
// sentinel "today" is returned.
func extractUpdatedAt(container *html.Node) string {
	rt := findElement(container, func(n *html.Node) bool {
		return n.Data == "relative-time"
	})
	if rt == nil {
		return UpdatedTodaySentinel
	}
	if dt := getAttr(rt, "datetime"); dt != "" {
		return dt
	}
	return nodeText(rt)
}

// findElement returns the first element node under n (in document order)
// for which match returns true, or nil.
func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if match(c) {
				return c
			}
		}
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

// nodeText concatenates all text nodes under n, collapsing runs of
// whitespace. GitHub renders "owner / repo" across several lines of
// markup; collapsing keeps the display name on one line.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// hasClass reports whether the element's class attribute contains the
// given class name as a whole word.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
