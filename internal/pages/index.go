package pages

import (
	"sort"
	"strings"

	"github.com/molbal/cozyui-docs/internal/model"
)

// Index is the set of page links, used to resolve navigation links.
type Index struct {
	links map[string]struct{}
}

// NewIndex builds an index over pages.
func NewIndex(pages []model.Page) *Index {
	idx := &Index{links: make(map[string]struct{}, len(pages))}
	for _, p := range pages {
		idx.links[p.Link] = struct{}{}
	}
	return idx
}

// Len returns the number of indexed pages.
func (i *Index) Len() int { return len(i.links) }

// Resolve reports whether link points at an indexed page. Fragments, query
// strings, and .html/.md suffixes are ignored; "/guide" and "/guide/" both
// match guide/index.md.
func (i *Index) Resolve(link string) bool {
	if j := strings.IndexAny(link, "#?"); j >= 0 {
		link = link[:j]
	}
	if link == "" {
		return false
	}
	link = strings.TrimSuffix(link, ".html")
	link = strings.TrimSuffix(link, ".md")

	candidates := []string{link}
	if strings.HasSuffix(link, "/") {
		if link != "/" {
			candidates = append(candidates, strings.TrimSuffix(link, "/"))
		}
	} else {
		candidates = append(candidates, link+"/")
	}
	for _, c := range candidates {
		if _, ok := i.links[c]; ok {
			return true
		}
	}
	return false
}

// RootSection is the sidebar heading used for pages at the top of the tree.
const RootSection = "Introduction"

// Sidebar groups pages into sidebar sections, one per top-level directory,
// with root pages first. A directory's index page titles its section and
// leads its items. Items are ordered by front matter order, then link.
func Sidebar(pages []model.Page) []model.SidebarSection {
	type group struct {
		heading string
		pages   []model.Page
	}
	groups := make(map[string]*group)
	var order []string

	for _, p := range pages {
		g, ok := groups[p.Section]
		if !ok {
			g = &group{}
			groups[p.Section] = g
			order = append(order, p.Section)
		}
		if p.Section != "" && leads(p) {
			g.heading = p.Title
		}
		g.pages = append(g.pages, p)
	}

	sort.SliceStable(order, func(a, b int) bool {
		if order[a] == "" || order[b] == "" {
			return order[a] == ""
		}
		return order[a] < order[b]
	})

	sections := make([]model.SidebarSection, 0, len(order))
	for _, name := range order {
		g := groups[name]
		heading := g.heading
		switch {
		case name == "":
			heading = RootSection
		case heading == "":
			heading = TitleFromName(name)
		}

		sort.SliceStable(g.pages, func(a, b int) bool {
			pa, pb := g.pages[a], g.pages[b]
			if leads(pa) != leads(pb) {
				return leads(pa)
			}
			if pa.Order != pb.Order {
				return pa.Order < pb.Order
			}
			return pa.Link < pb.Link
		})

		sec := model.SidebarSection{Text: heading}
		for _, p := range g.pages {
			sec.Items = append(sec.Items, model.NavItem{Text: p.Title, Link: p.Link})
		}
		sections = append(sections, sec)
	}
	return sections
}

// leads reports whether p is the index page of its top-level section.
func leads(p model.Page) bool {
	if p.Section == "" {
		return p.Link == "/"
	}
	return p.Index && p.Link == "/"+p.Section+"/"
}
