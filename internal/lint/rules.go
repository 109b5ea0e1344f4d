package lint

import (
	"net/url"
	"strings"

	"github.com/molbal/cozyui-docs/internal/markup"
	"github.com/molbal/cozyui-docs/internal/model"
)

// SocialIcons are the icon identifiers the default theme ships.
var SocialIcons = []string{
	"discord", "facebook", "github", "instagram", "linkedin", "mastodon",
	"npm", "reddit", "slack", "twitter", "x", "youtube",
}

// SearchProviders are the supported search backends.
var SearchProviders = []string{"local", "algolia"}

// HeadTags are the element names the document head accepts.
var HeadTags = []string{"base", "link", "meta", "noscript", "script", "style", "title"}

// Resolver answers whether an internal link points at an existing page.
type Resolver interface {
	Resolve(link string) bool
}

// Options tune a lint run.
type Options struct {
	// Strict makes warnings fail the run.
	Strict bool
	// Pages, when set, enables the dangling link check.
	Pages Resolver
}

// Check runs every rule against cfg.
func Check(cfg model.SiteConfig, opts Options) *Report {
	r := &Report{strict: opts.Strict}

	checkMeta(r, cfg)
	checkHead(r, cfg.Head)
	checkNav(r, cfg.ThemeConfig.Nav)
	checkSidebar(r, cfg.ThemeConfig.Sidebar)
	checkSocial(r, cfg.ThemeConfig.SocialLinks)
	checkSearch(r, cfg.ThemeConfig.Search)
	checkEditLink(r, cfg.ThemeConfig.EditLink)
	checkFooter(r, cfg.ThemeConfig.Footer)
	if opts.Pages != nil {
		checkDangling(r, cfg, opts.Pages)
	}
	return r
}

func checkMeta(r *Report, cfg model.SiteConfig) {
	if strings.TrimSpace(cfg.Title) == "" {
		r.errorf("title", nil, "title cannot be empty")
	}
	if strings.TrimSpace(cfg.Description) == "" {
		r.warnf("description", nil, "description is empty")
	}
	if cfg.Sitemap != nil {
		if msg := absoluteURL(cfg.Sitemap.Hostname); msg != "" {
			r.errorf("sitemap.hostname", cfg.Sitemap.Hostname, "%s", msg)
		}
	}
	if cfg.ThemeConfig.Logo != "" && !IsLink(cfg.ThemeConfig.Logo) {
		r.errorf("themeConfig.logo", cfg.ThemeConfig.Logo, "logo must be a site path or absolute URL")
	}
}

func checkHead(r *Report, head []model.HeadTag) {
	for i, h := range head {
		field := model.HeadField(i)
		switch {
		case strings.TrimSpace(h.Tag) == "":
			r.errorf(field, nil, "head tag name cannot be empty")
		case !contains(HeadTags, h.Tag):
			r.warnf(field, h.Tag, "unusual head tag")
		}
	}
}

func checkNav(r *Report, nav []model.NavItem) {
	seen := make(map[string]string)
	for i, it := range nav {
		field := model.NavField(i)
		checkItem(r, field, it)
		dup(r, seen, field, it.Link)
	}
}

func checkSidebar(r *Report, sidebar []model.SidebarSection) {
	seen := make(map[string]string)
	for i, sec := range sidebar {
		field := model.SidebarField(i)
		if strings.TrimSpace(sec.Text) == "" {
			r.errorf(field+".text", nil, "sidebar section heading cannot be empty")
		}
		if len(sec.Items) == 0 {
			r.warnf(field+".items", sec.Text, "sidebar section has no items")
		}
		for j, it := range sec.Items {
			itemField := model.SidebarItemField(i, j)
			checkItem(r, itemField, it)
			dup(r, seen, itemField, it.Link)
		}
	}
}

func checkItem(r *Report, field string, it model.NavItem) {
	if strings.TrimSpace(it.Text) == "" {
		r.errorf(field+".text", nil, "link text cannot be empty")
	}
	if strings.TrimSpace(it.Link) == "" {
		r.errorf(field+".link", nil, "link cannot be empty")
		return
	}
	if !IsLink(it.Link) {
		r.errorf(field+".link", it.Link, "link must start with / or be an absolute URL")
		return
	}
	if strings.HasPrefix(it.Link, "//") {
		r.warnf(field+".link", it.Link, "protocol-relative link, prefer an explicit https URL")
	}
}

func dup(r *Report, seen map[string]string, field, link string) {
	if link == "" {
		return
	}
	if first, ok := seen[link]; ok {
		r.warnf(field+".link", link, "duplicate link, first used at %s", first)
		return
	}
	seen[link] = field
}

func checkSocial(r *Report, links []model.SocialLink) {
	seen := make(map[string]string)
	for i, s := range links {
		field := model.SocialField(i)
		if !contains(SocialIcons, s.Icon) {
			r.errorf(field+".icon", s.Icon, "unsupported social icon (supported: %s)", strings.Join(SocialIcons, ", "))
		} else if first, ok := seen[s.Icon]; ok {
			r.warnf(field+".icon", s.Icon, "icon already used at %s", first)
		} else {
			seen[s.Icon] = field
		}
		if msg := absoluteURL(s.Link); msg != "" {
			r.errorf(field+".link", s.Link, "%s", msg)
		}
	}
}

func checkSearch(r *Report, s *model.Search) {
	if s == nil {
		return
	}
	if !contains(SearchProviders, s.Provider) {
		r.errorf("themeConfig.search.provider", s.Provider, "unsupported search provider (supported: %s)", strings.Join(SearchProviders, ", "))
	}
}

func checkEditLink(r *Report, e *model.EditLink) {
	if e == nil {
		return
	}
	const field = "themeConfig.editLink.pattern"
	if msg := absoluteURL(e.Pattern); msg != "" {
		r.errorf(field, e.Pattern, "%s", msg)
		return
	}
	if !strings.Contains(e.Pattern, ":path") {
		r.errorf(field, e.Pattern, "pattern must contain the :path placeholder")
	}
}

func checkFooter(r *Report, f *model.FooterConfig) {
	if f == nil {
		return
	}
	for _, part := range []struct{ field, src string }{
		{"themeConfig.footer.message", f.Message},
		{"themeConfig.footer.copyright", f.Copyright},
	} {
		field, src := part.field, part.src
		lost, err := markup.Stripped(src)
		if err != nil {
			r.errorf(field, src, "%v", err)
			continue
		}
		if len(lost) > 0 {
			r.warnf(field, strings.Join(lost, ", "), "markup will be removed by the sanitizer")
		}
	}
}

func checkDangling(r *Report, cfg model.SiteConfig, pages Resolver) {
	for _, l := range cfg.Links() {
		if !strings.HasPrefix(l.Link, "/") || strings.HasPrefix(l.Link, "//") {
			continue
		}
		if !pages.Resolve(l.Link) {
			r.warnf(l.Field+".link", l.Link, "dangling link, no page found")
		}
	}
}

// IsLink reports whether s is a site path (anything starting with "/") or an
// absolute URL such as https://host/x or mailto:team@example.com.
func IsLink(s string) bool {
	if strings.HasPrefix(s, "/") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return false
	}
	switch u.Scheme {
	case "http", "https":
		return u.Host != ""
	}
	return u.Opaque != "" || u.Host != "" || u.Path != ""
}

// absoluteURL returns a problem description, or "" if s is an absolute
// http(s) URL with a host.
func absoluteURL(s string) string {
	if s == "" {
		return "URL cannot be empty"
	}
	u, err := url.Parse(s)
	if err != nil {
		return "invalid URL: " + err.Error()
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "URL must use http or https"
	}
	if u.Host == "" {
		return "URL must have a host"
	}
	return ""
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
