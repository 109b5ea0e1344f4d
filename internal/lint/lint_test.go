package lint

import (
	"errors"
	"testing"

	"github.com/molbal/cozyui-docs/internal/model"
	"github.com/molbal/cozyui-docs/internal/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func valid() model.SiteConfig {
	return model.SiteConfig{
		Title:       "Docs",
		Description: "Documentation",
		Sitemap:     &model.Sitemap{Hostname: "https://docs.example.com"},
		ThemeConfig: model.ThemeConfig{
			Nav: []model.NavItem{
				{Text: "Home", Link: "/"},
				{Text: "Releases", Link: "https://github.com/example/app/releases"},
			},
			Sidebar: []model.SidebarSection{
				{Text: "Guide", Items: []model.NavItem{
					{Text: "Intro", Link: "/guide/intro"},
					{Text: "Install", Link: "/guide/install"},
				}},
			},
			SocialLinks: []model.SocialLink{{Icon: "github", Link: "https://github.com/example/app"}},
			Search:      &model.Search{Provider: "local"},
			Footer:      &model.FooterConfig{Message: "MIT licensed", Copyright: "© example"},
			EditLink:    &model.EditLink{Pattern: "https://github.com/example/docs/edit/main/:path"},
		},
	}
}

func fields(fs []Finding) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Field)
	}
	return out
}

func TestCheck_ValidConfig(t *testing.T) {
	r := Check(valid(), Options{Strict: true})
	assert.Empty(t, r.Findings())
	assert.True(t, r.OK())
	assert.NoError(t, r.Err())
}

func TestCheck_EmbeddedSiteIsClean(t *testing.T) {
	r := Check(site.Config(), Options{Strict: true})
	assert.Empty(t, r.Findings())
}

func TestCheck_Rules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.SiteConfig)
		field    string
		severity Severity
	}{
		{"empty title", func(c *model.SiteConfig) { c.Title = " " }, "title", SeverityError},
		{"empty description", func(c *model.SiteConfig) { c.Description = "" }, "description", SeverityWarning},
		{"relative nav link", func(c *model.SiteConfig) { c.ThemeConfig.Nav[0].Link = "guide/intro" }, "themeConfig.nav[0].link", SeverityError},
		{"empty nav link", func(c *model.SiteConfig) { c.ThemeConfig.Nav[0].Link = "" }, "themeConfig.nav[0].link", SeverityError},
		{"protocol relative link", func(c *model.SiteConfig) { c.ThemeConfig.Nav[0].Link = "//cdn.example.com/x" }, "themeConfig.nav[0].link", SeverityWarning},
		{"https without host", func(c *model.SiteConfig) { c.ThemeConfig.Nav[1].Link = "https:///releases" }, "themeConfig.nav[1].link", SeverityError},
		{"scheme only", func(c *model.SiteConfig) { c.ThemeConfig.Nav[1].Link = "mailto:" }, "themeConfig.nav[1].link", SeverityError},
		{"empty nav text", func(c *model.SiteConfig) { c.ThemeConfig.Nav[0].Text = "" }, "themeConfig.nav[0].text", SeverityError},
		{"duplicate sidebar link", func(c *model.SiteConfig) {
			c.ThemeConfig.Sidebar[0].Items[1].Link = "/guide/intro"
		}, "themeConfig.sidebar[0].items[1].link", SeverityWarning},
		{"empty section heading", func(c *model.SiteConfig) { c.ThemeConfig.Sidebar[0].Text = "" }, "themeConfig.sidebar[0].text", SeverityError},
		{"empty section", func(c *model.SiteConfig) {
			c.ThemeConfig.Sidebar = append(c.ThemeConfig.Sidebar, model.SidebarSection{Text: "Later"})
		}, "themeConfig.sidebar[1].items", SeverityWarning},
		{"unknown icon", func(c *model.SiteConfig) { c.ThemeConfig.SocialLinks[0].Icon = "myspace" }, "themeConfig.socialLinks[0].icon", SeverityError},
		{"duplicate icon", func(c *model.SiteConfig) {
			c.ThemeConfig.SocialLinks = append(c.ThemeConfig.SocialLinks, c.ThemeConfig.SocialLinks[0])
		}, "themeConfig.socialLinks[1].icon", SeverityWarning},
		{"relative social link", func(c *model.SiteConfig) { c.ThemeConfig.SocialLinks[0].Link = "/github" }, "themeConfig.socialLinks[0].link", SeverityError},
		{"unknown search", func(c *model.SiteConfig) { c.ThemeConfig.Search.Provider = "elastic" }, "themeConfig.search.provider", SeverityError},
		{"edit link without path", func(c *model.SiteConfig) {
			c.ThemeConfig.EditLink.Pattern = "https://github.com/example/docs/edit/main/"
		}, "themeConfig.editLink.pattern", SeverityError},
		{"edit link not absolute", func(c *model.SiteConfig) { c.ThemeConfig.EditLink.Pattern = "/edit/:path" }, "themeConfig.editLink.pattern", SeverityError},
		{"sitemap without scheme", func(c *model.SiteConfig) { c.Sitemap.Hostname = "docs.example.com" }, "sitemap.hostname", SeverityError},
		{"bad logo", func(c *model.SiteConfig) { c.ThemeConfig.Logo = "logo.png" }, "themeConfig.logo", SeverityError},
		{"empty head tag", func(c *model.SiteConfig) { c.Head = []model.HeadTag{{Attrs: map[string]string{"a": "b"}}} }, "head[0]", SeverityError},
		{"odd head tag", func(c *model.SiteConfig) { c.Head = []model.HeadTag{{Tag: "div"}} }, "head[0]", SeverityWarning},
		{"footer script", func(c *model.SiteConfig) {
			c.ThemeConfig.Footer.Message = `hi <script>alert(1)</script>`
		}, "themeConfig.footer.message", SeverityWarning},
		{"footer paragraphs", func(c *model.SiteConfig) {
			c.ThemeConfig.Footer.Copyright = "© example\n\nAll rights reserved"
		}, "themeConfig.footer.copyright", SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			r := Check(cfg, Options{})
			var got []Finding
			if tt.severity == SeverityError {
				got = r.Errors()
			} else {
				got = r.Warnings()
			}
			assert.Contains(t, fields(got), tt.field, "findings: %v", r.Findings())
		})
	}
}

func TestCheck_AbsoluteLinkSchemes(t *testing.T) {
	for _, link := range []string{
		"mailto:team@example.com",
		"ftp://mirror.example.com/cozyui.zip",
		"https://github.com/molbal/cozyui",
		"//cdn.example.com/x",
	} {
		t.Run(link, func(t *testing.T) {
			cfg := valid()
			cfg.ThemeConfig.Nav[1].Link = link
			cfg.ThemeConfig.Sidebar[0].Items[1].Link = link

			r := Check(cfg, Options{})
			assert.Empty(t, r.Errors())
			assert.NoError(t, r.Err())
		})
	}
}

func TestReport_StrictFailsOnWarnings(t *testing.T) {
	cfg := valid()
	cfg.Description = ""

	assert.NoError(t, Check(cfg, Options{}).Err())

	err := Check(cfg, Options{Strict: true}).Err()
	require.Error(t, err)
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Findings(), 1)
	assert.Equal(t, "description", verr.Findings()[0].Field)
	assert.Contains(t, err.Error(), "description is empty")
}

func TestReport_ErrorMessageListsAll(t *testing.T) {
	cfg := valid()
	cfg.Title = ""
	cfg.ThemeConfig.Search.Provider = "x"

	err := Check(cfg, Options{}).Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 problems")
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "themeConfig.search.provider")
}

type pageSet map[string]bool

func (p pageSet) Resolve(link string) bool { return p[link] }

func TestCheck_DanglingLinks(t *testing.T) {
	cfg := valid()
	pages := pageSet{"/": true, "/guide/intro": true}

	r := Check(cfg, Options{Pages: pages})
	warnings := r.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "themeConfig.sidebar[0].items[1].link", warnings[0].Field)
	assert.Equal(t, "/guide/install", warnings[0].Value)
}

func TestIsLink_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.StringMatching(`/[a-z0-9\-/]{0,20}`).Draw(t, "path")
		if !IsLink(path) {
			t.Fatalf("site path %q rejected", path)
		}
		host := rapid.StringMatching(`[a-z]{1,10}\.(com|dev|org)`).Draw(t, "host")
		scheme := rapid.SampledFrom([]string{"http", "https", "ftp"}).Draw(t, "scheme")
		if !IsLink(scheme + "://" + host + path) {
			t.Fatalf("absolute URL rejected: %s://%s%s", scheme, host, path)
		}
		user := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "user")
		if !IsLink("mailto:" + user + "@" + host) {
			t.Fatalf("mailto URL rejected: %s@%s", user, host)
		}
		rel := rapid.StringMatching(`[a-z][a-z0-9\-]{0,10}`).Draw(t, "rel")
		if IsLink(rel) {
			t.Fatalf("relative path %q accepted", rel)
		}
	})
}
