package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() SiteConfig {
	collapsed := true
	return SiteConfig{
		Title:       "CozyUI",
		Description: "Docs",
		Head: []HeadTag{
			{Tag: "link", Attrs: map[string]string{"rel": "icon", "href": "/favicon.ico"}},
		},
		Sitemap: &Sitemap{Hostname: "https://example.com"},
		ThemeConfig: ThemeConfig{
			Nav: []NavItem{{Text: "Home", Link: "/"}},
			Sidebar: []SidebarSection{
				{Text: "Start", Collapsed: &collapsed, Items: []NavItem{
					{Text: "Intro", Link: "/intro"},
					{Text: "Install", Link: "/install"},
				}},
			},
			SocialLinks: []SocialLink{{Icon: "github", Link: "https://github.com/x/y"}},
			Search:      &Search{Provider: "local"},
			Footer:      &FooterConfig{Message: "m", Copyright: "c"},
			EditLink:    &EditLink{Pattern: "https://example.com/edit/:path"},
		},
	}
}

func TestClone_SharesNothing(t *testing.T) {
	orig := sample()
	cp := orig.Clone()
	require.Equal(t, orig, cp)

	cp.Head[0].Attrs["href"] = "/other.ico"
	cp.Sitemap.Hostname = "https://other.example"
	cp.ThemeConfig.Nav[0].Text = "Start"
	cp.ThemeConfig.Sidebar[0].Items[1].Link = "/setup"
	*cp.ThemeConfig.Sidebar[0].Collapsed = false
	cp.ThemeConfig.SocialLinks[0].Icon = "discord"
	cp.ThemeConfig.Search.Provider = "algolia"
	cp.ThemeConfig.Footer.Message = "changed"
	cp.ThemeConfig.EditLink.Pattern = "changed"

	assert.Equal(t, sample(), orig)
}

func TestClone_KeepsNilSlices(t *testing.T) {
	cp := SiteConfig{Title: "x"}.Clone()
	assert.Nil(t, cp.Head)
	assert.Nil(t, cp.ThemeConfig.Nav)
	assert.Nil(t, cp.ThemeConfig.Sidebar)
	assert.Nil(t, cp.Sitemap)
}

func TestNormalize_EmptySections(t *testing.T) {
	cfg := SiteConfig{ThemeConfig: ThemeConfig{Sidebar: []SidebarSection{
		{Text: "Later"},
		{Text: "Guide", Items: []NavItem{{Text: "Intro", Link: "/guide/intro"}}},
	}}}
	cfg.Normalize()

	require.NotNil(t, cfg.ThemeConfig.Sidebar[0].Items)
	assert.Empty(t, cfg.ThemeConfig.Sidebar[0].Items)
	assert.Len(t, cfg.ThemeConfig.Sidebar[1].Items, 1)

	var none SiteConfig
	none.Normalize()
	assert.Nil(t, none.ThemeConfig.Sidebar)
}

func TestLinks_AuthorOrder(t *testing.T) {
	links := sample().Links()
	require.Len(t, links, 3)
	assert.Equal(t, Link{Field: "themeConfig.nav[0]", Text: "Home", Link: "/"}, links[0])
	assert.Equal(t, "themeConfig.sidebar[0].items[0]", links[1].Field)
	assert.Equal(t, "/intro", links[1].Link)
	assert.Equal(t, "/install", links[2].Link)
}

func TestHeadTag_JSONTuple(t *testing.T) {
	tests := []struct {
		name string
		tag  HeadTag
		want string
	}{
		{
			name: "attrs only",
			tag:  HeadTag{Tag: "link", Attrs: map[string]string{"rel": "icon", "href": "/favicon.ico"}},
			want: `["link",{"href":"/favicon.ico","rel":"icon"}]`,
		},
		{
			name: "with content",
			tag:  HeadTag{Tag: "script", Attrs: map[string]string{"type": "module"}, Content: "init()"},
			want: `["script",{"type":"module"},"init()"]`,
		},
		{
			name: "no attrs",
			tag:  HeadTag{Tag: "noscript"},
			want: `["noscript",{}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.tag)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))

			var back HeadTag
			require.NoError(t, json.Unmarshal(got, &back))
			assert.Equal(t, tt.tag, back)
		})
	}
}

func TestHeadTag_UnmarshalRejectsBadShapes(t *testing.T) {
	for _, in := range []string{
		`{"tag":"link"}`,
		`["link"]`,
		`["link",{},"a","b"]`,
		`[1,{}]`,
		`["link",{"rel":1}]`,
	} {
		var h HeadTag
		assert.Error(t, json.Unmarshal([]byte(in), &h), in)
	}
}
