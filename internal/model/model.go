package model

// SiteConfig is the complete navigation and metadata configuration of the
// documentation site, in the shape the site generator reads at build time.
type SiteConfig struct {
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description" json:"description"`
	Lang        string      `yaml:"lang,omitempty" json:"lang,omitempty"`
	CleanURLs   bool        `yaml:"cleanUrls,omitempty" json:"cleanUrls,omitempty"`
	LastUpdated bool        `yaml:"lastUpdated,omitempty" json:"lastUpdated,omitempty"`
	Head        []HeadTag   `yaml:"head,omitempty" json:"head,omitempty"`
	Sitemap     *Sitemap    `yaml:"sitemap,omitempty" json:"sitemap,omitempty"`
	ThemeConfig ThemeConfig `yaml:"themeConfig" json:"themeConfig"`
}

// Sitemap carries the base URL used for the generated sitemap.
type Sitemap struct {
	Hostname string `yaml:"hostname" json:"hostname"`
}

// ThemeConfig holds everything the default theme renders around a page.
type ThemeConfig struct {
	Logo        string           `yaml:"logo,omitempty" json:"logo,omitempty"`
	Nav         []NavItem        `yaml:"nav,omitempty" json:"nav,omitempty"`
	Sidebar     []SidebarSection `yaml:"sidebar,omitempty" json:"sidebar,omitempty"`
	SocialLinks []SocialLink     `yaml:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Search      *Search          `yaml:"search,omitempty" json:"search,omitempty"`
	Footer      *FooterConfig    `yaml:"footer,omitempty" json:"footer,omitempty"`
	EditLink    *EditLink        `yaml:"editLink,omitempty" json:"editLink,omitempty"`
}

// NavItem is a single labeled link in the top bar or in a sidebar section.
type NavItem struct {
	Text string `yaml:"text" json:"text"`
	Link string `yaml:"link" json:"link"`
}

// SidebarSection is a named, ordered group of links.
type SidebarSection struct {
	Text      string    `yaml:"text" json:"text"`
	Collapsed *bool     `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
	Items     []NavItem `yaml:"items" json:"items"`
}

// SocialLink is an icon-labeled link to a community platform.
type SocialLink struct {
	Icon string `yaml:"icon" json:"icon"`
	Link string `yaml:"link" json:"link"`
}

// Search selects the search backend.
type Search struct {
	Provider string `yaml:"provider" json:"provider"`
}

// FooterConfig is the page footer. Both fields may contain inline markup.
type FooterConfig struct {
	Message   string `yaml:"message,omitempty" json:"message,omitempty"`
	Copyright string `yaml:"copyright,omitempty" json:"copyright,omitempty"`
}

// EditLink configures the "Edit this page" link. Pattern contains :path,
// which the generator replaces with the page's source path.
type EditLink struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Text    string `yaml:"text,omitempty" json:"text,omitempty"`
}

// Link is a link found in the navigation tree together with where it was found.
type Link struct {
	Field string
	Text  string
	Link  string
}

// Links returns every nav and sidebar link in author order.
func (c SiteConfig) Links() []Link {
	var links []Link
	for i, it := range c.ThemeConfig.Nav {
		links = append(links, Link{Field: NavField(i), Text: it.Text, Link: it.Link})
	}
	for i, sec := range c.ThemeConfig.Sidebar {
		for j, it := range sec.Items {
			links = append(links, Link{Field: SidebarItemField(i, j), Text: it.Text, Link: it.Link})
		}
	}
	return links
}

// Normalize gives every sidebar section a non-nil Items slice, so an empty
// section encodes as [] in both formats and decodes back to the same value.
func (c *SiteConfig) Normalize() {
	for i := range c.ThemeConfig.Sidebar {
		if c.ThemeConfig.Sidebar[i].Items == nil {
			c.ThemeConfig.Sidebar[i].Items = []NavItem{}
		}
	}
}

// Clone returns a deep copy that shares no slices, maps or pointers with c.
func (c SiteConfig) Clone() SiteConfig {
	out := c
	if c.Head != nil {
		out.Head = make([]HeadTag, len(c.Head))
		for i, h := range c.Head {
			out.Head[i] = h.clone()
		}
	}
	if c.Sitemap != nil {
		s := *c.Sitemap
		out.Sitemap = &s
	}
	out.ThemeConfig = c.ThemeConfig.clone()
	return out
}

func (t ThemeConfig) clone() ThemeConfig {
	out := t
	out.Nav = cloneItems(t.Nav)
	if t.Sidebar != nil {
		out.Sidebar = make([]SidebarSection, len(t.Sidebar))
		for i, sec := range t.Sidebar {
			cp := sec
			if sec.Collapsed != nil {
				v := *sec.Collapsed
				cp.Collapsed = &v
			}
			cp.Items = cloneItems(sec.Items)
			out.Sidebar[i] = cp
		}
	}
	if t.SocialLinks != nil {
		out.SocialLinks = make([]SocialLink, len(t.SocialLinks))
		copy(out.SocialLinks, t.SocialLinks)
	}
	if t.Search != nil {
		s := *t.Search
		out.Search = &s
	}
	if t.Footer != nil {
		f := *t.Footer
		out.Footer = &f
	}
	if t.EditLink != nil {
		e := *t.EditLink
		out.EditLink = &e
	}
	return out
}

func cloneItems(in []NavItem) []NavItem {
	if in == nil {
		return nil
	}
	out := make([]NavItem, len(in))
	copy(out, in)
	return out
}
