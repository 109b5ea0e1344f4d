package model

import "fmt"

// Field paths use the generator's key names so findings and diffs point at
// the same place an author would edit.

func NavField(i int) string {
	return fmt.Sprintf("themeConfig.nav[%d]", i)
}

func SidebarField(i int) string {
	return fmt.Sprintf("themeConfig.sidebar[%d]", i)
}

func SidebarItemField(section, item int) string {
	return fmt.Sprintf("themeConfig.sidebar[%d].items[%d]", section, item)
}

func SocialField(i int) string {
	return fmt.Sprintf("themeConfig.socialLinks[%d]", i)
}

func HeadField(i int) string {
	return fmt.Sprintf("head[%d]", i)
}
