// Package pages discovers the Markdown pages of the documentation source tree.
package pages

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/molbal/cozyui-docs/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type pageMatter struct {
	Title string `yaml:"title"`
	Order int    `yaml:"order"`
}

var titleCaser = cases.Title(language.English)

// Scan walks dir for *.md files and returns them sorted by link. Directories
// starting with "." or named node_modules are skipped.
func Scan(dir string) ([]model.Page, error) {
	var pages []model.Page
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("access %s: %w", p, walkErr)
		}
		if d.IsDir() {
			name := d.Name()
			if p != dir && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read page %s: %w", p, err)
		}
		pages = append(pages, newPage(filepath.ToSlash(rel), data))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan pages in %s: %w", dir, err)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Link < pages[j].Link })
	return pages, nil
}

func newPage(rel string, data []byte) model.Page {
	var fm pageMatter
	// Pages without front matter, or with front matter that does not parse,
	// still belong to the site; they just get a derived title.
	if _, err := frontmatter.Parse(bytes.NewReader(data), &fm); err != nil {
		fm = pageMatter{}
	}

	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	dir := path.Dir(rel)
	isIndex := strings.EqualFold(base, "index")

	p := model.Page{
		SourcePath: rel,
		Link:       LinkFor(rel),
		Title:      strings.TrimSpace(fm.Title),
		Order:      fm.Order,
		Index:      isIndex,
	}
	if dir != "." {
		p.Section = strings.SplitN(dir, "/", 2)[0]
	}
	if p.Title == "" {
		name := base
		if isIndex {
			name = path.Base(dir)
			if dir == "." {
				name = "home"
			}
		}
		p.Title = TitleFromName(name)
	}
	return p
}

// LinkFor maps a slash separated source path to its site link:
// "guide/install.md" is "/guide/install", "guide/index.md" is "/guide/".
func LinkFor(rel string) string {
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if rel == "index" {
		return "/"
	}
	if strings.HasSuffix(rel, "/index") {
		return "/" + strings.TrimSuffix(rel, "index")
	}
	return "/" + rel
}

// TitleFromName turns a file or directory name like "first-generation" into
// "First Generation".
func TitleFromName(name string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCaser.String(strings.TrimSpace(s))
}
