package model

// Page is a Markdown source page of the documentation site.
type Page struct {
	SourcePath string // relative to the content directory, slash separated
	Link       string // site link, e.g. "/guide/install" or "/guide/"
	Title      string
	Order      int
	Section    string // top-level directory, empty for root pages
	Index      bool   // page is the index.md of its directory
}
