package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	wiki "github.com/goliatone/go-wiki"
)

func main() {
	var (
		contentDir = flag.String("content-dir", "content", "Path to the markdown content root")
		page       = flag.String("page", "", "Page path to preview (empty for the home page)")
		strategy   = flag.String("strategy", wiki.StrategyFull, "Renderer strategy: full or fallback")
		showTOC    = flag.Bool("toc", true, "Print the page's heading outline")
		showHTML   = flag.Bool("html", true, "Print the rendered HTML")
	)

	flag.Parse()

	cfg := wiki.DefaultConfig()
	cfg.ContentDir = *contentDir
	cfg.Cache.Enabled = false
	cfg.Cache.Dir = ""
	cfg.Markdown.Strategy = *strategy

	module, err := wiki.New(cfg)
	if err != nil {
		log.Fatalf("configure wiki: %v", err)
	}

	repo := module.Content()
	path := repo.CurrentPath(*page)

	title := repo.GetPageTitle(path)
	fmt.Fprintf(os.Stdout, "Title: %s\n", title)

	info := module.RendererInfo()
	fmt.Fprintf(os.Stdout, "Renderer: %s\n", info.Name)

	if modified, err := repo.PageModified(path); err == nil {
		fmt.Fprintf(os.Stdout, "Modified: %s\n", modified.Format("2006-01-02 15:04:05"))
	}

	crumbs := repo.GetBreadcrumbs(path)
	fmt.Fprint(os.Stdout, "Breadcrumbs:")
	for _, crumb := range crumbs {
		fmt.Fprintf(os.Stdout, " %s(%s)", crumb.Name, crumb.Path)
	}
	fmt.Fprintln(os.Stdout)

	if *showTOC {
		fmt.Fprintln(os.Stdout, "\nHeadings:")
		for _, heading := range repo.GetPageHeadings(path) {
			fmt.Fprintf(os.Stdout, "  h%d %-30s #%s\n", heading.Level, heading.Text, heading.ID)
		}
	}

	if *showHTML {
		html, err := repo.GetPageContent(path)
		if err != nil {
			log.Fatalf("render page %q: %v", path, err)
		}
		fmt.Fprintf(os.Stdout, "\nRendered HTML:\n%s\n", html)
	}
}
