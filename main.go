package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/cj3636/gblame/internal/blame"
	"github.com/cj3636/gblame/internal/config"
	"github.com/cj3636/gblame/internal/export"
	"github.com/cj3636/gblame/internal/gitcli"
	"github.com/cj3636/gblame/internal/gradient"
	"github.com/cj3636/gblame/internal/tui"
)

var (
	showVersion  bool
	noLineNumber bool
	noSidebar    bool
	buckets      int
	sidebarWidth int
	tabSize      int
	themePreset  string
	highContrast bool
	help         bool
	exportFormat string
	exportFile   string
	exportCopy   bool
)

func init() {
	flag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flag.BoolVarP(&noLineNumber, "no-line-numbers", "n", false, "Hide line numbers")
	flag.BoolVar(&noSidebar, "no-sidebar", false, "Start with the blame sidebar collapsed")
	flag.IntVar(&buckets, "buckets", 0, "Number of commit-age color buckets (default from config)")
	flag.IntVar(&sidebarWidth, "sidebar-width", 0, "Column width of the blame sidebar (default from config)")
	flag.IntVarP(&tabSize, "tab-size", "t", 0, "Set tab size (default from config)")
	flag.StringVar(&themePreset, "theme", "", "Theme preset: default, solarized, or dracula")
	flag.BoolVar(&highContrast, "high-contrast", false, "Brighten the theme for high-contrast terminals")
	flag.StringVar(&exportFormat, "export-format", "", "Export the annotated listing as html, markdown, or ansi without launching the TUI")
	flag.StringVar(&exportFile, "export-file", "", "Write the exported listing to the provided file path")
	flag.BoolVar(&exportCopy, "export-copy", false, "Copy the exported listing to your clipboard")
	flag.BoolVarP(&help, "help", "h", false, "Show help information")
	flag.Usage = usage
}

func usage() {
	fmt.Println("gblame - A terminal blame sidebar built with Charm libraries")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  gblame [options] <file>")
	fmt.Println("")
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  gblame main.go")
	fmt.Println("  gblame --buckets 5 --theme dracula main.go")
	fmt.Println("  gblame --export-format html --export-file blame.html main.go # Export without TUI")
	fmt.Println("")
	fmt.Println("Keyboard shortcuts:")
	fmt.Println("  j/↓    Scroll down")
	fmt.Println("  k/↑    Scroll up")
	fmt.Println("  d      Scroll half page down")
	fmt.Println("  u      Scroll half page up")
	fmt.Println("  g      Go to top")
	fmt.Println("  G      Go to bottom")
	fmt.Println("  b      Toggle blame sidebar")
	fmt.Println("  esc    Close sidebar (quit when closed)")
	fmt.Println("  ctrl+n Toggle line numbers")
	fmt.Println("  ?/h    Toggle help panel")
	fmt.Println("  q      Quit")
}

func parseExportFormat(raw string) (export.Format, error) {
	switch raw {
	case "", string(export.FormatMarkdown), "md":
		return export.FormatMarkdown, nil
	case string(export.FormatHTML), "htm":
		return export.FormatHTML, nil
	case string(export.FormatANSI), "text":
		return export.FormatANSI, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", raw)
	}
}

// readSourceLines reads the annotated file for the primary pane.
func readSourceLines(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func applyFlags(cfg *config.Config) {
	if themePreset != "" {
		cfg.ThemePreset = config.ThemePreset(themePreset)
	}
	if highContrast {
		cfg.HighContrast = true
	}
	if themePreset != "" || highContrast {
		cfg.Theme = config.ThemeForPreset(cfg.ThemePreset, cfg.HighContrast)
	}
	if buckets > 0 {
		cfg.Buckets = buckets
	}
	if sidebarWidth > 0 {
		cfg.SidebarWidth = sidebarWidth
	}
	if tabSize > 0 {
		cfg.TabSize = tabSize
	}
	if noLineNumber {
		cfg.ShowLineNo = false
	}
}

func runExport(target string, git *gitcli.Client, cfg *config.Config) {
	format, err := parseExportFormat(exportFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	raw, err := git.Blame(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running blame: %v\n", err)
		os.Exit(1)
	}

	annotations := blame.Parse(raw)
	mapper := gradient.New(cfg.Buckets, cfg.Theme.GradientOldest, cfg.Theme.GradientNewest)
	mapper.Assign(annotations)

	rendered, err := export.Render(annotations, mapper, format, export.Options{
		Title:           filepath.Base(target),
		ShowLineNumbers: cfg.ShowLineNo,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting listing: %v\n", err)
		os.Exit(1)
	}

	if exportFile != "" {
		if err := os.WriteFile(exportFile, []byte(rendered), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "Listing saved to %s\n", exportFile)
	}

	if exportCopy {
		if err := export.CopyToClipboard(rendered, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error copying listing to clipboard: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Listing copied to clipboard.")
	}

	if exportFile == "" && !exportCopy {
		fmt.Println(rendered)
	}
}

func main() {
	flag.Parse()

	if help {
		usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Println("gblame version 0.1.0")
		fmt.Println("A terminal blame sidebar built with Charm libraries")
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no file given")
		usage()
		os.Exit(1)
	}

	target, err := filepath.Abs(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		os.Exit(1)
	}
	if _, err := os.Stat(target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: file '%s' does not exist\n", args[0])
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	git, err := gitcli.Discover(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if exportFormat != "" || exportFile != "" || exportCopy {
		runExport(target, git, cfg)
		os.Exit(0)
	}

	source, err := readSourceLines(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(target, source, cfg, git, !noSidebar)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
