package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/techflow-ai/pitchdeck/internal/config"
	"github.com/techflow-ai/pitchdeck/internal/deck"
	"github.com/techflow-ai/pitchdeck/internal/plot"
	"github.com/techflow-ai/pitchdeck/internal/report"
	"github.com/techflow-ai/pitchdeck/internal/site"
)

// logger is the application-wide structured logger (writes to stderr).
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

// Set by build flags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "pitchdeck",
		Short: "TechFlow AI pitch deck in the terminal, the browser and on disk",
		Long: `pitchdeck presents the TechFlow AI investor deck: eight sections
selected from a sidebar, with charts drawn as tables in the terminal
and as SVG or PNG images in the browser and the static export.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"path to config file (default: "+config.DefaultFile+" if present)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"enable debug logging")

	root.AddCommand(newSectionsCmd(flags))
	root.AddCommand(newRenderCmd(flags))
	root.AddCommand(newChartCmd(flags))
	root.AddCommand(newBrowseCmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newSchemaCmd())

	return root
}

// loadConfig loads the configuration and logs where it came from.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = config.DefaultFile
	}
	logger.Debug("configuration loaded", "path", path, "title", cfg.Title)
	return cfg, nil
}

// defaultSection returns the section a new session starts on: the
// configured default when it resolves, otherwise the first.
func defaultSection(reg *deck.Registry, cfg *config.Config) deck.Section {
	if cfg.DefaultSection != "" {
		s, err := reg.Find(cfg.DefaultSection)
		if err == nil {
			return s
		}
		logger.Warn("default section not found, using first", "name", cfg.DefaultSection)
	}
	return reg.First()
}

// --- sections --------------------------------------------------------------

// sectionsParams holds the parsed flags for the sections command.
type sectionsParams struct {
	configPath string
	stdout     io.Writer
}

// runSections is the extracted, testable body of the sections command.
func runSections(p sectionsParams) error {
	cfg, err := loadConfig(p.configPath)
	if err != nil {
		return err
	}
	reg := deck.Default()
	def := defaultSection(reg, cfg).ID()

	for _, s := range reg.Sections() {
		marker := " "
		if s.ID() == def {
			marker = "*"
		}
		fmt.Fprintf(p.stdout, "%s %-10s %s\n", marker, s.ID().Slug(), deck.Label(s))
	}
	return nil
}

func newSectionsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the deck sections in display order",
		Long: `List every section slug and label in display order. The
section a new session starts on is marked with '*'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(sectionsParams{
				configPath: flags.configPath,
				stdout:     cmd.OutOrStdout(),
			})
		},
	}
}

// --- render ----------------------------------------------------------------

// renderParams holds the parsed flags for the render command.
type renderParams struct {
	ctx        context.Context
	section    string
	all        bool
	format     string
	width      int
	configPath string
	stdout     io.Writer
}

// runRender is the extracted, testable body of the render command.
func runRender(p renderParams) error {
	if p.format != "text" && p.format != "json" && p.format != "html" {
		return fmt.Errorf("invalid format %q: must be 'text', 'json', or 'html'", p.format)
	}
	if p.all && p.section != "" {
		return errors.New("--all cannot be combined with a section name")
	}
	if p.ctx == nil {
		p.ctx = context.Background()
	}

	cfg, err := loadConfig(p.configPath)
	if err != nil {
		return err
	}
	reg := deck.Default()

	var pages []deck.Page
	if p.all {
		pages, err = deck.RenderAll(p.ctx, reg)
		if err != nil {
			return err
		}
	} else {
		target := defaultSection(reg, cfg)
		if p.section != "" {
			if target, err = reg.Find(p.section); err != nil {
				return err
			}
		}
		nav := deck.NewNavigator(reg, deck.SurfaceFunc(func(page deck.Page) error {
			pages = append(pages, page)
			return nil
		}))
		if err := nav.SelectID(target.ID()); err != nil {
			return err
		}
	}
	logger.Debug("rendered", "sections", len(pages))

	doc := report.NewDocument(reg, cfg).WithPages(pages...)
	switch p.format {
	case "json":
		return report.WriteJSON(p.stdout, doc, version)
	case "html":
		return report.WriteHTML(p.stdout, doc, report.HTMLOptions{})
	default:
		return report.WriteText(p.stdout, doc, p.width)
	}
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var (
		all    bool
		format string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "render [section]",
		Short: "Render one section, or the whole deck, to stdout",
		Long: `Render a section by label, slug or name ("problem", "tech stack",
"📊 Problem"). Without arguments the default section is rendered;
--all renders every section in order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) == 1 {
				section = args[0]
			}
			return runRender(renderParams{
				ctx:        cmd.Context(),
				section:    section,
				all:        all,
				format:     format,
				width:      width,
				configPath: flags.configPath,
				stdout:     cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "render every section")
	cmd.Flags().StringVar(&format, "format", "text",
		"output format: text, json, or html")
	cmd.Flags().IntVar(&width, "width", report.DefaultWidth,
		"text output width in columns")

	return cmd
}

// --- chart -----------------------------------------------------------------

// chartParams holds the parsed flags for the chart command.
type chartParams struct {
	section    string
	index      int
	format     string
	out        string
	width      int
	height     int
	configPath string
	stdout     io.Writer
}

// runChart is the extracted, testable body of the chart command.
func runChart(p chartParams) (err error) {
	format, err := plot.ParseFormat(p.format)
	if err != nil {
		return err
	}
	if p.width < 0 || p.height < 0 {
		return fmt.Errorf("invalid size %dx%d: must not be negative", p.width, p.height)
	}

	cfg, err := loadConfig(p.configPath)
	if err != nil {
		return err
	}
	sec, err := deck.Default().Find(p.section)
	if err != nil {
		return err
	}
	page, err := sec.Render()
	if err != nil {
		return err
	}
	charts := page.Charts()
	if p.index < 0 || p.index >= len(charts) {
		return fmt.Errorf("section %q has %d chart(s); index %d out of range",
			page.Slug, len(charts), p.index)
	}

	if !charts[p.index].Monotonic() {
		logger.Warn("line chart x values are not monotonic", "chart", charts[p.index].Title)
	}

	w := p.stdout
	if p.out != "" {
		f, ferr := os.Create(p.out)
		if ferr != nil {
			return fmt.Errorf("creating %s: %w", p.out, ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	opts := plot.Options{Width: p.width, Height: p.height, Style: plot.ThemeStyle(cfg.Theme)}
	if err := plot.Render(w, format, charts[p.index], opts); err != nil {
		return err
	}
	if p.out != "" {
		logger.Info("chart written", "path", p.out, "title", charts[p.index].Title)
	}
	return nil
}

func newChartCmd(flags *rootFlags) *cobra.Command {
	var (
		index  int
		format string
		out    string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "chart <section>",
		Short: "Draw a section's chart as SVG or PNG",
		Long: `Draw the chart of a section as an image. Sections with several
charts take --index; sections without charts are an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(chartParams{
				section:    args[0],
				index:      index,
				format:     format,
				out:        out,
				width:      width,
				height:     height,
				configPath: flags.configPath,
				stdout:     cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "chart index within the section")
	cmd.Flags().StringVar(&format, "format", "svg", "image format: svg or png")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels (default 640)")
	cmd.Flags().IntVar(&height, "height", 0, "image height in pixels (default: chart hint)")

	return cmd
}

// --- export ----------------------------------------------------------------

// exportParams holds the parsed flags for the export command.
type exportParams struct {
	ctx        context.Context
	dir        string
	force      bool
	png        bool
	configPath string
	stdout     io.Writer
}

// runExport is the extracted, testable body of the export command.
func runExport(p exportParams) error {
	if p.ctx == nil {
		p.ctx = context.Background()
	}
	cfg, err := loadConfig(p.configPath)
	if err != nil {
		return err
	}
	result, err := site.Export(p.ctx, deck.Default(), cfg, site.Options{
		TargetDir: p.dir,
		Force:     p.force,
		PNG:       p.png,
		Version:   version,
		Stdout:    p.stdout,
	})
	if err != nil {
		return err
	}
	logger.Debug("export complete",
		"created", len(result.Created),
		"skipped", len(result.Skipped),
		"overwritten", len(result.Overwritten))
	return nil
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	var (
		force bool
		png   bool
	)

	cmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "Write the deck as a static website",
		Long: `Write index.html, one HTML page per section, chart images under
charts/ and deck.json into dir (default "site"). Existing files are
skipped unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runExport(exportParams{
				ctx:        cmd.Context(),
				dir:        dir,
				force:      force,
				png:        png,
				configPath: flags.configPath,
				stdout:     cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	cmd.Flags().BoolVar(&png, "png", false, "also write PNG chart images")

	return cmd
}

// --- schema ----------------------------------------------------------------

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for deck JSON output",
		Long: `Print the JSON Schema (Draft 2020-12) that documents the
structure of pitchdeck render --format=json output. Useful for
validating output or generating client types.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(report.Schema))
			return err
		},
	}
}
