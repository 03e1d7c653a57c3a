// Command preflight generates drone operation checklists and procedure
// manuals. Run bare it filters the catalog by the selected operation type,
// drone platform and drone count, renders the two PDFs and publishes them
// into a fresh run folder, archiving the previous run.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wilddrones/preflight/internal/catalog"
	"github.com/wilddrones/preflight/internal/config"
	"github.com/wilddrones/preflight/internal/filter"
	"github.com/wilddrones/preflight/internal/logbook"
	"github.com/wilddrones/preflight/internal/logging"
	"github.com/wilddrones/preflight/internal/output"
	"github.com/wilddrones/preflight/internal/render"
)

var (
	cfgPath     string
	dataDir     string
	outputDir   string
	operation   string
	platform    string
	count       string
	listOptions bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Generate drone operation checklists and procedure manuals",
	Long: `preflight filters a catalog of drone operating procedures by operation
type, drone platform and drone count, and renders the result as two PDFs:
a compact checklist and a detailed procedure manual.

Each run is written to its own folder under the output directory; the
previous run is moved into output/archive first.

Examples:
  preflight --operation VLOS --drone DJI --count SINGLE
  preflight -o BVLOS_NO_VO -d EBEE -c MULTIPLE
  preflight --list-options
  preflight interactive`,
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "preflight.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the catalog data directory")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "override the output directory")
	rootCmd.PersistentFlags().StringVarP(&operation, "operation", "o", "", "operation type code")
	rootCmd.PersistentFlags().StringVarP(&platform, "drone", "d", "", "drone platform code")
	rootCmd.PersistentFlags().StringVarP(&count, "count", "c", "", "drone count code")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&listOptions, "list-options", false, "list the available facet options and exit")

	rootCmd.AddCommand(interactiveCmd, watchCmd, runsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the pieces every command needs.
type app struct {
	cfg      *config.Config
	registry *config.Registry
	log      *logging.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log, err := logging.New(logging.Config{Level: level, Format: cfg.Logging.Format})
	if err != nil {
		return nil, err
	}

	registry, err := config.LoadRegistry(cfg.RegistryFile)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, registry: registry, log: log}, nil
}

// selection resolves the triple from flags, config defaults, then the first
// registry option of each facet.
func (a *app) selection() filter.Selection {
	sel := filter.Selection{
		Operation: a.cfg.Defaults.Operation,
		Platform:  a.cfg.Defaults.Platform,
		Count:     a.cfg.Defaults.Count,
	}
	if sel.Operation == "" {
		sel.Operation = a.registry.First(config.FacetOperationType)
	}
	if sel.Platform == "" {
		sel.Platform = a.registry.First(config.FacetDronePlatform)
	}
	if sel.Count == "" {
		sel.Count = a.registry.First(config.FacetDroneCount)
	}
	if operation != "" {
		sel.Operation = operation
	}
	if platform != "" {
		sel.Platform = platform
	}
	if count != "" {
		sel.Count = count
	}
	return sel
}

// generate runs the full pipeline for one selection and returns the new run
// folder path.
func (a *app) generate(sel filter.Selection) (string, error) {
	if err := sel.Validate(a.registry); err != nil {
		return "", err
	}

	docs, err := catalog.LoadDir(a.cfg.DataDir)
	if err != nil {
		return "", err
	}
	filtered := filter.Apply(docs, sel)
	a.log.Info("catalog filtered",
		logging.String("selection", sel.String()),
		logging.Int("documents", len(filtered)),
	)

	renderer, err := render.New(a.registry, a.cfg.Assets)
	if err != nil {
		return "", err
	}
	checklist, err := renderer.Checklist(filtered, sel)
	if err != nil {
		return "", err
	}
	manual, err := renderer.Manual(filtered, sel)
	if err != nil {
		return "", err
	}

	manager := output.NewManager(a.cfg.OutputDir, output.WithLogger(a.log.Named("output")))
	runDir, err := manager.Publish(sel, checklist, manual)
	if err != nil {
		return "", err
	}

	if journal, err := logbook.InDir(a.cfg.OutputDir); err == nil {
		if err := journal.Record(filepath.Base(runDir), sel); err != nil {
			a.log.Warn("journal entry not recorded", logging.Error(err))
		}
	} else {
		a.log.Warn("journal unavailable", logging.Error(err))
	}
	return runDir, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	if listOptions {
		fmt.Print(formatOptions(a.registry))
		return nil
	}

	runDir, err := a.generate(a.selection())
	if err != nil {
		return err
	}
	fmt.Println(runDir)
	return nil
}

// formatOptions renders every facet's options in registry order, the way
// --list-options prints them.
func formatOptions(reg *config.Registry) string {
	headings := map[config.Facet]string{
		config.FacetOperationType: "Operation Types",
		config.FacetDronePlatform: "Drone Platforms",
		config.FacetDroneCount:    "Number of Drones",
	}
	var b strings.Builder
	b.WriteString("Available Options:\n")
	for _, facet := range config.Facets() {
		fmt.Fprintf(&b, "\n%s:\n", headings[facet])
		for _, opt := range reg.Options(facet) {
			fmt.Fprintf(&b, "  %-12s - %s\n", opt.Code, opt.DisplayName)
		}
	}
	return b.String()
}
