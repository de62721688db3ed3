package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected services. Commands check for nil so the CLI degrades to a
// clear error instead of panicking when run half-configured.
var (
	workService       driving.WorkService
	conversionService driving.ConversionService
	inspectionService driving.InspectionService
	curationService   driving.CurationService
	configStore       driven.ConfigStore
)

// verbose enables debug logging for all commands.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Convert documents into curated markdown chunks",
	Long: `Folio converts PDF and EPUB works into markdown artifacts,
inspects which processing stages are complete, and curates the
hierarchical rendering into chunks for retrieval indexing.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
}

// Services bundles everything the commands need.
type Services struct {
	Work       driving.WorkService
	Conversion driving.ConversionService
	Inspection driving.InspectionService
	Curation   driving.CurationService
	Config     driven.ConfigStore
}

// SetServices injects the core services into the command tree.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	workService = s.Work
	conversionService = s.Conversion
	inspectionService = s.Inspection
	curationService = s.Curation
	configStore = s.Config
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
