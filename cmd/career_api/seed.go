package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Meet-08/SIH2025-Prototype/internal/observability"
	"github.com/Meet-08/SIH2025-Prototype/internal/schemas"
	"github.com/Meet-08/SIH2025-Prototype/internal/seed"
)

var (
	seedColleges     string
	seedScholarships string
	seedCourses      string
	seedCareers      string
	seedMigrate      bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load catalog data from JSON files",
	Long: `Validate each JSON file against its embedded schema, then insert the records.
Colleges and scholarships load in parallel with courses; careers load after
courses so they can link courses by name through their "courses" list.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedColleges, "colleges", "", "Path to colleges JSON file")
	seedCmd.Flags().StringVar(&seedScholarships, "scholarships", "", "Path to scholarships JSON file")
	seedCmd.Flags().StringVar(&seedCourses, "courses", "", "Path to courses JSON file")
	seedCmd.Flags().StringVar(&seedCareers, "careers", "", "Path to careers JSON file")
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", true, "Apply the schema before loading")
	rootCmd.AddCommand(seedCmd)
}

// seedFiles collects the dataset files named on the command line.
func seedFiles() seed.Files {
	files := seed.Files{}
	for ds, path := range map[schemas.Dataset]string{
		schemas.Colleges:     seedColleges,
		schemas.Scholarships: seedScholarships,
		schemas.Courses:      seedCourses,
		schemas.Careers:      seedCareers,
	} {
		if path != "" {
			files[ds] = path
		}
	}
	return files
}

func runSeed(cmd *cobra.Command, _ []string) error {
	files := seedFiles()
	if len(files) == 0 {
		return fmt.Errorf("at least one of --colleges, --scholarships, --courses, --careers is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := connect(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return err
	}
	defer database.Close()

	if seedMigrate {
		if err := database.Migrate(ctx); err != nil {
			return err
		}
	}

	report, err := seed.Run(ctx, database, files)
	observability.NewPrinter(cmd.OutOrStdout()).PrintSeedReport(report)
	return err
}
