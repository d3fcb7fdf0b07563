package cmd

import (
	"log"
	"time"

	"github.com/fortemind/career-compass/internal/logger"
	"github.com/fortemind/career-compass/internal/onet"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Rebuild the occupation catalog from the public O*NET interest tables",
	Run: func(cmd *cobra.Command, _ []string) {
		scrape(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringP("output", "o", defaultCatalogFile, "where to write the catalog csv")
	scrapeCmd.Flags().Duration("delay", time.Second, "pause between page requests")
	scrapeCmd.Flags().String("base-url", "", "override the O*NET base url")
}

func scrape(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	scraper := onet.NewScraper(logger)

	if base := cmd.Flag("base-url").Value.String(); base != "" {
		scraper.BaseURL = base
	}
	if delay, err := cmd.Flags().GetDuration("delay"); err == nil {
		scraper.Delay = delay
	}

	logger.Info("scraping interest tables", zap.String("base_url", scraper.BaseURL))

	interests, err := scraper.ScrapeInterests()
	if err != nil {
		logger.Fatal("scraping interest pages", zap.Error(err))
	}

	logger.Info("interest rows collected", zap.Int("count", len(interests)))

	families, err := scraper.ScrapeFamilies()
	if err != nil {
		logger.Fatal("scraping job family pages", zap.Error(err))
	}

	logger.Info("job family rows collected", zap.Int("count", len(families)))

	jobs := onet.BuildCatalog(interests, families)
	if jobs.Len() == 0 {
		logger.Fatal("no occupations survived the pivot, refusing to write an empty catalog")
	}

	output := cmd.Flag("output").Value.String()
	if err := onet.WriteCatalog(output, jobs); err != nil {
		logger.Fatal("writing the catalog", zap.Error(err))
	}

	logger.Info("catalog written",
		zap.String("filename", output),
		zap.Int("occupations", jobs.Len()),
	)
}
