package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	thirteenf "github.com/RxDataLab/go-13f"
)

var (
	exportCSV         bool
	exportDir         string
	sortByShareChange bool
	fullCUSIP         bool
)

var rootCmd = &cobra.Command{
	Use:     "go13f <cik>",
	Version: thirteenf.VERSION,
	Short:   "Compare an institution's two most recent 13F filings",
	Long: `go13f fetches an institution's two most recent 13F holdings reports
from SEC EDGAR and prints ranked tables of its largest holdings, buys,
and sells.

SEC requires every request to identify the caller with a contact email;
set --user-agent or the SEC_USER_AGENT environment variable, e.g.
"Research research@example.org".`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	viper.BindEnv("user_agent", "SEC_USER_AGENT")
	rootCmd.PersistentFlags().String("user-agent", "", "User-Agent for SEC requests (must include a contact email)")
	viper.BindPFlag("user_agent", rootCmd.PersistentFlags().Lookup("user-agent"))

	viper.BindEnv("log_level", "GO13F_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warn", "Logging level (debug, info, warn, error)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.Flags().BoolVar(&exportCSV, "export", false, "Export the ranked tables as CSV files")
	rootCmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for exported CSV files")
	rootCmd.Flags().BoolVar(&sortByShareChange, "sort-by-share-change", false, "Record share-change ordering preference in the result")
	rootCmd.Flags().BoolVar(&fullCUSIP, "full-cusip", false, "Aggregate by full 9-character CUSIP instead of the 8-character prefix")
}

func run(cmd *cobra.Command, args []string) error {
	setupLogging(viper.GetString("log_level"))

	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		return fmt.Errorf("a User-Agent with a contact email is required: set --user-agent or SEC_USER_AGENT")
	}

	analyzer, err := thirteenf.NewAnalyzer(userAgent)
	if err != nil {
		return err
	}

	analysis, err := analyzer.Analyze(args[0], thirteenf.AnalyzeOptions{
		ExportCSV:         exportCSV,
		ExportDir:         exportDir,
		SortByShareChange: sortByShareChange,
		FullCUSIP:         fullCUSIP,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Institution CIK %s\n", analysis.CIK)
	fmt.Printf("Current filing:  %s\n", analysis.CurrentAccession)
	fmt.Printf("Previous filing: %s\n", analysis.PreviousAccession)
	thirteenf.WriteReport(os.Stdout, analysis)

	for _, path := range analysis.ExportedFiles {
		fmt.Printf("Exported %s\n", path)
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
