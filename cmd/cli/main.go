package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sallamerger/backend/config"
	"github.com/sallamerger/backend/internal/domain"
	"github.com/sallamerger/backend/internal/infrastructure/spreadsheet"
	"github.com/sallamerger/backend/internal/usecase"
	"github.com/spf13/cobra"
)

// errReported marks failures whose JSON result was already printed
var errReported = errors.New("failure reported")

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	os.Exit(execute(newRootCmd(cfg), os.Stderr))
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sallamerger",
		Short:         "Clean product listing workbooks and filter them by brand",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newCleanCmd(cfg),
		newDetectCmd(cfg),
		newExtractCmd(cfg),
	)

	return rootCmd
}

// execute runs root and returns the process exit code.
// Failures already printed as JSON are not repeated on stderr.
func execute(root *cobra.Command, stderr io.Writer) int {
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func newListingService(cfg *config.Config) *usecase.ListingService {
	return usecase.NewListingService(
		spreadsheet.NewReader(),
		spreadsheet.NewWriter(),
		nil,
		usecase.ListingServiceConfig{
			ProductColumn:      cfg.Listing.ProductColumn,
			MinFrequency:       cfg.Listing.MinFrequency,
			MaxCandidates:      cfg.Listing.MaxCandidates,
			FallbackCandidates: cfg.Listing.FallbackCandidates,
			TokensPerProduct:   cfg.Listing.TokensPerProduct,
			HeaderMinCells:     cfg.Listing.HeaderMinCells,
			EnableDebugLogging: cfg.Listing.EnableDebugLogging,
		},
	)
}

func newCleanCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "clean [file]",
		Short: "Detect the header row, drop empty rows/columns and write <file>_cleaned.xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return err
			}

			result, err := newListingService(cfg).Clean(cmd.Context(), data)
			if err != nil {
				return fmt.Errorf("error cleaning Excel file: %s", domain.Message(err, cfg.Listing.Language))
			}

			outputPath := siblingPath(args[0], "_cleaned")
			if err := os.WriteFile(outputPath, result.Workbook, 0644); err != nil {
				return fmt.Errorf("error writing %s: %w", outputPath, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), outputPath)
			return nil
		},
	}
}

func newDetectCmd(cfg *config.Config) *cobra.Command {
	var column string
	var minFrequency int

	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Suggest brand names from the product column",
		Long: `Suggest brand names by counting the leading words of every product name.

Words that appear at least --min-frequency times are returned (top 50); when
none do, the 10 most frequent words are returned instead.

Example: sallamerger detect listing_cleaned.xlsx --min-frequency 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			data, err := readInput(args[0])
			if err != nil {
				return reportJSON(out, domain.DetectionFailure(err, cfg.Listing.Language))
			}

			result, err := newListingService(cfg).DetectBrands(cmd.Context(), data, usecase.DetectRequest{
				ProductColumn: column,
				MinFrequency:  minFrequency,
			})
			if err != nil {
				return reportJSON(out, domain.DetectionFailure(err, cfg.Listing.Language))
			}

			return printJSON(out, result)
		},
	}

	cmd.Flags().StringVar(&column, "column", cfg.Listing.ProductColumn, "Product column name (substring match)")
	cmd.Flags().IntVar(&minFrequency, "min-frequency", cfg.Listing.MinFrequency, "Minimum occurrences for a brand")

	return cmd
}

func newExtractCmd(cfg *config.Config) *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "extract [file] [brands-json]",
		Short: "Keep only products of the given brands and write <file>_filtered_brands.xlsx",
		Long: `Keep the rows whose product name contains at least one of the brands.

Example: sallamerger extract listing_cleaned.xlsx '["Nike","Adidas"]'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			data, err := readInput(args[0])
			if err != nil {
				return reportJSON(out, domain.ExtractionFailure(err, cfg.Listing.Language))
			}

			var brands []string
			if err := json.Unmarshal([]byte(args[1]), &brands); err != nil {
				err = fmt.Errorf("%w: brands must be a JSON array of strings", domain.ErrInvalidRequest)
				return reportJSON(out, domain.ExtractionFailure(err, cfg.Listing.Language))
			}

			result, workbook, err := newListingService(cfg).ExtractBrands(cmd.Context(), data, usecase.ExtractRequest{
				ProductColumn: column,
				Brands:        brands,
			})
			if err != nil {
				return reportJSON(out, domain.ExtractionFailure(err, cfg.Listing.Language))
			}

			outputPath := siblingPath(args[0], "_filtered_brands")
			if err := os.WriteFile(outputPath, workbook, 0644); err != nil {
				err = fmt.Errorf("%w: %v", domain.ErrUnexpectedFailure, err)
				return reportJSON(out, domain.ExtractionFailure(err, cfg.Listing.Language))
			}
			result.OutputPath = outputPath

			return printJSON(out, result)
		},
	}

	cmd.Flags().StringVar(&column, "column", cfg.Listing.ProductColumn, "Product column name (substring match)")

	return cmd
}

// readInput checks that path exists before reading it
func readInput(path string) ([]byte, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileUnreadable, err)
	}
	return data, nil
}

// siblingPath returns path with suffix inserted before an .xlsx extension
func siblingPath(path, suffix string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + suffix + ".xlsx"
}

// printJSON writes v as UTF-8 JSON without escaping non-ASCII text
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// reportJSON prints a failure result and returns errReported for a non-zero exit
func reportJSON(w io.Writer, v interface{}) error {
	if err := printJSON(w, v); err != nil {
		return err
	}
	return errReported
}
