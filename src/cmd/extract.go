package cmd

import (
	"consolidator/src/models"
	"consolidator/src/utils"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var (
		folder     string
		outputPath string
		xlsxPath   string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract and consolidate the statements of one month folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			output, xlsx := outputPath, xlsxPath
			if output == "" {
				output = a.cfg.Input.OutputFile
			}
			if xlsx == "" {
				xlsx = a.cfg.Input.XLSXFile
			}

			run, err := a.extraction.Run(ctx, folder)
			if err != nil {
				return err
			}

			if err := a.export.WriteJSONFile(output, run.Holdings); err != nil {
				return err
			}
			a.logger.WithField("file", output).Info("Holdings written")
			if xlsx != "" {
				if err := a.export.WriteXLSXFile(ctx, xlsx, run); err != nil {
					return err
				}
				a.logger.WithField("file", xlsx).Info("Workbook written")
			}
			if a.runs != nil {
				if err := a.runs.Create(ctx, run); err != nil {
					return fmt.Errorf("failed to store run %s: %w", run.ID, err)
				}
			}

			printRun(cmd.OutOrStdout(), run)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "month folder to read (default: latest month folder in input.dataDir)")
	cmd.Flags().StringVar(&outputPath, "output", "", "JSON output file (default: input.outputFile)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "XLSX output file (default: input.xlsxFile)")

	return cmd
}

func printRun(w io.Writer, run *models.ExtractionRun) {
	fmt.Fprintf(w, "Folder: %s\n", run.Folder)
	for _, issuer := range run.Issuers {
		if issuer.Error != "" {
			fmt.Fprintf(w, "  %-18s %s\n", issuer.ManagerName, issuer.Error)
			continue
		}
		fmt.Fprintf(w, "  %-18s %3d holdings  (%s)\n", issuer.ManagerName, issuer.HoldingsCount, issuer.File)
	}
	fmt.Fprintf(w, "Holdings: %d  Removed duplicates: %d\n", run.Totals.HoldingsCount, len(run.RemovedDuplicates))
	fmt.Fprintf(w, "Investment: %s  Market: %s  P&L: %s (%.2f%%)\n",
		utils.FormatCurrency(run.Totals.InvestmentValue, utils.CurrencyINR),
		utils.FormatCurrency(run.Totals.MarketValue, utils.CurrencyINR),
		utils.FormatCurrency(run.Totals.PLAmount, utils.CurrencyINR),
		run.Totals.ReturnPercentage)
}
