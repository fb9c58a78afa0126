package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spigell/studentos/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the job catalog and the location table",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog jobs after configured exclusions",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		s := newSession(ctx)
		defer s.Close()

		jobs := s.filteredCatalog(ctx)
		out := cmd.OutOrStdout()

		if report, _ := cmd.Flags().GetBool("report"); report {
			pretty, _ := json.MarshalIndent(jobs.ReportByCompany(), "", "  ")
			fmt.Fprintln(out, string(pretty))
			return
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tLOCATION\tSALARY\tCATEGORY")
		for _, job := range jobs.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				job.ID, job.Title, job.Company, jobLocation(job), catalog.FormatLakhs(job.Salary), job.Category)
		}
		w.Flush()
	},
}

var catalogLocationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List known states and cities",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		for _, state := range catalog.Locations() {
			fmt.Fprintf(out, "%s: %s\n", state.Name, strings.Join(state.CityNames(), ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogLocationsCmd)
	catalogListCmd.Flags().Bool("report", false, "group jobs by company as JSON")
}
