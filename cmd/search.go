package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"train-search-server/models"
	"train-search-server/search"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find direct trains between two stations in the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		destination, _ := cmd.Flags().GetString("destination")
		if source == "" || destination == "" {
			return fmt.Errorf("both --source and --destination are required")
		}

		_, s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		itineraries, err := search.NewService(s).Search(cmd.Context(), source, destination)
		if err != nil {
			return err
		}

		printItineraries(cmd.OutOrStdout(), source, destination, itineraries)
		return nil
	},
}

func printItineraries(w io.Writer, source, destination string, itineraries []models.Itinerary) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s → %s", source, destination)))
	if len(itineraries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No direct trains found."))
		return
	}

	rows := [][]string{{"TRAIN", "DEPARTS", "ARRIVES", "DISTANCE", "PRICE"}}
	for _, it := range itineraries {
		rows = append(rows, []string{
			it.Train,
			it.Starting,
			it.Reaching,
			fmt.Sprintf("%g", it.Distance),
			it.Price,
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if n := lipgloss.Width(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = lipgloss.NewStyle().Width(widths[i]).Render(cell)
		}
		line := strings.Join(cells, "  ")
		if r == 0 {
			line = headerStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func init() {
	searchCmd.Flags().String("source", "", "departure station")
	searchCmd.Flags().String("destination", "", "arrival station")
	rootCmd.AddCommand(searchCmd)
}
