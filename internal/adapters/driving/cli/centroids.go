package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

var centroidsCmd = &cobra.Command{
	Use:     "centroids",
	Aliases: []string{"centroid"},
	Short:   "Manage locally stored centroid vectors",
	Long: `Manage the centroid vectors used by the local similarity oracle.

Centroids are imported from a JSON array of {"id": ..., "vector": [...]}
objects and stored in the local database.`,
}

var centroidsImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import centroids from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if centroidService == nil {
			return errors.New("centroid service not configured")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		var centroids []domain.Centroid
		if err := json.Unmarshal(data, &centroids); err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		n, err := centroidService.Import(cmd.Context(), centroids)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		cmd.Printf("Imported %d centroids\n", n)
		return nil
	},
}

var centroidsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored centroid IDs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if centroidService == nil {
			return errors.New("centroid service not configured")
		}

		ids, err := centroidService.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list centroids: %w", err)
		}

		if len(ids) == 0 {
			cmd.Println("No centroids stored.")
			cmd.Println("Import some with: geodist centroids import <file.json>")
			return nil
		}

		for _, id := range ids {
			cmd.Println(id)
		}
		return nil
	},
}

var centroidsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored centroid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if centroidService == nil {
			return errors.New("centroid service not configured")
		}

		c, err := centroidService.Get(cmd.Context(), domain.CentroidID(args[0]))
		if err != nil {
			return fmt.Errorf("failed to get centroid: %w", err)
		}

		cmd.Printf("ID:         %s\n", c.ID)
		cmd.Printf("Dimensions: %d\n", len(c.Vector))
		if !c.UpdatedAt.IsZero() {
			cmd.Printf("Updated:    %s\n", c.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		cmd.Printf("Vector:     %v\n", c.Vector)
		return nil
	},
}

var centroidsRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a stored centroid",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if centroidService == nil {
			return errors.New("centroid service not configured")
		}

		if err := centroidService.Delete(cmd.Context(), domain.CentroidID(args[0])); err != nil {
			return fmt.Errorf("failed to remove centroid: %w", err)
		}

		cmd.Printf("Removed centroid %s\n", args[0])
		return nil
	},
}

func init() {
	centroidsCmd.AddCommand(centroidsImportCmd)
	centroidsCmd.AddCommand(centroidsListCmd)
	centroidsCmd.AddCommand(centroidsShowCmd)
	centroidsCmd.AddCommand(centroidsRemoveCmd)
	rootCmd.AddCommand(centroidsCmd)
}
