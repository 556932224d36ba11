package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"roomsched/models"
	"roomsched/services/conflict"

	"github.com/spf13/cobra"
)

var (
	resolveInput  string
	resolvePolicy string
	resolveIndent bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve one candidate booking offline",
	Long: `Read {"existing": [...], "candidate": {...}} as JSON and print the decision.
Nothing is cached or recorded. Use "-f -" to read from stdin.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, _, err := conflict.PolicyByName(resolvePolicy)
		if err != nil {
			return err
		}

		data, err := readInput(cmd, resolveInput)
		if err != nil {
			return err
		}

		var req models.DecisionRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("failed to parse input: %w", err)
		}

		decision, err := conflict.NewResolver(policy).Resolve(req.Existing, req.Candidate)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		if resolveIndent {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(decision)
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveInput, "file", "f", "-", "input JSON file, or - for stdin")
	resolveCmd.Flags().StringVar(&resolvePolicy, "policy", conflict.PolicyIncumbent, "tie policy: incumbent or candidate")
	resolveCmd.Flags().BoolVar(&resolveIndent, "pretty", false, "indent the JSON output")
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
