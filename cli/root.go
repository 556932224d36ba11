package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd is the root command for roomsched.
var rootCmd = &cobra.Command{
	Use:     "roomsched",
	Version: "dev",
	Short:   "Room reservation conflict resolver",
	Long: `roomsched decides which parts of a candidate room booking can be granted
next to the existing bookings of the same room, using booking priorities to
settle contested time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default: ./config.yaml or ./config/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(tokenCmd)
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
