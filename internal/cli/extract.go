package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errNoDest = errors.New("missing --dest directory")

var extractDestFlag string

// extractCmd represents the extract command.
var extractCmd = newExtractCmd()

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [entries...]",
		Short: "Extract classpath resources to a directory",
		Long:  extractLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(extractDestFlag) == "" {
				return errNoDest
			}

			s, err := buildScanner(args)
			if err != nil {
				return err
			}

			obs := &extractObserver{
				dest:    extractDestFlag,
				include: viper.GetStringSlice(includeConfigKey),
			}
			if err := s.Scan(cmd.Context(), obs); err != nil {
				return err
			}

			cmd.Printf("extracted %d entries to %s\n", obs.count(), extractDestFlag)
			return nil
		},
	}

	cmd.Flags().StringVarP(&extractDestFlag, destFlagName, "d", "", "destination directory (required)")

	return cmd
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
