package cli

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// digestCmd represents the digest command.
var digestCmd = newDigestCmd()

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest [entries...]",
		Short: "Digest classpath resources",
		Long:  digestLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildScanner(args)
			if err != nil {
				return err
			}

			obs := &digestObserver{include: viper.GetStringSlice(includeConfigKey)}
			if err := s.Scan(cmd.Context(), obs); err != nil {
				return err
			}

			cmd.Print(renderDigestTable(obs.snapshot()))
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(digestCmd)
}

func renderDigestTable(entries []digestedEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Digest"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, de := range entries {
		table.Append([]string{de.entry.Path, de.digest.String()})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Entries %d", len(entries)), ""})

	table.Render()

	return tableBuffer.String()
}
