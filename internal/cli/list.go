package cli

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	classpath "github.com/wwan174/classpath-scanner"
)

var listDirsFlag bool

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [entries...]",
		Short: "List classpath resources",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildScanner(args)
			if err != nil {
				return err
			}

			obs := &collectObserver{
				include: viper.GetStringSlice(includeConfigKey),
				dirs:    listDirsFlag,
			}
			if err := s.Scan(cmd.Context(), obs); err != nil {
				return err
			}

			cmd.Print(renderEntryTable(obs.snapshot()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&listDirsFlag, dirsFlagName, false, "include directory entries")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func renderEntryTable(entries []collectedEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "URL", "Kind"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	var totalBytes int64

	for _, ce := range entries {
		table.Append([]string{ce.entry.Path, ce.entry.URL, entryKind(ce.entry)})

		totalBytes += ce.size
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Entries %d", len(entries)),
		"",
		fmt.Sprintf("%d B", totalBytes),
	})

	table.Render()

	return tableBuffer.String()
}

func entryKind(e classpath.Entry) string {
	if e.Dir {
		return "dir"
	}
	return "file"
}
