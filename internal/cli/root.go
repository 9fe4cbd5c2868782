// Package cli provides the command tree and setup for the cpscan tool.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	classpath "github.com/wwan174/classpath-scanner"
)

// classpathFlag holds a path list to scan when no entries are given.
var classpathFlag string

// includePatterns is a root-level flag that filters delivered entries.
var includePatterns []string

// parallelFlag sets how many roots are scanned concurrently.
var parallelFlag int

// batchCapFlag sets the entry batch capacity per dispatch.
var batchCapFlag int

// verboseFlag switches file logging to debug level.
var verboseFlag bool

// logFileFlag overrides the rotating log file path.
var logFileFlag string

var errNoEntries = errors.New("no classpath entries: pass entries or set --classpath / $CLASSPATH")

const entryFormsHelp = `Classpath entries take any of these forms:
  /path/to/classes              directory of loose resources
  /path/to/app.jar              zip archive (jar, war, plain zip)
  file:///path/to/app.jar       file url
  jar:file:///app.jar!/lib1/    offset inside an archive`

const rootLongDescription = `Cpscan walks classpath roots (directories and zip archives) and streams
every resource they contain to interested observers, the way classpath
scanners feed annotation processors and resource indexes.

` + entryFormsHelp

const listLongDescription = `List classpath resources with their logical urls.

` + entryFormsHelp

const digestLongDescription = `Print the canonical content digest of every selected resource.

` + entryFormsHelp

const extractLongDescription = `Copy selected resources into a destination directory, preserving their
offset-relative paths.

` + entryFormsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpscan",
		Short: "Classpath resource scanner",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func init() {
	configureRootFlags(rootCmd)
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&classpathFlag, classpathFlagName, "c",
			viper.GetString(classpathConfigKey),
			"path list to scan when no entries are given",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(classpathFlagName), classpathConfigKey)

	cmd.PersistentFlags().StringArrayVar(&includePatterns, includeFlagName, viper.GetStringSlice(includeConfigKey), "deliver only entries matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(includeFlagName), includeConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(scanParallelKey), "number of roots scanned concurrently")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(parallelFlagName), scanParallelKey)

	cmd.PersistentFlags().IntVar(&batchCapFlag, batchCapFlagName, viper.GetInt(scanBatchCapKey), "entry batch capacity per dispatch")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(batchCapFlagName), scanBatchCapKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "rotating log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// buildScanner assembles a scanner over the entries given as command
// arguments, falling back to --classpath and then to $CLASSPATH.
func buildScanner(args []string) (*classpath.Scanner, error) {
	s := classpath.NewScanner(
		classpath.WithLogger(slog.Default()),
		classpath.WithParallelism(viper.GetInt(scanParallelKey)),
		classpath.WithBatchCapacity(viper.GetInt(scanBatchCapKey)),
	)

	if len(args) > 0 {
		for _, arg := range args {
			if _, err := s.AddURL(arg); err != nil {
				return nil, err
			}
		}
		return s, nil
	}

	list := viper.GetString(classpathConfigKey)
	if list == "" {
		list = os.Getenv(classpathEnv)
	}
	if list == "" {
		return nil, errNoEntries
	}
	if err := s.AddClasspath(list); err != nil {
		return nil, err
	}
	return s, nil
}
