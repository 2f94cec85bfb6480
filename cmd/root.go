package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// conf holds the flags of the executed command, overridable
// by SOEL_ prefixed environment variables and a config file.
var conf *viper.Viper

func newRootCommand() *cobra.Command {
	conf = viper.New()
	conf.SetEnvPrefix("soel")
	conf.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:               "soel",
		Short:             "The soel AVR code generator",
		PersistentPreRunE: loadConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "read flag defaults from a config file")
	flags.IntP("verbose", "v", 0, "enable verbose logging (e.g., v=3); anything >3 is very verbose")
	flags.Bool("logtostderr", false, "log to stderr instead of to files")
	_ = conf.BindPFlags(flags)

	rootCmd.AddCommand(newCompileCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newSymbolsCommand())

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	return rootCmd
}

func loadConfig(_ *cobra.Command, _ []string) error {
	if path := conf.GetString("config"); path != "" {
		conf.SetConfigFile(path)
		if err := conf.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", path)
		}
	}

	initLogging(conf.GetBool("logtostderr"), conf.GetInt("verbose"))
	return nil
}

func Exec() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		if conf.GetInt("verbose") > 0 {
			fmt.Fprintln(os.Stderr, detailedError(err))
		}
		os.Exit(1)
	}
}
