package cmd

import (
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/utcq/soel/codegen/avr"
)

func newCompileCommand() *cobra.Command {
	compileCmd := &cobra.Command{
		Use:   "compile [tree_file...]",
		Short: "Generate AVR assembly for tree documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCompiler,
	}

	flags := compileCmd.Flags()
	flags.Bool("trace", false, "enable trace of the generated nodes on stderr")
	flags.StringP("output", "o", "", "write the assembly to a file instead of stdout")
	flags.StringSlice("global", nil, "export additional symbols besides main")
	_ = conf.BindPFlags(flags)

	return compileCmd
}

func runCompiler(cmd *cobra.Command, args []string) error {
	var opts []avr.GeneratorOptions
	if conf.GetBool("trace") {
		opts = append(opts, avr.WithTrace(cmd.ErrOrStderr()))
	}
	if globals := conf.GetStringSlice("global"); len(globals) > 0 {
		opts = append(opts, avr.WithGlobals(globals...))
	}

	out := cmd.OutOrStdout()
	if path := conf.GetString("output"); path != "" {
		f := &outputFile{path: path}
		defer f.Close()
		out = f
	}

	// every file is a separate unit, a failing file does not stop the others
	var result error
	for _, path := range args {
		if err := compileFile(path, out, opts); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "compiling %s", path))
		}
	}
	return result
}

func compileFile(path string, out io.Writer, opts []avr.GeneratorOptions) error {
	file, err := readTree(path)
	if err != nil {
		return err
	}

	glog.V(2).Infof("compiling %s", path)
	return avr.Generate(file, out, opts...)
}

// outputFile creates the file on the first write. Failed units write
// nothing, so no file is left behind if every unit fails.
type outputFile struct {
	path string
	f    *os.File
}

func (o *outputFile) Write(p []byte) (int, error) {
	if o.f == nil {
		f, err := os.Create(o.path)
		if err != nil {
			return 0, errors.Wrapf(err, "creating %s", o.path)
		}
		o.f = f
	}
	return o.f.Write(p)
}

func (o *outputFile) Close() error {
	if o.f == nil {
		return nil
	}
	return o.f.Close()
}
