package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"

	"github.com/mandelsoft/metagen/pkg/generator"
	"github.com/mandelsoft/metagen/pkg/metamodel/filesystem"
	"github.com/mandelsoft/metagen/pkg/override"
	"github.com/mandelsoft/metagen/pkg/registry"
	"github.com/mandelsoft/metagen/pkg/utils"
	"github.com/mandelsoft/metagen/pkg/version"
)

type Options struct {
	fs vfs.FileSystem

	supermodels   []string
	overridesFile string
	outputFile    string
	modules       []string
	stamp         bool
	level         string
}

func New(fss ...vfs.FileSystem) *cobra.Command {
	opts := &Options{
		fs: utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...),
	}

	cmd := &cobra.Command{
		Use:   "metagen <options> <model file>",
		Short: "generate object model declarations from a metamodel",
		Long: `
This command reads a metamodel file describing a modeling language
and generates the source declarations of the implementing object
model: classes with typed attributes, bidirectional associations,
derived unions and redefinitions, optionally layered on top of
already generated supermodels.
`,
		Args:             cobra.ExactArgs(1),
		TraverseChildren: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error { return opts.Run(cmd, args[0]) }

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.supermodels, "supermodel", "s", nil, "dependent model (LANG:FILE)")
	flags.StringVarP(&opts.overridesFile, "overrides", "r", "", "overrides file")
	flags.StringVarP(&opts.outputFile, "output", "o", "", "output file (defaults to stdout)")
	flags.StringArrayVarP(&opts.modules, "module", "m", nil, "module path for a language (LANG=MODULE)")
	flags.BoolVarP(&opts.stamp, "digest", "D", false, "stamp output with input digests")
	flags.StringVarP(&opts.level, "log-level", "L", "warn", "log level")
	return cmd
}

func (o *Options) Run(cmd *cobra.Command, modelfile string) error {
	l, err := logging.ParseLevel(o.level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", o.level)
	}
	lctx := logging.DefaultContext()
	lctx.AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("metagen")))

	reg := registry.New()
	for _, m := range o.modules {
		lang, module, found := strings.Cut(m, "=")
		if !found {
			return fmt.Errorf("invalid module mapping %q, expected LANG=MODULE", m)
		}
		err := reg.Register(lang, module)
		if err != nil {
			return err
		}
	}

	repo := filesystem.NewRepository(o.fs)

	data, err := vfs.ReadFile(o.fs, modelfile)
	if err != nil {
		return fmt.Errorf("cannot read model file %q: %w", modelfile, err)
	}
	graph, err := repo.LoadData(data)
	if err != nil {
		return fmt.Errorf("model file %q: %w", modelfile, err)
	}

	inputs := []version.Input{}
	if o.stamp {
		i, err := version.NewInput("model", filepath.Base(modelfile), data)
		if err != nil {
			return err
		}
		inputs = append(inputs, i)
	}

	var supers []*generator.Supermodel
	for _, s := range o.supermodels {
		lang, file, found := strings.Cut(s, ":")
		if !found {
			return fmt.Errorf("invalid supermodel spec %q, expected LANG:FILE", s)
		}
		sdata, err := vfs.ReadFile(o.fs, file)
		if err != nil {
			return fmt.Errorf("cannot read supermodel file %q: %w", file, err)
		}
		sgraph, err := repo.LoadData(sdata)
		if err != nil {
			return fmt.Errorf("supermodel file %q: %w", file, err)
		}
		supers = append(supers, generator.NewSupermodel(reg.Lookup(lang), sgraph))
		if o.stamp {
			i, err := version.NewInput("super", lang, sdata)
			if err != nil {
				return err
			}
			inputs = append(inputs, i)
		}
	}

	var overrides *override.Overrides
	if o.overridesFile != "" {
		overrides, err = override.Load(o.overridesFile, o.fs)
		if err != nil {
			return err
		}
	}

	gen := generator.New(graph, overrides, supers...)
	if o.stamp {
		stamp := []string{fmt.Sprintf("# digest: %s", version.Compose(inputs...))}
		for _, i := range inputs {
			stamp = append(stamp, fmt.Sprintf("# input: %s", i))
		}
		stamp = append(stamp, "")
		gen.SetStamp(stamp...)
	}

	lines, err := gen.Generate()
	if err != nil {
		return err
	}

	out := strings.Join(lines, "\n") + "\n"
	if o.outputFile == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	return vfs.WriteFile(o.fs, o.outputFile, []byte(out), 0o644)
}
