package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xsdforge/xgen/classir"
	"github.com/xsdforge/xgen/internal/logging"
	"github.com/xsdforge/xgen/xsdgen"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		pkgName    string
		output     string
		namespaces []string
		rules      []string
		envFile    string
		verbosity  int
	)

	cmd := &cobra.Command{
		Use:   "xsdgen [flags] file ...",
		Short: "Generate Go type declarations from XML Schema",
		Long: `xsdgen reads one or more files containing <xsd:schema> declarations
and writes a self-contained Go source file with a type declaration for
each type defined in the schema.

Arguments may be literal file names or glob patterns (e.g. "schemas/**/*.xsd");
patterns are expanded before parsing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("loading %s: %w", envFile, err)
				}
			}

			if dir := os.Getenv("XGEN_PLUGIN_DIR"); dir != "" {
				if err := classir.LoadClassTypePluginsFromDir(dir); err != nil {
					logging.Default().Errorf("%s", err)
				}
			}

			files, err := expandGlobs(args)
			if err != nil {
				return err
			}

			var cfg xsdgen.Config
			cfg.Option(xsdgen.DefaultOptions...)
			cfg.Option(xsdgen.LogOutput(logging.Default()))
			cfg.Option(xsdgen.LogLevel(verbosity))
			if pkgName != "" {
				cfg.Option(xsdgen.PackageName(pkgName))
			}
			for _, ns := range namespaces {
				cfg.Option(xsdgen.Namespaces(ns))
			}
			for _, rule := range rules {
				if err := applyReplaceRule(&cfg, rule); err != nil {
					return err
				}
			}

			genArgs := append([]string{}, files...)
			if output != "" {
				genArgs = append([]string{"-o", output}, genArgs...)
			}
			for _, ns := range namespaces {
				genArgs = append([]string{"-ns", ns}, genArgs...)
			}
			return cfg.Generate(genArgs...)
		},
	}

	cmd.Flags().StringVarP(&pkgName, "pkg", "p", "", "name of the generated package")
	cmd.Flags().StringVarP(&output, "output", "o", "xsdgen_output.go", "name of the output file")
	cmd.Flags().StringArrayVar(&namespaces, "ns", nil, "target namespace(s) to generate types for (repeatable)")
	cmd.Flags().StringArrayVarP(&rules, "rule", "r", nil, `replacement rule "regex -> repl" (repeatable)`)
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load configuration defaults from")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	return cmd
}

// expandGlobs resolves each argument as a doublestar glob pattern,
// falling back to the literal argument when it matches nothing (so a
// plain file name that does not exist yet still surfaces the read
// error downstream, as it did before glob support was added).
func expandGlobs(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			files = append(files, pattern)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

// applyReplaceRule parses a "regex -> repl" rule and applies the
// resulting identifier substitution to cfg, reusing the
// "regex -> repl" syntax of the original xsdgen CLI's -r flag.
func applyReplaceRule(cfg *xsdgen.Config, rule string) error {
	const sep = "->"
	idx := strings.Index(rule, sep)
	if idx < 0 {
		return fmt.Errorf("malformed replacement rule %q: expected 'regex -> repl'", rule)
	}
	from := strings.TrimSpace(rule[:idx])
	to := strings.TrimSpace(rule[idx+len(sep):])
	cfg.Option(xsdgen.Replace(from, to))
	return nil
}
