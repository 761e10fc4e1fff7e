package main // import "github.com/xsdforge/xgen/cmd/wsdlgen"

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xsdforge/xgen/internal/gen"
	"github.com/xsdforge/xgen/internal/logging"
	"github.com/xsdforge/xgen/wsdlgen"
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
		pkgName   string
		comment   string
		output    string
		rules     []string
		ports     []string
		envFile   string
		verbosity int
	)

	cmd := &cobra.Command{
		Use:   "wsdlgen [flags] file ...",
		Short: "Generate Go source for calling the operations described by a WSDL document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("loading %s: %w", envFile, err)
				}
			}

			files, err := expandGlobs(args)
			if err != nil {
				return err
			}

			var cfg wsdlgen.Config
			cfg.Option(wsdlgen.DefaultOptions...)
			cfg.XSDOption(xsdgen.DefaultOptions...)
			cfg.Option(wsdlgen.LogOutput(logging.Default()))
			cfg.Option(wsdlgen.LogLevel(verbosity))
			if pkgName != "" {
				cfg.Option(wsdlgen.PackageName(pkgName))
				cfg.XSDOption(xsdgen.PackageName(pkgName))
			}
			if comment != "" {
				cfg.Option(wsdlgen.PackageComment(comment))
			}
			if len(ports) > 0 {
				cfg.Option(wsdlgen.OnlyPorts(ports...))
			}
			for _, rule := range rules {
				from, to, err := splitReplaceRule(rule)
				if err != nil {
					return err
				}
				cfg.XSDOption(xsdgen.Replace(from, to))
			}

			file, err := cfg.GenAST(files...)
			if err != nil {
				return err
			}
			if output == "" {
				output = "wsdlgen_output.go"
			}
			data, err := gen.FormattedSource(file)
			if err != nil {
				return err
			}
			return ioutil.WriteFile(output, data, 0666)
		},
	}

	cmd.Flags().StringVarP(&pkgName, "pkg", "p", "", "name of the generated package")
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "first line of package-level comments")
	cmd.Flags().StringVarP(&output, "output", "o", "wsdlgen_output.go", "name of the output file")
	cmd.Flags().StringArrayVarP(&rules, "rule", "r", nil, `replacement rule "regex -> repl" (repeatable)`)
	cmd.Flags().StringArrayVar(&ports, "port", nil, "generate code for this port only (repeatable)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load configuration defaults from")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	return cmd
}

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

func splitReplaceRule(rule string) (from, to string, err error) {
	const sep = "->"
	idx := strings.Index(rule, sep)
	if idx < 0 {
		return "", "", fmt.Errorf("malformed replacement rule %q: expected 'regex -> repl'", rule)
	}
	return strings.TrimSpace(rule[:idx]), strings.TrimSpace(rule[idx+len(sep):]), nil
}
