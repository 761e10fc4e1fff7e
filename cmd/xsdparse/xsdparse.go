package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/xsdforge/xgen/xmltree"
	"github.com/xsdforge/xgen/xsd"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var targetNS string

	cmd := &cobra.Command{
		Use:   "xsdparse [flags] file.xsd ...",
		Short: "Normalize and print XML Schema documents, following <xsd:import>",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandGlobs(args)
			if err != nil {
				return err
			}
			docs := make([][]byte, 0, len(files))
			for _, filename := range files {
				data, err := ioutil.ReadFile(filename)
				if err != nil {
					return err
				}
				docs = append(docs, data)
			}

			filterSchema := make(map[string]struct{})
			for _, doc := range xsd.StandardSchema {
				root, err := xmltree.Parse(doc)
				if err != nil {
					panic(err)
				}
				filterSchema[root.Attr("", "targetNamespace")] = struct{}{}
			}

			norm, err := xsd.Normalize(docs...)
			if err != nil {
				return err
			}

			var selected []*xmltree.Element
			for _, root := range norm {
				tns := root.Attr("", "targetNamespace")
				if targetNS != "" && targetNS == tns {
					selected = append(selected, root)
				} else if _, ok := filterSchema[tns]; !ok {
					selected = append(selected, root)
				}
			}

			for _, root := range selected {
				fmt.Printf("%s\n", xmltree.MarshalIndent(root, "", "  "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&targetNS, "ns", "", "namespace of schema to print")
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
