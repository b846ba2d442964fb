// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package run wires the protoschema command's subcommands.
package run

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/protolang/protoschema/ast"
	"github.com/protolang/protoschema/encoding/protoyaml"
	"github.com/protolang/protoschema/parser"
)

// Root returns the top-level protoschema command.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "protoschema",
		Short:         "parse and inspect Protocol Buffers schema files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newYAMLCmd(), newSummaryCmd())
	return root
}

func parseArg(path string) (*ast.ProtoFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parser.Parse(path, string(b))
}

func newYAMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "yaml <file.proto>",
		Short: "render a schema file's model as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, err := parseArg(args[0])
			if err != nil {
				return err
			}
			b, err := protoyaml.Marshal(pf)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <file.proto>",
		Short: "print a one-line-per-declaration summary of a schema file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, err := parseArg(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if pf.Package != "" {
				fmt.Fprintf(out, "package %s\n", pf.Package)
			}
			for _, t := range pf.Types {
				switch x := t.(type) {
				case *ast.MessageType:
					fmt.Fprintf(out, "message %s (%d fields)\n", x.QualifiedName, len(x.Fields))
				case *ast.EnumType:
					fmt.Fprintf(out, "enum %s (%d values)\n", x.QualifiedName, len(x.Values))
				}
			}
			for _, s := range pf.Services {
				fmt.Fprintf(out, "service %s (%d methods)\n", s.QualifiedName, len(s.Methods))
			}
			return nil
		},
	}
}
