// Package cmd composes the rebacs command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rebacs",
		Short: "A relation-based access control engine answering permission checks over an in-memory relation graph",
		Long: `A relation-based access control engine answering permission checks over an in-memory relation graph.
rebacs stores directed relations between entities and permission sets and resolves permission checks
and expansions by graph reachability, with wildcard ids standing in for every id of a namespace.`,
	}
}
