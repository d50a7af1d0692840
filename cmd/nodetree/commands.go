package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/storykeep/nodetree/node"
	"github.com/storykeep/nodetree/style"
	"github.com/storykeep/nodetree/treedbg"
)

var (
	tierName string
	outPath  string
)

func init() {
	dotCmd.Flags().StringVar(&tierName, "tier", "mobile", "Breakpoint tier of the styles shown (mobile, tablet, desktop)")
	dotCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(dumpCmd, dotCmd, slugsCmd, checkCmd)
}

var dumpCmd = &cobra.Command{
	Use:   "dump [document.json]",
	Short: "Print the node tree of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		color.New(color.Bold).Fprintf(w, "%s: %d nodes, root %q\n", args[0], doc.Len(), doc.RootID())
		fmt.Fprint(w, treedbg.Print(doc))
		return nil
	},
}

var dotCmd = &cobra.Command{
	Use:   "dot [document.json]",
	Short: "Write a GraphViz diagram of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bp, err := style.ParseBreakpoint(tierName)
		if err != nil {
			return err
		}
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		if outPath == "" {
			return treedbg.ToGraphViz(doc, cmd.OutOrStdout(), bp)
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		if err = treedbg.ToGraphViz(doc, f, bp); err != nil {
			f.Close()
			return err
		}
		if err = f.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
		return nil
	},
}

var slugsCmd = &cobra.Command{
	Use:   "slugs [document.json]",
	Short: "Validate the slugs of all pages and panes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		ok, bad := color.New(color.FgGreen), color.New(color.FgRed)
		failed := 0
		for _, t := range []node.Type{node.TypeStoryFragment, node.TypePane} {
			for _, n := range doc.NodesOfType(t) {
				s, _ := node.Slug(n)
				if err := doc.ValidateSlug(n.NodeID(), s); err != nil {
					failed++
					bad.Fprintf(w, "%-40s %q: %v\n", node.String(n), s, err)
					continue
				}
				ok.Fprintf(w, "%-40s %q\n", node.String(n), s)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d invalid slug(s)", failed)
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [document.json]",
	Short: "Check the structural invariants of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		if err := doc.Check(); err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if dirty := doc.Dirty(); len(dirty) > 0 {
			color.New(color.FgYellow).Fprintf(w, "%d unsaved node(s)\n", len(dirty))
		}
		color.New(color.FgGreen).Fprintf(w, "%s: ok, %d nodes\n", args[0], doc.Len())
		return nil
	},
}
