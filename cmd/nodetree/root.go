package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"github.com/storykeep/nodetree/doctree"
	"github.com/storykeep/nodetree/node"
)

var (
	configPath string
	traceLevel string
	noColor    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML document configuration")
	rootCmd.PersistentFlags().StringVarP(&traceLevel, "trace", "t", "Error", "Trace level (Debug, Info, Error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

var rootCmd = &cobra.Command{
	Use:           "nodetree",
	Short:         "Inspect flattened page documents",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
		tracing.Select("nodetree").SetTraceLevel(tracing.TraceLevelFromString(traceLevel))
		if noColor {
			color.NoColor = true
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDocument reads a JSON node list and loads it into a new document.
func loadDocument(path string) (*doctree.Document, error) {
	cfg := doctree.DefaultConfig()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if cfg, err = doctree.LoadConfig(f); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	nodes, err := node.UnmarshalList(data)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc := doctree.New(doctree.WithConfig(cfg))
	if err := doc.Load(nodes); err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	return doc, nil
}
