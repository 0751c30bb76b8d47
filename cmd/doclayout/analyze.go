package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/doclayout/internal/chunker"
	"github.com/dgallion1/doclayout/internal/layout"
	"github.com/dgallion1/doclayout/internal/render"
	"github.com/dgallion1/doclayout/internal/source"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	var format string
	var out string
	var gapThreshold float64
	var minColumnWidth float64
	var pageBreaks bool
	var keepNoise bool

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a document and print its layout, markdown, outline, or chunks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			provider, err := source.ForFile(path)
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := provider.Extract(f, filepath.Base(path))
			if err != nil {
				return err
			}

			cfg := layout.DefaultConfig()
			if gapThreshold > 0 {
				cfg.Column.GapThreshold = gapThreshold
			}
			if minColumnWidth > 0 {
				cfg.Column.MinColumnWidth = minColumnWidth
			}
			result := layout.NewAnalyzerWithConfig(cfg).Analyze(doc.Pages)

			var output []byte
			switch format {
			case "json":
				output, err = json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				output = append(output, '\n')
			case "markdown":
				md := render.Markdown(result, render.Options{
					Title:      doc.Title,
					PageBreaks: pageBreaks,
					CleanNoise: !keepNoise,
				})
				output = []byte(md)
			case "outline":
				output = []byte(render.Outline(result.Structure))
			case "chunks":
				chunks := chunker.ChunkResult(result, chunker.DefaultConfig())
				output, err = json.MarshalIndent(chunks, "", "  ")
				if err != nil {
					return err
				}
				output = append(output, '\n')
			default:
				return fmt.Errorf("unknown format: %s", format)
			}

			if out == "" {
				_, err = os.Stdout.Write(output)
				return err
			}
			return os.WriteFile(out, output, 0o644)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json|markdown|outline|chunks")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write output to a file instead of stdout")
	cmd.Flags().Float64Var(&gapThreshold, "gap-threshold", 0, "column gap threshold in page units")
	cmd.Flags().Float64Var(&minColumnWidth, "min-column-width", 0, "minimum column width in page units")
	cmd.Flags().BoolVar(&pageBreaks, "page-breaks", false, "insert page break comments in markdown output")
	cmd.Flags().BoolVar(&keepNoise, "keep-noise", false, "skip boilerplate removal in markdown output")

	return cmd
}
