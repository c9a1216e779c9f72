package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/footer-citations/internal/adapters/document"
	"github.com/jsamuelsen/footer-citations/internal/app"
	"github.com/jsamuelsen/footer-citations/internal/domain"
	"github.com/jsamuelsen/footer-citations/internal/ports"
)

type renderOptions struct {
	pagePath string
	outPath  string
	targetID string
	seed     uint64
	index    int
}

// fixedIndex always draws the same citation.
type fixedIndex int

func (f fixedIndex) IntN(int) int { return int(f) }

func newRenderCommand(newLogger func(*cobra.Command) *slog.Logger) *cobra.Command {
	opts := renderOptions{index: -1}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write a random citation into a page's footer and print the page",
		Long: `Parse an HTML page, replace the content of the footer target element
with one citation and write the resulting page. Without --page the
built-in page is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.outPath == "" {
				return runRender(cmd, opts, newLogger(cmd), cmd.OutOrStdout())
			}

			// Render fully before touching --out so a failure leaves no file.
			var buf bytes.Buffer
			if err := runRender(cmd, opts, newLogger(cmd), &buf); err != nil {
				return err
			}
			if err := os.WriteFile(opts.outPath, buf.Bytes(), 0o644); err != nil { //nolint:gosec // rendered page is meant to be served
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.pagePath, "page", "p", "", "HTML page to render into (default: built-in page)")
	flags.StringVarP(&opts.outPath, "out", "o", "", "write the page to this file instead of stdout")
	flags.StringVarP(&opts.targetID, "target", "t", app.DefaultTargetID, "id of the element that receives the citation")
	flags.Uint64Var(&opts.seed, "seed", 0, "fix the random sequence (0 seeds from the runtime)")
	flags.IntVar(&opts.index, "index", -1, "render this citation instead of a random one")

	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions, logger *slog.Logger, out io.Writer) error {
	registry := domain.DefaultRegistry()

	var random ports.RandomSource = app.NewRandomSource(opts.seed)
	if opts.index >= 0 {
		if _, err := registry.At(opts.index); err != nil {
			return err
		}
		random = fixedIndex(opts.index)
	}

	page, err := document.LoadPage(opts.pagePath, opts.targetID)
	if err != nil {
		return err
	}

	doc, err := page.New()
	if err != nil {
		return err
	}

	selector := app.NewFooterSelector(app.FooterSelectorConfig{
		Registry: registry,
		Random:   random,
		TargetID: opts.targetID,
		Logger:   logger,
	})

	sel, err := selector.Render(cmd.Context(), doc)
	if err != nil {
		return err
	}

	logger.Info("rendered citation",
		slog.Int("index", sel.Index),
		slog.String("author", sel.Citation.Author.Display()),
	)

	return doc.Render(out)
}
