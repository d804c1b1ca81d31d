package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	formplay "github.com/goliatone/go-formplay"
	"github.com/goliatone/go-formplay/pkg/orchestrator"
	"github.com/goliatone/go-formplay/pkg/render"
	"github.com/goliatone/go-formplay/pkg/renderers/tui"
	"github.com/goliatone/go-formplay/pkg/renderers/vanilla"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		rendererName string
		outputPath   string
		page         bool
		variant      string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the mounted form once",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			html, err := vanilla.New()
			if err != nil {
				return err
			}
			terminal, err := tui.New(tui.WithOutput(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			registry, err := render.NewRegistry(html, terminal)
			if err != nil {
				return err
			}

			if variant == "" {
				variant = a.cfg.Theme.Variant
			}
			gen := formplay.NewOrchestrator(orchestrator.WithRegistry(registry))
			out, err := gen.Generate(cmd.Context(), orchestrator.Request{
				Source:      a.source(),
				OperationID: a.cfg.Form.Operation,
				Renderer:    rendererName,
				Defaults:    a.defaults(),
				RenderOptions: render.RenderOptions{
					Page:         page,
					ThemeVariant: variant,
				},
			})
			if err != nil {
				return err
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, out, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", outputPath)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&rendererName, "renderer", "r", "vanilla", "Renderer to use (vanilla, tui)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVar(&page, "page", false, "Render a full HTML page")
	cmd.Flags().StringVar(&variant, "variant", "", "Theme variant (overrides theme.variant)")
	return cmd
}
