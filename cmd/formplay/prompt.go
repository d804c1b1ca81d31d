package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formplay/pkg/form"
	"github.com/goliatone/go-formplay/pkg/render"
	"github.com/goliatone/go-formplay/pkg/renderers/tui"
)

func promptCmd(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the form in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := tui.ParseOutputFormat(output)
			if !ok {
				return fmt.Errorf("unsupported output format %q", output)
			}

			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.close()

			m, err := a.loadModel(cmd.Context())
			if err != nil {
				return err
			}
			renderer, err := tui.New(
				tui.WithOutput(cmd.ErrOrStderr()),
				tui.WithOutputFormat(format),
				tui.WithSubmit(a.logSubmission(m)),
				tui.WithFormOptions(form.WithResetOnSubmit(a.cfg.Form.ResetOnSubmit)),
			)
			if err != nil {
				return err
			}

			out, err := renderer.Render(cmd.Context(), m, render.RenderOptions{Values: a.defaults()})
			if errors.Is(err, tui.ErrAborted) || errors.Is(err, tui.ErrNotSubmitted) {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return nil
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(tui.OutputFormatJSON), "Submitted values format (json, yaml, form, pretty)")
	return cmd
}
