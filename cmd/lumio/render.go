package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lumio/internal/prompt"
	"github.com/goliatone/go-lumio/pkg/model"
	"github.com/goliatone/go-lumio/pkg/orchestrator"
	"github.com/goliatone/go-lumio/pkg/renderers/email"
)

type renderFlags struct {
	input       string
	employee    string
	directory   string
	variant     string
	renderer    string
	show        string
	preset      string
	palettes    string
	locale      string
	out         string
	document    bool
	interactive bool
}

func newRenderCmd(global *globalFlags) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one email signature",
		Long: `Renders a signature from a YAML or JSON input file, from an employee in
the directory, or from answers given interactively.

Examples:
  lumio render --employee jdoe --variant template-6 --out jdoe.html
  lumio render --input signature.yaml --renderer text
  lumio render --interactive --document --out mine.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, global, flags, prompt.NewSurveyDriver())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.input, "input", "i", "", "signature file (.yaml, .yml or .json)")
	f.StringVarP(&flags.employee, "employee", "e", "", "employee id from the directory")
	f.StringVar(&flags.directory, "directory", "", "directory file replacing the built-in demo directory")
	f.StringVar(&flags.variant, "variant", "", "template variant, see `lumio variants`")
	f.StringVarP(&flags.renderer, "renderer", "r", "", "renderer name (email or text)")
	f.StringVar(&flags.show, "show", "", "comma separated blocks to show, or all/none")
	f.StringVar(&flags.preset, "preset", "", "preset document applied before rendering")
	f.StringVar(&flags.palettes, "palettes", "", "extra palette document")
	f.StringVar(&flags.locale, "locale", "", "label locale")
	f.StringVarP(&flags.out, "out", "o", "", "output file (stdout if empty)")
	f.BoolVar(&flags.document, "document", false, "wrap HTML output in a complete document")
	f.BoolVar(&flags.interactive, "interactive", false, "prompt for signature fields")
	cmd.MarkFlagsMutuallyExclusive("input", "employee")
	return cmd
}

func runRender(cmd *cobra.Command, global *globalFlags, flags *renderFlags, driver prompt.Driver) error {
	cfg, err := global.load()
	if err != nil {
		return err
	}
	if flags.preset != "" {
		cfg.Render.Preset = flags.preset
	}
	if flags.palettes != "" {
		cfg.Brand.PalettesFile = flags.palettes
	}
	if flags.directory != "" {
		cfg.Directory.File = flags.directory
	}

	d, err := deps(cmd, cfg)
	if err != nil {
		return err
	}

	sig := model.Signature{Show: model.AllShown()}
	switch {
	case flags.input != "":
		if sig, err = readSignature(flags.input); err != nil {
			return err
		}
	case flags.employee != "":
		if sig, err = d.Directory.Signature(flags.employee, ""); err != nil {
			return err
		}
	}

	if flags.variant != "" {
		sig.Variant = model.TemplateID(flags.variant)
	}
	if flags.show != "" {
		if sig.Show, err = model.ParseShowList(flags.show); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if flags.interactive {
		if sig, err = prompt.NewSignatureWizard(driver).Collect(ctx, sig); err != nil {
			return err
		}
	}

	result, err := d.Orchestrator.Render(ctx, orchestrator.Request{
		Signature: sig,
		Renderer:  flags.renderer,
		Locale:    flags.locale,
	})
	if err != nil {
		return err
	}
	if result.VariantFellBack {
		fmt.Fprintf(cmd.ErrOrStderr(), "unknown variant %q, rendered %s instead\n", flags.variant, result.Variant)
	}

	body := result.Body
	if flags.document && result.Renderer == email.Name {
		renderer, err := d.Orchestrator.Registry().Get(email.Name)
		if err != nil {
			return err
		}
		if wrapper, ok := renderer.(*email.Renderer); ok {
			if body, err = wrapper.WrapDocument(sig.Employee.DisplayName()+" signature", body); err != nil {
				return err
			}
		}
	}
	return writeOutput(cmd, flags.out, body)
}

func readSignature(path string) (model.Signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Signature{}, fmt.Errorf("read signature: %w", err)
	}

	sig := model.Signature{Show: model.AllShown()}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &sig)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sig)
	default:
		return model.Signature{}, fmt.Errorf("unsupported signature file %q: use .yaml, .yml or .json", path)
	}
	if err != nil {
		return model.Signature{}, fmt.Errorf("parse signature %s: %w", path, err)
	}
	return sig, nil
}
