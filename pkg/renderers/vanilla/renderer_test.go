package vanilla_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formplay/pkg/form"
	"github.com/goliatone/go-formplay/pkg/render"
	"github.com/goliatone/go-formplay/pkg/renderers/vanilla"
	"github.com/goliatone/go-formplay/pkg/testsupport"
)

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()

	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func mountedOptions(t *testing.T, mutate func(*form.Form)) render.RenderOptions {
	t.Helper()

	f, err := form.New(testsupport.ProfileModel(), form.WithDefaults(testsupport.ProfileDefaults()))
	if err != nil {
		t.Fatalf("mount form: %v", err)
	}
	if mutate != nil {
		mutate(f)
	}
	opts := render.OptionsFromSnapshot(f.Snapshot())
	opts.Action = "/sessions/abc/submit"
	opts.Hidden = render.MergeHiddenFields(nil, render.SessionField("abc"))
	return opts
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\noutput:\n%s", fragment, output)
		}
	}
}

func TestRender_MountedProfile(t *testing.T) {
	renderer := newRenderer(t)

	output, err := renderer.Render(context.Background(), testsupport.ProfileModel(), mountedOptions(t, nil))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)

	assertContains(t, html,
		`action="/sessions/abc/submit" method="post"`,
		`data-events-url="/sessions/abc/events"`,
		`<h1>Form example</h1>`,
		`<label for="fp-name">name</label>`,
		`id="fp-name" name="name" value="Reem"`,
		`<em id="fp-name-errors" class="fp-field__errors" role="alert" hidden></em>`,
		`<label for="fp-age">age</label>`,
		`id="fp-age" name="age" value="29"`,
		`aria-invalid="true"`,
		`<em id="fp-age-errors" class="fp-field__errors" role="alert">min 3 chars</em>`,
		`<input type="hidden" name="_session" value="abc">`,
		`<input type="hidden" name="color" value="Blue">`,
		`data-valid="false" aria-disabled="true">Fix Form</button>`,
	)
	if strings.Contains(html, `for="fp-color"`) {
		t.Fatalf("hidden field must not render a label:\n%s", html)
	}
	if strings.Contains(html, "<!DOCTYPE html>") {
		t.Fatalf("fragment render must not include the page shell")
	}
}

func TestRender_ValidFormShowsSubmit(t *testing.T) {
	renderer := newRenderer(t)

	opts := mountedOptions(t, func(f *form.Form) {
		if err := f.Change("age", "290"); err != nil {
			t.Fatalf("change: %v", err)
		}
	})
	output, err := renderer.Render(context.Background(), testsupport.ProfileModel(), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)
	assertContains(t, html, `data-valid="true">Submit</button>`, `<em id="fp-age-errors" class="fp-field__errors" role="alert" hidden></em>`)
	if strings.Contains(html, "aria-disabled") {
		t.Fatalf("valid form must not mark the button disabled:\n%s", html)
	}
}

func TestRender_MultipleMessagesAndEscaping(t *testing.T) {
	renderer := newRenderer(t)

	opts := render.RenderOptions{
		Values: map[string]string{"name": `<script>x</script>`, "age": "30"},
		Errors: map[string][]string{"name": {"max 10 characters", "no markup"}},
		Notice: "Submitted",
	}
	output, err := renderer.Render(context.Background(), testsupport.ProfileModel(), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)
	assertContains(t, html,
		`value="&lt;script&gt;x&lt;/script&gt;"`,
		`role="alert">max 10 characters, no markup</em>`,
		`<p class="fp-notice" role="status">Submitted</p>`,
		`action="/profile"`,
		`>Fix Form</button>`,
	)
	if strings.Contains(html, "data-events-url") {
		t.Fatalf("events url requires a session:\n%s", html)
	}
}

func TestRender_SanitizesSchemaText(t *testing.T) {
	renderer := newRenderer(t)

	model := testsupport.ProfileModel()
	model.Title = `<b>Form</b> example`
	model.Description = `Tell us <em>who</em> you are<script>alert(1)</script>`
	output, err := renderer.Render(context.Background(), model, render.RenderOptions{Valid: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)
	assertContains(t, html, `<h1>Form example</h1>`, `<p>Tell us <em>who</em> you are</p>`)
	if strings.Contains(html, "alert(1)") {
		t.Fatalf("description script survived sanitizing:\n%s", html)
	}
}

func TestRender_PageWithThemeVariant(t *testing.T) {
	renderer := newRenderer(t)

	opts := mountedOptions(t, nil)
	opts.Page = true
	output, err := renderer.Render(context.Background(), testsupport.ProfileModel(), opts)
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	assertContains(t, string(output),
		"<!DOCTYPE html>",
		`<title>Form example</title>`,
		`<link rel="stylesheet" href="/assets/formplay.css">`,
		`--fp-accent: #2457d6;`,
		`<script src="/assets/formplay-runtime.js" defer></script>`,
		`>Fix Form</button>`,
	)

	opts.ThemeVariant = "dark"
	output, err = renderer.Render(context.Background(), testsupport.ProfileModel(), opts)
	if err != nil {
		t.Fatalf("render dark page: %v", err)
	}
	assertContains(t, string(output), `data-theme-variant="dark"`, `--fp-accent: #8fb0ff;`, `--fp-radius: 6px;`)

	opts.ThemeVariant = "sepia"
	if _, err := renderer.Render(context.Background(), testsupport.ProfileModel(), opts); err == nil {
		t.Fatalf("expected error for unknown theme variant")
	}
}

func TestAssetsFS(t *testing.T) {
	for _, name := range []string{vanilla.StylesheetName, vanilla.RuntimeScriptName} {
		data, err := fs.ReadFile(vanilla.AssetsFS(), name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("asset %s is empty", name)
		}
	}
}
