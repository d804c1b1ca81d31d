package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formplay/pkg/form"
	"github.com/goliatone/go-formplay/pkg/render"
	"github.com/goliatone/go-formplay/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	confirm      []bool
	inputErr     error
	prompts      []InputConfig
	infoMessages []string
	inputPos     int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg)
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return s.Input(ctx, cfg)
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func profileOptions() render.RenderOptions {
	return render.RenderOptions{Values: testsupport.ProfileDefaults()}
}

func TestRender_RepromptsUntilValid(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"Reem", "29", "290"},
		confirm: []bool{true},
	}
	var callback []form.Values
	r, err := New(WithPromptDriver(driver), WithSubmit(func(_ context.Context, values form.Values) {
		callback = append(callback, values)
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), testsupport.ProfileModel(), profileOptions())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if diff := cmp.Diff(`{"age":"290","color":"Blue","name":"Reem"}`, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{
		"Form example",
		"✗ age: min 3 chars",
		"✗ Invalid age: min 3 chars",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
	wantDefaults := []string{"Reem", "29", "29"}
	var gotDefaults []string
	for _, prompt := range driver.prompts {
		gotDefaults = append(gotDefaults, prompt.Default)
	}
	if diff := cmp.Diff(wantDefaults, gotDefaults); diff != "" {
		t.Fatalf("prompt defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]form.Values{{"name": "Reem", "age": "290", "color": "Blue"}}, callback); diff != "" {
		t.Fatalf("callback mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_TooLongValue(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"Maximilianus", "Max", "310"},
		confirm: []bool{true},
	}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), testsupport.ProfileModel(), profileOptions())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("name=Max\nage=310\ncolor=Blue\n", string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("✗ Invalid name: max 10 characters", driver.infoMessages[1]); diff != "" {
		t.Fatalf("validation message mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_OutputFormats(t *testing.T) {
	cases := map[OutputFormat]string{
		OutputFormatYAML:           "age: \"290\"\ncolor: Blue\nname: Reem\n",
		OutputFormatFormURLEncoded: "age=290&color=Blue&name=Reem",
	}
	for format, want := range cases {
		driver := &stubDriver{inputs: []string{"Reem", "290"}, confirm: []bool{true}}
		r, err := New(WithPromptDriver(driver), WithOutputFormat(format))
		if err != nil {
			t.Fatalf("new renderer: %v", err)
		}
		out, err := r.Render(context.Background(), testsupport.ProfileModel(), profileOptions())
		if err != nil {
			t.Fatalf("render %s: %v", format, err)
		}
		if diff := cmp.Diff(want, string(out)); diff != "" {
			t.Fatalf("%s output mismatch (-want +got):\n%s", format, diff)
		}
	}
}

func TestRender_DeclinedSubmit(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Reem", "290"}, confirm: []bool{false}}
	called := false
	r, err := New(WithPromptDriver(driver), WithSubmit(func(context.Context, form.Values) { called = true }))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), testsupport.ProfileModel(), profileOptions()); !errors.Is(err, ErrNotSubmitted) {
		t.Fatalf("expected ErrNotSubmitted, got %v", err)
	}
	if called {
		t.Fatalf("callback must not run when submit is declined")
	}
}

func TestRender_Aborted(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), testsupport.ProfileModel(), profileOptions()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}

func TestContentType(t *testing.T) {
	cases := map[OutputFormat]string{
		OutputFormatJSON:           "application/json",
		OutputFormatYAML:           "application/yaml",
		OutputFormatFormURLEncoded: "application/x-www-form-urlencoded",
		OutputFormatPrettyText:     "text/plain",
	}
	for format, want := range cases {
		r, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(format))
		if err != nil {
			t.Fatalf("new renderer: %v", err)
		}
		if got := r.ContentType(); got != want {
			t.Fatalf("%s: expected %q, got %q", format, want, got)
		}
	}
}
