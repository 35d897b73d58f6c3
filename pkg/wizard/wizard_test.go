package wizard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/store"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

// keep answers an input or textarea with the prompt default.
const keep = "\x00keep"

type stubDriver struct {
	inputs       []string
	textAreas    []string
	selects      []string
	abortOn      string
	infoMessages []string
	prompts      []string
	inputPos     int
	textPos      int
	selectPos    int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.abortOn != "" && cfg.Message == s.abortOn {
		return "", ErrAborted
	}
	if s.inputPos >= len(s.inputs) {
		return "", fmt.Errorf("no input scripted for %q", cfg.Message)
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if val == keep {
		return cfg.Default, nil
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	return false, errors.New("no confirm scripted")
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selects) {
		return -1, fmt.Errorf("no select scripted for %q", cfg.Message)
	}
	label := s.selects[s.selectPos]
	s.selectPos++
	for i, option := range cfg.Options {
		if option == label {
			return i, nil
		}
	}
	return -1, fmt.Errorf("option %q not offered in %v", label, cfg.Options)
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", fmt.Errorf("no textarea scripted for %q", cfg.Message)
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	if val == keep {
		return cfg.Default, nil
	}
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) hasInfo(substr string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newWizard(t *testing.T, s *store.Store, driver PromptDriver, extra ...Option) (*Wizard, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	options := append([]Option{WithPromptDriver(driver), WithOutput(&out)}, extra...)
	w, err := New(s, options...)
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}
	return w, &out
}

func TestRun_FullFlow(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			// personal
			"", "Ada Lovelace", "Engineer",
			// project 1
			"Engine", "", "not a url", "https://engine.example", "",
			// added project
			"Notes", "", "", "https://github.com/ada/notes",
			// contacts
			"ada@example.com", "", "https://ada.dev", "https://github.com/ada", "", "",
		},
		textAreas: []string{"Bio text", "Forecasts", ""},
		selects: []string{
			ActionNext,
			ActionAddProject, ActionContinue, ActionNext,
			ActionFinish,
		},
	}
	s := store.New(store.WithClock(func() time.Time { return time.UnixMilli(0) }))
	w, out := newWizard(t, s, driver)

	doc, err := w.Run(testsupport.Context())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := model.Document{
		Name:  "Ada Lovelace",
		Title: "Engineer",
		Bio:   "Bio text",
		Projects: []model.Project{
			{ID: 1, Title: "Engine", Description: "Forecasts", LiveLink: "https://engine.example"},
			{ID: 2, Title: "Notes", GitHubLink: "https://github.com/ada/notes"},
		},
		Contacts: model.Contacts{
			Email:   "ada@example.com",
			Website: "https://ada.dev",
			GitHub:  "https://github.com/ada",
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
	if !driver.hasInfo("Invalid Live Demo URL") {
		t.Fatalf("expected validation message, got %v", driver.infoMessages)
	}
	for _, counter := range []string{"Step 1 of 3", "Step 2 of 3", "Step 3 of 3"} {
		if !strings.Contains(out.String(), counter) {
			t.Fatalf("expected %q in output:\n%s", counter, out.String())
		}
	}
}

func TestRun_InvalidEmailReprompts(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"not-an-email", "ada@example.com", "", "", "", "", "",
		},
		selects: []string{ActionFinish},
	}
	w, _ := newWizard(t, store.New(), driver)

	if err := w.contactsStep(testsupport.Context()); err != nil {
		t.Fatalf("contacts step: %v", err)
	}
	if got := w.store.Snapshot().Contacts.Email; got != "ada@example.com" {
		t.Fatalf("expected email stored, got %q", got)
	}
	if !driver.hasInfo("Invalid") {
		t.Fatalf("expected invalid email message, got %v", driver.infoMessages)
	}
}

func TestRun_ProfileImage(t *testing.T) {
	files := map[string][]byte{
		"me.png":    pngBytes(t),
		"notes.txt": []byte("plain text, not an image"),
	}
	reader := func(path string) ([]byte, error) {
		data, ok := files[path]
		if !ok {
			return nil, fmt.Errorf("open %s: no such file", path)
		}
		return data, nil
	}

	tests := []struct {
		name      string
		path      string
		wantImage bool
		wantInfo  string
	}{
		{name: "loaded", path: "me.png", wantImage: true, wantInfo: "Loaded me.png"},
		{name: "missing file", path: "missing.png", wantInfo: "Could not read missing.png"},
		{name: "not an image", path: "notes.txt", wantInfo: "Image not loaded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := &stubDriver{
				inputs:    []string{tt.path, "Ada", "Engineer"},
				textAreas: []string{""},
				selects:   []string{ActionFinish},
			}
			w, _ := newWizard(t, store.New(), driver, WithFileReader(reader))

			doc, err := w.Run(testsupport.Context())
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if got := strings.HasPrefix(doc.ProfileImage, "data:image/png;base64,"); got != tt.wantImage {
				t.Fatalf("profile image = %q, want image %v", doc.ProfileImage, tt.wantImage)
			}
			if !driver.hasInfo(tt.wantInfo) {
				t.Fatalf("expected info %q, got %v", tt.wantInfo, driver.infoMessages)
			}
		})
	}
}

func TestRun_PreviewAndPrevious(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"", "Ada", "Engineer",
			keep, "", keep, keep,
			"", keep, keep,
		},
		textAreas: []string{"Line one\nLine two", keep, keep},
		selects: []string{
			ActionNext,
			ActionContinue, ActionPrevious,
			ActionPreview, ActionFinish,
		},
	}
	w, out := newWizard(t, store.New(), driver)

	doc, err := w.Run(testsupport.Context())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if doc.Name != "Ada" || doc.Bio != "Line one\nLine two" {
		t.Fatalf("unexpected document %+v", doc)
	}

	text := out.String()
	if got := strings.Count(text, "Step 1 of 3"); got != 3 {
		t.Fatalf("expected personal step counter three times (two banners and a preview), got %d:\n%s", got, text)
	}
	for _, want := range []string{"Name:  Ada", "Bio:   Line one", "Projects (1):", "1. Project 1", "Contacts: none"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in preview:\n%s", want, text)
		}
	}
}

func TestRun_RemoveProject(t *testing.T) {
	seed := testsupport.SampleDocument()
	// Each project answers title, image path, live and github with the
	// current value; the empty image default skips loading.
	driver := &stubDriver{
		inputs:    []string{keep, keep, keep, keep, keep, keep, keep, keep},
		textAreas: []string{keep, keep},
		selects: []string{
			ActionRemoveProject, projectLabel(0, seed.Projects[0]),
			ActionContinue,
		},
	}
	s := store.New(store.WithDocument(seed))
	w, _ := newWizard(t, s, driver)

	if err := w.projectsStep(testsupport.Context()); err != nil {
		t.Fatalf("projects step: %v", err)
	}
	projects := s.Snapshot().Projects
	if len(projects) != 1 || projects[0].ID != seed.Projects[1].ID {
		t.Fatalf("expected only project %d to remain, got %+v", seed.Projects[1].ID, projects)
	}
	if !driver.hasInfo("Removed 1.") {
		t.Fatalf("expected removal message, got %v", driver.infoMessages)
	}
}

func TestRun_RemoveLastProjectIsRefused(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Solo", "", "", ""},
		textAreas: []string{""},
		selects:   []string{ActionRemoveProject, "1. Solo", ActionContinue},
	}
	s := store.New()
	w, _ := newWizard(t, s, driver)

	if err := w.projectsStep(testsupport.Context()); err != nil {
		t.Fatalf("projects step: %v", err)
	}
	if got := len(s.Snapshot().Projects); got != 1 {
		t.Fatalf("expected the last project to be kept, got %d", got)
	}
	if !driver.hasInfo("At least 1 project is required.") {
		t.Fatalf("expected kept-last message, got %v", driver.infoMessages)
	}
}

func TestRun_Aborted(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{""},
		abortOn: "Full Name",
	}
	w, _ := newWizard(t, store.New(), driver)

	_, err := w.Run(testsupport.Context())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNew_RequiresStore(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestNavigationOptions(t *testing.T) {
	tests := []struct {
		step Step
		want []string
	}{
		{StepPersonal, []string{ActionNext, ActionPreview, ActionFinish}},
		{StepProjects, []string{ActionNext, ActionPrevious, ActionPreview, ActionFinish}},
		{StepContacts, []string{ActionPrevious, ActionPreview, ActionFinish}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, navigationOptions(tt.step)); diff != "" {
			t.Fatalf("%s options mismatch (-want +got):\n%s", tt.step.Title(), diff)
		}
	}
}
