// Package wizard drives the three-step terminal editor (personal info,
// projects, contacts) on top of the form state store.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/model"
	"github.com/goliatone/go-portfolio/pkg/store"
)

// Step identifies a wizard page.
type Step int

const (
	StepPersonal Step = iota
	StepProjects
	StepContacts
)

var stepTitles = []string{"Personal Info", "Projects", "Contact & Social"}

// Title returns the display title of the step.
func (s Step) Title() string {
	if s < 0 || int(s) >= len(stepTitles) {
		return ""
	}
	return stepTitles[s]
}

// StepCount is the number of wizard steps.
const StepCount = 3

// Navigation and project actions as shown to the user.
const (
	ActionNext     = "Next"
	ActionPrevious = "Previous"
	ActionPreview  = "Preview"
	ActionFinish   = "Finish"

	ActionAddProject    = "Add another project"
	ActionRemoveProject = "Remove a project"
	ActionContinue      = "Continue"
)

// Wizard collects portfolio data interactively and writes every answer
// through the store.
type Wizard struct {
	store    *store.Store
	driver   PromptDriver
	out      io.Writer
	readFile func(string) ([]byte, error)
}

// New constructs a wizard bound to s. The survey driver is used unless
// WithPromptDriver is given.
func New(s *store.Store, options ...Option) (*Wizard, error) {
	if s == nil {
		return nil, errors.New("wizard: store is required")
	}
	w := &Wizard{store: s}
	defaultOptions(w)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if w.driver == nil {
		w.driver = NewSurveyDriver(w.out)
	}
	return w, nil
}

// Run walks the steps until the user picks Finish and returns the final
// document snapshot.
func (w *Wizard) Run(ctx context.Context) (model.Document, error) {
	if ctx == nil {
		return model.Document{}, errors.New("wizard: context is required")
	}

	step := StepPersonal
	for {
		if err := ctx.Err(); err != nil {
			return model.Document{}, err
		}
		fmt.Fprintln(w.out, banner(int(step)+1, StepCount, step.Title()))

		if err := w.runStep(ctx, step); err != nil {
			return model.Document{}, err
		}

		next, finished, err := w.navigate(ctx, step)
		if err != nil {
			return model.Document{}, err
		}
		if finished {
			return w.store.Snapshot(), nil
		}
		step = next
	}
}

func (w *Wizard) runStep(ctx context.Context, step Step) error {
	switch step {
	case StepPersonal:
		return w.personalStep(ctx)
	case StepProjects:
		return w.projectsStep(ctx)
	case StepContacts:
		return w.contactsStep(ctx)
	}
	return fmt.Errorf("wizard: unknown step %d", step)
}

func navigationOptions(step Step) []string {
	var options []string
	if int(step) < StepCount-1 {
		options = append(options, ActionNext)
	}
	if step > StepPersonal {
		options = append(options, ActionPrevious)
	}
	return append(options, ActionPreview, ActionFinish)
}

func (w *Wizard) navigate(ctx context.Context, step Step) (Step, bool, error) {
	options := navigationOptions(step)
	for {
		idx, err := w.driver.Select(ctx, SelectConfig{
			Message:      "What next?",
			Options:      options,
			DefaultIndex: 0,
		})
		if err != nil {
			return step, false, err
		}
		if idx < 0 || idx >= len(options) {
			continue
		}
		switch options[idx] {
		case ActionNext:
			return step + 1, false, nil
		case ActionPrevious:
			return step - 1, false, nil
		case ActionFinish:
			return step, true, nil
		case ActionPreview:
			fmt.Fprintln(w.out, Summary(step, w.store.Snapshot()))
		}
	}
}

func (w *Wizard) personalStep(ctx context.Context) error {
	doc := w.store.Snapshot()

	path, err := w.driver.Input(ctx, InputConfig{
		Message: "Profile photo (path to an image, empty to keep)",
	})
	if err != nil {
		return err
	}
	if err := w.loadImage(ctx, store.ProfileImage(), path); err != nil {
		return err
	}

	for _, item := range []struct {
		field   model.Field
		label   string
		current string
	}{
		{model.FieldName, "Full Name", doc.Name},
		{model.FieldTitle, "Professional Title", doc.Title},
	} {
		value, err := w.ask(ctx, item.label, item.current, nil)
		if err != nil {
			return err
		}
		if err := w.store.UpdateField(item.field, value); err != nil {
			return err
		}
	}

	bio, err := w.driver.TextArea(ctx, TextAreaConfig{Message: "Bio", Default: doc.Bio})
	if err != nil {
		return err
	}
	return w.store.UpdateField(model.FieldBio, bio)
}

func (w *Wizard) projectsStep(ctx context.Context) error {
	for i, project := range w.store.Snapshot().Projects {
		if err := w.editProject(ctx, i, project); err != nil {
			return err
		}
	}

	actions := []string{ActionAddProject, ActionRemoveProject, ActionContinue}
	for {
		idx, err := w.driver.Select(ctx, SelectConfig{
			Message:      "Projects",
			Options:      actions,
			DefaultIndex: len(actions) - 1,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}
		switch actions[idx] {
		case ActionAddProject:
			project := w.store.AddProject()
			if err := w.editProject(ctx, len(w.store.Snapshot().Projects)-1, project); err != nil {
				return err
			}
		case ActionRemoveProject:
			if err := w.removeProject(ctx); err != nil {
				return err
			}
		case ActionContinue:
			return nil
		}
	}
}

func (w *Wizard) editProject(ctx context.Context, index int, project model.Project) error {
	fmt.Fprintln(w.out, heading(fmt.Sprintf("Project %d", index+1)))

	update := func(field model.ProjectField, value string) error {
		_, err := w.store.UpdateProject(project.ID, field, value)
		return err
	}

	title, err := w.ask(ctx, "Project Title", project.Title, nil)
	if err != nil {
		return err
	}
	if err := update(model.ProjectTitle, title); err != nil {
		return err
	}

	path, err := w.driver.Input(ctx, InputConfig{Message: "Project image (path to an image, empty to keep)"})
	if err != nil {
		return err
	}
	if err := w.loadImage(ctx, store.ProjectImage(project.ID), path); err != nil {
		return err
	}

	description, err := w.driver.TextArea(ctx, TextAreaConfig{Message: "Description", Default: project.Description})
	if err != nil {
		return err
	}
	if err := update(model.ProjectDescription, description); err != nil {
		return err
	}

	live, err := w.ask(ctx, "Live Demo URL", project.LiveLink, validateURL)
	if err != nil {
		return err
	}
	if err := update(model.ProjectLiveLink, live); err != nil {
		return err
	}

	repo, err := w.ask(ctx, "GitHub URL", project.GitHubLink, validateURL)
	if err != nil {
		return err
	}
	return update(model.ProjectGitHubLink, repo)
}

func (w *Wizard) removeProject(ctx context.Context) error {
	projects := w.store.Snapshot().Projects
	if len(projects) == 0 {
		return w.driver.Info(ctx, "There are no projects to remove.")
	}
	labels := make([]string, len(projects))
	for i, project := range projects {
		labels[i] = projectLabel(i, project)
	}
	idx, err := w.driver.Select(ctx, SelectConfig{Message: "Remove which project?", Options: labels})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(projects) {
		return nil
	}
	switch w.store.RemoveProject(projects[idx].ID) {
	case store.KeptLast:
		return w.driver.Info(ctx, fmt.Sprintf("At least %d project is required.", w.store.MinProjects()))
	case store.Removed:
		return w.driver.Info(ctx, fmt.Sprintf("Removed %s.", labels[idx]))
	}
	return nil
}

func (w *Wizard) contactsStep(ctx context.Context) error {
	contacts := w.store.Snapshot().Contacts
	for _, spec := range model.ContactChannels() {
		current, _ := contacts.Get(spec.Channel)
		value, err := w.ask(ctx, spec.Icon+" "+spec.Label, current, validatorFor(spec.Link))
		if err != nil {
			return err
		}
		if err := w.store.UpdateContact(spec.Channel, value); err != nil {
			return err
		}
	}
	return nil
}

// ask prompts until validate accepts the answer, reporting each rejection.
func (w *Wizard) ask(ctx context.Context, label, current string, validate func(string) error) (string, error) {
	for {
		value, err := w.driver.Input(ctx, InputConfig{Message: label, Default: current})
		if err != nil {
			return "", err
		}
		if validate != nil {
			if err := validate(value); err != nil {
				if infoErr := w.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", label, err)); infoErr != nil {
					return "", infoErr
				}
				continue
			}
		}
		return value, nil
	}
}

// loadImage reads path and converts it through the store. Failures are
// reported and leave the field unchanged.
func (w *Wizard) loadImage(ctx context.Context, target store.ImageTarget, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	data, err := w.readFile(path)
	if err != nil {
		return w.driver.Info(ctx, fmt.Sprintf("Could not read %s: %v", path, err))
	}
	if _, err := w.store.LoadImage(ctx, target, data).Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return w.driver.Info(ctx, fmt.Sprintf("Image not loaded: %v", err))
	}
	return w.driver.Info(ctx, fmt.Sprintf("Loaded %s.", path))
}

func projectLabel(index int, project model.Project) string {
	title := project.Title
	if title == "" {
		title = "Untitled"
	}
	return fmt.Sprintf("%d. %s", index+1, title)
}
