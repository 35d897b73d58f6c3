package model

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a field or channel name does not match any
// of the fixed document fields.
var ErrUnknownField = errors.New("model: unknown field")

// Field names a top-level scalar of the document.
type Field string

const (
	FieldName         Field = "name"
	FieldTitle        Field = "title"
	FieldBio          Field = "bio"
	FieldProfileImage Field = "profileImage"
)

// Fields lists the top-level scalars in form order.
func Fields() []Field {
	return []Field{FieldName, FieldTitle, FieldBio, FieldProfileImage}
}

// ParseField resolves a field name.
func ParseField(name string) (Field, error) {
	for _, field := range Fields() {
		if string(field) == name {
			return field, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Set assigns value to the named field.
func (d *Document) Set(field Field, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldTitle:
		d.Title = value
	case FieldBio:
		d.Bio = value
	case FieldProfileImage:
		d.ProfileImage = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	return nil
}

// Get reads the named field.
func (d Document) Get(field Field) (string, error) {
	switch field {
	case FieldName:
		return d.Name, nil
	case FieldTitle:
		return d.Title, nil
	case FieldBio:
		return d.Bio, nil
	case FieldProfileImage:
		return d.ProfileImage, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, string(field))
}

// ProjectField names an editable field of a project. The id is not editable.
type ProjectField string

const (
	ProjectTitle       ProjectField = "title"
	ProjectDescription ProjectField = "description"
	ProjectImage       ProjectField = "image"
	ProjectLiveLink    ProjectField = "liveLink"
	ProjectGitHubLink  ProjectField = "githubLink"
)

// ProjectFields lists the editable project fields in form order.
func ProjectFields() []ProjectField {
	return []ProjectField{ProjectTitle, ProjectImage, ProjectDescription, ProjectLiveLink, ProjectGitHubLink}
}

// ParseProjectField resolves a project field name.
func ParseProjectField(name string) (ProjectField, error) {
	for _, field := range ProjectFields() {
		if string(field) == name {
			return field, nil
		}
	}
	return "", fmt.Errorf("%w: project field %q", ErrUnknownField, name)
}

// Set assigns value to the named project field.
func (p *Project) Set(field ProjectField, value string) error {
	switch field {
	case ProjectTitle:
		p.Title = value
	case ProjectDescription:
		p.Description = value
	case ProjectImage:
		p.Image = value
	case ProjectLiveLink:
		p.LiveLink = value
	case ProjectGitHubLink:
		p.GitHubLink = value
	default:
		return fmt.Errorf("%w: project field %q", ErrUnknownField, string(field))
	}
	return nil
}

// Get reads the named project field.
func (p Project) Get(field ProjectField) (string, error) {
	switch field {
	case ProjectTitle:
		return p.Title, nil
	case ProjectDescription:
		return p.Description, nil
	case ProjectImage:
		return p.Image, nil
	case ProjectLiveLink:
		return p.LiveLink, nil
	case ProjectGitHubLink:
		return p.GitHubLink, nil
	}
	return "", fmt.Errorf("%w: project field %q", ErrUnknownField, string(field))
}
