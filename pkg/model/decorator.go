package model

import "strings"

// Decorator adjusts a document copy before it is rendered. Decorators never
// touch the store; they operate on the snapshot handed to the pipeline.
type Decorator interface {
	Decorate(*Document) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Document) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(doc *Document) error {
	return fn(doc)
}

// TrimLinks strips surrounding whitespace from every URL-like field so pasted
// values such as " https://example.com " still produce working links.
// Whitespace-only values are left alone: they are non-empty and keep their
// block in the rendered page.
var TrimLinks Decorator = DecoratorFunc(func(doc *Document) error {
	if doc == nil {
		return nil
	}
	trimLink(&doc.ProfileImage)
	for i := range doc.Projects {
		trimLink(&doc.Projects[i].Image)
		trimLink(&doc.Projects[i].LiveLink)
		trimLink(&doc.Projects[i].GitHubLink)
	}
	c := &doc.Contacts
	for _, field := range []*string{&c.Email, &c.Phone, &c.Website, &c.GitHub, &c.LinkedIn, &c.Twitter} {
		trimLink(field)
	}
	return nil
})

func trimLink(value *string) {
	if trimmed := strings.TrimSpace(*value); trimmed != "" {
		*value = trimmed
	}
}
