package model

// Document is the full editable state of one portfolio.
type Document struct {
	Name         string    `json:"name" yaml:"name"`
	Title        string    `json:"title" yaml:"title"`
	Bio          string    `json:"bio" yaml:"bio"`
	ProfileImage string    `json:"profileImage" yaml:"profileImage"`
	Projects     []Project `json:"projects" yaml:"projects"`
	Contacts     Contacts  `json:"contacts" yaml:"contacts"`
}

// Project is one showcased project record.
type Project struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
	LiveLink    string `json:"liveLink" yaml:"liveLink"`
	GitHubLink  string `json:"githubLink" yaml:"githubLink"`
}

// Contacts is the fixed collection of optional contact and social channels.
type Contacts struct {
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Website  string `json:"website" yaml:"website"`
	GitHub   string `json:"github" yaml:"github"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	Twitter  string `json:"twitter" yaml:"twitter"`
}

// InitialProjectID is the id carried by the project seeded in a fresh
// document.
const InitialProjectID int64 = 1

// NewDocument returns the state a new editing session starts from: every
// field empty and a single empty project.
func NewDocument() Document {
	return Document{
		Projects: []Project{{ID: InitialProjectID}},
	}
}

// ProjectIndex returns the position of the project with the given id or -1.
func (d Document) ProjectIndex(id int64) int {
	for i, project := range d.Projects {
		if project.ID == id {
			return i
		}
	}
	return -1
}

// MaxProjectID reports the largest project id in the document, or zero when
// the list is empty.
func (d Document) MaxProjectID() int64 {
	var highest int64
	for _, project := range d.Projects {
		if project.ID > highest {
			highest = project.ID
		}
	}
	return highest
}
