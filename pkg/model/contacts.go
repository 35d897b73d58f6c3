package model

import (
	"fmt"
	"strings"
)

// ContactChannel names one of the six fixed contact channels.
type ContactChannel string

const (
	ContactEmail    ContactChannel = "email"
	ContactPhone    ContactChannel = "phone"
	ContactWebsite  ContactChannel = "website"
	ContactGitHub   ContactChannel = "github"
	ContactLinkedIn ContactChannel = "linkedin"
	ContactTwitter  ContactChannel = "twitter"
)

// LinkKind selects how a channel value becomes an href.
type LinkKind string

const (
	LinkMailto LinkKind = "mailto"
	LinkTel    LinkKind = "tel"
	LinkURL    LinkKind = "url"
)

// DisplayKind selects the text shown for a channel.
type DisplayKind string

const (
	// DisplayKindValue shows the raw value.
	DisplayKindValue DisplayKind = "value"
	// DisplayKindHandle shows "@" plus the last path segment of the URL, or
	// the full URL when that segment is empty.
	DisplayKindHandle DisplayKind = "handle"
	// DisplayKindFixed shows ChannelSpec.FixedText.
	DisplayKindFixed DisplayKind = "fixed"
)

// ChannelSpec carries the fixed semantics of a contact channel.
type ChannelSpec struct {
	Channel   ContactChannel
	Label     string
	Icon      string
	Link      LinkKind
	Display   DisplayKind
	FixedText string
}

var channelSpecs = []ChannelSpec{
	{Channel: ContactEmail, Label: "Email", Icon: "📧", Link: LinkMailto, Display: DisplayKindValue},
	{Channel: ContactPhone, Label: "Phone", Icon: "📱", Link: LinkTel, Display: DisplayKindValue},
	{Channel: ContactWebsite, Label: "Website", Icon: "🌐", Link: LinkURL, Display: DisplayKindValue},
	{Channel: ContactGitHub, Label: "GitHub", Icon: "⚡", Link: LinkURL, Display: DisplayKindHandle},
	{Channel: ContactLinkedIn, Label: "LinkedIn", Icon: "💼", Link: LinkURL, Display: DisplayKindFixed, FixedText: "Connect with me"},
	{Channel: ContactTwitter, Label: "Twitter", Icon: "🐦", Link: LinkURL, Display: DisplayKindHandle},
}

// ContactChannels returns the channel specs in display order.
func ContactChannels() []ChannelSpec {
	out := make([]ChannelSpec, len(channelSpecs))
	copy(out, channelSpecs)
	return out
}

// ParseContactChannel resolves a channel name.
func ParseContactChannel(name string) (ContactChannel, error) {
	for _, spec := range channelSpecs {
		if string(spec.Channel) == name {
			return spec.Channel, nil
		}
	}
	return "", fmt.Errorf("%w: contact channel %q", ErrUnknownField, name)
}

// Set assigns value to the named channel.
func (c *Contacts) Set(channel ContactChannel, value string) error {
	switch channel {
	case ContactEmail:
		c.Email = value
	case ContactPhone:
		c.Phone = value
	case ContactWebsite:
		c.Website = value
	case ContactGitHub:
		c.GitHub = value
	case ContactLinkedIn:
		c.LinkedIn = value
	case ContactTwitter:
		c.Twitter = value
	default:
		return fmt.Errorf("%w: contact channel %q", ErrUnknownField, string(channel))
	}
	return nil
}

// Get reads the named channel.
func (c Contacts) Get(channel ContactChannel) (string, error) {
	switch channel {
	case ContactEmail:
		return c.Email, nil
	case ContactPhone:
		return c.Phone, nil
	case ContactWebsite:
		return c.Website, nil
	case ContactGitHub:
		return c.GitHub, nil
	case ContactLinkedIn:
		return c.LinkedIn, nil
	case ContactTwitter:
		return c.Twitter, nil
	}
	return "", fmt.Errorf("%w: contact channel %q", ErrUnknownField, string(channel))
}

// Href builds the link target for a channel value before any URL policy is
// applied.
func (s ChannelSpec) Href(value string) string {
	switch s.Link {
	case LinkMailto:
		return "mailto:" + value
	case LinkTel:
		return "tel:" + value
	default:
		return value
	}
}

// Text returns the display text for a channel value.
func (s ChannelSpec) Text(value string) string {
	switch s.Display {
	case DisplayKindHandle:
		handle := DisplayHandle(value)
		if handle == "" || strings.HasSuffix(value, "/") {
			return handle
		}
		return "@" + handle
	case DisplayKindFixed:
		return s.FixedText
	default:
		return value
	}
}
