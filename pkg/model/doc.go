// Package model defines the portfolio document edited by the store and
// consumed by renderers. A Document carries the profile scalars, an ordered
// list of projects and a fixed set of contact channels. Empty string is the
// canonical "unset" value for every optional field; renderers never see nil.
//
// Field identifiers (Field, ProjectField, ContactChannel) use the same
// camelCase names as the JSON/YAML document files so HTTP paths, prompts and
// files agree on a single vocabulary.
package model
