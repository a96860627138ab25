package cmd

import (
	"gopkg.in/yaml.v3"

	"github.com/go-drift/elements/cmd/elements/internal/demos"
	"github.com/go-drift/elements/pkg/meta"
)

func init() {
	RegisterCommand(&Command{
		Name:  "describe",
		Short: "Print demo class metadata",
		Long: `Print the metadata of every demo class as YAML: declared properties
with their attributes, exposed methods and state fields.`,
		Usage: "elements describe",
		Run:   runDescribe,
	})
}

type classDoc struct {
	Tag        string        `yaml:"tag"`
	Observed   []string      `yaml:"observedAttributes,omitempty"`
	Properties []propertyDoc `yaml:"properties,omitempty"`
	Methods    []string      `yaml:"methods,omitempty"`
	Fields     []string      `yaml:"stateFields,omitempty"`
}

type propertyDoc struct {
	Name      string `yaml:"name"`
	Attribute string `yaml:"attribute,omitempty"`
	Reflect   bool   `yaml:"reflect,omitempty"`
}

func describe(tag string, md *meta.ClassMetadata) classDoc {
	doc := classDoc{Tag: tag, Observed: md.ObservedAttributes()}
	for _, p := range md.Properties() {
		doc.Properties = append(doc.Properties, propertyDoc{Name: p.Name, Attribute: p.Attribute, Reflect: p.Reflect})
	}
	for _, m := range md.Methods() {
		doc.Methods = append(doc.Methods, m.Name)
	}
	for _, f := range md.Fields() {
		doc.Fields = append(doc.Fields, f.Name)
	}
	return doc
}

func runDescribe(args []string) error {
	var docs []classDoc
	for _, e := range demos.Entries() {
		docs = append(docs, describe(e.Tag, e.Metadata()))
	}
	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return err
	}
	return enc.Close()
}
