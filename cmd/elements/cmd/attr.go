package cmd

import (
	"fmt"

	"github.com/go-drift/elements/pkg/meta"
)

func init() {
	RegisterCommand(&Command{
		Name:  "attr",
		Short: "Print attribute names of properties",
		Long: `Print the attribute name derived from each property name.

Every upper-case letter becomes a hyphen followed by its lower-case form,
so initialCount observes the initial-count attribute.`,
		Usage: "elements attr <property>...",
		Run:   runAttr,
	})
}

func runAttr(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("attr requires at least one property name")
	}
	for _, name := range args {
		fmt.Fprintf(stdout, "%s\t%s\n", name, meta.AttributeName(name))
	}
	return nil
}
