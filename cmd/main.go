// Command configtree dumps a merged configuration. It accepts an optional
// --file=PATH plus any number of --key=value overrides; command-line values
// take precedence over the file, and the merged tree is reported to stdout.
package main

import (
	"errors"
	"fmt"
	"os"

	configtree "github.com/marianpiatkowski/configtree-parser"
)

func main() {
	tree := configtree.New()

	opts := configtree.Named("file").
		Required(0).
		Help("configuration file to load (ini/toml/yaml/json)")

	if err := opts.Parse(os.Args, tree); err != nil {
		var help *configtree.HelpError
		if errors.As(err, &help) {
			fmt.Print(help.Usage)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if path, err := tree.Get("file"); err == nil {
		// overwrite=false keeps command-line values on top of the file
		if err := tree.LoadFile(path, false); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := tree.Report(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
