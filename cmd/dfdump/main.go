// Inspection tool for datafile containers: prints the group/dataset tree
// with shapes and provenance records, without writing a log entry.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/robert-malhotra/go-datafile/internal/container"
	"github.com/robert-malhotra/go-datafile/internal/dtype"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: dfdump <container-file>")
		os.Exit(1)
	}

	filename := os.Args[1]
	fmt.Printf("=== %s ===\n\n", filename)

	store, err := container.Open(filename)
	if err != nil {
		fmt.Printf("ERROR: failed to open container: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	err = store.View(func(root *container.Node) error {
		dumpNode(root, "", 0)
		return nil
	})
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func dumpNode(n *container.Node, indent string, depth int) {
	if depth > 20 {
		fmt.Printf("%s[MAX DEPTH REACHED]\n", indent)
		return
	}

	if n.IsGroup() {
		fmt.Printf("%sGroup %q\n", indent, n.Path())
		dumpProvenance(n, indent+"  ")
		for _, name := range n.Children() {
			dumpNode(n.Child(name), indent+"  ", depth+1)
		}
		return
	}

	v, err := dtype.Decode(n.Data())
	if err != nil {
		fmt.Printf("%sDataset %q: ERROR decoding value: %v\n", indent, n.Path(), err)
		return
	}
	fmt.Printf("%sDataset %q: %s", indent, n.Path(), v.Kind())
	if shape := v.Shape(); shape != nil {
		fmt.Printf(" shape=%v", shape)
	}
	fmt.Println()
	dumpProvenance(n, indent+"  ")
}

func dumpProvenance(n *container.Node, indent string) {
	for _, name := range n.Attrs() {
		value, _ := n.Attr(name)
		// Provenance records are multi-line; keep the dump one line per attr.
		fmt.Printf("%s@%s = %q\n", indent, name, strings.ReplaceAll(value, "\n", "; "))
	}
}
