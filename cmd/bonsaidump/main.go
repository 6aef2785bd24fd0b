// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command bonsaidump reads a serialized k-ary tree of string labels from a
// file and prints its structure to stdout, indented by depth. It exists to
// exercise the format/tree read path end-to-end against a real file on
// disk rather than an in-memory buffer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gaissmai/bonsai/layout"
	"github.com/gaissmai/bonsai/tree"
)

func main() {
	log.SetFlags(0)

	write := flag.Bool("write-demo", false, "write a small demo tree to the given path instead of dumping it")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: bonsaidump [-write-demo] <file>\n")
		os.Exit(2)
	}
	path := flag.Arg(0)

	if *write {
		if err := writeDemo(path); err != nil {
			log.Fatalf("bonsaidump: %v", err)
		}
		return
	}

	if err := dump(path); err != nil {
		log.Fatalf("bonsaidump: %v", err)
	}
}

func writeDemo(path string) error {
	root := &tree.PointerNode[string]{
		Label: "root",
		Children: []*tree.PointerNode[string]{
			{Label: "a", Children: []*tree.PointerNode[string]{
				{Label: "a1"}, {Label: "a2"},
			}},
			{Label: "b"},
			{Label: "c", Children: []*tree.PointerNode[string]{
				{Label: "c1"},
			}},
		},
	}

	kt := tree.Build[*tree.PointerNode[string], string](tree.FromPointerTree(root), layout.String())

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return kt.Write(f, layout.String())
}

func dump(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	kt, err := tree.ReadKTree[string](f, layout.String())
	if err != nil {
		return err
	}

	root, ok := kt.Root()
	if !ok {
		fmt.Println("(empty tree)")
		return nil
	}

	fmt.Printf("%d labeled nodes\n", kt.Len())
	printNode(root, 0)
	return nil
}

func printNode(n tree.KNode[string], depth int) {
	fmt.Printf("%s%s\n", strings.Repeat("  ", depth), n.Label())
	for _, c := range n.Children() {
		printNode(c, depth+1)
	}
}
