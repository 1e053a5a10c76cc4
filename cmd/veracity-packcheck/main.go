// Command veracity-packcheck validates a heuristics pattern pack.
// With no arguments it checks the embedded pack; pass -pack to preflight
// a candidate patterns.json before it gets embedded
package main

import (
	"flag"
	"fmt"
	"os"

	"veracity/internal/core/heuristics"
)

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	var (
		packPath = flag.String("pack", "", "path to a candidate patterns.json (empty checks the embedded pack)")
		verbose  = flag.Bool("v", false, "list category ids")
	)
	flag.Parse()

	var (
		p   *heuristics.Pack
		err error
		src = "embedded"
	)
	if *packPath == "" {
		p, err = heuristics.Load()
	} else {
		src = *packPath
		var b []byte
		b, err = os.ReadFile(*packPath)
		if err == nil {
			p, err = heuristics.LoadBytes(b)
		}
	}
	must(err)

	rules, sourcing := p.RuleCounts()
	fmt.Printf("pack ok: %s\n", src)
	fmt.Printf("  version:        %d\n", p.Version)
	fmt.Printf("  categories:     %d\n", len(p.Categories))
	fmt.Printf("  rules:          %d\n", rules)
	fmt.Printf("  sourcing terms: %d\n", sourcing)
	fmt.Printf("  min length:     %d\n", p.MinLenForSourcing)
	if *verbose {
		for _, c := range p.Categories {
			fmt.Printf("  - %s\n", c)
		}
	}
}
