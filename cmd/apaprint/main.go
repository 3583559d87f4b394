// apaprint renders test-result records from a JSON, xlsx or csv file to
// APA-style fragments on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/patilv/papaja/adapters/excel"
	"github.com/patilv/papaja/adapters/typeset"
	"github.com/patilv/papaja/app"
	"github.com/patilv/papaja/domain/apa"
	"github.com/patilv/papaja/internal/errors"
)

func main() {
	var (
		inputFile = flag.String("input", "", "path to a .json, .xlsx or .csv file of test results")
		inParen   = flag.Bool("in-paren", false, "use square brackets for fragments embedded in parentheses")
		fullOnly  = flag.Bool("full-only", false, "print only the full result line per record")
	)
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	items, err := readItems(*inputFile)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}
	if *inParen {
		for i := range items {
			items[i].Request.InParen = true
		}
	}

	formatter := app.NewResultFormatter(
		typeset.NewNumbers(),
		typeset.NewPValues(),
		typeset.NewNames(),
		typeset.NewIntervals(),
		typeset.NewLatex(),
		apa.NewNameTable(),
	)
	service := app.NewRenderService(formatter, nil)

	outcomes, err := service.RenderBatch(context.Background(), items)
	if err != nil {
		log.Fatalf("rendering failed: %v", err)
	}

	failed := 0
	for i, oc := range outcomes {
		label := oc.Source
		if label == "" {
			label = fmt.Sprintf("record %d", i+1)
		}
		if oc.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %s (%s)\n", label, oc.Err.Error(), errors.GetCode(oc.Err))
			continue
		}
		if *fullOnly {
			line := oc.Output.FullResult
			if line == "" {
				line = oc.Output.Statistic
			}
			fmt.Println(line)
			continue
		}
		fmt.Printf("%s\n", label)
		fmt.Printf("  statistic:   %s\n", oc.Output.Statistic)
		if oc.Output.Estimate != "" {
			fmt.Printf("  estimate:    %s\n", oc.Output.Estimate)
			fmt.Printf("  full result: %s\n", oc.Output.FullResult)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// readItems loads render items from a JSON array or a spreadsheet file.
func readItems(path string) ([]app.RenderItem, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var items []app.RenderItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return items, nil
	}
	return excel.NewResultReader(path).ReadItems()
}
