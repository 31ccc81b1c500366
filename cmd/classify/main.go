// Offline transcript classifier: reads one transcript per line and prints
// the filter decision. Useful for tuning word lists against recorded
// conversations without running the server.
//
//	classify -speaking < transcripts.txt
//	classify -file transcripts.txt -lexicon custom.json
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/afero"

	"verba/agent/internal/classifier"
	"verba/agent/internal/lexicon"
)

func main() {
	var (
		file     = flag.String("file", "", "read transcripts from file instead of stdin")
		lexFile  = flag.String("lexicon", "", "lexicon JSON file (defaults to built-in sets)")
		speaking = flag.Bool("speaking", true, "classify as if the agent is speaking")
		debounce = flag.Bool("debounce", false, "apply the debounce window across lines (wall clock)")
	)
	flag.Parse()

	fs := afero.NewOsFs()
	lex := lexicon.Default()
	if *lexFile != "" {
		var err error
		lex, err = lexicon.LoadFile(fs, *lexFile)
		if err != nil {
			log.Fatalf("lexicon: %v", err)
		}
	}
	cls := classifier.New(lex)

	var in io.ReadCloser = os.Stdin
	if *file != "" {
		f, err := fs.Open(*file)
		if err != nil {
			log.Fatalf("open: %v", err)
		}
		defer f.Close()
		in = f
	}

	var deb *classifier.DebounceState
	if *debounce {
		deb = &classifier.DebounceState{}
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		res := cls.Classify(line, *speaking, time.Now(), deb)
		fmt.Printf("%-9s  %-50q  %s\n", res.Action, line, res.Reason)
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("read: %v", err)
	}
}
