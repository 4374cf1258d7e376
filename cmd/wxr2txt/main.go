package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"wxr2txt/internal/config"
	"wxr2txt/internal/convert"
	"wxr2txt/internal/wxr"
)

func main() {

	flag.Usage = usage
	flag.Parse()

	input := flag.Arg(0)
	if input == "" {
		log.Fatal("no xml path in arg")
	}

	stem, ok := inputStem(input)
	if !ok {
		log.Fatal("file is not xml")
	}

	// Local development convenience; a missing .env file is fine
	_ = godotenv.Load()

	cfg := config.New()
	destDir := cfg.OutputDir
	if destDir == "" {
		destDir = filepath.Join(filepath.Dir(input), stem)
	}

	doc, err := wxr.Open(input)
	if err != nil {
		log.Fatalf("could not read %s: %v", input, err)
	}

	if err := convert.New(cfg, doc).Run(destDir); err != nil {
		log.Fatalf("conversion failed: %v", err)
	}

	log.Println("wrote output to", destDir)
}

// inputStem returns the input filename without its .xml or .xml.gz suffix
// and reports whether the file has one of those suffixes at all.
func inputStem(path string) (string, bool) {
	name := filepath.Base(path)
	switch {
	case strings.HasSuffix(name, ".xml.gz"):
		return strings.TrimSuffix(name, ".xml.gz"), true
	case strings.HasSuffix(name, ".xml"):
		return strings.TrimSuffix(name, ".xml"), true
	}
	return "", false
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <export.xml | export.xml.gz>\n", os.Args[0])
	flag.PrintDefaults()
}
