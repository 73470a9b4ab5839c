// lightprompt is a CLI utility for generating lighting prompts without running the widget.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/lightrig/internal/angle"
	"github.com/Faultbox/lightrig/internal/prompt"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "derive":
		cmdDerive(args)
	case "relight":
		cmdRelight(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lightprompt - lighting prompt generator

Usage:
  lightprompt <command> [options]

Commands:
  derive [flags]               Print the widget prompt for one light
  relight <lights.yaml>        Print one relighting prompt per light in the file

Examples:
  lightprompt derive -az 90 -el 30 -dist 2 -mode structured
  lightprompt relight lights.yaml
  lightprompt relight -json lights.yaml`)
}

func cmdDerive(args []string) {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	az := fs.Float64("az", angle.DefaultAzimuth, "Azimuth in degrees (0-360)")
	el := fs.Float64("el", angle.DefaultElevation, "Elevation in degrees (-90-90)")
	dist := fs.Float64("dist", angle.DefaultDistance, "Distance (0-10)")
	mode := fs.String("mode", "default", "Prompt wording: default, structured or custom")
	color := fs.String("color", "#FFFFFF", "Light color")
	table := fs.String("table", "", "YAML file with a custom prompt table")
	_ = fs.Parse(args)

	s, err := stateFromFlags(*az, *el, *dist, *mode, *color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *table != "" {
		custom, err := loadCustomPrompts(*table)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		s.CustomPrompts = custom
	}

	fmt.Println(prompt.Derive(s))
}

func cmdRelight(args []string) {
	fs := flag.NewFlagSet("relight", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print a JSON array instead of one prompt per line")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: lightprompt relight [-json] <lights.yaml>")
		os.Exit(1)
	}

	set, err := loadLightSet(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	prompts, err := set.Prompts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(prompts)
		return
	}
	for _, p := range prompts {
		fmt.Println(p)
	}
}
