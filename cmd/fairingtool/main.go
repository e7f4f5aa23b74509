// fairingtool is a CLI utility for fitting procedural fairings around a
// payload and exporting the resulting panels.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/procfairings/internal/logger"
)

var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdout)
	logger.Sync()
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		printUsage(os.Stderr)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "profile":
		return cmdProfile(rest, out)
	case "fit":
		return cmdFit(rest, out)
	case "mesh", "export":
		return cmdMesh(rest, out)
	case "shield":
		return cmdShield(rest, out)
	case "watch":
		return cmdWatch(rest, out)
	case "schema":
		return cmdSchema(rest, out)
	case "init":
		return cmdInit(rest, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `fairingtool - procedural fairing utility

Usage:
  fairingtool <command> [options] [scene.yaml]

Commands:
  profile <scene.yaml>           Print the payload clearance profile
  fit [scene.yaml]               Fit the envelope and report mass and cost
  mesh [scene.yaml]              Export the side panels (obj, stl or json)
  shield <scene.yaml>            List the shielded candidates
  watch <scene.yaml>             Refit whenever the scene file changes
  schema [-kind config|payload]  Print the JSON schema of a document
  init [-out path]               Write the default config

Shared options:
  -config path      Config file (default: ./fairing.yaml or the user config dir)
  -debug            Enable debug logging
  -sides N          Number of side panels
  -segments N       Angular segments of the whole fairing
  -extra-radius R   Clearance added around the payload
  -manual S,A,B     Manual max size, cylinder start and end

Examples:
  fairingtool fit probe.yaml
  fairingtool mesh -format stl -o fairing.stl probe.yaml
  fairingtool schema -kind payload -out payload.schema.json`)
}
