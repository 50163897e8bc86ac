// rigtool is a headless CLI for inspecting the toon character rig.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "bones":
		err = cmdBones(os.Stdout, args)
	case "simulate", "sim":
		err = cmdSimulate(os.Stdout, args)
	case "shader":
		err = cmdShader(os.Stdout, args)
	case "swatch":
		err = cmdSwatch(os.Stdout, args)
	case "config":
		err = cmdConfig(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `rigtool - toon character rig utility

Usage:
  rigtool <command> [options]

Commands:
  bones    [-config file]                        List spring bones, collision meshes, neck and eyes
  simulate [-config file] [-frames N] [-dt s]    Run the rig headless and report bone motion
  shader   [-config file] [-lights N] [-vertex] [-base]  Print the toon shader source
  swatch   [-config file] [-o file] [-all]       Render a CPU toon swatch (.webp or .png)
  config   [-config file] [-o file] [-install]   Print or write the effective configuration

Examples:
  rigtool bones
  rigtool simulate -frames 240 -pointer 0.5,0.2
  rigtool shader -lights 0
  rigtool swatch -o swatch.webp -size 512
  rigtool swatch -all -columns 4 -o materials.png`)
}
