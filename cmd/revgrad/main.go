// Package main provides the revgrad CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

func usage() {
	fmt.Fprintln(os.Stderr, "revgrad - reverse-mode autodiff over n-dimensional arrays")
	fmt.Fprintf(os.Stderr, "Version: %s\n\n", version)
	fmt.Fprintln(os.Stderr, "Usage: revgrad [klog flags] <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  version    Show version")
	fmt.Fprintln(os.Stderr, "  demo       Differentiate z = a*b + exp(b) at a=2, b=3")
	fmt.Fprintln(os.Stderr, "  check      Compare every operation's gradient with finite differences")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use -v=2 to log the backward order, -v=3 to log every rule dispatch.")
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()
	defer klog.Flush()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "version":
		fmt.Printf("revgrad %s\n", version)
	case "demo":
		err = runDemo(os.Stdout)
	case "check":
		err = runCheck(os.Stdout, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		klog.ErrorS(err, "Command failed", "command", flag.Arg(0))
		klog.Flush()
		os.Exit(1)
	}
}
