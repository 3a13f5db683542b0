package main

import (
	"context"
	"fmt"
	"os"

	"github.com/containerd/log"
	"github.com/moby/term"
	"github.com/sirupsen/logrus"
)

func main() {
	_, stdout, stderr := term.StdStreams()
	logrus.SetOutput(stderr)
	if err := log.SetFormat(log.TextFormat); err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		os.Exit(1)
	}

	cmd := newServerCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		os.Exit(1)
	}
}
