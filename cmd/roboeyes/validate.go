package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bench2012/Esphome-Chatbot/internal/driver"
	"github.com/bench2012/Esphome-Chatbot/internal/infrastructure/logging"
	"github.com/bench2012/Esphome-Chatbot/internal/node"
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
)

// errInvalidNode is returned by validate when the document has errors.
var errInvalidNode = errors.New("node document has errors")

func newValidateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [node.yaml]",
		Short: "Compile a node document and report what it declares",
		Long: `Compile a node document without contacting any broker or database.
Every rejected component, script and action is listed; the command fails
if there was at least one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			path := cfg.Node.ConfigFile
			if len(args) == 1 {
				path = args[0]
			}

			logCfg := cfg.Logging
			logCfg.Level = "warn"
			log := logging.NewWithWriter(cmd.ErrOrStderr(), logCfg, version)

			factory := driver.Factory{Node: cfg.Node.ID, Logger: log}
			drivers := func(componentID, _ string) (roboeyes.Driver, error) {
				return factory.New(componentID, driver.KindLog)
			}

			program, compileErr := compileNode(path, drivers, log)
			if program == nil {
				return compileErr
			}
			return report(cmd.OutOrStdout(), path, program, compileErr)
		},
	}
}

// report prints a compiled program and its errors.
func report(w io.Writer, path string, program *node.Program, compileErr error) error {
	fmt.Fprintf(w, "node document: %s\n", path)

	components := program.Components.Components()
	fmt.Fprintf(w, "\ncomponents (%d):\n", len(components))
	for _, c := range components {
		g := c.Geometry()
		fmt.Fprintf(w, "  %-20s %dx%d @ %d fps\n", c.ID(), g.Width, g.Height, g.FrameRate)
	}

	scripts := program.Scripts.List()
	fmt.Fprintf(w, "\nscripts (%d):\n", len(scripts))
	for _, s := range scripts {
		fmt.Fprintf(w, "  %-20s %d actions", s.ID, len(s.Actions))
		if len(s.Parameters) > 0 {
			params := make([]string, 0, len(s.Parameters))
			for name, t := range s.Parameters {
				params = append(params, name+": "+string(t))
			}
			sort.Strings(params)
			fmt.Fprintf(w, " (%s)", strings.Join(params, ", "))
		}
		fmt.Fprintln(w)
	}

	if libs := program.Components.Libraries(); len(libs) > 0 {
		fmt.Fprintf(w, "\nlibraries:\n")
		for _, lib := range libs {
			fmt.Fprintf(w, "  %-20s %s\n", lib.Name, lib.Repository)
		}
	}

	if compileErr == nil {
		fmt.Fprintln(w, "\nno errors")
		return nil
	}

	errs := splitErrors(compileErr)
	fmt.Fprintf(w, "\nerrors (%d):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "  - %v\n", e)
	}
	return fmt.Errorf("%w: %d error(s)", errInvalidNode, len(errs))
}

// splitErrors unpacks an errors.Join result.
func splitErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
