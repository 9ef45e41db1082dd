package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/warp/charge-engine/factory"
	"github.com/warp/charge-engine/fields"
	"github.com/warp/charge-engine/rules"
	"github.com/warp/charge-engine/validation"
)

var errCheckFailed = errors.New("check failed")

func newCheckCommand() *cobra.Command {
	var update bool

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate JSON or YAML charge payload files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := checker{factory: factory.NewChargeFactory(), validator: rules.New(), update: update}

			failed := 0
			for _, path := range args {
				err := c.checkFile(path)
				report(cmd.OutOrStdout(), path, err)
				if err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", errCheckFailed, failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&update, "update", false, "validate as partial update payloads")
	return cmd
}

type checker struct {
	factory   *factory.ChargeFactory
	validator *rules.Validator
	update    bool
}

func (c checker) checkFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var in *fields.Map
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		in, err = fields.ParseYAML(data)
	default:
		in, err = fields.ParseJSON(data)
	}
	if err != nil {
		return err
	}

	if !c.update {
		_, err = c.factory.Create(in)
		return err
	}
	if err := c.validator.ValidateForUpdate(in); err != nil {
		return err
	}
	if in.Exists(rules.ParamChart) {
		slabs, err := in.Slabs(rules.ParamChart)
		if err != nil {
			return err
		}
		return c.validator.ValidateSlabSet(slabs)
	}
	return nil
}

func report(w io.Writer, path string, err error) {
	if err == nil {
		fmt.Fprintf(w, "%s: ok\n", path)
		return
	}

	var rule *validation.DomainRuleError
	if failure, ok := validation.AsFailure(err); ok {
		for _, e := range failure.Errors {
			fmt.Fprintf(w, "%s: %s: %s\n", path, e.Code, e.Message)
		}
		return
	}
	if errors.As(err, &rule) {
		fmt.Fprintf(w, "%s: %s: %s\n", path, rule.Code, rule.Message)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", path, err)
}
