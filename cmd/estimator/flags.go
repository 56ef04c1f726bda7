package main

import (
	"github.com/spf13/cobra"

	"github.com/rpgo/realestate-estimator/internal/form"
)

// fieldValue lets a form field be set from a flag. Values are kept as typed so
// that blank or malformed input reaches the form the same way it does from a file.
type fieldValue struct{ field *form.Field }

func (v fieldValue) String() string {
	if v.field == nil {
		return ""
	}
	return string(*v.field)
}

func (v fieldValue) Set(s string) error {
	*v.field = form.Field(s)
	return nil
}

func (v fieldValue) Type() string { return "number" }

func fieldVar(cmd *cobra.Command, field *form.Field, name, usage string) {
	cmd.Flags().Var(fieldValue{field}, name, usage)
}
