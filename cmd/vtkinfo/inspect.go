package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/vtk"
)

func newInspectCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the structure and data arrays of a VTK XML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(v)
			if err != nil {
				return err
			}
			defer log.Sync()

			f, err := vtk.Open(args[0])
			if err != nil {
				return err
			}
			f.WithLogger(log)
			return inspect(cmd.OutOrStdout(), f, v.GetInt("values"))
		},
	}
	cmd.Flags().Int("values", 0, "number of leading values to print per array")
	_ = v.BindPFlag("values", cmd.Flags().Lookup("values"))
	return cmd
}

func inspect(w io.Writer, f *vtk.File, values int) error {
	fmt.Fprintf(w, "=== %s ===\n", f.Path())
	fmt.Fprintf(w, "Type:        %s\n", f.Type())
	fmt.Fprintf(w, "Header:      %v\n", f.HeaderPrecision())
	fmt.Fprintf(w, "Compressor:  %v\n", f.Compressor())
	if enc := f.AppendedEncoding(); enc != "" {
		fmt.Fprintf(w, "Appended:    %s\n", enc)
	}
	fmt.Fprintln(w)

	arrays, err := f.Arrays()
	if err != nil {
		return err
	}
	for _, a := range arrays {
		lf := a.Field
		fmt.Fprintf(w, "%-12s %-16q %-8v %-10v %s\n", a.Section, a.Name, lf.Precision(), lf.Layout(), a.Format)
		if values <= 0 {
			continue
		}
		if err := printValues(w, lf, values); err != nil {
			return fmt.Errorf("array %q: %w", a.Name, err)
		}
	}
	return nil
}

func printValues(w io.Writer, lf *vtk.LazyField, n int) error {
	if lf.Precision() == field.String {
		s, err := lf.Resolve()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "    %q\n", s.Bytes())
		return nil
	}
	values, err := field.Values[float64](lf)
	if err != nil {
		return err
	}
	if len(values) > n {
		values = values[:n]
	}
	fmt.Fprintf(w, "    %v\n", values)
	return nil
}
