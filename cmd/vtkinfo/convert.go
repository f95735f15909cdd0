package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-gridformat/field"
	"github.com/robert-malhotra/go-gridformat/vtk"
)

func newConvertCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Rewrite a .vtu, .vti or .pvtu file as a serial file with different encoding settings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(v)
			if err != nil {
				return err
			}
			defer log.Sync()

			opts, err := writerOptions(v)
			if err != nil {
				return err
			}
			name, err := convert(args[0], args[1], opts, log)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.String("config", "", "TOML file with writer settings")
	flags.String("encoder", "", "ascii, base64 or raw")
	flags.String("compressor", "", "none, lz4, zlib or lzma")
	flags.String("data-format", "", "inlined or appended")
	flags.String("header-precision", "", "uint32 or uint64")
	flags.String("coordinate-precision", "", "float32 or float64")
	flags.Int("block-size", 0, "uncompressed size of compression blocks")
	for _, name := range []string{"config", "encoder", "compressor", "data-format", "header-precision", "coordinate-precision", "block-size"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	return cmd
}

// writerOptions reads the config file, if any, and overrides it with flags.
func writerOptions(v *viper.Viper) ([]vtk.WriterOption, error) {
	var c vtk.Config
	if path := v.GetString("config"); path != "" {
		var err error
		if c, err = vtk.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	for key, dst := range map[string]*string{
		"encoder":              &c.Encoder,
		"compressor":           &c.Compressor,
		"data-format":          &c.DataFormat,
		"header-precision":     &c.HeaderPrecision,
		"coordinate-precision": &c.CoordinatePrecision,
	} {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	if n := v.GetInt("block-size"); n != 0 {
		c.BlockSize = n
	}
	return c.Options()
}

type gridWriter interface {
	vtk.FileWriter
	WithLogger(log *zap.Logger)
	SetPointField(name string, f field.Field)
	SetCellField(name string, f field.Field)
	SetMetaData(name string, f field.Field)
	SetMetaDataString(name, text string)
}

func convert(in, out string, opts []vtk.WriterOption, log *zap.Logger) (string, error) {
	r, err := vtk.OpenGrid(in, vtk.WithReaderLogger(log))
	if err != nil {
		return "", err
	}

	var w gridWriter
	switch r := r.(type) {
	case *vtk.UnstructuredGridReader:
		g, err := r.Grid()
		if err != nil {
			return "", err
		}
		w = vtk.NewUnstructuredGridWriter(g, opts...)
	case *vtk.ParallelGridReader:
		g, err := r.Grid()
		if err != nil {
			return "", err
		}
		w = vtk.NewUnstructuredGridWriter(g, opts...)
	case *vtk.ImageGridReader:
		g, err := r.Grid()
		if err != nil {
			return "", err
		}
		w = vtk.NewImageGridWriter(g, opts...)
	default:
		return "", fmt.Errorf("%s: converting %s files is not supported", in, r.Type())
	}
	w.WithLogger(log)

	for _, name := range r.PointFieldNames() {
		lf, err := r.PointField(name)
		if err != nil {
			return "", err
		}
		w.SetPointField(name, lf)
	}
	for _, name := range r.CellFieldNames() {
		lf, err := r.CellField(name)
		if err != nil {
			return "", err
		}
		w.SetCellField(name, lf)
	}
	for _, name := range r.MetaDataNames() {
		lf, err := r.MetaData(name)
		if err != nil {
			return "", err
		}
		if lf.Precision() != field.String {
			w.SetMetaData(name, lf)
			continue
		}
		text, err := r.MetaDataString(name)
		if err != nil {
			return "", err
		}
		w.SetMetaDataString(name, text)
	}

	name, err := w.WriteFile(out)
	if err != nil {
		return "", err
	}
	log.Info("converted file", zap.String("input", in), zap.String("output", name))
	return name, nil
}
