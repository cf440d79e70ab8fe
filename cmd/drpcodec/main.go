package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/drpkit/drp/compress"
	"github.com/drpkit/drp/container"
	"github.com/drpkit/drp/internal/logging"
	"github.com/drpkit/drp/variant"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

type cliOptions struct {
	logLevel  string
	output    string
	outputDir string
	variant   string
	level     int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "drpcodec",
		Short:         "Encode and decode DRP containers",
		Long:          `Encode XML databases into musicInfo.drp / katsu_theme.drp containers and extract them again.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	encodeCmd := &cobra.Command{
		Use:   "encode <input.xml>",
		Short: "Wrap an XML file in a DRP container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, opts, args[0])
		},
	}
	encodeCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output path; its file name selects the variant unless --variant is given")
	encodeCmd.Flags().StringVar(&opts.variant, "variant", "", "Container variant (musicinfo, katsu_theme)")
	encodeCmd.Flags().IntVar(&opts.level, "compression-level", compress.DefaultZlibLevel, "zlib compression level (-2 to 9, -1 for default)")

	decodeCmd := &cobra.Command{
		Use:   "decode <input.drp>",
		Short: "Extract the XML payload of a DRP container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, opts, args[0])
		},
	}
	decodeCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output path for a single-entry container (defaults to the input name with .xml)")
	decodeCmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for the entries of a multi-entry container (defaults to the input directory)")

	inspectCmd := &cobra.Command{
		Use:   "inspect <input.drp>",
		Short: "Print the layout of a DRP container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, opts, args[0])
		},
	}

	rootCmd.AddCommand(encodeCmd, decodeCmd, inspectCmd)

	return rootCmd
}

func newLogger(cmd *cobra.Command, opts *cliOptions) hclog.Logger {
	return logging.NewLogger("drpcodec", opts.logLevel, cmd.ErrOrStderr())
}

func runEncode(cmd *cobra.Command, opts *cliOptions, input string) error {
	logger := newLogger(cmd, opts)

	v, output, err := encodeTarget(input, opts.variant, opts.output)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	enc, err := container.NewEncoder(
		container.WithCompressionLevel(opts.level),
		container.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	data, err := enc.Encode(raw, v)
	if err != nil {
		return err
	}

	if err := writeFile(output, data); err != nil {
		return err
	}

	logger.Info("encoded container", "input", input, "output", output, "variant", v.String(), "size", len(data))

	return nil
}

// encodeTarget picks the variant and output path. An explicit variant wins; otherwise the
// output file name must be one of the conventional names.
func encodeTarget(input, variantName, output string) (variant.Variant, string, error) {
	if variantName == "" {
		if output == "" {
			return 0, "", errors.New("either --output or --variant is required")
		}
		v, err := variant.Resolve(output)

		return v, output, err
	}

	v, err := variant.Parse(variantName)
	if err != nil {
		return 0, "", err
	}
	if output == "" {
		spec, _ := v.Spec()
		output = filepath.Join(filepath.Dir(input), spec.FileName)
	}

	return v, output, nil
}

func runDecode(cmd *cobra.Command, opts *cliOptions, input string) error {
	logger := newLogger(cmd, opts)

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	dec, err := container.NewDecoder(container.WithLogger(logger))
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".xml"
	}
	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = filepath.Dir(input)
	}

	sink := &lazyFile{path: output}
	err = dec.DecodeTo(data, sink, entryOpener(outputDir, logger))
	if cerr := sink.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	logger.Info("decoded container", "input", input)

	return nil
}

// entryOpener creates entry files inside dir. Entry names come from the container, so only
// their base name is used.
func entryOpener(dir string, logger hclog.Logger) container.SinkOpener {
	return func(name string) (io.WriteCloser, error) {
		base := filepath.Base(name)
		if base == "." || base == ".." || base == string(filepath.Separator) {
			return nil, fmt.Errorf("refusing to write entry named %q", name)
		}

		path := filepath.Join(dir, base)
		logger.Info("writing entry", "path", path)

		return os.Create(path)
	}
}

func runInspect(cmd *cobra.Command, opts *cliOptions, input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	dec, err := container.NewDecoder(container.WithLogger(newLogger(cmd, opts)))
	if err != nil {
		return err
	}

	info, err := dec.Inspect(data)
	if err != nil {
		return err
	}

	printInfo(cmd.OutOrStdout(), input, info)

	return nil
}

func printInfo(w io.Writer, input string, info container.ContainerInfo) {
	fmt.Fprintf(w, "%s: %d bytes, flag %d, %d entries\n", input, info.Size, info.Flag, info.FileCount)
	for _, e := range info.Entries {
		kind := "zlib"
		if e.Stored {
			kind = "stored"
		}
		variantName := "unknown"
		if e.Variant.IsValid() {
			variantName = e.Variant.String()
		}

		fmt.Fprintf(w, "entry %d: %s (variant %s)\n", e.Index, e.Name, variantName)
		fmt.Fprintf(w, "  offset:  0x%X, payload 0x%X+%d (%s)\n", e.Offset, e.PayloadOffset, e.PayloadLen, kind)
		fmt.Fprintf(w, "  margin:  %08X %08X %08X %08X\n", e.Margin[0], e.Margin[1], e.Margin[2], e.Margin[3])
		fmt.Fprintf(w, "  sizes:   %d %d %d %d, raw %d\n",
			e.CompressedSizes[0], e.CompressedSizes[1], e.CompressedSizes[2], e.CompressedSizes[3], e.RawSize)
		if !e.SizesAgree {
			fmt.Fprintln(w, "  warning: duplicated size words differ")
		}
		fmt.Fprintf(w, "  xxh64:   %016x\n", e.Digest)
	}
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = f.Write(data)

	return err
}

// lazyFile creates its file on the first Write, so a failed decode leaves nothing behind.
type lazyFile struct {
	path string
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.Create(l.path)
		if err != nil {
			return 0, err
		}
		l.f = f
	}

	return l.f.Write(p)
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}

	return l.f.Close()
}
