package gallerygen

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hearing-care-backend/internal/gallery"
	"hearing-care-backend/pkg/imaging"
)

// NewRootCmd creates the gallerygen command.
func NewRootCmd() *cobra.Command {
	var (
		opts    Options
		catalog string
	)

	root := &cobra.Command{
		Use:   "gallerygen --src DIR --out DIR --category CATEGORY",
		Short: "Generate gallery image variants and catalog entries",
		Long: "Scales every JPEG/PNG in --src to " + variantList() + " JPEGs under --out " +
			"and prints the matching catalog entries as YAML.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			photos, err := Generate(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out, err := MarshalCatalog(photos)
			if err != nil {
				return err
			}

			if catalog == "" || catalog == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(catalog, out, 0o644); err != nil {
				return fmt.Errorf("write catalog: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d photos to %s\n", len(photos), catalog)
			return nil
		},
	}

	f := root.Flags()
	f.StringVar(&opts.SrcDir, "src", "", "directory with source photos")
	f.StringVar(&opts.OutDir, "out", "", "output directory for the generated variants")
	f.StringVar(&opts.Category, "category", "", "gallery category ("+strings.Join(gallery.Categories, "|")+")")
	f.StringVar(&opts.URLPrefix, "url-prefix", "/images/gallery", "public URL path of --out")
	f.IntVar(&opts.Quality, "quality", imaging.DefaultQuality, "JPEG quality (1-100)")
	f.IntVar(&opts.Workers, "workers", 0, "concurrent images (default: number of CPUs)")
	f.StringVar(&catalog, "catalog", "-", "write YAML entries to this file instead of stdout")

	for _, name := range []string{"src", "out", "category"} {
		_ = root.MarkFlagRequired(name)
	}

	return root
}

func variantList() string {
	parts := make([]string, len(imaging.Variants))
	for i, v := range imaging.Variants {
		parts[i] = fmt.Sprintf("%s (%dw)", v.Name, v.Width)
	}
	return strings.Join(parts, ", ")
}
