// Package gallerygen turns a directory of source photos into the three
// resolutions served by the gallery and the matching catalog entries.
package gallerygen

import (
	"context"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"
	"golang.org/x/sync/errgroup"

	"hearing-care-backend/internal/domain"
	"hearing-care-backend/internal/gallery"
	"hearing-care-backend/pkg/imaging"
)

// Options configures a generation run.
type Options struct {
	SrcDir    string
	OutDir    string
	Category  string
	URLPrefix string // public path of OutDir, e.g. /images/gallery
	Quality   int
	Workers   int
}

var sourceExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// Generate writes <OutDir>/<variant>/<id>.jpg for every source image and
// returns one catalog entry per image, in file name order.
func Generate(ctx context.Context, opts Options) ([]domain.GalleryPhoto, error) {
	if !gallery.IsCategory(opts.Category) {
		return nil, fmt.Errorf("unknown category %q (want one of %s)", opts.Category, strings.Join(gallery.Categories, ", "))
	}

	sources, err := listSources(opts.SrcDir)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no .jpg, .jpeg or .png files in %s", opts.SrcDir)
	}
	if err := checkIDs(sources, opts.Category); err != nil {
		return nil, err
	}

	for _, v := range imaging.Variants {
		if err := os.MkdirAll(filepath.Join(opts.OutDir, v.Name), 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	photos := make([]domain.GalleryPhoto, len(sources))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, src := range sources {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			p, err := processOne(src, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(src), err)
			}
			photos[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return photos, nil
}

func processOne(src string, opts Options) (domain.GalleryPhoto, error) {
	f, err := os.Open(src)
	if err != nil {
		return domain.GalleryPhoto{}, err
	}
	img, err := imaging.Decode(f)
	f.Close()
	if err != nil {
		return domain.GalleryPhoto{}, err
	}

	base := baseName(src)
	id := photoID(opts.Category, base)
	title := Title(base)

	urls := make(map[string]string, len(imaging.Variants))
	for _, v := range imaging.Variants {
		name := id + ".jpg"
		if err := writeVariant(filepath.Join(opts.OutDir, v.Name, name), imaging.ResizeToWidth(img, v.Width), opts.Quality); err != nil {
			return domain.GalleryPhoto{}, err
		}
		urls[v.Name] = path.Join(opts.URLPrefix, v.Name, name)
	}

	return domain.GalleryPhoto{
		ID:       id,
		Title:    title,
		Category: opts.Category,
		Images: domain.PhotoImages{
			Thumbnail: urls["thumbnail"],
			Medium:    urls["medium"],
			Full:      urls["full"],
		},
		Alt:         title,
		AspectRatio: imaging.AspectRatio(img.Bounds()),
	}, nil
}

func writeVariant(dst string, img image.Image, quality int) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := imaging.EncodeJPEG(out, img, quality); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func listSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !sourceExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

func baseName(src string) string {
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
}

func photoID(category, base string) string {
	return category + "-" + Slug(base)
}

// checkIDs rejects sources whose names slug to an empty or shared id, since
// their variants would be written to the same files.
func checkIDs(sources []string, category string) error {
	seen := make(map[string]string, len(sources))
	for _, src := range sources {
		name := filepath.Base(src)
		if Slug(baseName(src)) == "" {
			return fmt.Errorf("%s: file name has no letters or digits", name)
		}
		id := photoID(category, baseName(src))
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%s and %s both map to id %q", prev, name, id)
		}
		seen[id] = name
	}
	return nil
}

// Slug lowercases s and joins its letter and digit runs with dashes.
// Accented Latin letters keep their base letter.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		r = foldAccent(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// Title turns a file name like "sala_de-espera" into "Sala de espera".
func Title(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' || unicode.IsSpace(r) })
	if len(words) == 0 {
		return s
	}
	t := strings.Join(words, " ")
	r := []rune(t)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

var accents = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
	'ñ': 'n', 'ç': 'c',
}

func foldAccent(r rune) rune {
	if f, ok := accents[r]; ok {
		return f
	}
	return r
}

type catalogFile struct {
	Photos []domain.GalleryPhoto `yaml:"photos"`
}

// MarshalCatalog renders photos in the embedded catalog format and checks
// that the result loads.
func MarshalCatalog(photos []domain.GalleryPhoto) ([]byte, error) {
	out, err := yaml.Marshal(catalogFile{Photos: photos})
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	if _, err := gallery.Load(out); err != nil {
		return nil, err
	}
	return out, nil
}
