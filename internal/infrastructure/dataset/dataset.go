// Package dataset перечисляет изображения размеченного набора данных и
// читает их с диска.
package dataset

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // декодер BMP
	_ "golang.org/x/image/tiff" // декодер TIFF
	_ "golang.org/x/image/webp" // декодер WebP

	"mask-detector/internal/domain/entity"
)

// ErrNoImages возвращается, если в каталоге не найдено ни одного изображения.
var ErrNoImages = errors.New("no images found")

// DefaultExpectedFaces ожидаемое число лиц для изображения без разметки.
const DefaultExpectedFaces = 1

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// ListOptions параметры перечисления набора данных.
type ListOptions struct {
	Labels      []string    // если не пуст, берутся только эти каталоги
	GroundTruth GroundTruth // ожидаемое число лиц по изображениям
}

// List обходит root и возвращает изображения в лексикографическом порядке
// путей. Меткой изображения служит имя каталога, в котором оно лежит.
func List(root string, opts ListOptions) ([]entity.Sample, error) {
	var samples []entity.Sample
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsImage(path) {
			return nil
		}

		label := filepath.Base(filepath.Dir(path))
		if len(opts.Labels) > 0 && !slices.Contains(opts.Labels, label) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		samples = append(samples, entity.Sample{
			Path:     path,
			Label:    label,
			Expected: opts.GroundTruth.Expected(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: %w", root, ErrNoImages)
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].Path < samples[j].Path })
	return samples, nil
}

// IsImage сообщает, что расширение файла относится к поддерживаемому формату.
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Load читает изображение с учётом EXIF-ориентации.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return img, nil
}
