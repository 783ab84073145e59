//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"mask-detector/internal/domain/port"
)

// blurKernel ядро размытия перед поиском лиц
var blurKernel = image.Pt(5, 5)

// GoCVProcessor обработка изображений на OpenCV. Состояния не хранит,
// безопасен для вызова из нескольких горутин.
type GoCVProcessor struct{}

// NewProcessor создаёт обработку изображений.
func NewProcessor() *GoCVProcessor { return &GoCVProcessor{} }

// Preprocess переводит изображение в серое, выравнивает гистограмму и
// размывает ядром Гаусса 5x5 с отражением на краях.
func (p *GoCVProcessor) Preprocess(img image.Image) (*port.Preprocessed, error) {
	gray, err := grayMat(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	equalized := gocv.NewMat()
	defer equalized.Close()
	gocv.EqualizeHist(gray, &equalized)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(equalized, &blurred, blurKernel, 0, 0, gocv.BorderDefault)

	out := &port.Preprocessed{}
	for _, stage := range []struct {
		mat gocv.Mat
		dst **image.Gray
	}{
		{gray, &out.Gray},
		{equalized, &out.Equalized},
		{blurred, &out.Blurred},
	} {
		if *stage.dst, err = matToGray(stage.mat); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Grayscale возвращает яркость изображения.
func (p *GoCVProcessor) Grayscale(img image.Image) (*image.Gray, error) {
	gray, err := grayMat(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()
	return matToGray(gray)
}

// SkinMask берёт канал Cr из YCrCb и бинаризует его порогом Оцу.
// Для однотонного канала порог 0: нулевой канал остаётся нулевым,
// любой другой становится целиком 255.
func (p *GoCVProcessor) SkinMask(face image.Image) (*port.SkinSegmentation, error) {
	bgr, err := gocv.ImageToMatRGB(face)
	if err != nil {
		return nil, fmt.Errorf("image to mat: %w", err)
	}
	defer bgr.Close()

	ycrcb := gocv.NewMat()
	defer ycrcb.Close()
	gocv.CvtColor(bgr, &ycrcb, gocv.ColorBGRToYCrCb)

	channels := gocv.Split(ycrcb)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()
	cr := channels[1]

	mask := gocv.NewMat()
	defer mask.Close()

	var threshold float32
	if lo, hi, _, _ := gocv.MinMaxLoc(cr); lo == hi {
		gocv.Threshold(cr, &mask, 0, 255, gocv.ThresholdBinary)
	} else {
		threshold = gocv.Threshold(cr, &mask, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	}

	out := &port.SkinSegmentation{Threshold: uint8(threshold)}
	if out.Cr, err = matToGray(cr); err != nil {
		return nil, err
	}
	if out.Mask, err = matToGray(mask); err != nil {
		return nil, err
	}
	return out, nil
}

// CountNonZero считает ненулевые пиксели маски в пересечении r с маской.
func (p *GoCVProcessor) CountNonZero(mask *image.Gray, r image.Rectangle) (int, error) {
	r = r.Intersect(mask.Rect)
	if r.Empty() {
		return 0, nil
	}

	mat, err := gocv.ImageGrayToMatGray(mask)
	if err != nil {
		return 0, fmt.Errorf("image to mat: %w", err)
	}
	defer mat.Close()

	// координаты Mat отсчитываются от нуля
	region := mat.Region(r.Sub(mask.Rect.Min))
	defer region.Close()
	return gocv.CountNonZero(region), nil
}

// DrawBoxes рисует рамки толщиной 1 пиксель на копии изображения.
func (p *GoCVProcessor) DrawBoxes(img image.Image, boxes []port.Box) (*image.NRGBA, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("image to mat: %w", err)
	}
	defer mat.Close()

	origin := img.Bounds().Min
	for _, b := range boxes {
		gocv.Rectangle(&mat, b.Rect.Sub(origin), b.Color, 1)
	}

	drawn, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("mat to image: %w", err)
	}
	return imaging.Clone(drawn), nil
}

func grayMat(img image.Image) (gocv.Mat, error) {
	bgr, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("image to mat: %w", err)
	}
	defer bgr.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)
	return gray, nil
}

func matToGray(mat gocv.Mat) (*image.Gray, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("mat to image: %w", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		return nil, fmt.Errorf("mat to image: unexpected %T", img)
	}
	return gray, nil
}

var _ port.ImageProcessor = (*GoCVProcessor)(nil)
