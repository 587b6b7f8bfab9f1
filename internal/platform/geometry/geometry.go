// Package geometry はピクセル空間と正規化（0-1）空間の間の座標変換を提供します。
// すべての関数は純粋で、I/Oを行いません。
package geometry

import "errors"

var (
	// ErrInvalidDimension は幅または高さが0以下の場合に返されます。
	ErrInvalidDimension = errors.New("width and height must be positive")

	// ErrEmptyContour は空の輪郭からバウンディングボックスを計算しようとした場合に返されます。
	ErrEmptyContour = errors.New("contour has no points")
)

// Point は2次元座標を表します。単位（ピクセル or 正規化）は呼び出し側の文脈で決まります。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BBox は軸並行のバウンディングボックスを表します。
// 幅・高さは保存せず、必要な時に導出します（値の二重管理によるズレを防ぐため）。
type BBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Width はバウンディングボックスの幅を返します。
func (b BBox) Width() float64 { return b.X2 - b.X1 }

// Height はバウンディングボックスの高さを返します。
func (b BBox) Height() float64 { return b.Y2 - b.Y1 }

// Direction はScaleContourの変換方向を表します。
type Direction int

const (
	// ToUnitSpace はピクセル空間から正規化（0-1）空間への変換です。
	ToUnitSpace Direction = iota
	// ToPixelSpace は正規化（0-1）空間からピクセル空間への変換です。
	ToPixelSpace
)

// ToUnit はピクセル座標を正規化（0-1）座標に変換します。
func ToUnit(p Point, width, height float64) (Point, error) {
	if width <= 0 || height <= 0 {
		return Point{}, ErrInvalidDimension
	}
	return Point{X: p.X / width, Y: p.Y / height}, nil
}

// ToPixel は正規化（0-1）座標をピクセル座標に変換します。ToUnitの逆変換です。
func ToPixel(p Point, width, height float64) (Point, error) {
	if width <= 0 || height <= 0 {
		return Point{}, ErrInvalidDimension
	}
	return Point{X: p.X * width, Y: p.Y * height}, nil
}

// ScaleBBox はバウンディングボックスの両コーナーを指定方向に変換します。
func ScaleBBox(b BBox, width, height float64, dir Direction) (BBox, error) {
	p1, err := scalePoint(Point{X: b.X1, Y: b.Y1}, width, height, dir)
	if err != nil {
		return BBox{}, err
	}
	p2, err := scalePoint(Point{X: b.X2, Y: b.Y2}, width, height, dir)
	if err != nil {
		return BBox{}, err
	}
	return BBox{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y}, nil
}

// ScaleContour は輪郭の各点を指定方向に変換します。
// 点の順序は保持されます。空の入力には空のスライスを返します（エラーではありません）。
func ScaleContour(contour []Point, width, height float64, dir Direction) ([]Point, error) {
	if len(contour) == 0 {
		return []Point{}, nil
	}
	out := make([]Point, 0, len(contour))
	for _, p := range contour {
		scaled, err := scalePoint(p, width, height, dir)
		if err != nil {
			return nil, err
		}
		out = append(out, scaled)
	}
	return out, nil
}

// BBoxFromContour は輪郭上の全点を含む最小のバウンディングボックスを返します。
// 輪郭が空の場合、ErrEmptyContourを返します。
func BBoxFromContour(contour []Point) (BBox, error) {
	if len(contour) == 0 {
		return BBox{}, ErrEmptyContour
	}
	b := BBox{X1: contour[0].X, Y1: contour[0].Y, X2: contour[0].X, Y2: contour[0].Y}
	for _, p := range contour[1:] {
		if p.X < b.X1 {
			b.X1 = p.X
		}
		if p.Y < b.Y1 {
			b.Y1 = p.Y
		}
		if p.X > b.X2 {
			b.X2 = p.X
		}
		if p.Y > b.Y2 {
			b.Y2 = p.Y
		}
	}
	return b, nil
}

func scalePoint(p Point, width, height float64, dir Direction) (Point, error) {
	if dir == ToUnitSpace {
		return ToUnit(p, width, height)
	}
	return ToPixel(p, width, height)
}
