package library

import (
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// orientations maps an EXIF orientation to the affine transform taking a
// w×h source to the upright image. m is the linear part {a, b, d, e}; tx
// and ty give the translation as multiples of (w, h).
var orientations = [9]struct {
	m      [4]float64
	tx, ty [2]float64
}{
	2: {m: [4]float64{-1, 0, 0, 1}, tx: [2]float64{1, 0}},
	3: {m: [4]float64{-1, 0, 0, -1}, tx: [2]float64{1, 0}, ty: [2]float64{0, 1}},
	4: {m: [4]float64{1, 0, 0, -1}, ty: [2]float64{0, 1}},
	5: {m: [4]float64{0, 1, 1, 0}},
	6: {m: [4]float64{0, -1, 1, 0}, tx: [2]float64{0, 1}},
	7: {m: [4]float64{0, -1, -1, 0}, tx: [2]float64{0, 1}, ty: [2]float64{1, 0}},
	8: {m: [4]float64{0, 1, -1, 0}, ty: [2]float64{1, 0}},
}

// Orient returns img turned upright for the given EXIF orientation.
// Orientation 1 and unknown values return img unchanged.
func Orient(img image.Image, orientation int) image.Image {
	if orientation < 2 || orientation > 8 {
		return img
	}

	sr := img.Bounds()
	w, h := float64(sr.Dx()), float64(sr.Dy())
	o := orientations[orientation]
	a, b, d, e := o.m[0], o.m[1], o.m[2], o.m[3]
	c := o.tx[0]*w + o.tx[1]*h
	f := o.ty[0]*w + o.ty[1]*h
	mx, my := float64(sr.Min.X), float64(sr.Min.Y)

	dw, dh := sr.Dx(), sr.Dy()
	if orientation >= 5 {
		dw, dh = dh, dw
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	aff := f64.Aff3{
		a, b, c - a*mx - b*my,
		d, e, f - d*mx - e*my,
	}
	xdraw.NearestNeighbor.Transform(dst, aff, img, sr, xdraw.Src, nil)
	return dst
}

// Downscale shrinks img so neither side exceeds maxDim, keeping its aspect
// ratio. Smaller images and maxDim <= 0 return img unchanged.
func Downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	if maxDim <= 0 || (b.Dx() <= maxDim && b.Dy() <= maxDim) {
		return img
	}

	fit := fitWithin(b.Dx(), b.Dy(), maxDim)
	dst := image.NewRGBA(image.Rect(0, 0, fit.X, fit.Y))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func fitWithin(w, h, maxDim int) image.Point {
	if w >= h {
		return image.Pt(maxDim, max(1, h*maxDim/w))
	}
	return image.Pt(max(1, w*maxDim/h), maxDim)
}
