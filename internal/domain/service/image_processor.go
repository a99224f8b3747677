package service

// ImageProcessor normalizes uploaded profile pictures: decode, resize to the
// requested dimensions and re-encode as PNG.
type ImageProcessor interface {
	Process(data []byte, width, height int) ([]byte, error)
}
