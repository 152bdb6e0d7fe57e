package domain

// MaxImageSize is the maximum accepted upload size in bytes (10 MB).
const MaxImageSize = 10 << 20

// UploadFolder is the fixed folder namespace under which product images are
// stored on the media host.
const UploadFolder = "marketplace/products"

// allowedImageTypes is the set of content types accepted for product images.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// IsAllowedImageType reports whether the content type is an accepted image
// format.
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}
