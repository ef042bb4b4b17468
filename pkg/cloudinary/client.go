package cloudinary

import (
	"github.com/cloudinary/cloudinary-go/v2"
)

// New reads credentials from CLOUDINARY_URL.
func New() (*cloudinary.Cloudinary, error) {
	return cloudinary.New()
}
