package utils

import (
	"errors"
	"net/url"
	"path"
	"strings"
)

var imageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

const maxImageURLLength = 2048

// ValidateImageURL accepts https URLs whose path ends in an image extension.
func ValidateImageURL(imageURL string) error {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return errors.New("image URL cannot be empty")
	}
	if len(imageURL) > maxImageURLLength {
		return errors.New("image URL too long (max 2048 characters)")
	}

	lower := strings.ToLower(imageURL)
	if strings.Contains(lower, "<script") || strings.Contains(lower, "onerror=") {
		return errors.New("unsafe image URL detected")
	}

	parsed, err := url.Parse(imageURL)
	if err != nil {
		return errors.New("invalid image URL format")
	}
	if parsed.Scheme != "https" || parsed.Host == "" {
		return errors.New("only HTTPS image URLs are allowed")
	}
	if _, ok := imageExtensions[strings.ToLower(path.Ext(parsed.Path))]; !ok {
		return errors.New("URL must point to an image file (.png, .jpg, .jpeg, .webp, .gif, .svg)")
	}
	return nil
}

// ImageContentType maps an uploaded file name to its content type. ok is
// false for anything that is not an allowed image.
func ImageContentType(filename string) (ext, contentType string, ok bool) {
	ext = strings.ToLower(path.Ext(filename))
	contentType, ok = imageExtensions[ext]
	return ext, contentType, ok
}
