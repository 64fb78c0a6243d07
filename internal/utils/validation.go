package utils

import "regexp"

// imageURLPattern allow-lists workspace image URLs by extension.
var imageURLPattern = regexp.MustCompile(`(?i)^https?://[^"']*\.(?:png|jpg|jpeg|gif|svg)$`)

// IsImageURL reports whether the URL points at an allow-listed image type.
func IsImageURL(url string) bool {
	return imageURLPattern.MatchString(url)
}
