package models

// ImageSrc returns a data URI when base64 data is present, otherwise the URL.
// An empty string means there is no image.
func ImageSrc(imageURL, imageData *string) string {
	if imageData != nil && *imageData != "" {
		return "data:image/png;base64," + *imageData
	}
	if imageURL != nil {
		return *imageURL
	}
	return ""
}
