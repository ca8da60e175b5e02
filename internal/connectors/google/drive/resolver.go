package drive

// webURL prefers Drive's own view link and falls back to the generic
// file viewer URL.
func webURL(fileID, webViewLink string) string {
	if webViewLink != "" {
		return webViewLink
	}
	return "https://drive.google.com/file/d/" + fileID + "/view"
}
