package artwork

import (
	"os"
	"path/filepath"
	"strings"
)

// Common cover art filenames to look for next to an audio file.
var coverArtFilenames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"album.jpg", "album.jpeg", "album.png",
	"front.jpg", "front.jpeg", "front.png",
}

func findFolderArt(audioPath string) (data []byte, mimeType string, err error) {
	dir := filepath.Dir(audioPath)
	for _, filename := range coverArtFilenames {
		data, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			data, err = os.ReadFile(filepath.Join(dir, strings.ToUpper(filename)))
			if err != nil {
				continue
			}
		}

		switch strings.ToLower(filepath.Ext(filename)) {
		case ".jpg", ".jpeg":
			mimeType = "image/jpeg"
		default:
			mimeType = "image/png"
		}
		return data, mimeType, nil
	}
	return nil, "", nil
}
