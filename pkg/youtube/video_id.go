package youtube

import (
	"net/url"
	"strings"
)

// ExtractVideoID pulls the video ID out of the supported YouTube URL
// formats:
//
//	https://www.youtube.com/watch?v=VIDEO_ID
//	https://youtu.be/VIDEO_ID
//	https://www.youtube.com/embed/VIDEO_ID
//	https://www.youtube.com/v/VIDEO_ID
//	https://m.youtube.com/watch?v=VIDEO_ID
func ExtractVideoID(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())

	if host == "youtu.be" || host == "www.youtu.be" {
		id := strings.TrimPrefix(parsed.Path, "/")
		if i := strings.Index(id, "/"); i >= 0 {
			id = id[:i]
		}
		return id, id != ""
	}

	if host == "www.youtube.com" || host == "youtube.com" || host == "m.youtube.com" {
		if parsed.Path == "/watch" {
			id := parsed.Query().Get("v")
			return id, id != ""
		}
		for _, prefix := range []string{"/embed/", "/v/"} {
			if strings.HasPrefix(parsed.Path, prefix) {
				id := strings.TrimPrefix(parsed.Path, prefix)
				if i := strings.Index(id, "/"); i >= 0 {
					id = id[:i]
				}
				return id, id != ""
			}
		}
	}

	return "", false
}
