package timeutil

import (
	"net/http"
	"time"
)

func NowUnix() int64 {
	return time.Now().Unix()
}

// HTTPTime formats a unix-second timestamp per RFC 7231 (IMF-fixdate).
func HTTPTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(http.TimeFormat)
}
