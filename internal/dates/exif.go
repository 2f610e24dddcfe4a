package dates

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// exifLayout is the fixed EXIF date pattern. EXIF times are wall-clock
// readings with no zone; they are taken in the local zone, matching how
// cameras record them.
const exifLayout = "2006:01:02 15:04:05"

// exifTagOrder is the priority order for date tags: original capture
// first, digitization second, the generic tag last.
var exifTagOrder = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// exifTime extracts the first parseable EXIF date from an image file.
// Decode or parse failures are never fatal — the candidate is omitted.
func exifTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}

	for _, name := range exifTagOrder {
		tag, err := x.Get(name)
		if err != nil {
			continue
		}
		val, err := tag.StringVal()
		if err != nil {
			continue
		}
		if t, err := time.ParseInLocation(exifLayout, val, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
