package ingest

import (
	"strconv"
	"strings"

	"gradboard/app/scrape"
)

// ResultID derives the numeric result identifier from the trailing path
// segment of a detail URL. The second return is false when the segment is
// not numeric.
func ResultID(url string) (int64, bool) {
	trimmed := strings.TrimRight(url, "/")
	segment := trimmed[strings.LastIndex(trimmed, "/")+1:]

	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// FilterNew drops seeds that are already stored. A seed is dropped when its
// URL is in the known set, or when a watermark is given and its result id
// parses strictly below it. Seeds whose id does not parse pass the
// watermark check; the URL set is the authoritative dedup there. With no
// watermark and no known set this is a full-backfill no-op.
func FilterNew(seeds []scrape.Record, minResultID int64, known map[string]struct{}) []scrape.Record {
	if minResultID <= 0 && len(known) == 0 {
		return seeds
	}

	fresh := make([]scrape.Record, 0, len(seeds))
	for _, seed := range seeds {
		if _, ok := known[seed.URL]; ok {
			continue
		}

		if minResultID > 0 {
			if id, ok := ResultID(seed.URL); ok && id < minResultID {
				continue
			}
		}

		fresh = append(fresh, seed)
	}

	return fresh
}
