package youtube

import (
	"fmt"
	"regexp"

	"github.com/tidwall/gjson"
)

// The site injects its content data as a single script-level assignment. The
// non-greedy span relies on the object being serialized on one line.
var initialDataRe = regexp.MustCompile(`var ytInitialData = (\{.*?\});</script>`)

// Extract locates the embedded ytInitialData assignment in raw page HTML and
// parses the captured span into a JSON document. It is a pure function of the
// input text.
func Extract(page []byte) (gjson.Result, error) {
	m := initialDataRe.FindSubmatch(page)
	if m == nil {
		return gjson.Result{}, ErrInitialDataNotFound
	}
	if !gjson.ValidBytes(m[1]) {
		return gjson.Result{}, fmt.Errorf("%w (%d byte span)", ErrInitialDataInvalid, len(m[1]))
	}
	return gjson.ParseBytes(m[1]), nil
}
