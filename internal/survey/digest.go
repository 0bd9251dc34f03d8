package survey

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// DomainFinding prefixes finding digests. The version suffix allows the
// encoding to change without colliding with stored digests.
const DomainFinding = "minopp/finding/v1"

// Digest returns the content address of a finding: SHA-256 over the domain,
// a 0x00 separator and the canonical JSON of glottocode, inventory id and
// report. Name and contributor are excluded so a relabelled contribution
// keeps its digest.
func Digest(f Finding) string {
	obj := map[string]any{
		"glottocode":   f.Glottocode,
		"inventory_id": f.InventoryID,
		"report": map[string]any{
			"fricatives": f.Report.Fricatives,
			"affricates": f.Report.Affricates,
			"result":     f.Report.Anomalous,
			"remainder":  f.Report.Remainder,
		},
	}
	var buf bytes.Buffer
	writeCanonical(&buf, obj)

	h := sha256.New()
	h.Write([]byte(DomainFinding))
	h.Write([]byte{0x00})
	h.Write(buf.Bytes())
	return hex.EncodeToString(h.Sum(nil))
}

// writeCanonical encodes v with sorted keys, NFC strings and no HTML
// escaping. A nil list encodes as [] so absent and empty lists agree.
func writeCanonical(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case string:
		writeCanonicalString(buf, val)
	case int:
		buf.WriteString(strconv.Itoa(val))
	case []string:
		buf.WriteByte('[')
		for i, s := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonicalString(buf, s)
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		// Keys are ASCII, so byte order equals UTF-16 order.
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonicalString(buf, k)
			buf.WriteByte(':')
			writeCanonical(buf, val[k])
		}
		buf.WriteByte('}')
	}
}

func writeCanonicalString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(norm.NFC.String(s)) // strings always encode
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}
