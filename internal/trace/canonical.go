package trace

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/propnet/internal/network"
)

// EventID computes a content-addressed identifier for an event:
// sha256 over a canonical encoding of the event's fields. Two writes of
// the same event from the same network always produce the same id.
func EventID(networkName string, ev network.Event) (string, error) {
	fields := map[string]string{
		"network":    networkName,
		"seq":        fmt.Sprintf("%d", ev.Seq),
		"turn":       ev.Turn,
		"type":       string(ev.Type),
		"cell":       ev.Cell,
		"propagator": ev.Propagator,
		"premise":    ev.Premise,
		"old":        ev.Old,
		"new":        ev.New,
		"believed":   fmt.Sprintf("%t", ev.Believed),
		"wiring":     strings.Join(ev.Wiring, ","),
	}

	enc, err := marshalCanonical(fields)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(enc)
	return hex.EncodeToString(sum[:]), nil
}

// marshalCanonical produces a deterministic JSON encoding for hashing:
// keys sorted, strings NFC normalized, no HTML escaping. This is the
// ONLY serialization used for identity computation.
func marshalCanonical(fields map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalCanonicalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := marshalCanonicalString(fields[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalCanonicalString encodes a string with NFC normalization at the
// serialization boundary and HTML escaping disabled.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}
