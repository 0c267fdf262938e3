package extract

import (
	"encoding/base64"
	"strings"
)

const (
	dataURIPrefix  = "data:image/"
	base64Marker   = ";base64,"
	maxSubtypeSize = 32
)

// DecodeDataURI はテキスト中に埋め込まれた最初のデコード可能な data:image/...;base64,... を取り出します。
// ペイロードは base64 の文字集合から外れる最初の文字の手前までです。
func DecodeDataURI(text string) ([]byte, string, bool) {
	for rest := text; ; {
		i := strings.Index(rest, dataURIPrefix)
		if i < 0 {
			return nil, "", false
		}
		rest = rest[i+len("data:"):]

		semi := strings.Index(rest, base64Marker)
		if semi < 0 {
			return nil, "", false
		}
		mimeType := rest[:semi]
		if !validImageMIME(mimeType) {
			continue
		}

		payload := rest[semi+len(base64Marker):]
		end := strings.IndexFunc(payload, func(r rune) bool { return !isBase64Char(r) })
		if end >= 0 {
			payload = payload[:end]
		}
		if data, ok := decodeBase64(payload); ok {
			return data, mimeType, true
		}
		rest = rest[semi+len(base64Marker):]
	}
}

func validImageMIME(mimeType string) bool {
	subtype := strings.TrimPrefix(mimeType, "image/")
	if subtype == "" || len(subtype) > maxSubtypeSize {
		return false
	}
	for _, r := range subtype {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

func isBase64Char(r rune) bool {
	return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+' || r == '/' || r == '='
}

// decodeBase64 はパディング有無のどちらでもデコードします。
func decodeBase64(payload string) ([]byte, bool) {
	if payload == "" {
		return nil, false
	}
	if data, err := base64.StdEncoding.DecodeString(payload); err == nil && len(data) > 0 {
		return data, true
	}
	if data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); err == nil && len(data) > 0 {
		return data, true
	}
	return nil, false
}
