package extract

import (
	"strings"

	"google.golang.org/genai"
)

// Response はモデル応答を正規化したビューです。
// SDK のバージョンによって回答の置き場所が異なるため、既知の形をすべてこの構造に寄せてから探索します。
type Response struct {
	// Text は応答が直接持つ最終テキストです。
	Text string
	// Candidates は candidates -> content -> parts 形式の応答です。
	Candidates []*genai.Candidate
	// Parts は応答直下に parts を持つ平坦な形式です。
	Parts []*genai.Part
	// Raw は正規化前の値で、最終段の文字列化に使います。
	Raw any
}

// Texter は最終テキストを直接返せる応答です。
type Texter interface {
	Text() string
}

// Normalize は既知の応答型を Response に変換します。未知の型は Raw のみを持つ Response になります。
func Normalize(v any) Response {
	switch r := v.(type) {
	case nil:
		return Response{}
	case Response:
		return r
	case *Response:
		if r == nil {
			return Response{Raw: v}
		}
		return *r
	case *genai.GenerateContentResponse:
		if r == nil {
			return Response{Raw: v}
		}
		return Response{Text: safeText(r), Candidates: r.Candidates, Raw: v}
	case *genai.Content:
		if r == nil {
			return Response{Raw: v}
		}
		return Response{Text: partsText(r.Parts), Parts: r.Parts, Raw: v}
	case []*genai.Part:
		return Response{Text: partsText(r), Parts: r, Raw: v}
	case string:
		return Response{Text: r, Raw: v}
	case Texter:
		return Response{Text: safeText(r), Raw: v}
	default:
		return Response{Raw: v}
	}
}

// partsText は思考パートを除いたテキストパートを連結します。
func partsText(parts []*genai.Part) string {
	var sb strings.Builder
	for _, p := range parts {
		if p == nil || p.Thought || p.Text == "" {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// safeText は nil レシーバー等で Text() が panic しても空文字として扱います。
func safeText(t Texter) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()
	return t.Text()
}
