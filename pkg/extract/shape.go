package extract

// Shape は画像データが見つかった応答の形を表します。ShapeNone は見つからなかったことを表します。
type Shape int

const (
	ShapeNone Shape = iota
	// 生成パス
	ShapeDirectBytes
	ShapeImageBytes
	ShapeNestedImage
	// 編集パス
	ShapeCandidateParts
	ShapeFlatParts
	ShapeDataURI
)

func (s Shape) String() string {
	switch s {
	case ShapeDirectBytes:
		return "direct_bytes"
	case ShapeImageBytes:
		return "image_bytes"
	case ShapeNestedImage:
		return "nested_image"
	case ShapeCandidateParts:
		return "candidate_parts"
	case ShapeFlatParts:
		return "flat_parts"
	case ShapeDataURI:
		return "data_uri"
	default:
		return "none"
	}
}

// Tier はテキスト抽出で採用されたフォールバック段階です。数字が大きいほど信頼度が低くなります。
type Tier int

const (
	TierDirectText Tier = iota + 1
	TierCandidatePart
	TierStringified
)

func (t Tier) String() string {
	switch t {
	case TierDirectText:
		return "direct_text"
	case TierCandidatePart:
		return "candidate_part"
	case TierStringified:
		return "stringified"
	default:
		return "unknown"
	}
}

// TextResult はテキスト抽出の結果です。
type TextResult struct {
	Text string
	Tier Tier
}

// Degraded は本来の回答を見つけられず、応答全体の文字列化で代用したかどうかを返します。
func (r TextResult) Degraded() bool {
	return r.Tier == TierStringified
}

// ImageResult は画像抽出の結果です。Found が false の場合 Data は nil です。
type ImageResult struct {
	Data     []byte
	MIMEType string
	Shape    Shape
}

func (r ImageResult) Found() bool {
	return r.Shape != ShapeNone && len(r.Data) > 0
}

func notFound() ImageResult {
	return ImageResult{Shape: ShapeNone}
}
