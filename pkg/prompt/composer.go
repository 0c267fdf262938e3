package prompt

import (
	"fmt"
	"strings"
)

// Catalog は部署テンプレートとスタイル説明の固定語彙を保持し、洗練用プロンプトを組み立てます。
// 表示順を保つためキーの順序も保持します。
type Catalog struct {
	departmentKeys []string
	departments    map[string]string
	styleKeys      []string
	styles         map[string]string
}

// NewCatalog は与えられた語彙表から Catalog を作成します。
// 各部署テンプレートは UserPromptMarker をちょうど 1 つ含む必要があります。
func NewCatalog(departments, styles []Entry) (*Catalog, error) {
	c := &Catalog{
		departments: make(map[string]string, len(departments)),
		styles:      make(map[string]string, len(styles)),
	}
	for _, d := range departments {
		if n := strings.Count(d.Text, UserPromptMarker); n != 1 {
			return nil, fmt.Errorf("department %q must contain exactly one %s marker, found %d", d.Key, UserPromptMarker, n)
		}
		if _, dup := c.departments[d.Key]; dup {
			return nil, fmt.Errorf("duplicate department %q", d.Key)
		}
		c.departmentKeys = append(c.departmentKeys, d.Key)
		c.departments[d.Key] = d.Text
	}
	for _, s := range styles {
		if _, dup := c.styles[s.Key]; dup {
			return nil, fmt.Errorf("duplicate style %q", s.Key)
		}
		c.styleKeys = append(c.styleKeys, s.Key)
		c.styles[s.Key] = s.Text
	}
	if _, ok := c.styles[NoStyle]; !ok {
		c.styleKeys = append([]string{NoStyle}, c.styleKeys...)
		c.styles[NoStyle] = ""
	}
	return c, nil
}

var defaultCatalog = mustCatalog(departmentTemplates, styleDescriptions)

func mustCatalog(departments, styles []Entry) *Catalog {
	c, err := NewCatalog(departments, styles)
	if err != nil {
		panic("prompt catalog: " + err.Error())
	}
	return c
}

// Default は組み込みの部署・スタイル語彙を返します。
func Default() *Catalog { return defaultCatalog }

// Compose は部署テンプレートのマーカーを利用者のアイデアでそのまま置き換え、
// スタイルが NoStyle 以外ならスタイル説明の行を末尾に追加します。
// アイデアのエスケープやブランド名の検出は行いません。
func (c *Catalog) Compose(department, idea, style string) string {
	text := strings.Replace(c.departments[department], UserPromptMarker, idea, 1)
	if style != NoStyle {
		text += "\n\nApply style: " + c.styles[style]
	}
	return text
}

// EditInstruction は編集モデルに送る指示文を組み立てます。
func EditInstruction(edit string) string {
	return fmt.Sprintf(editInstructionTemplate, edit)
}

func (c *Catalog) HasDepartment(key string) bool {
	_, ok := c.departments[key]
	return ok
}

func (c *Catalog) HasStyle(key string) bool {
	_, ok := c.styles[key]
	return ok
}

// Departments は部署キーを表示順で返します。
func (c *Catalog) Departments() []string {
	return append([]string(nil), c.departmentKeys...)
}

// Styles はスタイルキーを表示順で返します。NoStyle は必ず含まれます。
func (c *Catalog) Styles() []string {
	return append([]string(nil), c.styleKeys...)
}

// StyleDescription はスタイルキーに対応する説明文を返します。
func (c *Catalog) StyleDescription(key string) string {
	return c.styles[key]
}

// TemplateSuffix は部署テンプレートのうちマーカーより後ろの固定部分を返します。
func (c *Catalog) TemplateSuffix(department string) string {
	_, after, _ := strings.Cut(c.departments[department], UserPromptMarker)
	return after
}
