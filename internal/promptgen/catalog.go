package promptgen

// Style is one of the fixed art styles offered in the form.
type Style string

const (
	StyleNone           Style = "none"
	StyleAnime          Style = "anime"
	StylePhotorealistic Style = "photorealistic"
	Style3D             Style = "3d"
	StyleCyberpunk      Style = "cyberpunk"
	StyleOil            Style = "oil"
	StyleGhibli         Style = "ghibli"
	StyleChineseInk     Style = "chinese_ink"
)

const defaultDirective = "Style focus: High quality, artistic composition."

var styleDirectives = map[Style]string{
	StyleAnime:          "Style focus: Anime style, makoto shinkai style, vibrant colors, cel shading, highly detailed.",
	StylePhotorealistic: "Style focus: Photorealistic, raw photo, dslr, 8k uhd, raytracing, highly detailed texture, realistic lighting.",
	Style3D:             "Style focus: 3D render, blender, octane render, c4d, blind box style, cute, plastic texture, clay material.",
	StyleCyberpunk:      "Style focus: Cyberpunk, neon lights, futuristic city, synthwave, high contrast, sci-fi.",
	StyleOil:            "Style focus: Oil painting, impasto, brush strokes, textured canvas, classical art.",
	StyleGhibli:         "Style focus: Studio Ghibli style, hayao miyazaki, hand drawn, soothing colors, picturesque.",
	StyleChineseInk:     "Style focus: Chinese ink painting, watercolor, traditional art, wash painting, minimal, zen.",
}

// ParseStyle never fails: ids outside the catalog map to StyleNone.
func ParseStyle(id string) Style {
	s := Style(id)
	if _, ok := styleDirectives[s]; ok {
		return s
	}
	return StyleNone
}

// Directive returns the instruction fragment for the style, or the generic
// quality directive for StyleNone and anything unknown.
func (s Style) Directive() string {
	if d, ok := styleDirectives[s]; ok {
		return d
	}
	return defaultDirective
}

// AspectRatio is a label from the closed set of image proportions.
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectWide      AspectRatio = "16:9"
	AspectTall      AspectRatio = "9:16"
	AspectLandscape AspectRatio = "4:3"
	AspectPortrait  AspectRatio = "3:4"
)

func (a AspectRatio) Valid() bool {
	switch a {
	case AspectSquare, AspectWide, AspectTall, AspectLandscape, AspectPortrait:
		return true
	}
	return false
}

// Mode selects which system instruction variant is composed.
type Mode string

const (
	ModeTextToImage    Mode = "text_to_image"
	ModeImageReference Mode = "image_reference"
)

// ParseMode maps anything other than image_reference to text_to_image.
func ParseMode(v string) Mode {
	if Mode(v) == ModeImageReference {
		return ModeImageReference
	}
	return ModeTextToImage
}

type StyleOption struct {
	ID          Style  `json:"id"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type AspectRatioOption struct {
	ID    AspectRatio `json:"id"`
	Label string      `json:"label"`
}

type ModeOption struct {
	ID    Mode   `json:"id"`
	Label string `json:"label"`
}

var styleOptions = []StyleOption{
	{ID: StyleNone, Label: "自由发挥", Icon: "✨", Description: "不限制特定风格"},
	{ID: StyleAnime, Label: "日系动漫", Icon: "🌸", Description: "二次元、插画风格"},
	{ID: StylePhotorealistic, Label: "真实摄影", Icon: "📸", Description: "像照片一样真实"},
	{ID: Style3D, Label: "3D 渲染", Icon: "🧊", Description: "C4D, Blender, 盲盒风"},
	{ID: StyleCyberpunk, Label: "赛博朋克", Icon: "🌃", Description: "霓虹灯、未来感"},
	{ID: StyleOil, Label: "油画艺术", Icon: "🎨", Description: "厚涂、印象派"},
	{ID: StyleGhibli, Label: "吉卜力", Icon: "🍃", Description: "宫崎骏风格"},
	{ID: StyleChineseInk, Label: "中国水墨", Icon: "🖌️", Description: "传统水墨韵味"},
}

var aspectRatioOptions = []AspectRatioOption{
	{ID: AspectSquare, Label: "方形 (1:1)"},
	{ID: AspectWide, Label: "宽屏 (16:9)"},
	{ID: AspectTall, Label: "手机壁纸 (9:16)"},
	{ID: AspectLandscape, Label: "画框 (4:3)"},
	{ID: AspectPortrait, Label: "肖像 (3:4)"},
}

var modeOptions = []ModeOption{
	{ID: ModeTextToImage, Label: "文生图"},
	{ID: ModeImageReference, Label: "参考图 [用户图1]"},
}

func Styles() []StyleOption {
	out := make([]StyleOption, len(styleOptions))
	copy(out, styleOptions)
	return out
}

func AspectRatios() []AspectRatioOption {
	out := make([]AspectRatioOption, len(aspectRatioOptions))
	copy(out, aspectRatioOptions)
	return out
}

func Modes() []ModeOption {
	out := make([]ModeOption, len(modeOptions))
	copy(out, modeOptions)
	return out
}

// StyleLabel returns the display label, falling back to the StyleNone entry.
func StyleLabel(s Style) string {
	for _, o := range styleOptions {
		if o.ID == s {
			return o.Icon + " " + o.Label
		}
	}
	return styleOptions[0].Icon + " " + styleOptions[0].Label
}

func AspectRatioLabel(a AspectRatio) string {
	for _, o := range aspectRatioOptions {
		if o.ID == a {
			return o.Label
		}
	}
	return string(a)
}

func ModeLabel(m Mode) string {
	for _, o := range modeOptions {
		if o.ID == m {
			return o.Label
		}
	}
	return modeOptions[0].Label
}
