package deck

import "github.com/techflow-ai/pitchdeck/internal/chart"

// BlockKind tags the variant held by a Block.
type BlockKind string

// Layout block kinds.
const (
	KindHeading  BlockKind = "heading"
	KindText     BlockKind = "text"
	KindCard     BlockKind = "card"
	KindColumns  BlockKind = "columns"
	KindStat     BlockKind = "stat"
	KindList     BlockKind = "list"
	KindPre      BlockKind = "pre"
	KindImage    BlockKind = "image"
	KindChart    BlockKind = "chart"
	KindTimeline BlockKind = "timeline"
	KindLinks    BlockKind = "links"
	KindQuote    BlockKind = "quote"
	KindDivider  BlockKind = "divider"
)

// Tone selects a card's visual treatment. Surfaces map tones to
// palette colors; the tone carries no behavior.
type Tone string

// Card tones.
const (
	ToneHero     Tone = "hero"
	ToneStat     Tone = "stat"
	ToneProblem  Tone = "problem"
	ToneSolution Tone = "solution"
	ToneTech     Tone = "tech"
	ToneDemo     Tone = "demo"
	TonePhone    Tone = "phone"
)

// Milestone is one roadmap entry.
type Milestone struct {
	When        string `json:"when"`
	Phase       string `json:"phase"`
	Description string `json:"description"`
}

// Link is a call-to-action anchor.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Block is one element of a Page. Kind selects which of the other
// fields are meaningful.
type Block struct {
	Kind BlockKind `json:"kind"`

	Level int    `json:"level,omitempty"`
	Text  string `json:"text,omitempty"`
	Title string `json:"title,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Tone  Tone   `json:"tone,omitempty"`

	// Value is the headline figure of a stat block.
	Value string `json:"value,omitempty"`

	// Caption annotates stats, images and quotes.
	Caption string `json:"caption,omitempty"`

	URL   string   `json:"url,omitempty"`
	Items []string `json:"items,omitempty"`

	// Weights gives relative column widths for a columns block.
	Weights []int `json:"weights,omitempty"`

	Children   []Block     `json:"children,omitempty"`
	Milestones []Milestone `json:"milestones,omitempty"`
	Links      []Link      `json:"links,omitempty"`
	Chart      *chart.Spec `json:"chart,omitempty"`
}

// Heading returns a heading block; level 1 is the page title.
func Heading(level int, text string) Block {
	return Block{Kind: KindHeading, Level: level, Text: text}
}

// Text returns a paragraph.
func Text(s string) Block {
	return Block{Kind: KindText, Text: s}
}

// Card groups children under an optional title with the given tone.
func Card(tone Tone, title string, children ...Block) Block {
	return Block{Kind: KindCard, Tone: tone, Title: title, Children: children}
}

// Columns lays children side by side. With no weights every column
// gets equal width.
func Columns(weights []int, children ...Block) Block {
	return Block{Kind: KindColumns, Weights: weights, Children: children}
}

// Stat is a headline figure card.
func Stat(icon, title, value, caption string) Block {
	return Block{Kind: KindStat, Tone: ToneStat, Icon: icon, Title: title, Value: value, Caption: caption}
}

// List returns a bulleted list.
func List(items ...string) Block {
	return Block{Kind: KindList, Items: items}
}

// Pre returns preformatted text whose whitespace is significant.
func Pre(text string) Block {
	return Block{Kind: KindPre, Text: text}
}

// Image references an external picture.
func Image(url, caption string) Block {
	return Block{Kind: KindImage, URL: url, Caption: caption}
}

// ChartBlock embeds a chart description.
func ChartBlock(spec chart.Spec) Block {
	return Block{Kind: KindChart, Chart: &spec}
}

// Timeline returns a roadmap.
func Timeline(milestones ...Milestone) Block {
	return Block{Kind: KindTimeline, Milestones: milestones}
}

// Links returns a row of call-to-action anchors.
func Links(links ...Link) Block {
	return Block{Kind: KindLinks, Links: links}
}

// Quote attributes a testimonial to caption.
func Quote(icon, caption, text string) Block {
	return Block{Kind: KindQuote, Icon: icon, Caption: caption, Text: text}
}

// Divider separates groups of blocks.
func Divider() Block {
	return Block{Kind: KindDivider}
}

// Page is the output of one section render.
type Page struct {
	Section ID      `json:"-"`
	Slug    string  `json:"slug"`
	Label   string  `json:"label"`
	Title   string  `json:"title"`
	Blocks  []Block `json:"blocks"`
}

// Charts returns every chart in the page in document order.
func (p Page) Charts() []chart.Spec {
	var out []chart.Spec
	var walk func([]Block)
	walk = func(blocks []Block) {
		for _, b := range blocks {
			if b.Chart != nil {
				out = append(out, *b.Chart)
			}
			walk(b.Children)
		}
	}
	walk(p.Blocks)
	return out
}
