package entity

const DefaultTipCategory = "General"

type DailyTip struct {
	ContentMeta
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

func (*DailyTip) Kind() ItemKind { return KindDailyTip }
func (*DailyTip) isItem()        {}

func (t *DailyTip) Heading() (string, string) { return t.Title, t.Description }

// DailyTipPatch só altera os campos não-nil.
type DailyTipPatch struct {
	Title       *string
	Description *string
	ImageURL    *string
	Category    *string
	Tags        *[]string
	IsActive    *bool
}
