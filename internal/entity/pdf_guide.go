package entity

type PDFGuide struct {
	ContentMeta
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	PDFURL       string  `json:"pdf_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	FileSize     *string `json:"file_size"`
}

func (*PDFGuide) Kind() ItemKind { return KindPDFGuide }
func (*PDFGuide) isItem()        {}

func (g *PDFGuide) Heading() (string, string) { return g.Title, g.Description }

type PDFGuidePatch struct {
	Title        *string
	Description  *string
	PDFURL       *string
	ThumbnailURL *string
	FileSize     *string
	Tags         *[]string
	IsActive     *bool
}
