package database

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/xavierca1/seerah-hajj/internal/entity"
)

type (
	DailyTipRepository = ContentRepository[*entity.DailyTip, entity.DailyTipPatch]
	WebinarRepository  = ContentRepository[*entity.Webinar, entity.WebinarPatch]
	PDFGuideRepository = ContentRepository[*entity.PDFGuide, entity.PDFGuidePatch]
)

func NewDailyTipRepository(db *sql.DB) *DailyTipRepository {
	return &DailyTipRepository{DB: db, table: dailyTipsTable}
}

func NewWebinarRepository(db *sql.DB) *WebinarRepository {
	return &WebinarRepository{DB: db, table: webinarsTable}
}

func NewPDFGuideRepository(db *sql.DB) *PDFGuideRepository {
	return &PDFGuideRepository{DB: db, table: pdfGuidesTable}
}

var dailyTipsTable = contentTable[*entity.DailyTip, entity.DailyTipPatch]{
	name:    "daily_tips",
	columns: []string{"title", "description", "image_url", "category"},
	newItem: func() *entity.DailyTip { return &entity.DailyTip{} },
	values: func(t *entity.DailyTip) []any {
		return []any{t.Title, t.Description, t.ImageURL, t.Category}
	},
	targets: func(t *entity.DailyTip) []any {
		return []any{&t.Title, &t.Description, &t.ImageURL, &t.Category}
	},
	assign: func(p entity.DailyTipPatch) []assignment {
		var a []assignment
		a = appendSet(a, "title", p.Title)
		a = appendSet(a, "description", p.Description)
		a = appendSet(a, "image_url", p.ImageURL)
		a = appendSet(a, "category", p.Category)
		a = appendTags(a, p.Tags)
		a = appendSet(a, "is_active", p.IsActive)
		return a
	},
}

var webinarsTable = contentTable[*entity.Webinar, entity.WebinarPatch]{
	name:    "webinars",
	columns: []string{"title", "description", "youtube_id", "youtube_url", "thumbnail_url", "duration"},
	newItem: func() *entity.Webinar { return &entity.Webinar{} },
	values: func(w *entity.Webinar) []any {
		return []any{w.Title, w.Description, w.YoutubeID, w.YoutubeURL, w.ThumbnailURL, w.Duration}
	},
	targets: func(w *entity.Webinar) []any {
		return []any{&w.Title, &w.Description, &w.YoutubeID, &w.YoutubeURL, &w.ThumbnailURL, &w.Duration}
	},
	assign: func(p entity.WebinarPatch) []assignment {
		var a []assignment
		a = appendSet(a, "title", p.Title)
		a = appendSet(a, "description", p.Description)
		a = appendSet(a, "youtube_url", p.YoutubeURL)
		a = appendSet(a, "youtube_id", p.YoutubeID)
		a = appendSet(a, "thumbnail_url", p.ThumbnailURL)
		a = appendSet(a, "duration", p.Duration)
		a = appendTags(a, p.Tags)
		a = appendSet(a, "is_active", p.IsActive)
		return a
	},
}

var pdfGuidesTable = contentTable[*entity.PDFGuide, entity.PDFGuidePatch]{
	name:    "pdf_guides",
	columns: []string{"title", "description", "pdf_url", "thumbnail_url", "file_size"},
	newItem: func() *entity.PDFGuide { return &entity.PDFGuide{} },
	values: func(g *entity.PDFGuide) []any {
		return []any{g.Title, g.Description, g.PDFURL, g.ThumbnailURL, g.FileSize}
	},
	targets: func(g *entity.PDFGuide) []any {
		return []any{&g.Title, &g.Description, &g.PDFURL, &g.ThumbnailURL, &g.FileSize}
	},
	assign: func(p entity.PDFGuidePatch) []assignment {
		var a []assignment
		a = appendSet(a, "title", p.Title)
		a = appendSet(a, "description", p.Description)
		a = appendSet(a, "pdf_url", p.PDFURL)
		a = appendSet(a, "thumbnail_url", p.ThumbnailURL)
		a = appendSet(a, "file_size", p.FileSize)
		a = appendTags(a, p.Tags)
		a = appendSet(a, "is_active", p.IsActive)
		return a
	},
}

func appendSet[V any](a []assignment, column string, v *V) []assignment {
	if v == nil {
		return a
	}
	return append(a, assignment{column, *v})
}

func appendTags(a []assignment, tags *[]string) []assignment {
	if tags == nil {
		return a
	}
	t := *tags
	if t == nil {
		t = []string{}
	}
	return append(a, assignment{"tags", pq.Array(t)})
}
