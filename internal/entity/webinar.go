package entity

import (
	"fmt"
	"regexp"
)

const youtubeIDLength = 11

var youtubeURLPattern = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

type Webinar struct {
	ContentMeta
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	YoutubeID    string  `json:"youtube_id"`
	YoutubeURL   string  `json:"youtube_url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     *string `json:"duration"`
}

func (*Webinar) Kind() ItemKind { return KindWebinar }
func (*Webinar) isItem()        {}

func (w *Webinar) Heading() (string, string) { return w.Title, w.Description }

// SetVideo deriva id e thumbnail a partir da URL. Nada muda se a URL for inválida.
func (w *Webinar) SetVideo(url string) error {
	id, err := ExtractYoutubeID(url)
	if err != nil {
		return err
	}
	w.YoutubeURL = url
	w.YoutubeID = id
	w.ThumbnailURL = YoutubeThumbnailURL(id)
	return nil
}

// WebinarPatch carrega a URL e os campos derivados juntos.
type WebinarPatch struct {
	Title        *string
	Description  *string
	Duration     *string
	Tags         *[]string
	IsActive     *bool
	YoutubeURL   *string
	YoutubeID    *string
	ThumbnailURL *string
}

// SetVideo preenche URL, id e thumbnail do patch de uma vez.
func (p *WebinarPatch) SetVideo(url string) error {
	id, err := ExtractYoutubeID(url)
	if err != nil {
		return err
	}
	thumb := YoutubeThumbnailURL(id)
	p.YoutubeURL = &url
	p.YoutubeID = &id
	p.ThumbnailURL = &thumb
	return nil
}

// ExtractYoutubeID aceita watch?v=, youtu.be/, embed/, v/ e u/x/.
// O token capturado precisa ter exatamente 11 caracteres.
func ExtractYoutubeID(url string) (string, error) {
	m := youtubeURLPattern.FindStringSubmatch(url)
	if m == nil || len(m[2]) != youtubeIDLength {
		return "", ErrInvalidVideoURL
	}
	return m[2], nil
}

func YoutubeThumbnailURL(id string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id)
}
