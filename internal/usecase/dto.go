package usecase

import "github.com/xavierca1/seerah-hajj/internal/entity"

type DailyTipInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// Nos inputs de edição, campo ausente no JSON = nil = não altera.
type DailyTipUpdateInput struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	IsActive    *bool     `json:"isActive"`
}

type WebinarInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	YoutubeURL  string   `json:"youtubeUrl"`
	Duration    string   `json:"duration"`
	Tags        []string `json:"tags"`
}

type WebinarUpdateInput struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	YoutubeURL  *string   `json:"youtubeUrl"`
	Duration    *string   `json:"duration"`
	Tags        *[]string `json:"tags"`
	IsActive    *bool     `json:"isActive"`
}

type PDFGuideInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PDFURL       string   `json:"pdfUrl"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	FileSize     string   `json:"fileSize"`
	Tags         []string `json:"tags"`
}

type PDFGuideUpdateInput struct {
	ID           string    `json:"id"`
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	PDFURL       *string   `json:"pdfUrl"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	FileSize     *string   `json:"fileSize"`
	Tags         *[]string `json:"tags"`
	IsActive     *bool     `json:"isActive"`
}

// IntakeInput é o payload do formulário público, em camelCase como o front envia.
type IntakeInput struct {
	FullName               string  `json:"fullName" validate:"required,min=2"`
	Email                  string  `json:"email" validate:"required,email"`
	Phone                  string  `json:"phone" validate:"required,phone"`
	CityCountry            string  `json:"cityCountry" validate:"required,min=2"`
	PreviousExperience     string  `json:"previousExperience" validate:"required,previous_experience"`
	HajjStatus             string  `json:"hajjStatus" validate:"required,hajj_status"`
	TravellingWith         string  `json:"travellingWith" validate:"required,travelling_with"`
	TravellerCount         *int    `json:"travellerCount" validate:"omitempty,min=1,max=20"`
	DeparturePreference    *string `json:"departurePreference" validate:"omitempty,departure_city"`
	RoomingPreference      *string `json:"roomingPreference" validate:"omitempty,rooming_preference"`
	MobilityConsiderations *string `json:"mobilityConsiderations"`
	CallGoals              string  `json:"callGoals" validate:"required,min=10"`
	HearAboutUs            *string `json:"hearAboutUs" validate:"omitempty,hear_about_us"`
	HearAboutUsOther       *string `json:"hearAboutUsOther"`
	Consent                *bool   `json:"consent" validate:"required"`
	// Status é ignorado: todo lead nasce "new".
	Status string `json:"status"`
}

type IntakeOutput struct {
	SubmissionID string       `json:"submissionId"`
	Lead         *entity.Lead `json:"-"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
}

type LeadListInput struct {
	Status string
	Limit  int
	Offset int
	Query  string
}

type LeadListOutput struct {
	Leads []*entity.Lead `json:"data"`
	Total int            `json:"total"`
}

type SetLeadStatusInput struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

type SubscribeInput struct {
	Email string `json:"email" validate:"required,email"`
}

type SubscribeOutput struct {
	SubscriberID string `json:"subscriberId"`
	WhatsAppLink string `json:"whatsappLink"`
	Message      string `json:"message"`
}

type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

type ResourcesInput struct {
	Query string
	Tags  []string
}

type ResourcesOutput struct {
	Tips     []*entity.DailyTip `json:"tips"`
	Webinars []*entity.Webinar  `json:"webinars"`
	Guides   []*entity.PDFGuide `json:"pdfs"`
	AllTags  []string           `json:"allTags"`
}

type StatsOutput struct {
	CurrentMembers int `json:"currentMembers"`
	TotalGoal      int `json:"totalGoal"`
	WeeklyJoins    int `json:"weeklyJoins"`
	Cities         int `json:"cities"`
}
