package core

// Request is the JSON envelope accepted by every entry point.
type Request struct {
	Domain         string          `json:"domain"`
	FeatureType    string          `json:"feature_type,omitempty"`
	UserContext    *SubjectContext `json:"user_context,omitempty"`
	PartnerContext *SubjectContext `json:"partner_context,omitempty"`
	Data           *RequestData    `json:"data,omitempty"`
}

type SubjectContext struct {
	BirthDate string `json:"birth_date,omitempty"`
	BirthTime string `json:"birth_time,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Name      string `json:"name,omitempty"`
}

type RequestData struct {
	SessionID  string      `json:"sessionId,omitempty"`
	UserID     string      `json:"userId,omitempty"`
	Question   string      `json:"question,omitempty"`
	TarotCards []string    `json:"tarot_cards,omitempty"`
	CardsDrawn []DrawnCard `json:"cards_drawn,omitempty"`
}

type DrawnCard struct {
	CardName  string `json:"card_name"`
	IsUpright *bool  `json:"is_upright,omitempty"`
	Position  string `json:"position,omitempty"`
}

// Upright defaults to true when the field is absent.
func (c DrawnCard) Upright() bool {
	return c.IsUpright == nil || *c.IsUpright
}

// User returns the user context or an empty one.
func (r *Request) User() SubjectContext {
	if r.UserContext == nil {
		return SubjectContext{}
	}
	return *r.UserContext
}

func (r *Request) Partner() SubjectContext {
	if r.PartnerContext == nil {
		return SubjectContext{}
	}
	return *r.PartnerContext
}

func (r *Request) Payload() RequestData {
	if r.Data == nil {
		return RequestData{}
	}
	return *r.Data
}

type Response struct {
	Domain  string `json:"domain"`
	Feature string `json:"feature,omitempty"`
	Answer  any    `json:"answer"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type ChatAnswer struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
}

type HoroscopeSummary struct {
	CanChi    string `json:"can_chi"`
	BanMenh   string `json:"ban_menh"`
	Cuc       string `json:"cuc"`
	MenhChu   string `json:"menh_chu"`
	ThanChu   string `json:"than_chu"`
	ViTriMenh string `json:"vi_tri_menh"`
	ViTriThan string `json:"vi_tri_than"`
}

type HoroscopeMetadata struct {
	Name     string `json:"name"`
	DOBSolar string `json:"dob_solar"`
	DOBLunar string `json:"dob_lunar"`
}

type HoroscopeAnswer struct {
	Summary  HoroscopeSummary  `json:"summary"`
	Analysis string            `json:"analysis"`
	Metadata HoroscopeMetadata `json:"metadata"`
}
