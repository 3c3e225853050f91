package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/facts"
)

const (
	FeatureOverview = "overview"
	FeatureLove     = "love"
	FeatureQuestion = "question"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("birthdate", validateBirthDate)
}

// validateBirthDate leaves empty values to required and required_if.
func validateBirthDate(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	_, err := facts.NormalizeDate(raw)
	return err == nil
}

type astrologyRequest struct {
	Feature string              `validate:"oneof=overview love"`
	User    core.SubjectContext `validate:"-"`
	Partner core.SubjectContext `validate:"-"`

	BirthDate        string `validate:"required,birthdate"`
	PartnerBirthDate string `validate:"required_if=Feature love,birthdate"`
}

type numerologyRequest struct {
	User      core.SubjectContext `validate:"-"`
	BirthDate string              `validate:"required,birthdate"`
}

type horoscopeRequest struct {
	User      core.SubjectContext `validate:"-"`
	BirthDate string              `validate:"required,birthdate"`
}

type tarotCard struct {
	Name     string `validate:"required"`
	Upright  bool
	Position string
}

type tarotRequest struct {
	Feature  string              `validate:"oneof=question overview"`
	User     core.SubjectContext `validate:"-"`
	UserID   string
	Question string
	Cards    []tarotCard `validate:"required,min=1,dive"`
}

type chatRequest struct {
	SessionID string `validate:"required"`
	Question  string `validate:"required_without=Cards"`
	Cards     []string
	User      core.SubjectContext `validate:"-"`
	Partner   core.SubjectContext `validate:"-"`
}

func featureOr(raw, def string) string {
	f := strings.ToLower(strings.TrimSpace(raw))
	if f == "" {
		return def
	}
	return f
}

func newAstrologyRequest(req *core.Request) (*astrologyRequest, error) {
	r := &astrologyRequest{
		Feature:          featureOr(req.FeatureType, FeatureOverview),
		User:             req.User(),
		Partner:          req.Partner(),
		BirthDate:        req.User().BirthDate,
		PartnerBirthDate: req.Partner().BirthDate,
	}
	return r, check(r, map[string]string{
		"Feature":          "Unsupported astrology feature",
		"BirthDate":        "Ngày sinh không hợp lệ.",
		"PartnerBirthDate": "Thiếu thông tin ngày sinh đối phương.",
	})
}

func newNumerologyRequest(req *core.Request) (*numerologyRequest, error) {
	r := &numerologyRequest{User: req.User(), BirthDate: req.User().BirthDate}
	return r, check(r, map[string]string{"BirthDate": "Ngày sinh không hợp lệ."})
}

func newHoroscopeRequest(req *core.Request) (*horoscopeRequest, error) {
	r := &horoscopeRequest{User: req.User(), BirthDate: req.User().BirthDate}
	return r, check(r, map[string]string{"BirthDate": "Ngày sinh không hợp lệ."})
}

// newTarotRequest prefers cards_drawn and falls back to bare tarot_cards names.
func newTarotRequest(req *core.Request) (*tarotRequest, error) {
	data := req.Payload()
	r := &tarotRequest{
		Feature:  featureOr(req.FeatureType, FeatureQuestion),
		User:     req.User(),
		UserID:   data.UserID,
		Question: strings.TrimSpace(data.Question),
	}
	for _, c := range data.CardsDrawn {
		r.Cards = append(r.Cards, tarotCard{Name: strings.TrimSpace(c.CardName), Upright: c.Upright(), Position: c.Position})
	}
	if len(r.Cards) == 0 {
		for _, name := range data.TarotCards {
			r.Cards = append(r.Cards, tarotCard{Name: strings.TrimSpace(name), Upright: true})
		}
	}
	return r, check(r, map[string]string{
		"Feature": "Unsupported tarot feature",
		"Cards":   "Vui lòng chọn lá bài.",
		"Name":    "Vui lòng chọn lá bài.",
	})
}

func newChatRequest(req *core.Request) (*chatRequest, error) {
	data := req.Payload()
	r := &chatRequest{
		SessionID: strings.TrimSpace(data.SessionID),
		Question:  strings.TrimSpace(data.Question),
		Cards:     data.TarotCards,
		User:      req.User(),
		Partner:   req.Partner(),
	}
	return r, check(r, map[string]string{
		"SessionID": "Missing sessionId or question",
		"Question":  "Missing sessionId or question",
	})
}

// check validates v and turns the first failing field into an InputError.
func check(v any, messages map[string]string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg, ok := messages[fe.StructField()]
	if !ok {
		msg = "Invalid request"
	}
	return core.NewInputError(msg, fe.Namespace()+" failed "+fe.Tag())
}
